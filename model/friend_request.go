package model

import (
	"time"

	"github.com/google/uuid"
)

// FriendRequestStatus 好友请求状态
type FriendRequestStatus string

const (
	FriendRequestPending  FriendRequestStatus = "pending"
	FriendRequestAccepted FriendRequestStatus = "accepted"
	FriendRequestRejected FriendRequestStatus = "rejected"
)

// FriendRequest 好友请求表
// (sender_id, receiver_id) 有序对唯一；并发重复创建由数据库唯一索引最终裁决，
// 服务层的前置检查只是优化
type FriendRequest struct {
	ID                uuid.UUID           `json:"id" gorm:"type:uuid;primaryKey"`
	SenderID          uuid.UUID           `json:"sender_id" gorm:"type:uuid;not null;uniqueIndex:idx_friend_requests_pair"`
	Sender            User                `json:"-" gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE"`
	ReceiverID        uuid.UUID           `json:"receiver_id" gorm:"type:uuid;not null;uniqueIndex:idx_friend_requests_pair"`
	Receiver          User                `json:"-" gorm:"foreignKey:ReceiverID;constraint:OnDelete:CASCADE"`
	Status            FriendRequestStatus `json:"status" gorm:"type:varchar(10);not null;default:pending"`
	CooldownExpiresAt *time.Time          `json:"cooldown_expires_at,omitempty"`
	CreatedAt         time.Time           `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt         time.Time           `json:"updated_at" gorm:"autoUpdateTime"`
}

func (FriendRequest) TableName() string {
	return "friend_requests"
}
