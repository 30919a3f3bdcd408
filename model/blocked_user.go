package model

import (
	"time"

	"github.com/google/uuid"
)

// BlockedUser 拉黑关系表
// 没有状态字段，行存在即生效；(blocker_id, blocked_id) 有序对唯一
type BlockedUser struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	BlockerID uuid.UUID `json:"blocker_id" gorm:"type:uuid;not null;uniqueIndex:idx_blocked_users_pair"`
	Blocker   User      `json:"-" gorm:"foreignKey:BlockerID;constraint:OnDelete:CASCADE"`
	BlockedID uuid.UUID `json:"blocked_id" gorm:"type:uuid;not null;uniqueIndex:idx_blocked_users_pair"`
	Blocked   User      `json:"-" gorm:"foreignKey:BlockedID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (BlockedUser) TableName() string {
	return "blocked_users"
}
