package model

import (
	"time"

	"github.com/google/uuid"
)

// UserActivity 用户活动记录表（只追加，本服务不修改也不删除）
type UserActivity struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	User      User      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Activity  string    `json:"activity" gorm:"type:varchar(255);not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (UserActivity) TableName() string {
	return "user_activities"
}
