package model

import (
	"time"

	"github.com/google/uuid"
)

// Role 用户角色（封闭枚举）
// 权限判断统一走能力方法，不在业务代码里散落字符串比较
type Role string

const (
	RoleRead  Role = "read"
	RoleWrite Role = "write"
	RoleAdmin Role = "admin"
)

// Valid 角色是否是合法取值
func (r Role) Valid() bool {
	switch r {
	case RoleRead, RoleWrite, RoleAdmin:
		return true
	}
	return false
}

// CanWrite 是否具备写能力
func (r Role) CanWrite() bool {
	return r == RoleWrite || r == RoleAdmin
}

// IsAdmin 是否为管理员
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// User 用户表
// email 存储时统一转小写，配合唯一索引实现大小写不敏感的唯一性
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name         string    `json:"name" gorm:"type:varchar(255);not null"`
	Email        string    `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"type:varchar(255);not null"`
	Role         Role      `json:"role" gorm:"type:varchar(10);not null;default:read"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (User) TableName() string {
	return "users"
}

// Profile 用户资料表
// sensitive_info 只有在双方好友关系确认后才会返回（由可见性网关裁决）
type Profile struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID `json:"user_id" gorm:"type:uuid;uniqueIndex;not null"`
	User          User      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Description   string    `json:"description" gorm:"type:text"`
	SensitiveInfo string    `json:"sensitive_info,omitempty" gorm:"type:text"`
	UpdatedAt     time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Profile) TableName() string {
	return "profiles"
}
