package model

import (
	"errors"
	"fmt"
	"time"
)

// 服务层错误分类：handler 按类别映射 HTTP 状态码，
// 所有错误都原样上报给调用方，核心内部不做静默吞错、不做自动重试
var (
	ErrNotFound           = errors.New("record not found")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("conflict")
	ErrUnavailable        = errors.New("store unavailable")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// CooldownActiveError 拒绝后的冷却期未结束，携带可重试时间
type CooldownActiveError struct {
	ExpiresAt time.Time
}

func (e *CooldownActiveError) Error() string {
	return fmt.Sprintf("friend request rejected, cooldown period active until %s", e.ExpiresAt.UTC().Format(time.RFC3339))
}
