package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Maheshdudala/social-network/middleware"
	"github.com/Maheshdudala/social-network/model"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService 账号注册与登录（核心的外部协作方：凭证到用户身份的解析）
type AuthService struct {
	db *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

// Register 注册新用户
// email 大小写不敏感唯一（统一转小写存储）；同时创建空的资料行
func (s *AuthService) Register(name, email, password string, role model.Role) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if role == "" {
		role = model.RoleRead
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: invalid role", model.ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: email already registered", model.ErrConflict)
			}
			return fmt.Errorf("%w: failed to create user: %v", model.ErrUnavailable, err)
		}

		profile := &model.Profile{
			ID:     uuid.New(),
			UserID: user.ID,
		}
		if err := tx.Create(profile).Error; err != nil {
			return fmt.Errorf("%w: failed to create profile: %v", model.ErrUnavailable, err)
		}

		return logActivity(tx, user.ID, "User registered.")
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Login 校验凭证并签发访问令牌
// 用户不存在和密码错误对外不可区分
func (s *AuthService) Login(email, password string) (string, *model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user model.User
	if err := s.db.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, model.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("%w: failed to load user: %v", model.ErrUnavailable, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, model.ErrInvalidCredentials
	}

	token, err := middleware.GenerateToken(user.ID, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	if err := logActivity(s.db, user.ID, "User logged in."); err != nil {
		return "", nil, err
	}
	return token, &user, nil
}
