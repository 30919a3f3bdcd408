package service

import (
	"errors"
	"fmt"

	"github.com/Maheshdudala/social-network/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProfileView 资料查看结果
// SensitiveInfo 只在双方是好友时填充；非好友得到提示信息
type ProfileView struct {
	User          string `json:"user"`
	Description   string `json:"description"`
	SensitiveInfo string `json:"sensitive_info,omitempty"`
	Message       string `json:"message,omitempty"`
	AreFriends    bool   `json:"-"`
}

// ProfileService 可见性网关：按好友关系裁决资料字段的披露范围
type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// ViewProfile 查看他人资料
// 顺序：目标存在性 → 拉黑检查（目标拉黑查看者）→ 好友关系 → 披露裁决；
// 每次成功查看固定写入两条活动记录（查看者一条、被查看者一条）
func (s *ProfileService) ViewProfile(viewerID, targetUserID uuid.UUID) (*ProfileView, error) {
	var view *ProfileView
	err := s.db.Transaction(func(tx *gorm.DB) error {
		viewer, target, err := loadUserPair(tx, viewerID, targetUserID)
		if err != nil {
			return err
		}

		var profile model.Profile
		if err := tx.First(&profile, "user_id = ?", targetUserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: profile not found", model.ErrNotFound)
			}
			return fmt.Errorf("%w: failed to load profile: %v", model.ErrUnavailable, err)
		}

		// 被查看者拉黑了查看者：直接拒绝，不写活动记录
		blocked, err := blockExists(tx, targetUserID, viewerID)
		if err != nil {
			return err
		}
		if blocked {
			return fmt.Errorf("%w: you are blocked from viewing this profile", model.ErrForbidden)
		}

		var accepted int64
		if err := tx.Model(&model.FriendRequest{}).
			Where("((sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)) AND status = ?",
				viewerID, targetUserID, targetUserID, viewerID, model.FriendRequestAccepted).
			Count(&accepted).Error; err != nil {
			return fmt.Errorf("%w: failed to check friendship: %v", model.ErrUnavailable, err)
		}
		areFriends := accepted > 0

		if !areFriends {
			if err := logActivity(tx, viewerID, fmt.Sprintf("Attempted to view profile of %s", target.Name)); err != nil {
				return err
			}
			if err := logActivity(tx, targetUserID, fmt.Sprintf("%s attempted to view your profile", viewer.Name)); err != nil {
				return err
			}
			view = &ProfileView{
				User:        target.Name,
				Description: profile.Description,
				Message:     "Sensitive information is hidden until friend request is accepted.",
			}
			return nil
		}

		if err := logActivity(tx, viewerID, fmt.Sprintf("Viewed profile of %s", target.Name)); err != nil {
			return err
		}
		if err := logActivity(tx, targetUserID, fmt.Sprintf("%s viewed your profile", viewer.Name)); err != nil {
			return err
		}
		view = &ProfileView{
			User:          target.Name,
			Description:   profile.Description,
			SensitiveInfo: profile.SensitiveInfo,
			AreFriends:    true,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// UpdateProfile 更新自己的资料（nil 字段保持不变）
func (s *ProfileService) UpdateProfile(userID uuid.UUID, description, sensitiveInfo *string) (*model.Profile, error) {
	var profile model.Profile
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&profile, "user_id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: profile not found", model.ErrNotFound)
			}
			return fmt.Errorf("%w: failed to load profile: %v", model.ErrUnavailable, err)
		}

		updates := map[string]interface{}{}
		if description != nil {
			updates["description"] = *description
		}
		if sensitiveInfo != nil {
			updates["sensitive_info"] = *sensitiveInfo
		}
		if len(updates) > 0 {
			if err := tx.Model(&profile).Updates(updates).Error; err != nil {
				return fmt.Errorf("%w: failed to update profile: %v", model.ErrUnavailable, err)
			}
		}

		return logActivity(tx, userID, "Profile updated.")
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
