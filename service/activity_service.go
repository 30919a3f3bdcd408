package service

import (
	"fmt"

	"github.com/Maheshdudala/social-network/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// logActivity 在给定连接（或事务）上追加一条活动记录
// 状态机、拉黑策略和可见性网关都从自己的事务里调用这里，
// 活动记录和触发它的状态变更保持原子
func logActivity(tx *gorm.DB, userID uuid.UUID, activity string) error {
	if activity == "" {
		return fmt.Errorf("%w: activity text is required", model.ErrConflict)
	}
	entry := &model.UserActivity{
		ID:       uuid.New(),
		UserID:   userID,
		Activity: activity,
	}
	if err := tx.Create(entry).Error; err != nil {
		return fmt.Errorf("%w: failed to log activity: %v", model.ErrUnavailable, err)
	}
	return nil
}

type ActivityService struct {
	db *gorm.DB
}

func NewActivityService(db *gorm.DB) *ActivityService {
	return &ActivityService{db: db}
}

// Record 追加一条活动记录
func (s *ActivityService) Record(userID uuid.UUID, activity string) error {
	return logActivity(s.db, userID, activity)
}

// List 获取用户自己的活动记录（新的在前）
func (s *ActivityService) List(userID uuid.UUID, limit, offset int) ([]model.UserActivity, error) {
	var activities []model.UserActivity
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&activities).Error
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query activities: %v", model.ErrUnavailable, err)
	}
	return activities, nil
}
