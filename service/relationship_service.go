package service

import (
	"errors"
	"fmt"

	"github.com/Maheshdudala/social-network/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RelationshipService 拉黑策略：决定两个用户之间是否允许交互
type RelationshipService struct {
	db *gorm.DB
}

func NewRelationshipService(db *gorm.DB) *RelationshipService {
	return &RelationshipService{db: db}
}

// blockExists 精确方向的拉黑行是否存在（事务内复用）
func blockExists(tx *gorm.DB, blockerID, blockedID uuid.UUID) (bool, error) {
	var count int64
	err := tx.Model(&model.BlockedUser{}).
		Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("%w: failed to check block: %v", model.ErrUnavailable, err)
	}
	return count > 0, nil
}

// IsBlocked 检查 blocker 是否拉黑了 blocked（只看这一个方向）
func (s *RelationshipService) IsBlocked(blockerID, blockedID uuid.UUID) (bool, error) {
	return blockExists(s.db, blockerID, blockedID)
}

// CanInteract 任意一个方向存在拉黑即不允许交互
func (s *RelationshipService) CanInteract(a, b uuid.UUID) (bool, error) {
	blocked, err := blockExists(s.db, a, b)
	if err != nil {
		return false, err
	}
	if blocked {
		return false, nil
	}
	blocked, err = blockExists(s.db, b, a)
	if err != nil {
		return false, err
	}
	return !blocked, nil
}

// BlockUser 拉黑用户
// 幂等：已拉黑时不报错（唯一索引冲突按无事发生处理）；
// 每次调用都写入双方各一条活动记录，措辞不对称
func (s *RelationshipService) BlockUser(blockerID, targetID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		blocker, target, err := loadUserPair(tx, blockerID, targetID)
		if err != nil {
			return err
		}

		row := &model.BlockedUser{
			ID:        uuid.New(),
			BlockerID: blockerID,
			BlockedID: targetID,
		}
		if err := tx.Create(row).Error; err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: failed to block user: %v", model.ErrUnavailable, err)
		}

		if err := logActivity(tx, blockerID, fmt.Sprintf("Blocked %s", target.Name)); err != nil {
			return err
		}
		return logActivity(tx, targetID, fmt.Sprintf("You were blocked by %s", blocker.Name))
	})
}

// UnblockUser 取消拉黑
// 幂等：本来就没有拉黑行时同样成功；双方各写一条活动记录
func (s *RelationshipService) UnblockUser(blockerID, targetID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		blocker, target, err := loadUserPair(tx, blockerID, targetID)
		if err != nil {
			return err
		}

		if err := tx.Where("blocker_id = ? AND blocked_id = ?", blockerID, targetID).
			Delete(&model.BlockedUser{}).Error; err != nil {
			return fmt.Errorf("%w: failed to unblock user: %v", model.ErrUnavailable, err)
		}

		if err := logActivity(tx, blockerID, fmt.Sprintf("Unblocked %s", target.Name)); err != nil {
			return err
		}
		return logActivity(tx, targetID, fmt.Sprintf("Unblocked by %s", blocker.Name))
	})
}

// GetBlockedUsers 获取拉黑列表
func (s *RelationshipService) GetBlockedUsers(blockerID uuid.UUID) ([]model.BlockedUser, error) {
	var rows []model.BlockedUser
	err := s.db.Where("blocker_id = ?", blockerID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query blocked users: %v", model.ErrUnavailable, err)
	}
	return rows, nil
}

// loadUserPair 加载操作双方，目标不存在返回 NotFound
func loadUserPair(tx *gorm.DB, actorID, targetID uuid.UUID) (*model.User, *model.User, error) {
	var target model.User
	if err := tx.First(&target, "id = ?", targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("%w: user not found", model.ErrNotFound)
		}
		return nil, nil, fmt.Errorf("%w: failed to load user: %v", model.ErrUnavailable, err)
	}
	var actor model.User
	if err := tx.First(&actor, "id = ?", actorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("%w: user not found", model.ErrNotFound)
		}
		return nil, nil, fmt.Errorf("%w: failed to load user: %v", model.ErrUnavailable, err)
	}
	return &actor, &target, nil
}
