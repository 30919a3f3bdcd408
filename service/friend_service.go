package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Maheshdudala/social-network/model"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ManageAction manageRequest 支持的动作
type ManageAction string

const (
	ActionAccept  ManageAction = "accept"
	ActionReject  ManageAction = "reject"
	ActionBlock   ManageAction = "block"
	ActionUnblock ManageAction = "unblock"
)

// DefaultCooldown 拒绝后的默认冷却期
const DefaultCooldown = 24 * time.Hour

// FriendService 好友请求状态机
// 状态：pending / accepted / rejected / 无行（隐含状态）
// accepted 是终态；rejected 是软终态，冷却期过后退化为无行
type FriendService struct {
	db              *gorm.DB
	rdb             *redis.Client
	cooldown        time.Duration
	friendsCacheTTL time.Duration
	now             func() time.Time
}

func NewFriendService(db *gorm.DB) *FriendService {
	return &FriendService{
		db:       db,
		cooldown: DefaultCooldown,
		now:      time.Now,
	}
}

// NewFriendServiceWithRedis 带好友列表缓存的构造方式
func NewFriendServiceWithRedis(db *gorm.DB, rdb *redis.Client, cooldown, friendsCacheTTL time.Duration) *FriendService {
	return &FriendService{
		db:              db,
		rdb:             rdb,
		cooldown:        cooldown,
		friendsCacheTTL: friendsCacheTTL,
		now:             time.Now,
	}
}

// SendRequest 发送好友请求
// 全部检查和写入在同一个事务里完成；前置检查都通过后的插入
// 仍可能因唯一索引冲突失败（并发重复发送），此时按 Conflict 上报
func (s *FriendService) SendRequest(senderID, receiverID uuid.UUID) (*model.FriendRequest, error) {
	if senderID == receiverID {
		return nil, fmt.Errorf("%w: cannot send a friend request to yourself", model.ErrConflict)
	}

	var request *model.FriendRequest
	err := s.db.Transaction(func(tx *gorm.DB) error {
		// 1. 接收方必须存在
		var receiver model.User
		if err := tx.First(&receiver, "id = ?", receiverID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: user not found", model.ErrNotFound)
			}
			return fmt.Errorf("%w: failed to load receiver: %v", model.ErrUnavailable, err)
		}
		var sender model.User
		if err := tx.First(&sender, "id = ?", senderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: user not found", model.ErrNotFound)
			}
			return fmt.Errorf("%w: failed to load sender: %v", model.ErrUnavailable, err)
		}

		// 2. 接收方拉黑了发送方：权限错误
		blocked, err := blockExists(tx, receiverID, senderID)
		if err != nil {
			return err
		}
		if blocked {
			return fmt.Errorf("%w: you are blocked by this user", model.ErrForbidden)
		}

		// 3. 发送方自己拉黑了接收方：客户端错误，语义同样是交互被禁止
		blocked, err = blockExists(tx, senderID, receiverID)
		if err != nil {
			return err
		}
		if blocked {
			return fmt.Errorf("%w: you have blocked this user", model.ErrConflict)
		}

		// 4. 之前被拒绝过：冷却期按 updated_at + cooldown 计算，
		//    未过返回冷却错误（带恢复时间），已过删除旧行后继续
		var rejected model.FriendRequest
		err = tx.Where("sender_id = ? AND receiver_id = ? AND status = ?",
			senderID, receiverID, model.FriendRequestRejected).
			First(&rejected).Error
		switch {
		case err == nil:
			expiresAt := rejected.UpdatedAt.Add(s.cooldown)
			if s.now().Before(expiresAt) {
				return &model.CooldownActiveError{ExpiresAt: expiresAt}
			}
			if err := tx.Delete(&rejected).Error; err != nil {
				return fmt.Errorf("%w: failed to delete stale request: %v", model.ErrUnavailable, err)
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			// 没有被拒绝的历史，继续
		default:
			return fmt.Errorf("%w: failed to check rejected request: %v", model.ErrUnavailable, err)
		}

		// 5. 对方已经给自己发过 pending 请求：必须通过接受/拒绝处理，不允许反向再发
		var reversePending int64
		if err := tx.Model(&model.FriendRequest{}).
			Where("sender_id = ? AND receiver_id = ? AND status = ?",
				receiverID, senderID, model.FriendRequestPending).
			Count(&reversePending).Error; err != nil {
			return fmt.Errorf("%w: failed to check reverse request: %v", model.ErrUnavailable, err)
		}
		if reversePending > 0 {
			return fmt.Errorf("%w: friend request from this user is pending approval", model.ErrConflict)
		}

		// 6. 任一方向已经是好友
		var accepted int64
		if err := tx.Model(&model.FriendRequest{}).
			Where("((sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)) AND status = ?",
				senderID, receiverID, receiverID, senderID, model.FriendRequestAccepted).
			Count(&accepted).Error; err != nil {
			return fmt.Errorf("%w: failed to check friendship: %v", model.ErrUnavailable, err)
		}
		if accepted > 0 {
			return fmt.Errorf("%w: you are already friends with this user", model.ErrConflict)
		}

		// 7. 创建 pending 请求；唯一索引冲突说明并发下已有同向请求
		request = &model.FriendRequest{
			ID:         uuid.New(),
			SenderID:   senderID,
			ReceiverID: receiverID,
			Status:     model.FriendRequestPending,
		}
		if err := tx.Create(request).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: friend request already sent to this user", model.ErrConflict)
			}
			return fmt.Errorf("%w: failed to create friend request: %v", model.ErrUnavailable, err)
		}

		if err := logActivity(tx, senderID, fmt.Sprintf("Sent a friend request to %s", receiver.Name)); err != nil {
			return err
		}
		return logActivity(tx, receiverID, fmt.Sprintf("Received a friend request from %s", sender.Name))
	})
	if err != nil {
		return nil, err
	}
	return request, nil
}

// ManageRequest 处理收到的好友请求（accept / reject）
// 请求必须存在且 receiver 是操作者本人，否则按 NotFound 处理；
// 只允许处理 pending 状态的请求，重复处理终态请求返回 Conflict
// （block / unblock 动作走拉黑策略，不经过这里）
func (s *FriendService) ManageRequest(actorID, requestID uuid.UUID, action ManageAction) (*model.FriendRequest, error) {
	if action != ActionAccept && action != ActionReject {
		return nil, fmt.Errorf("%w: invalid action", model.ErrConflict)
	}

	var request model.FriendRequest
	err := s.db.Transaction(func(tx *gorm.DB) error {
		// 按 id + receiver 查找：请求不存在和请求不属于操作者对外不可区分
		err := tx.Where("id = ? AND receiver_id = ?", requestID, actorID).First(&request).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: friend request not found", model.ErrNotFound)
			}
			return fmt.Errorf("%w: failed to load friend request: %v", model.ErrUnavailable, err)
		}

		if request.Status != model.FriendRequestPending {
			return fmt.Errorf("%w: friend request already %s", model.ErrConflict, request.Status)
		}

		receiver, sender, err := loadUserPair(tx, request.ReceiverID, request.SenderID)
		if err != nil {
			return err
		}

		updates := map[string]interface{}{}
		switch action {
		case ActionAccept:
			updates["status"] = model.FriendRequestAccepted
			updates["cooldown_expires_at"] = nil
		case ActionReject:
			updates["status"] = model.FriendRequestRejected
			updates["cooldown_expires_at"] = s.now().Add(s.cooldown)
		}
		if err := tx.Model(&request).Updates(updates).Error; err != nil {
			return fmt.Errorf("%w: failed to update friend request: %v", model.ErrUnavailable, err)
		}

		if action == ActionAccept {
			if err := logActivity(tx, request.ReceiverID, fmt.Sprintf("Accepted friend request from %s", sender.Name)); err != nil {
				return err
			}
			return logActivity(tx, request.SenderID, fmt.Sprintf("Friend request accepted by %s", receiver.Name))
		}
		if err := logActivity(tx, request.ReceiverID, fmt.Sprintf("Rejected friend request from %s", sender.Name)); err != nil {
			return err
		}
		return logActivity(tx, request.SenderID, fmt.Sprintf("Friend request rejected by %s", receiver.Name))
	})
	if err != nil {
		return nil, err
	}

	// 接受后双方的好友列表都变了，失效缓存
	if action == ActionAccept {
		s.invalidateFriendsCache(request.SenderID, request.ReceiverID)
	}
	return &request, nil
}

// ListPending 获取发给自己的待处理请求
func (s *FriendService) ListPending(userID uuid.UUID) ([]model.FriendRequest, error) {
	var requests []model.FriendRequest
	err := s.db.Where("receiver_id = ? AND status = ?", userID, model.FriendRequestPending).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query pending requests: %v", model.ErrUnavailable, err)
	}
	return requests, nil
}

// ListFriends 获取好友列表（任一方向 accepted 的对端用户）
// 配置了 Redis 时结果缓存 friendsCacheTTL，接受请求时失效
func (s *FriendService) ListFriends(userID uuid.UUID) ([]model.User, error) {
	if friends, ok := s.friendsFromCache(userID); ok {
		return friends, nil
	}

	var requests []model.FriendRequest
	err := s.db.Where("(sender_id = ? OR receiver_id = ?) AND status = ?",
		userID, userID, model.FriendRequestAccepted).
		Find(&requests).Error
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query friendships: %v", model.ErrUnavailable, err)
	}

	friendIDs := make([]uuid.UUID, 0, len(requests))
	for _, r := range requests {
		if r.SenderID == userID {
			friendIDs = append(friendIDs, r.ReceiverID)
		} else {
			friendIDs = append(friendIDs, r.SenderID)
		}
	}

	friends := []model.User{}
	if len(friendIDs) > 0 {
		if err := s.db.Where("id IN ?", friendIDs).Find(&friends).Error; err != nil {
			return nil, fmt.Errorf("%w: failed to load friends: %v", model.ErrUnavailable, err)
		}
	}

	s.cacheFriends(userID, friends)
	return friends, nil
}

func friendsCacheKey(userID uuid.UUID) string {
	return "friends:" + userID.String()
}

func (s *FriendService) friendsFromCache(userID uuid.UUID) ([]model.User, bool) {
	if s.rdb == nil {
		return nil, false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	data, err := s.rdb.Get(ctx, friendsCacheKey(userID)).Bytes()
	if err != nil {
		return nil, false
	}
	var friends []model.User
	if err := json.Unmarshal(data, &friends); err != nil {
		return nil, false
	}
	return friends, true
}

func (s *FriendService) cacheFriends(userID uuid.UUID, friends []model.User) {
	if s.rdb == nil || s.friendsCacheTTL <= 0 {
		return
	}
	data, err := json.Marshal(friends)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	s.rdb.Set(ctx, friendsCacheKey(userID), data, s.friendsCacheTTL)
}

func (s *FriendService) invalidateFriendsCache(userIDs ...uuid.UUID) {
	if s.rdb == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	keys := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		keys = append(keys, friendsCacheKey(id))
	}
	s.rdb.Del(ctx, keys...)
}
