package service

import (
	"testing"

	"github.com/Maheshdudala/social-network/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockUser_Idempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewRelationshipService(db)
	alice := createTestUser(t, db, "Alice")
	bob := createTestUser(t, db, "Bob")

	require.NoError(t, svc.BlockUser(alice.ID, bob.ID))
	// 重复拉黑静默成功，不产生第二行
	require.NoError(t, svc.BlockUser(alice.ID, bob.ID))

	var count int64
	require.NoError(t, db.Model(&model.BlockedUser{}).
		Where("blocker_id = ? AND blocked_id = ?", alice.ID, bob.ID).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestBlockUser_Direction(t *testing.T) {
	db := newTestDB(t)
	svc := NewRelationshipService(db)
	alice := createTestUser(t, db, "Alice")
	bob := createTestUser(t, db, "Bob")

	require.NoError(t, svc.BlockUser(alice.ID, bob.ID))

	// IsBlocked 只看精确方向
	blocked, err := svc.IsBlocked(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, blocked)

	blocked, err = svc.IsBlocked(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, blocked)

	// 任一方向拉黑都禁止交互
	canInteract, err := svc.CanInteract(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, canInteract)
}

func TestBlockUser_TargetNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewRelationshipService(db)
	alice := createTestUser(t, db, "Alice")

	err := svc.BlockUser(alice.ID, uuid.New())
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestBlockUser_ActivityEntries(t *testing.T) {
	db := newTestDB(t)
	svc := NewRelationshipService(db)
	alice := createTestUser(t, db, "Alice")
	bob := createTestUser(t, db, "Bob")

	require.NoError(t, svc.BlockUser(alice.ID, bob.ID))

	assert.Contains(t, activitiesFor(t, db, alice.ID), "Blocked Bob")
	assert.Contains(t, activitiesFor(t, db, bob.ID), "You were blocked by Alice")
}

func TestUnblockUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewRelationshipService(db)
	alice := createTestUser(t, db, "Alice")
	bob := createTestUser(t, db, "Bob")

	require.NoError(t, svc.BlockUser(alice.ID, bob.ID))
	require.NoError(t, svc.UnblockUser(alice.ID, bob.ID))

	blocked, err := svc.IsBlocked(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, blocked)

	// 没有拉黑行时取消拉黑同样成功
	require.NoError(t, svc.UnblockUser(alice.ID, bob.ID))

	assert.Contains(t, activitiesFor(t, db, alice.ID), "Unblocked Bob")
	assert.Contains(t, activitiesFor(t, db, bob.ID), "Unblocked by Alice")
}

func TestGetBlockedUsers(t *testing.T) {
	db := newTestDB(t)
	svc := NewRelationshipService(db)
	alice := createTestUser(t, db, "Alice")
	bob := createTestUser(t, db, "Bob")
	carol := createTestUser(t, db, "Carol")

	require.NoError(t, svc.BlockUser(alice.ID, bob.ID))
	require.NoError(t, svc.BlockUser(alice.ID, carol.ID))
	require.NoError(t, svc.BlockUser(bob.ID, alice.ID))

	rows, err := svc.GetBlockedUsers(alice.ID)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	for _, row := range rows {
		assert.Equal(t, alice.ID, row.BlockerID)
	}
}

// TestBlockUnblockRestoresSending 拉黑阻断发送，取消拉黑恢复
func TestBlockUnblockRestoresSending(t *testing.T) {
	db := newTestDB(t)
	relSvc := NewRelationshipService(db)
	friendSvc := NewFriendService(db)
	alice := createTestUser(t, db, "Alice")
	bob := createTestUser(t, db, "Bob")

	require.NoError(t, relSvc.BlockUser(alice.ID, bob.ID))

	_, err := friendSvc.SendRequest(bob.ID, alice.ID)
	assert.ErrorIs(t, err, model.ErrForbidden)

	require.NoError(t, relSvc.UnblockUser(alice.ID, bob.ID))

	_, err = friendSvc.SendRequest(bob.ID, alice.ID)
	assert.NoError(t, err)
}
