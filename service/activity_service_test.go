package service

import (
	"fmt"
	"testing"

	"github.com/Maheshdudala/social-network/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivityRecordAndList(t *testing.T) {
	db := newTestDB(t)
	svc := NewActivityService(db)
	alice := createTestUser(t, db, "Alice")

	for i := 1; i <= 3; i++ {
		require.NoError(t, svc.Record(alice.ID, fmt.Sprintf("Event %d", i)))
	}

	activities, err := svc.List(alice.ID, 50, 0)
	require.NoError(t, err)
	assert.Len(t, activities, 3)

	// 分页
	page, err := svc.List(alice.ID, 2, 0)
	require.NoError(t, err)
	assert.Len(t, page, 2)
}

func TestActivityRecord_EmptyText(t *testing.T) {
	db := newTestDB(t)
	svc := NewActivityService(db)
	alice := createTestUser(t, db, "Alice")

	err := svc.Record(alice.ID, "")
	assert.ErrorIs(t, err, model.ErrConflict)
}

func TestActivityList_OwnEntriesOnly(t *testing.T) {
	db := newTestDB(t)
	svc := NewActivityService(db)
	alice := createTestUser(t, db, "Alice")
	bob := createTestUser(t, db, "Bob")

	require.NoError(t, svc.Record(alice.ID, "Alice did something"))
	require.NoError(t, svc.Record(bob.ID, "Bob did something"))

	activities, err := svc.List(alice.ID, 50, 0)
	require.NoError(t, err)
	require.Len(t, activities, 1)
	assert.Equal(t, "Alice did something", activities[0].Activity)
}
