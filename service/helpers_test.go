package service

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/Maheshdudala/social-network/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB 每个测试一个独立的 SQLite 文件库
// _txlock=immediate 让写事务从 BEGIN 开始就持有写锁，并发写入排队执行，
// 贴近生产环境 Postgres 在 read committed 下的行锁行为；
// TranslateError 开启后唯一索引冲突以 gorm.ErrDuplicatedKey 进入服务层
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "social.db") + "?_txlock=immediate&_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Discard,
	})
	require.NoError(t, err)
	require.NoError(t, model.AutoMigrate(db))
	return db
}

// createTestUser 创建带资料行的测试用户
func createTestUser(t *testing.T, db *gorm.DB, name string) *model.User {
	t.Helper()

	user := &model.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        strings.ToLower(name) + "@example.com",
		PasswordHash: "not-a-real-hash",
		Role:         model.RoleRead,
	}
	require.NoError(t, db.Create(user).Error)
	require.NoError(t, db.Create(&model.Profile{
		ID:            uuid.New(),
		UserID:        user.ID,
		Description:   name + " likes hiking",
		SensitiveInfo: name + "'s phone number",
	}).Error)
	return user
}

// activitiesFor 读取某个用户的全部活动文案（时间正序）
func activitiesFor(t *testing.T, db *gorm.DB, userID uuid.UUID) []string {
	t.Helper()

	var entries []model.UserActivity
	require.NoError(t, db.Where("user_id = ?", userID).Order("created_at ASC").Find(&entries).Error)

	texts := make([]string, 0, len(entries))
	for _, e := range entries {
		texts = append(texts, e.Activity)
	}
	return texts
}

// countRequests 统计精确方向、精确状态的请求行数
func countRequests(t *testing.T, db *gorm.DB, senderID, receiverID uuid.UUID, status model.FriendRequestStatus) int64 {
	t.Helper()

	var count int64
	require.NoError(t, db.Model(&model.FriendRequest{}).
		Where("sender_id = ? AND receiver_id = ? AND status = ?", senderID, receiverID, status).
		Count(&count).Error)
	return count
}
