package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Maheshdudala/social-network/middleware"
	"github.com/Maheshdudala/social-network/model"
	"github.com/Maheshdudala/social-network/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	middleware.InitAuth("test-jwt-secret", time.Hour)
	os.Exit(m.Run())
}

// newTestRouter 按 main.go 的装配方式搭一个不依赖外部服务的路由
// （不挂限流中间件，好友服务不带缓存）
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "social.db") + "?_txlock=immediate&_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Discard,
	})
	require.NoError(t, err)
	require.NoError(t, model.AutoMigrate(db))

	authHandler := NewAuthHandler(service.NewAuthService(db))
	relSvc := service.NewRelationshipService(db)
	friendHandler := NewFriendHandler(service.NewFriendService(db), relSvc)
	relHandler := NewRelationshipHandler(relSvc)
	profileHandler := NewProfileHandler(service.NewProfileService(db))
	activityHandler := NewActivityHandler(service.NewActivityService(db))

	r := gin.New()
	r.Use(middleware.ErrorHandlerMiddleware())

	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	api := r.Group("/api/v1")
	api.Use(middleware.AuthMiddleware())
	{
		api.POST("/friends/requests", friendHandler.SendRequest)
		api.POST("/friends/requests/:id", friendHandler.ManageRequest)
		api.GET("/friends/requests/pending", friendHandler.ListPending)
		api.GET("/friends", friendHandler.ListFriends)
		api.GET("/relationships/blocked", relHandler.GetBlockedUsers)
		api.GET("/users/:id/profile", profileHandler.ViewProfile)
		api.PUT("/profile", middleware.RequireWrite(), profileHandler.UpdateProfile)
		api.GET("/activities", activityHandler.ListActivities)
	}

	return r
}

type apiResponse struct {
	Code    int                    `json:"code"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data"`
}

func doRequest(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) (int, apiResponse) {
	t.Helper()

	var reqBody *bytes.Buffer = bytes.NewBuffer(nil)
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(data)
	}

	req := httptest.NewRequest(method, path, reqBody)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp apiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w.Code, resp
}

func registerUser(t *testing.T, r *gin.Engine, name, email, role string) string {
	t.Helper()

	body := map[string]interface{}{
		"name":     name,
		"email":    email,
		"password": "correct-horse",
	}
	if role != "" {
		body["role"] = role
	}
	status, resp := doRequest(t, r, http.MethodPost, "/api/v1/auth/register", "", body)
	require.Equal(t, http.StatusCreated, status)
	user := resp.Data["user"].(map[string]interface{})
	return user["id"].(string)
}

func loginUser(t *testing.T, r *gin.Engine, email string) string {
	t.Helper()

	status, resp := doRequest(t, r, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email":    email,
		"password": "correct-horse",
	})
	require.Equal(t, http.StatusOK, status)
	return resp.Data["access"].(string)
}

// TestFriendshipLifecycle 完整闭环：
// 注册 → 发请求(201) → 接受(200) → 看到敏感信息 → 拉黑 → 403
func TestFriendshipLifecycle(t *testing.T) {
	r := newTestRouter(t)

	registerUser(t, r, "Alice", "alice@example.com", "")
	bobID := registerUser(t, r, "Bob", "bob@example.com", "")
	aliceToken := loginUser(t, r, "alice@example.com")
	bobToken := loginUser(t, r, "bob@example.com")

	// 非好友查看：敏感信息隐藏
	status, resp := doRequest(t, r, http.MethodGet, "/api/v1/users/"+bobID+"/profile", aliceToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Bob", resp.Data["user"])
	assert.NotContains(t, resp.Data, "sensitive_info")
	assert.NotEmpty(t, resp.Data["message"])

	// Alice 给 Bob 发好友请求
	status, resp = doRequest(t, r, http.MethodPost, "/api/v1/friends/requests", aliceToken,
		map[string]interface{}{"user_id": bobID})
	require.Equal(t, http.StatusCreated, status)
	request := resp.Data["request"].(map[string]interface{})
	requestID := request["id"].(string)
	assert.Equal(t, "pending", request["status"])

	// pending 状态下重复发送是客户端错误
	status, _ = doRequest(t, r, http.MethodPost, "/api/v1/friends/requests", aliceToken,
		map[string]interface{}{"user_id": bobID})
	assert.Equal(t, http.StatusBadRequest, status)

	// Bob 能看到待处理请求
	status, resp = doRequest(t, r, http.MethodGet, "/api/v1/friends/requests/pending", bobToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, resp.Data["requests"], 1)

	// Bob 接受
	status, _ = doRequest(t, r, http.MethodPost, "/api/v1/friends/requests/"+requestID, bobToken,
		map[string]interface{}{"action": "accept"})
	require.Equal(t, http.StatusOK, status)

	// 双方的好友列表都有对方
	status, resp = doRequest(t, r, http.MethodGet, "/api/v1/friends", aliceToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, resp.Data["friends"], 1)

	// 好友后查看：包含敏感信息
	status, resp = doRequest(t, r, http.MethodGet, "/api/v1/users/"+bobID+"/profile", aliceToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, resp.Data, "sensitive_info")

	// Bob 拉黑 Alice（动作路由：作用于用户 ID，不是请求 ID）
	aliceID := registerSideLookup(t, r, bobToken)
	status, _ = doRequest(t, r, http.MethodPost, "/api/v1/friends/requests/"+requestID, bobToken,
		map[string]interface{}{"action": "block", "user_id": aliceID})
	require.Equal(t, http.StatusOK, status)

	// 被拉黑后查看 → 403
	status, _ = doRequest(t, r, http.MethodGet, "/api/v1/users/"+bobID+"/profile", aliceToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	// Bob 的拉黑列表有一条
	status, resp = doRequest(t, r, http.MethodGet, "/api/v1/relationships/blocked", bobToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, resp.Data["blocked_users"], 1)

	// 全程的活动记录都能查到
	status, resp = doRequest(t, r, http.MethodGet, "/api/v1/activities", aliceToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, resp.Data["activities"])
}

// registerSideLookup 从 Bob 的好友列表里取 Alice 的 ID
func registerSideLookup(t *testing.T, r *gin.Engine, bobToken string) string {
	t.Helper()

	status, resp := doRequest(t, r, http.MethodGet, "/api/v1/friends", bobToken, nil)
	require.Equal(t, http.StatusOK, status)
	friends := resp.Data["friends"].([]interface{})
	require.NotEmpty(t, friends)
	return friends[0].(map[string]interface{})["id"].(string)
}

func TestSendRequest_UnknownReceiver(t *testing.T) {
	r := newTestRouter(t)

	registerUser(t, r, "Alice", "alice@example.com", "")
	token := loginUser(t, r, "alice@example.com")

	status, _ := doRequest(t, r, http.MethodPost, "/api/v1/friends/requests", token,
		map[string]interface{}{"user_id": "00000000-0000-0000-0000-00000000beef"})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestManageRequest_BlockRequiresUserID(t *testing.T) {
	r := newTestRouter(t)

	registerUser(t, r, "Alice", "alice@example.com", "")
	token := loginUser(t, r, "alice@example.com")

	status, _ := doRequest(t, r, http.MethodPost, "/api/v1/friends/requests/ignored", token,
		map[string]interface{}{"action": "block"})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestAuthRequired(t *testing.T) {
	r := newTestRouter(t)

	status, _ := doRequest(t, r, http.MethodGet, "/api/v1/friends", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = doRequest(t, r, http.MethodGet, "/api/v1/friends", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestUpdateProfile_RequiresWriteRole(t *testing.T) {
	r := newTestRouter(t)

	registerUser(t, r, "Reader", "reader@example.com", "")
	registerUser(t, r, "Writer", "writer@example.com", "write")
	readerToken := loginUser(t, r, "reader@example.com")
	writerToken := loginUser(t, r, "writer@example.com")

	// 默认 read 角色没有写能力
	status, _ := doRequest(t, r, http.MethodPut, "/api/v1/profile", readerToken,
		map[string]interface{}{"description": "new"})
	assert.Equal(t, http.StatusForbidden, status)

	status, resp := doRequest(t, r, http.MethodPut, "/api/v1/profile", writerToken,
		map[string]interface{}{"description": "new"})
	require.Equal(t, http.StatusOK, status)
	profile := resp.Data["profile"].(map[string]interface{})
	assert.Equal(t, "new", profile["description"])
}

func TestCooldownResponseCarriesExpiry(t *testing.T) {
	r := newTestRouter(t)

	registerUser(t, r, "Alice", "alice@example.com", "")
	bobID := registerUser(t, r, "Bob", "bob@example.com", "")
	aliceToken := loginUser(t, r, "alice@example.com")
	bobToken := loginUser(t, r, "bob@example.com")

	status, resp := doRequest(t, r, http.MethodPost, "/api/v1/friends/requests", aliceToken,
		map[string]interface{}{"user_id": bobID})
	require.Equal(t, http.StatusCreated, status)
	requestID := resp.Data["request"].(map[string]interface{})["id"].(string)

	status, _ = doRequest(t, r, http.MethodPost, "/api/v1/friends/requests/"+requestID, bobToken,
		map[string]interface{}{"action": "reject"})
	require.Equal(t, http.StatusOK, status)

	// 冷却期内重发：400 + 恢复时间
	status, resp = doRequest(t, r, http.MethodPost, "/api/v1/friends/requests", aliceToken,
		map[string]interface{}{"user_id": bobID})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, resp.Data, "cooldown_expires_at")
}
