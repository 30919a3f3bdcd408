package main

import (
	"log"
	"time"

	"github.com/Maheshdudala/social-network/config"
	"github.com/Maheshdudala/social-network/handler"
	"github.com/Maheshdudala/social-network/middleware"
	"github.com/Maheshdudala/social-network/model"
	"github.com/Maheshdudala/social-network/service"
	"github.com/Maheshdudala/social-network/utils"

	"github.com/gin-gonic/gin"
)

func init() {
	// 服务端统一使用 UTC（冷却期、活动时间戳都按 UTC 计算）
	time.Local = time.UTC
}

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化数据库
	if err := utils.InitDB(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer utils.CloseDB()

	if err := model.AutoMigrate(utils.GetDB()); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// 初始化 Redis（限流 + 好友列表缓存）
	if err := utils.InitRedis(cfg.RedisURL, cfg.RedisPassword, cfg.RedisDB); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer utils.CloseRedis()

	// 初始化认证中间件
	middleware.InitAuth(cfg.JWTSecret, time.Duration(cfg.JWTTTLHours)*time.Hour)

	// 创建服务
	db := utils.GetDB()
	authSvc := service.NewAuthService(db)
	relSvc := service.NewRelationshipService(db)
	friendSvc := service.NewFriendServiceWithRedis(
		db,
		utils.GetRedis(),
		time.Duration(cfg.FriendCooldownHours)*time.Hour,
		time.Duration(cfg.FriendsCacheTTL)*time.Second,
	)
	profileSvc := service.NewProfileService(db)
	activitySvc := service.NewActivityService(db)

	// 创建处理器
	authHandler := handler.NewAuthHandler(authSvc)
	friendHandler := handler.NewFriendHandler(friendSvc, relSvc)
	relHandler := handler.NewRelationshipHandler(relSvc)
	profileHandler := handler.NewProfileHandler(profileSvc)
	activityHandler := handler.NewActivityHandler(activitySvc)

	// 创建 Gin 路由
	r := gin.Default()

	// 注册统一错误处理中间件
	r.Use(middleware.ErrorHandlerMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		utils.SuccessResponse(c, gin.H{"status": "ok"})
	})

	// 开放接口（注册 / 登录）
	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	// HTTP API 路由组（需要认证）
	api := r.Group("/api/v1")
	api.Use(middleware.AuthMiddleware())
	{
		// 好友请求状态机
		api.POST("/friends/requests",
			middleware.RateLimit(utils.GetRedis(), "send_request", cfg.FriendRequestRate, time.Minute),
			friendHandler.SendRequest)
		api.POST("/friends/requests/:id", friendHandler.ManageRequest)
		api.GET("/friends/requests/pending", friendHandler.ListPending)
		api.GET("/friends", friendHandler.ListFriends)

		// 用户关系（拉黑列表）
		api.GET("/relationships/blocked", relHandler.GetBlockedUsers)

		// 资料
		api.GET("/users/:id/profile", profileHandler.ViewProfile)
		api.PUT("/profile", middleware.RequireWrite(), profileHandler.UpdateProfile)

		// 活动记录
		api.GET("/activities", activityHandler.ListActivities)
	}

	// 启动服务
	log.Printf("social-network service starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
