package middleware

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Maheshdudala/social-network/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimit 按用户的固定窗口限流（Redis INCR + EXPIRE）
// 必须挂在 AuthMiddleware 之后，限流维度是认证后的用户 ID。
// Redis 不可用时放行：限流是保护措施，不能成为单点
func RateLimit(rdb *redis.Client, name string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := GetUserID(c)
		if !exists {
			utils.Unauthorized(c, "unauthorized")
			c.Abort()
			return
		}

		now := time.Now()
		key := fmt.Sprintf("ratelimit:%s:%s:%d", name, userID, now.Unix()/int64(window.Seconds()))

		ctx, cancel := context.WithTimeout(c.Request.Context(), 500*time.Millisecond)
		defer cancel()

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			log.Printf("[WARN] rate limiter unavailable: %v", err)
			c.Next()
			return
		}
		if count == 1 {
			rdb.Expire(ctx, key, window)
		}

		if count > int64(limit) {
			utils.TooManyRequests(c, "too many requests, slow down")
			c.Abort()
			return
		}

		c.Next()
	}
}
