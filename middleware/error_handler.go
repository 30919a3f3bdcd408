package middleware

import (
	"log"

	"github.com/Maheshdudala/social-network/utils"

	"github.com/gin-gonic/gin"
)

// ErrorHandlerMiddleware 统一错误处理中间件
// 捕获 panic 和未处理的错误，返回统一格式的错误响应
func ErrorHandlerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("[ERROR] Panic recovered: %v", err)

				if !c.Writer.Written() {
					utils.InternalServerError(c, "internal server error")
				}
				c.Abort()
			}
		}()

		c.Next()

		// 兜底：handler 通过 c.Error 上报但没写响应的错误
		if len(c.Errors) > 0 {
			err := c.Errors.Last()
			log.Printf("[ERROR] Request error: %v", err.Err)

			if !c.Writer.Written() {
				utils.InternalServerError(c, err.Error())
			}
		}
	}
}
