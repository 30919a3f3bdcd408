package middleware

import (
	"strings"
	"time"

	"github.com/Maheshdudala/social-network/model"
	"github.com/Maheshdudala/social-network/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	jwtSecret []byte
	tokenTTL  time.Duration
)

// InitAuth 初始化认证中间件
func InitAuth(secret string, ttl time.Duration) {
	jwtSecret = []byte(secret)
	tokenTTL = ttl
}

// Claims JWT 声明：用户身份 + 角色
type Claims struct {
	UserID uuid.UUID  `json:"user_id"`
	Role   model.Role `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken 签发访问令牌
func GenerateToken(userID uuid.UUID, role model.Role) (string, error) {
	claims := &Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// AuthMiddleware HTTP API 认证中间件
// 解析 Bearer Token 后把用户身份放进上下文，服务层只接收显式的用户 ID 参数
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}

		// Bearer token
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.Unauthorized(c, "invalid authorization header")
			c.Abort()
			return
		}

		claims, err := ValidateToken(parts[1])
		if err != nil {
			utils.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_role", claims.Role)
		c.Next()
	}
}

// RequireWrite 写能力检查中间件（挂在 AuthMiddleware 之后）
func RequireWrite() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := GetRole(c)
		if !exists || !role.CanWrite() {
			utils.Forbidden(c, "write permission required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// ValidateToken 验证 JWT Token
func ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return jwtSecret, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrSignatureInvalid
}

// GetUserID 从上下文获取用户 ID
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	return userID.(uuid.UUID), true
}

// GetRole 从上下文获取用户角色
func GetRole(c *gin.Context) (model.Role, bool) {
	role, exists := c.Get("user_role")
	if !exists {
		return "", false
	}
	return role.(model.Role), true
}
