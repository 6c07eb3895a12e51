package middleware

import (
	"context"
	"strings"

	"garden-go/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	contextUserID   = "user_id"
	contextUsername = "username"
	userNotFound    = "User not found"
)

// LatestLoginResolver 无Token时解析当前用户
type LatestLoginResolver interface {
	LatestLoginUserID(ctx context.Context) (uint, error)
}

// AuthMiddleware 解析当前用户
//
// 优先使用 Bearer Token；fallback 不为nil时，没有Token的请求视为最近登录的用户。
func AuthMiddleware(jwtManager *utils.JWTManager, fallback LatestLoginResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			if fallback == nil {
				utils.Unauthorized(c, userNotFound)
				c.Abort()
				return
			}

			userID, err := fallback.LatestLoginUserID(c.Request.Context())
			if err != nil {
				utils.Unauthorized(c, userNotFound)
				c.Abort()
				return
			}
			c.Set(contextUserID, userID)
			c.Next()
			return
		}

		// 解析Bearer Token
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			utils.Unauthorized(c, "Invalid authorization header")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateToken(parts[1])
		if err != nil {
			utils.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(contextUserID, claims.UserID)
		c.Set(contextUsername, claims.Username)

		c.Next()
	}
}

// GetUserID 从上下文获取用户ID
func GetUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get(contextUserID)
	if !exists {
		return 0, false
	}
	id, ok := userID.(uint)
	return id, ok
}

// GetUsername 从上下文获取用户名
func GetUsername(c *gin.Context) (string, bool) {
	username, exists := c.Get(contextUsername)
	if !exists {
		return "", false
	}
	name, ok := username.(string)
	return name, ok
}
