package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/leon37/TaskNest/internal/api/response"
	"github.com/leon37/TaskNest/internal/service"
)

// UserIDKey 认证通过后写入 gin Context 的键
const UserIDKey = "userID"

// JWTAuth 鉴权中间件，校验 Bearer Token 并把 userID 注入 Context
// 注意两种失败的状态码不一样：没带 Token 是 401，Token 无效是 400
// 这是沿用线上老客户端的约定，改动会破坏兼容，不要"顺手修掉"
func JWTAuth(tokens *service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 格式通常是 "Bearer <token>"，前缀缺失时按原样整串处理
		authHeader := c.GetHeader("Authorization")
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "access denied, no token provided.")
			c.Abort()
			return
		}

		// 校验 Token
		userID, err := tokens.Verify(tokenString)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "invalid token.")
			c.Abort()
			return
		}

		// 注入 Context，后续 Handler 用 c.GetUint(UserIDKey) 取
		c.Set(UserIDKey, userID)
		c.Next()
	}
}
