package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDKey 响应头和 gin Context 共用的键名
const RequestIDKey = "X-Request-ID"

// RequestID 为每个请求生成一个 uuid，回写到响应头
// 客户端带了 X-Request-ID 就沿用客户端的，方便前后端对日志
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(RequestIDKey)
		if rid == "" {
			rid = uuid.New().String()
		}

		c.Set(RequestIDKey, rid)
		c.Header(RequestIDKey, rid)
		c.Next()
	}
}
