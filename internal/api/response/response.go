package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error 错误响应，统一 {"error": msg} 结构
func Error(c *gin.Context, httpStatus int, msg string) {
	c.JSON(httpStatus, gin.H{"error": msg})
}

// ErrorWithDetails 带诊断信息的错误响应
// 只有登录接口的 500 在用，历史接口格式，不要扩散
func ErrorWithDetails(c *gin.Context, httpStatus int, msg, details string) {
	c.JSON(httpStatus, gin.H{"error": msg, "details": details})
}

// Message 操作成功的确认响应
func Message(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, gin.H{"message": msg})
}
