package api

import (
	"github.com/gin-gonic/gin"
	"github.com/leon37/TaskNest/internal/api/controller"
	"github.com/leon37/TaskNest/internal/api/middleware"
	"github.com/leon37/TaskNest/internal/service"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/leon37/TaskNest/docs"
)

// RegisterRoutes 注册所有路由
// 路由挂在根路径上（没有 /api/v1 前缀），和老客户端保持一致
func RegisterRoutes(r *gin.Engine, authCtrl *controller.AuthController, taskCtrl *controller.TaskController, tokens *service.TokenService) {
	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 注册/登录不走鉴权，它们负责发 Token
	r.POST("/register", authCtrl.Register)
	r.POST("/login", authCtrl.Login)

	// 任务接口全部要求 Bearer Token
	tasks := r.Group("/tasks")
	tasks.Use(middleware.JWTAuth(tokens))
	{
		tasks.POST("", taskCtrl.Create)
		tasks.GET("", taskCtrl.List)
		tasks.PUT("/:id", taskCtrl.Complete)
		tasks.DELETE("/:id", taskCtrl.Delete)
	}
}
