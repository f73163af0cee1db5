package main

import (
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/leon37/TaskNest/internal/api"
	"github.com/leon37/TaskNest/internal/api/controller"
	"github.com/leon37/TaskNest/internal/api/middleware"
	"github.com/leon37/TaskNest/internal/config"
	"github.com/leon37/TaskNest/internal/infrastructure/database"
	"github.com/leon37/TaskNest/internal/repository"
	"github.com/leon37/TaskNest/internal/service"
)

// tokenTTL Token 有效期固定 1 小时，不做刷新和吊销
const tokenTTL = time.Hour

// @title           TaskNest API
// @version         1.0
// @description     基于 Go + Gin + MySQL 的多用户任务管理后端

// @host            localhost:5000
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description 请在输入框中输入 "Bearer <token>" (注意 Bearer 和 token 之间有空格)

func main() {
	// 1. 初始化 Logger
	// JSONHandler 方便日志采集侧解析，AddSource 会带上文件名和行号
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		AddSource: true,
		Level:     slog.LevelDebug, // 开发阶段设为 Debug，生产环境改为 Info
	}))
	slog.SetDefault(logger)

	slog.Info("TaskNest 系统启动中...")

	// .env 文件存在就先加载，给 viper 的环境变量覆盖用
	_ = godotenv.Load()

	conf, err := config.LoadConfig()
	if err != nil {
		// 配置不完整（尤其是 jwt.secret 缺失）必须直接退出
		log.Fatalf("无法加载配置: %v", err)
	}
	log.Println("配置加载成功")

	// 2. Infra Initialization (这里会自动建表)
	db := database.NewMySQLConnection(conf.Database.DSN)

	if conf.Server.Port != ":5000" { // 简单的判断，生产环境建议用配置字段
		gin.SetMode(gin.ReleaseMode)
	}

	// 3. Layer Wiring (依赖注入)
	tokens := service.NewTokenService(conf.JWT.Secret, tokenTTL)

	userRepo := repository.NewUserRepository(db)
	authSvc := service.NewAuthService(userRepo, tokens)
	authController := controller.NewAuthController(authSvc)

	taskRepo := repository.NewTaskRepository(db)
	taskSvc := service.NewTaskService(taskRepo)
	taskController := controller.NewTaskController(taskSvc)

	// 4. Server Start
	r := gin.Default()
	r.Use(middleware.Cors(), middleware.RequestID())
	api.RegisterRoutes(r, authController, taskController, tokens)

	slog.Info("TaskNest Web Server 启动中", "port", conf.Server.Port)
	if err := r.Run(conf.Server.Port); err != nil {
		slog.Error("服务器启动失败", "error", err)
	}
}
