package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/leon37/TaskNest/internal/api/response"
	"github.com/leon37/TaskNest/internal/service"
)

// AuthController 处理用户认证
type AuthController struct {
	authService *service.AuthService
}

// NewAuthController 构造函数
func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// ==========================================
// DTOs (请求/响应参数定义)
// ==========================================

// 只校验必填，不校验格式和长度
// 老接口对格式不合法的邮箱照常走存储查询，短密码也照常注册
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

// ==========================================
// Handlers
// ==========================================

// Register 用户注册
// @Summary 用户注册
// @Description 创建新用户，密码 bcrypt 加密存储，注册成功直接返回 Token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "注册参数"
// @Success 201 {object} controller.TokenResponse
// @Failure 400 {object} map[string]string "参数错误或邮箱已注册"
// @Router /register [post]
func (ctrl *AuthController) Register(c *gin.Context) {
	var req RegisterRequest

	// 1. 参数校验
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("Register params invalid", "err", err)
		response.Error(c, http.StatusBadRequest, "invalid request body.")
		return
	}

	// 2. 业务逻辑
	token, err := ctrl.authService.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			response.Error(c, http.StatusBadRequest, "email already registered.")
			return
		}
		slog.Error("Register failed", "email", req.Email, "err", err)
		response.Error(c, http.StatusInternalServerError, "server error.")
		return
	}

	// 3. 成功响应：只返回 Token，不回传其他用户信息
	slog.Info("User registered", "email", req.Email)
	c.JSON(http.StatusCreated, TokenResponse{Token: token})
}

// Login 用户登录
// @Summary 用户登录
// @Description 校验账号密码，颁发 1 小时有效的 JWT Token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "登录参数"
// @Success 200 {object} controller.TokenResponse
// @Failure 400 {object} map[string]string "账号不存在或密码错误"
// @Router /login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req LoginRequest

	// 1. 参数校验
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body.")
		return
	}

	// 2. 业务逻辑
	// 注意：这里"用户不存在"和"密码错误"提示是区分开的，信息泄露风险
	// 已知问题，线上前端依赖这两条文案做引导，修改前需要先和前端对齐
	token, err := ctrl.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			slog.Warn("Login failed", "email", req.Email, "err", err)
			response.Error(c, http.StatusBadRequest, "user not found.")
		case errors.Is(err, service.ErrWrongPassword):
			slog.Warn("Login failed", "email", req.Email, "err", err)
			response.Error(c, http.StatusBadRequest, "incorrect password.")
		default:
			slog.Error("Login failed", "email", req.Email, "err", err)
			// details 字段同样是历史遗留格式，见 response 包注释
			response.ErrorWithDetails(c, http.StatusInternalServerError, "server error", err.Error())
		}
		return
	}

	// 3. 成功响应
	slog.Info("User logged in", "email", req.Email)
	c.JSON(http.StatusOK, TokenResponse{Token: token})
}
