package service

import (
	"context"
	"errors"

	"github.com/leon37/TaskNest/internal/model"
	"github.com/leon37/TaskNest/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	// ErrEmailTaken 邮箱已注册
	ErrEmailTaken = errors.New("email already registered")
	// ErrUserNotFound 登录时邮箱不存在
	ErrUserNotFound = errors.New("user not found")
	// ErrWrongPassword 登录时密码不匹配
	ErrWrongPassword = errors.New("incorrect password")
)

type AuthService struct {
	userRepo repository.UserRepo
	tokens   *TokenService
}

func NewAuthService(userRepo repository.UserRepo, tokens *TokenService) *AuthService {
	return &AuthService{userRepo: userRepo, tokens: tokens}
}

// Register 注册逻辑，成功后直接返回 Token
func (s *AuthService) Register(ctx context.Context, name, email, password string) (string, error) {
	// 1. 检查邮箱是否已存在 (DB Unique Index 会兜底，但先查一下给出明确错误)
	_, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return "", ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	// 2. 密码加密，绝不存明文
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	// 3. 落库
	user := &model.User{
		Name:     name,
		Email:    email,
		Password: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return "", err
	}

	// 4. 签发 JWT，注册完即登录态
	return s.tokens.Issue(user.ID)
}

// Login 登录逻辑，返回 Token
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	// 1. 查用户
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	// 2. 比对密码
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", ErrWrongPassword
	}

	// 3. 生成 JWT
	return s.tokens.Issue(user.ID)
}
