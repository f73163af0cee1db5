package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken 签名错误、格式错误、过期，统一归为这一种
var ErrInvalidToken = errors.New("invalid token")

// TokenService 负责签发和校验 JWT
// 密钥在构造时注入，不从全局配置读，方便单独测试
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService 构造函数
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue 为指定用户签发 Token，有效期固定为 ttl
func (t *TokenService) Issue(userID uint) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"iat":     now.Unix(),
		"exp":     now.Add(t.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify 校验 Token 并取出其中的用户 ID
// 无副作用：Token 是无状态的，每次请求都重新校验
func (t *TokenService) Verify(tokenString string) (uint, error) {
	// 解析 Token，jwt/v5 会在 Parse 阶段顺带校验 exp
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}

	// JSON 数字解析出来是 float64，这里要做类型断言
	userID, ok := claims["user_id"].(float64)
	if !ok || userID <= 0 {
		return 0, ErrInvalidToken
	}

	return uint(userID), nil
}
