package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RoleAdmin роль, которой разрешено переобучение.
const RoleAdmin = "admin"

var ErrTokenInvalid = errors.New("token: невалидный токен")

// AdminClaims клеймы токена доступа к служебным операциям.
type AdminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager выпускает и проверяет HS256 токены для /retrain.
type TokenManager struct {
	secret []byte
}

// NewTokenManager создаёт менеджер токенов.
func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{secret: []byte(secret)}
}

// Issue выпускает токен для subject с ролью role.
func (m *TokenManager) Issue(subject, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := AdminClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("token: не удалось подписать: %w", err)
	}
	return token, nil
}

// Parse проверяет подпись и срок действия и возвращает клеймы.
func (m *TokenManager) Parse(raw string) (*AdminClaims, error) {
	claims := &AdminClaims{}
	parsed, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if !parsed.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
