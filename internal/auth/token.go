// auth содержит верификатор access-токенов, выпускаемых auth-сервисом.
// profile-service токены не выпускает и не отзывает — только проверяет
// подпись/срок и извлекает идентификатор пользователя.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pribylovaa/go-social-network/profile-service/internal/config"
)

var (
	// ErrInvalidToken — токен не прошёл проверку подписи/формата/claims.
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenExpired — срок действия токена истёк.
	ErrTokenExpired = errors.New("token expired")
)

// accessClaims — структура claims access-токена auth-сервиса.
type accessClaims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// Verifier проверяет access-токены (HS256, общий секрет с auth-сервисом).
type Verifier struct {
	cfg config.AuthConfig
}

// NewVerifier создаёт верификатор с параметрами из конфигурации.
func NewVerifier(cfg config.AuthConfig) *Verifier {
	return &Verifier{cfg: cfg}
}

// VerifyAccessToken валидирует токен и возвращает идентификатор пользователя.
func (v *Verifier) VerifyAccessToken(tokenStr string) (uuid.UUID, error) {
	const op = "auth/VerifyAccessToken"

	token, err := jwt.ParseWithClaims(tokenStr, &accessClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if t.Method != jwt.SigningMethodHS256 {
				return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
			}

			return []byte(v.cfg.JWTSecret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(5*time.Second),
		jwt.WithIssuer(v.cfg.Issuer),
		jwt.WithAudience(v.cfg.Audience...),
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, fmt.Errorf("%s: %w", op, ErrTokenExpired)
		}

		return uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	claims, ok := token.Claims.(*accessClaims)
	if !ok || !token.Valid {
		return uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	uid, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	return uid, nil
}
