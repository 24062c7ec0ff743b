package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	apierrors "github.com/pribylovaa/go-social-network/profile-service/internal/transport/http/errors"
)

// TokenVerifier — контракт проверки access-токена.
// Реализуется internal/auth.Verifier.
type TokenVerifier interface {
	VerifyAccessToken(token string) (uuid.UUID, error)
}

// ctxKeyUserID — приватный ключ контекста для идентификатора
// аутентифицированного пользователя.
type ctxKeyUserID struct{}

// UserIDFrom возвращает идентификатор пользователя, положенный Auth,
// и признак его наличия. Отсутствие id означает анонимный запрос.
func UserIDFrom(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(ctxKeyUserID{}).(uuid.UUID)
	return id, ok
}

// Auth извлекает Bearer-токен из Authorization, верифицирует его и кладёт
// идентификатор пользователя в контекст.
//
// Запрос без заголовка Authorization проходит дальше анонимно: решение,
// обязательна ли аутентификация, принимает хендлер. Предъявленный, но
// невалидный/просроченный токен отклоняется сразу (401) — "тихая"
// деградация до анонима скрывала бы от клиента просроченную сессию.
func Auth(v TokenVerifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			const prefix = "Bearer "
			if !strings.HasPrefix(header, prefix) {
				next.ServeHTTP(w, r)
				return
			}

			token := strings.TrimSpace(header[len(prefix):])
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			userID, err := v.VerifyAccessToken(token)
			if err != nil {
				apierrors.WriteError(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyUserID{}, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
