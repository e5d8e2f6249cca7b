// Package middlewarectx содержит HTTP middleware для проверки токенов доступа.
//
// AuthMiddleware проверяет наличие и валидность JWT в заголовке Authorization,
// резолвит по нему пользователя и кладёт его идентификатор в контекст запроса
// для дальнейшего использования в обработчиках.
//
// Отсутствующий, повреждённый и просроченный токен неразличимы для клиента:
// во всех случаях возвращается HTTP 401 Unauthorized.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/car-rental-service/internal/domain"
	"github.com/magabrotheeeer/car-rental-service/internal/http/response"
	"github.com/magabrotheeeer/car-rental-service/internal/lib/sl"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// UserID — ключ идентификатора пользователя в контексте
	UserID Key = "user_id"
)

// Service описывает интерфейс резолва пользователя по токену доступа.
type Service interface {
	ResolveToken(ctx context.Context, token string) (*domain.User, error)
}

// AuthMiddleware возвращает HTTP middleware, который проверяет JWT в заголовке
// Authorization и кладёт идентификатор пользователя в контекст запроса.
func AuthMiddleware(auth Service, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.AuthMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Error("missing or invalid authorization header")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error(domain.ErrUnauthenticated.Error()))
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			user, err := auth.ResolveToken(r.Context(), tokenStr)
			if err != nil {
				log.Error("invalid or expired token", sl.Err(err))
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error(domain.ErrUnauthenticated.Error()))
				return
			}

			ctx := context.WithValue(r.Context(), UserID, user.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
