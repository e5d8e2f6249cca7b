package graphql

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/handler"

	"github.com/magabrotheeeer/car-rental-service/internal/domain"
)

type ctxKey string

// userKey — ключ аутентифицированного пользователя в контексте запроса.
const userKey ctxKey = "graphql_user"

// UserFromContext возвращает аутентифицированного пользователя
// или nil, если запрос пришёл без валидного токена.
func UserFromContext(ctx context.Context) *domain.User {
	user, _ := ctx.Value(userKey).(*domain.User)
	return user
}

// WithAuthContext кладёт пользователя в контекст запроса по bearer-токену.
// В отличие от REST-middleware запрос без токена не отклоняется:
// открытые мутации (registerUser, loginUser) и запросы должны работать,
// а закрытые резолверы сами проверяют наличие пользователя.
func WithAuthContext(auth AuthService, log *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
			if user, err := auth.ResolveToken(r.Context(), tokenStr); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), userKey, user))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// NewHandler собирает HTTP-обработчик GraphQL с аутентификацией из заголовка.
func NewHandler(schema graphql.Schema, auth AuthService, log *slog.Logger) http.Handler {
	h := handler.New(&handler.Config{
		Schema:   &schema,
		Pretty:   true,
		GraphiQL: true,
	})
	return WithAuthContext(auth, log, h)
}
