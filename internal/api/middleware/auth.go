package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/avkorn/ABS-AppointmentService/internal/api/handlers"
	"github.com/avkorn/ABS-AppointmentService/internal/integrations/identity"
)

type sessionContextKey struct{}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// SessionResolver разрешает токен в активную сессию
type SessionResolver interface {
	GetSession(ctx context.Context, token string) (*identity.Session, error)
}

// Auth проверяет bearer токен через IdentityService и кладет сессию в контекст
//
// Сессия дальше передается в обработчики явно через GetSession(ctx) -
// это единственное место, где аутентификация трогает контекст
func Auth(resolver SessionResolver, log Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				handlers.RespondUnauthorized(w, "отсутствует токен авторизации")
				return
			}

			session, err := resolver.GetSession(r.Context(), token)
			if err != nil {
				if errors.Is(err, identity.ErrSessionNotFound) {
					handlers.RespondUnauthorized(w, "сессия не найдена или истекла")
					return
				}
				log.Error("Auth: failed to resolve session: %v", err)
				handlers.RespondInternalError(w)
				return
			}

			ctx := context.WithValue(r.Context(), sessionContextKey{}, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSession извлекает сессию из контекста запроса
// Возвращает nil вне защищенных маршрутов
func GetSession(ctx context.Context) *identity.Session {
	session, _ := ctx.Value(sessionContextKey{}).(*identity.Session)
	return session
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
