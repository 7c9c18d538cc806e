package middleware

import (
	"context"
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
)

// userIDHeader заголовок с идентификатором пользователя от auth-провайдера
const userIDHeader = "X-User-ID"

const msgMissingUserID = "отсутствует заголовок X-User-ID"

type userIDKey struct{}

// Auth требует наличия заголовка X-User-ID и кладет его значение в контекст.
// Идентификатор — непрозрачная строка от внешнего auth-провайдера.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get(userIDHeader)
		if userID == "" {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey{}, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserID возвращает идентификатор пользователя из контекста
func UserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey{}).(string)
	return userID, ok
}

// OptionalUserID возвращает X-User-ID из запроса, если он передан.
// Используется публичными эндпоинтами, поведение которых уточняется
// для аутентифицированных пользователей.
func OptionalUserID(r *http.Request) string {
	return r.Header.Get(userIDHeader)
}
