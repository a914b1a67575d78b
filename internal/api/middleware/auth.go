package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/piste-boss/piste-reserve/internal/api/handlers"
)

// AdminTokenHeader заголовок с токеном административного доступа
const AdminTokenHeader = "X-Admin-Token"

// AdminAuth проверяет токен административного доступа.
// Админские операции (выборки бронирований, меню, выходные) закрыты
// общим токеном, клиентские маршруты остаются публичными.
func AdminAuth(token string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(AdminTokenHeader)
			if got == "" {
				handlers.RespondUnauthorized(w, "требуется заголовок "+AdminTokenHeader)
				return
			}

			if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				handlers.RespondForbidden(w, "неверный токен доступа")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
