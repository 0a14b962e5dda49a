package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/openhearts/openhearts/internal/http/response"
)

// AdminMiddleware создает middleware для проверки роли администратора.
// Требует, чтобы выше по цепочке уже отработал JWTMiddleware.
func AdminMiddleware(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := r.Context().Value(Role).(string)
			if !ok || role != "admin" {
				log.Error("access denied, admin role required")
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("not authorized as admin"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
