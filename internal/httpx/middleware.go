package httpx

import (
	"net/http"

	"github.com/freshflower/storefront/internal/admin"
)

const sessionCookie = "admin_session"

// RequireAdmin menolak request tanpa sesi operator yang valid.
func RequireAdmin(sessions admin.SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := r.Cookie(sessionCookie)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			ok, err := sessions.Validate(r.Context(), c.Value)
			if err != nil || !ok {
				writeError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
