package middleware

import (
	"log/slog"
	"net/http"

	"github.com/JonMunkholm/coursereg/internal/session"
)

// RequireSession redirects requests without a logged-in identity to
// loginPath. It must run after session.Manager.Middleware.
func RequireSession(loginPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := session.FromContext(r.Context()); !ok {
				slog.Warn("auth: no session",
					"path", r.URL.Path,
					"method", r.Method,
					"remote_addr", r.RemoteAddr,
				)
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
