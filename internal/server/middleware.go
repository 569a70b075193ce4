package server

import (
	"crypto/subtle"
	"net/http"
)

// BasicAuth guards the API with a single credential pair. When both user and
// password are empty the middleware is a pass-through, so local development
// works without configuration.
func BasicAuth(user, pass string) func(http.Handler) http.Handler {
	enabled := user != "" || pass != ""
	return func(next http.Handler) http.Handler {
		if !enabled {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, p, ok := r.BasicAuth()
			if !ok ||
				subtle.ConstantTimeCompare([]byte(u), []byte(user)) != 1 ||
				subtle.ConstantTimeCompare([]byte(p), []byte(pass)) != 1 {
				w.Header().Set("WWW-Authenticate", `Basic realm="Secure Area"`)
				http.Error(w, "Authentication required", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
