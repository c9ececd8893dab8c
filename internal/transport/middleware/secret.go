package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// AdminSecretHeader carries the admin shared secret.
const AdminSecretHeader = "X-Admin-Secret"

// RequireBearer rejects requests whose Authorization header is not
// "Bearer <secret>". An empty secret disables the check.
func RequireBearer(secret string) Middleware {
	return requireSecret(secret, func(r *http.Request) string {
		auth := r.Header.Get("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			return ""
		}
		return strings.TrimPrefix(auth, "Bearer ")
	})
}

// RequireAdminSecret rejects requests without the admin secret header.
// An empty secret disables the check.
func RequireAdminSecret(secret string) Middleware {
	return requireSecret(secret, func(r *http.Request) string {
		return r.Header.Get(AdminSecretHeader)
	})
}

func requireSecret(secret string, extract func(*http.Request) string) Middleware {
	return func(next http.Handler) http.Handler {
		if secret == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := extract(r)
			if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
