package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// AdminSession gates the admin endpoints on the panel's session cookie. The
// cookie value is compared against the configured secret; there is no token
// format. An empty secret disables admin access entirely rather than opening
// it up.
func AdminSession(cookieName, secret string, reject http.HandlerFunc) func(http.Handler) http.Handler {
	secret = strings.TrimSpace(secret)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" || !hasValidSession(r, cookieName, secret) {
				reject(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func hasValidSession(r *http.Request, cookieName, secret string) bool {
	c, err := r.Cookie(cookieName)
	if err != nil || c.Value == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(c.Value), []byte(secret)) == 1
}
