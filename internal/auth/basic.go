package auth

import (
	"crypto/subtle"
	"fmt"
	"net/http"

	"github.com/lamar-health/care-plan-service/internal/config"
)

// BasicAuth returns middleware enforcing HTTP Basic Authentication for
// every route it wraps. When the gate is disabled in config, requests
// pass through untouched. Missing or mismatched credentials get a 401
// with a WWW-Authenticate challenge naming the configured realm.
func BasicAuth(cfg config.BasicAuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cfg.Enabled {
				next.ServeHTTP(w, r)
				return
			}

			username, password, ok := r.BasicAuth()
			if ok && credentialsMatch(username, password, cfg) {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("WWW-Authenticate", fmt.Sprintf("Basic realm=%q", cfg.Realm))
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
		})
	}
}

// credentialsMatch compares in constant time so the check does not leak
// prefix length via timing.
func credentialsMatch(username, password string, cfg config.BasicAuthConfig) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(cfg.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(cfg.Password)) == 1
	return userOK && passOK
}
