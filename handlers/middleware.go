package handlers

import (
	"net/http"

	"portfolio-backend/auth"
	"portfolio-backend/logger"
)

const tokenHeader = "auth-token"

// FetchUser verifies the auth-token header and attaches the caller's identity
// to the request context. A missing token answers 401; a token that fails
// verification answers the generic 500.
func FetchUser(tokens *auth.TokenService) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(tokenHeader)
			if token == "" {
				accessDenied(w)
				return
			}

			id, err := tokens.Verify(token)
			if err != nil {
				logger.Warningf("token rejected on %s: %v", r.URL.Path, err)
				w.Header().Set("Content-Type", "text/plain; charset=utf-8")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(msgServerError))
				return
			}

			next(w, r.WithContext(auth.WithIdentity(r.Context(), id)))
		}
	}
}
