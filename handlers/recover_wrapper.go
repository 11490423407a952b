package handlers

import (
	"net/http"
	"runtime"

	"portfolio-backend/logger"
)

// RecoverWrapper wraps an http.HandlerFunc with panic recovery
func RecoverWrapper(handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				stack := make([]byte, 8*1024)
				stack = stack[:runtime.Stack(stack, false)]
				logger.Errorf("panic recovered on %s %s: %v\n%s", r.Method, r.URL.Path, rec, stack)
				http.Error(w, msgServerError, http.StatusInternalServerError)
			}
		}()

		handler(w, r)
	}
}
