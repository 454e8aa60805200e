package middleware

import (
	"net/http"
	"strings"

	"loan-applications-api/internal/apierror"
	"loan-applications-api/internal/logger"
)

// BearerAuth requires an Authorization header of the form "Bearer <token>".
// Token contents are not verified; presence of the scheme is the contract.
func BearerAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				logger.Info("bearer auth middleware unauthorized request", logger.Fields{
					"method": r.Method,
					"path":   r.URL.Path,
				})
				apierror.Write(w, apierror.Unauthorized())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
