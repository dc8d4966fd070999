// Package middleware holds the HTTP middleware shared across routes.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// TokenVerifier validates an inbound service token and returns the calling
// service's identity.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

type contextKeyCaller struct{}

// Caller returns the verified caller identity, or "" outside an
// authenticated route.
func Caller(ctx context.Context) string {
	caller, _ := ctx.Value(contextKeyCaller{}).(string)
	return caller
}

// RequireServiceToken rejects requests without a valid bearer service token.
// The verified issuer is stored on the request context for handlers and logs.
func RequireServiceToken(verifier TokenVerifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				logger.WarnContext(ctx, "request rejected: missing service token",
					"request_id", chimiddleware.GetReqID(ctx),
					"path", r.URL.Path,
				)
				unauthorized(w, "Missing or invalid Authorization header")
				return
			}

			caller, err := verifier.Verify(token)
			if err != nil {
				logger.WarnContext(ctx, "request rejected: invalid service token",
					"request_id", chimiddleware.GetReqID(ctx),
					"path", r.URL.Path,
					"error", err,
				)
				unauthorized(w, "Invalid or expired service token")
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, contextKeyCaller{}, caller)))
		})
	}
}

func unauthorized(w http.ResponseWriter, description string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"` + description + `"}`))
}
