package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/Omkar76/nscc-backend/internal/identity"
	"github.com/Omkar76/nscc-backend/pkg/requestcontext"
)

// JWTValidator verifies a bearer token and returns the caller it asserts.
type JWTValidator interface {
	ValidateToken(tokenString string) (identity.Caller, error)
}

// RequireAuth rejects requests without a valid bearer token and stashes the
// asserted caller in the request context for handlers and services.
func RequireAuth(validator JWTValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := requestcontext.RequestID(ctx)

			authHeader := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", requestID,
				)
				writeUnauthorized(w, "Missing or invalid Authorization header")
				return
			}

			caller, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", requestID,
				)
				writeUnauthorized(w, "Invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(requestcontext.WithCaller(ctx, caller)))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"isError":true,"errorCode":"UNAUTHORIZED","errorMessage":"` + message + `"}`))
}
