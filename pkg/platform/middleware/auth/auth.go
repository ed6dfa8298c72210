package auth

import (
	"net/http"
	"strings"

	dErrors "contactgate/pkg/domain-errors"
	"contactgate/pkg/platform/httputil"
	"contactgate/pkg/requestcontext"
)

// Validator checks a bearer token and returns the caller identity.
type Validator interface {
	ValidateToken(tokenString string) (actorID string, err error)
}

// RequireAuth rejects requests without a valid bearer token and stores the
// actor identity in context for handlers and audit records.
func RequireAuth(validator Validator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "bearer token required"))
				return
			}
			actorID, err := validator.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				httputil.WriteError(w, err)
				return
			}
			ctx := requestcontext.WithActorID(r.Context(), actorID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
