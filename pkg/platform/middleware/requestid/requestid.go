// Package requestid assigns each request a correlation id, reusing the
// caller's X-Request-ID when present so the dialer can stitch logs together.
package requestid

import (
	"net/http"

	"github.com/google/uuid"

	"contactgate/pkg/requestcontext"
)

const headerName = "X-Request-ID"

// Middleware ensures every request carries a request id in context and
// echoes it on the response.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(headerName)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		ctx := requestcontext.WithRequestID(r.Context(), reqID)
		w.Header().Set(headerName, reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
