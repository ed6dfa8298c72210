package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	gatehandler "contactgate/internal/gate/handler"
	"contactgate/pkg/platform/middleware/auth"
	"contactgate/pkg/platform/middleware/requestid"
	"contactgate/pkg/platform/middleware/requesttime"
)

// NewRouter wires the public endpoints. Compliance endpoints sit behind
// service-caller authentication; health and metrics do not.
func NewRouter(gate *gatehandler.Handler, validator auth.Validator) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(requestid.Middleware)
	r.Use(requesttime.Middleware)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(validator))
		gate.Register(r)
	})

	return r
}
