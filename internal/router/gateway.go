package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"teledetect-platform/internal/config"
	"teledetect-platform/internal/handler"
	"teledetect-platform/internal/middleware"
	"teledetect-platform/internal/proxy"
)

var proxiedMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodDelete,
	http.MethodPatch,
}

// NewGateway wires the gateway surface: its own banner and aggregate health
// endpoints, and the catch-all proxy under /api/v1. No request timeout
// middleware here; the dispatcher's outbound client timeout governs, and
// http.TimeoutHandler would buffer streamed backend responses.
func NewGateway(
	cfg *config.GatewayConfig,
	gatewayHandler *handler.GatewayHandler,
	dispatcher *proxy.Dispatcher,
	metrics *middleware.Metrics,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(metrics.Handler)

	r.Get("/", gatewayHandler.Root)
	r.Get("/health", gatewayHandler.Health)

	for _, method := range proxiedMethods {
		r.Method(method, "/api/v1/*", dispatcher)
	}

	return r
}
