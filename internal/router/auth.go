package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"teledetect-platform/internal/config"
	"teledetect-platform/internal/handler"
	"teledetect-platform/internal/middleware"
)

// NewAuth wires the auth service surface. The session endpoints parse their
// own bearer tokens (verification is the endpoint's whole job); only the
// administrative user endpoints go through the auth middleware.
func NewAuth(
	cfg *config.AuthConfig,
	authMiddleware *middleware.AuthMiddleware,
	authHandler *handler.AuthHandler,
	metrics *middleware.Metrics,
	probes ...handler.DependencyProbe,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(metrics.Handler)

	r.Get("/", handler.ServiceBanner("auth-service"))
	r.Get("/health", handler.ServiceHealth("auth-service", probes...))

	r.Group(func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Post("/register", authHandler.Register)
		api.Post("/login", authHandler.Login)
		api.Post("/logout", authHandler.Logout)
		api.Get("/verify", authHandler.Verify)
		api.Get("/me", authHandler.Me)

		api.With(authMiddleware.RequireAuth, authMiddleware.RequireRoles("admin")).
			Get("/users", authHandler.ListUsers)
		api.With(authMiddleware.RequireAuth, authMiddleware.RequireRoles("admin")).
			Put("/users/{user_id}", authHandler.UpdateUser)
		api.With(authMiddleware.RequireAuth, authMiddleware.RequireRoles("admin")).
			Delete("/users/{user_id}", authHandler.DeleteUser)
	})

	return r
}
