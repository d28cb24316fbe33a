package app

import (
	"fmt"
	"net/http"

	"teledetect-platform/internal/config"
	"teledetect-platform/internal/handler"
	"teledetect-platform/internal/middleware"
	"teledetect-platform/internal/proxy"
	"teledetect-platform/internal/router"
)

func NewGateway() (*App, error) {
	cfg, err := config.LoadGateway()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	routes := make([]proxy.Route, 0, len(cfg.Routes))
	for _, r := range cfg.Routes {
		routes = append(routes, proxy.Route{Prefix: r.Prefix, Backend: r.Backend})
	}
	table := proxy.NewTable(routes)

	dispatcher := proxy.NewDispatcher(table, cfg.ProxyTimeout)
	healthChecker := proxy.NewHealthChecker(table, cfg.HealthCheckTimeout)
	gatewayHandler := handler.NewGatewayHandler(healthChecker)
	metrics := middleware.NewMetrics()

	appRouter := router.NewGateway(cfg, gatewayHandler, dispatcher, metrics)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      appRouter,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  cfg.ServerIdleTimeout,
	}

	return &App{server: server}, nil
}
