package handler

import (
	"context"
	"net/http"
	"time"

	"teledetect-platform/internal/proxy"
)

// GatewayHandler serves the gateway's own endpoints; everything under
// /api/v1 goes to the dispatcher instead.
type GatewayHandler struct {
	health *proxy.HealthChecker
}

func NewGatewayHandler(health *proxy.HealthChecker) *GatewayHandler {
	return &GatewayHandler{health: health}
}

func (h *GatewayHandler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Teledetection Drone Satellite Platform API Gateway",
		"version": "1.0.0",
		"status":  "healthy",
	})
}

// Health reports the gateway as up plus a per-route backend health map.
// Unhealthy backends do not fail this endpoint.
func (h *GatewayHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"services":  h.health.Check(r.Context()),
	})
}

// DependencyProbe checks one backing dependency of a service, such as its
// database or its session store.
type DependencyProbe struct {
	Name  string
	Check func(ctx context.Context) error
}

// ServiceHealth reports a service's health by probing its dependencies on
// every call. With at least one failing probe the endpoint answers 503, so
// the gateway's aggregate check sees the service as unhealthy too.
func ServiceHealth(serviceName string, probes ...DependencyProbe) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		overall := "healthy"
		status := http.StatusOK
		components := make(map[string]string, len(probes))

		for _, probe := range probes {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			err := probe.Check(ctx)
			cancel()

			if err != nil {
				components[probe.Name] = "unhealthy"
				overall = "unhealthy"
				status = http.StatusServiceUnavailable
				continue
			}
			components[probe.Name] = "healthy"
		}

		payload := map[string]any{
			"status":    overall,
			"timestamp": time.Now().UTC(),
			"service":   serviceName,
		}
		if len(components) > 0 {
			payload["components"] = components
		}

		writeJSON(w, status, payload)
	}
}

// ServiceBanner reports name, version and status for a service root.
func ServiceBanner(serviceName string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service": serviceName,
			"version": "1.0.0",
			"status":  "healthy",
		})
	}
}
