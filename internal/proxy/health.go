package proxy

import (
	"context"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
)

// HealthChecker probes every routed backend's /health endpoint. A failing
// probe marks that route unhealthy but never fails the aggregate call.
type HealthChecker struct {
	table   *Table
	client  *http.Client
	timeout time.Duration
}

func NewHealthChecker(table *Table, timeout time.Duration) *HealthChecker {
	return &HealthChecker{
		table:   table,
		client:  &http.Client{Timeout: timeout},
		timeout: timeout,
	}
}

// Check probes all routes concurrently and returns a prefix-to-status map.
func (h *HealthChecker) Check(ctx context.Context) map[string]string {
	results := make(map[string]string, len(h.table.Routes()))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	for _, route := range h.table.Routes() {
		route := route
		g.Go(func() error {
			status := h.probe(ctx, route)
			mu.Lock()
			results[route.Prefix] = status
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (h *HealthChecker) probe(ctx context.Context, route Route) string {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, route.Backend+"/health", nil)
	if err != nil {
		return statusUnhealthy
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return statusUnhealthy
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusUnhealthy
	}
	return statusHealthy
}
