package proxy

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	"teledetect-platform/internal/model"
	"teledetect-platform/pkg/apierror"
)

// Dispatcher forwards inbound requests to the backend selected by the route
// table and translates transport failures into gateway responses. Failed
// calls are never retried: a duplicate POST against a backend is worse than
// a clean error to the client.
type Dispatcher struct {
	table  *Table
	client *http.Client
}

func NewDispatcher(table *Table, timeout time.Duration) *Dispatcher {
	return &Dispatcher{
		table:  table,
		client: &http.Client{Timeout: timeout},
	}
}

func (d *Dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	route, remainder, ok := d.table.Resolve(r.URL.Path)
	if !ok {
		writeAPIError(w, apierror.NotFound("Service not found", ""))
		return
	}

	target := route.Backend + remainder
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}

	req, err := http.NewRequestWithContext(r.Context(), r.Method, target, r.Body)
	if err != nil {
		slog.Error("failed to build proxy request", "target", target, "method", r.Method, "error", err)
		writeAPIError(w, apierror.Internal("Internal server error"))
		return
	}

	// Forward everything except the hop-specific Host header; the client
	// sets the correct Host from the target URL.
	for key, values := range r.Header {
		if http.CanonicalHeaderKey(key) == "Host" {
			continue
		}
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	resp, err := d.client.Do(req)
	if err != nil {
		apiErr := translateTransportError(err)
		slog.Error("proxy request failed", "target", target, "method", r.Method, "status", apiErr.HTTPStatus, "error", err)
		writeAPIError(w, apiErr)
		return
	}
	defer resp.Body.Close()

	for key, values := range resp.Header {
		for _, v := range values {
			w.Header().Add(key, v)
		}
	}
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		slog.Warn("relay of backend response interrupted", "target", target, "error", err)
	}
}

// translateTransportError maps downstream failures onto the error taxonomy:
// timeouts to 504, connection failures to 503, anything else to 500.
func translateTransportError(err error) *apierror.APIError {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return apierror.GatewayTimeout("Service timeout")
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return apierror.Unavailable("Service unavailable")
	}

	return apierror.Internal("Internal server error")
}

func writeAPIError(w http.ResponseWriter, apiErr *apierror.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.HTTPStatus)
	_ = json.NewEncoder(w).Encode(model.BaseResponse{
		Success:   false,
		Message:   apiErr.Message,
		Timestamp: time.Now().UTC(),
	})
}
