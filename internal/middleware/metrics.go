package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"
)

// Metrics keeps process-wide request counters. Values are observational
// only; atomic updates keep them consistent under concurrent requests
// without any locking on the hot path.
type Metrics struct {
	requests       atomic.Int64
	durationMicros atomic.Int64
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		count := m.requests.Add(1)
		started := time.Now()

		wrapped := &timingWriter{ResponseWriter: w, started: started, count: count}
		next.ServeHTTP(wrapped, r)

		m.durationMicros.Add(time.Since(started).Microseconds())
	})
}

// Snapshot returns the request count and cumulative handling duration.
func (m *Metrics) Snapshot() (requests int64, total time.Duration) {
	return m.requests.Load(), time.Duration(m.durationMicros.Load()) * time.Microsecond
}

// timingWriter stamps the metrics headers when the handler commits the
// response, the last moment headers can still be set.
type timingWriter struct {
	http.ResponseWriter
	started     time.Time
	count       int64
	wroteHeader bool
}

func (tw *timingWriter) WriteHeader(statusCode int) {
	if tw.wroteHeader {
		return
	}
	tw.wroteHeader = true
	tw.Header().Set("X-Request-Count", strconv.FormatInt(tw.count, 10))
	tw.Header().Set("X-Process-Time", fmt.Sprintf("%.4f", time.Since(tw.started).Seconds()))
	tw.ResponseWriter.WriteHeader(statusCode)
}

func (tw *timingWriter) Write(b []byte) (int, error) {
	if !tw.wroteHeader {
		tw.WriteHeader(http.StatusOK)
	}
	return tw.ResponseWriter.Write(b)
}
