// SPDX-License-Identifier: MIT

package middleware

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "m3uplus_http_request_duration_seconds",
		Help:    "HTTP request latencies in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	httpRequestsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "m3uplus_http_requests_in_flight",
		Help: "Current number of HTTP requests being served",
	})

	// Bodies are playlists: 1 KiB up to 256 MiB.
	httpRequestSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "m3uplus_http_request_size_bytes",
		Help:    "Request body bytes read by handlers",
		Buckets: prometheus.ExponentialBuckets(1<<10, 4, 10),
	}, []string{"method", "path"})

	httpResponseSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "m3uplus_http_response_size_bytes",
		Help:    "HTTP response sizes in bytes",
		Buckets: prometheus.ExponentialBuckets(1<<10, 4, 10),
	}, []string{"method", "path", "status"})
)

// Metrics records latency, in-flight requests and body sizes. Paths are
// labelled with the chi route pattern; unmatched requests share the label
// "unmatched". The request size is what the handler actually read, so
// chunked uploads and bodies cut off by the size limit are counted too.
func Metrics() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			httpRequestsInFlight.Inc()
			defer httpRequestsInFlight.Dec()

			body := &countingBody{ReadCloser: r.Body}
			if r.Body != nil {
				r.Body = body
			}
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			path := routeLabel(r)
			status := strconv.Itoa(statusOf(ww))
			httpRequestDuration.WithLabelValues(r.Method, path, status).Observe(time.Since(start).Seconds())
			if body.n > 0 {
				httpRequestSize.WithLabelValues(r.Method, path).Observe(float64(body.n))
			}
			if n := ww.BytesWritten(); n > 0 {
				httpResponseSize.WithLabelValues(r.Method, path, status).Observe(float64(n))
			}
		})
	}
}

// routeLabel returns the matched chi route pattern. Raw paths would let
// clients create unbounded label values.
func routeLabel(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}

type countingBody struct {
	io.ReadCloser
	n int64
}

func (b *countingBody) Read(p []byte) (int, error) {
	n, err := b.ReadCloser.Read(p)
	b.n += int64(n)
	return n, err
}

func statusOf(ww chimw.WrapResponseWriter) int {
	if s := ww.Status(); s != 0 {
		return s
	}
	return http.StatusOK
}
