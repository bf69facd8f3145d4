package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/lzjever/ledger-audit/internal/observability"
)

const (
	// unmatchedRoute labels requests that hit no route.
	unmatchedRoute = "unmatched"
	// otherMethod labels every method the service does not serve.
	otherMethod = "OTHER"
)

// Metrics records per-route request counts and latency. Labels only take
// values from the route table, so arbitrary paths and methods from clients
// collapse into unmatchedRoute and otherMethod.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		observability.ActiveRequests.Inc()
		defer observability.ActiveRequests.Dec()

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := routeLabel(r)
		method := methodLabel(r.Method)

		observability.HTTPRequestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
		observability.HTTPRequestDuration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
	})
}

func routeLabel(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return unmatchedRoute
	}
	if pattern := rctx.RoutePattern(); pattern != "" {
		return pattern
	}
	return unmatchedRoute
}

func methodLabel(method string) string {
	switch method {
	case http.MethodGet, http.MethodPost:
		return method
	default:
		return otherMethod
	}
}
