package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/lalit-insnapsys/address-details-api/metrics"
)

// MetricsMiddleware records request counts and durations. Routes are labeled
// by their mux path template to keep label cardinality bounded.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrw := &responseWriter{
			ResponseWriter: w,
			status:         http.StatusOK,
		}
		next.ServeHTTP(wrw, r)

		route := r.URL.Path
		if current := mux.CurrentRoute(r); current != nil {
			if template, err := current.GetPathTemplate(); err == nil {
				route = template
			}
		}
		metrics.RequestsTotal.WithLabelValues(route, strconv.Itoa(wrw.status)).Inc()
		metrics.RequestDurationMs.Observe(float64(time.Since(start).Milliseconds()))
	})
}
