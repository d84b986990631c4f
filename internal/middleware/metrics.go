package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/telemetry"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (w *statusRecorder) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Metrics records request counts and latency under the matched route
// template so ids do not explode label cardinality. Use it as mux middleware.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := "unmatched"
		if cur := mux.CurrentRoute(r); cur != nil {
			if tpl, err := cur.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		telemetry.ObserveHTTP(route, r.Method, rec.status, time.Since(start))
	})
}
