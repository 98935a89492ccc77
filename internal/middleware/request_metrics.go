package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/fitpro/internal/telemetry/metrics"
)

// RequestMetrics feeds the in-flight gauge, the duration histogram and the
// per method/status request counter of m.
func RequestMetrics(m *metrics.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m.GaugeInFlight.Inc()
			begin := time.Now()
			rec := newStatusRecorder(w)

			defer func() {
				m.GaugeInFlight.Dec()
				m.HistogramRequestDuration.WithLabelValues(r.Method).Observe(time.Since(begin).Seconds())
				m.CounterRequests.WithLabelValues(r.Method, strconv.Itoa(rec.status)).Inc()
			}()

			next.ServeHTTP(rec, r)
		})
	}
}
