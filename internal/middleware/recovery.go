package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/2beens/fitpro/pkg"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const msgInternalError = "Internal server error"

// PanicRecovery answers a panicking handler with a 500 envelope and marks
// the request span as failed. panics may be nil.
func PanicRecovery(panics prometheus.Counter) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}
				if panics != nil {
					panics.Inc()
				}

				err := fmt.Errorf("panic serving %s %s: %v", r.Method, r.URL.Path, recovered)
				span := trace.SpanFromContext(r.Context())
				span.RecordError(err)
				span.SetStatus(codes.Error, "panic")
				log.WithField("stack", string(debug.Stack())).Error(err)

				pkg.WriteEnvelopeError(w, http.StatusInternalServerError, msgInternalError)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
