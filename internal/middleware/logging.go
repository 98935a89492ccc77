package middleware

import (
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

// LogRequest writes one trace line per request once the handler is done.
// The bearer token never reaches the log, only whether one was sent.
func LogRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !log.IsLevelEnabled(log.TraceLevel) {
				next.ServeHTTP(w, r)
				return
			}

			begin := time.Now()
			rec := newStatusRecorder(w)
			next.ServeHTTP(rec, r)

			log.WithFields(log.Fields{
				"method": r.Method,
				"path":   r.URL.Path,
				"status": rec.status,
				"took":   time.Since(begin).String(),
				"bearer": r.Header.Get("Authorization") != "",
				"req_id": r.Header.Get("X-Request-Id"),
			}).Trace("request served")
		})
	}
}
