package middleware

import (
	"context"
	"fmt"
	"math"
	"net"
	"net/http"
	"strconv"

	"github.com/2beens/fitpro/pkg"

	"github.com/go-redis/redis_rate/v9"
	log "github.com/sirupsen/logrus"
)

type RequestRateLimiter interface {
	Allow(ctx context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error)
}

// RateLimit allows every client address at most allowedPerMin requests per
// minute on the routes it wraps. Buckets are named "<bucket>:<host>".
func RateLimit(limiter RequestRateLimiter, bucket string, allowedPerMin int) func(next http.Handler) http.Handler {
	limit := redis_rate.PerMinute(allowedPerMin)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := bucket + ":" + clientHost(r)
			res, err := limiter.Allow(r.Context(), key, limit)
			if err != nil {
				log.WithField("key", key).Errorf("rate limiter: %s", err)
				pkg.WriteEnvelopeError(w, http.StatusInternalServerError, "Rate limit internal error")
				return
			}

			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
			if res.Allowed > 0 {
				next.ServeHTTP(w, r)
				return
			}

			retryAfter := math.Ceil(res.RetryAfter.Seconds())
			w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter)))
			pkg.WriteEnvelopeError(w, http.StatusTooManyRequests, fmt.Sprintf("Retry after %.0f seconds", retryAfter))
		})
	}
}

func clientHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
