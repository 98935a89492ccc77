package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/2beens/fitpro/internal/middleware"

	"github.com/go-redis/redis_rate/v9"
	"github.com/stretchr/testify/assert"
)

type countingLimiter struct {
	allowed int
	calls   int
	keys    []string
	err     error
}

func (l *countingLimiter) Allow(_ context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error) {
	if l.err != nil {
		return nil, l.err
	}
	l.calls++
	l.keys = append(l.keys, key)
	if l.calls > l.allowed {
		return &redis_rate.Result{Limit: limit, Allowed: 0, RetryAfter: 30 * time.Second}, nil
	}
	return &redis_rate.Result{Limit: limit, Allowed: 1, Remaining: l.allowed - l.calls}, nil
}

func TestRateLimit(t *testing.T) {
	limiter := &countingLimiter{allowed: 2}
	handler := middleware.RateLimit(limiter, "login", 2)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for range 3 {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/auth/login", nil))
		codes = append(codes, rr.Code)
		if rr.Code == http.StatusTooManyRequests {
			assert.JSONEq(t, `{"success":false,"message":"Retry after 30 seconds"}`, rr.Body.String())
			assert.Equal(t, "30", rr.Header().Get("Retry-After"))
		}
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	// httptest requests come from 192.0.2.1
	assert.Equal(t, []string{"login:192.0.2.1", "login:192.0.2.1", "login:192.0.2.1"}, limiter.keys)
}

func TestRateLimit_LimiterError(t *testing.T) {
	limiter := &countingLimiter{err: errors.New("redis down")}
	called := false
	handler := middleware.RateLimit(limiter, "login", 2)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/auth/login", nil))
	assert.False(t, called)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
