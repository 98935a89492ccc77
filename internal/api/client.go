package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/2beens/fitpro/internal/telemetry/metrics"
	"github.com/2beens/fitpro/internal/telemetry/tracing"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
)

const RequestIDHeader = "X-Request-Id"

// TokenProvider returns the current bearer token, or "" when logged out.
// It is called once per request.
type TokenProvider func() string

// Client is the single choke point for all backend calls. It holds no
// mutable state, so concurrent calls are independent.
type Client struct {
	baseURL       *url.URL
	httpClient    *http.Client
	tokenProvider TokenProvider
	metrics       *metrics.Manager
}

type ClientOption func(*Client)

func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

func WithTokenProvider(provider TokenProvider) ClientOption {
	return func(c *Client) {
		c.tokenProvider = provider
	}
}

func WithMetrics(m *metrics.Manager) ClientOption {
	return func(c *Client) {
		c.metrics = m
	}
}

func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, newURLError(err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, newURLError(fmt.Errorf("base url must be absolute: %s", baseURL))
	}

	c := &Client{
		baseURL: u,
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

func (c *Client) token() string {
	if c.tokenProvider == nil {
		return ""
	}
	return c.tokenProvider()
}

// Do performs the round trip for r and returns the status and raw body.
// Every failure is an *Error.
func (c *Client) Do(ctx context.Context, r Request) (status int, body []byte, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "apiClient.do")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	defer func() {
		if err != nil {
			c.countError(err)
		}
	}()

	req, err := BuildHTTPRequest(ctx, c.baseURL, r)
	if err != nil {
		return StatusClientFailure, nil, err
	}

	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	span.SetAttributes(
		attribute.String("http.method", req.Method),
		attribute.String("http.path", req.URL.Path),
		attribute.String("request.id", requestID),
	)
	log.Debugf("api client: %s %s [%s]", req.Method, req.URL.Redacted(), requestID)

	if c.metrics != nil {
		c.metrics.GaugeInFlight.Inc()
		defer c.metrics.GaugeInFlight.Dec()
	}
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = fmt.Errorf("%w: %w", ctxErr, err)
		}
		return StatusClientFailure, nil, newTransportError(err)
	}
	defer resp.Body.Close()

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return StatusClientFailure, nil, newTransportError(fmt.Errorf("read response body: %w", err))
	}

	if c.metrics != nil {
		c.metrics.CounterRequests.WithLabelValues(req.Method, strconv.Itoa(resp.StatusCode)).Inc()
		c.metrics.HistogramRequestDuration.WithLabelValues(req.Method).Observe(time.Since(start).Seconds())
	}
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	log.Tracef("api client: %s %s [%s] -> %d, %d bytes", req.Method, req.URL.Path, requestID, resp.StatusCode, len(body))

	return resp.StatusCode, body, nil
}

func (c *Client) countError(err error) {
	kind := "unknown"
	var apiErr *Error
	if errors.As(err, &apiErr) {
		kind = string(apiErr.Kind)
	}
	log.Debugf("api client: request failed [%s]: %s", kind, err)
	if c.metrics != nil {
		c.metrics.CounterErrors.WithLabelValues(kind).Inc()
	}
}

// Send performs r and decodes the response into T.
func Send[T any](ctx context.Context, c *Client, r Request) (T, error) {
	status, body, err := c.Do(ctx, r)
	if err != nil {
		var zero T
		return zero, err
	}

	v, err := DecodeResponse[T](status, body)
	if err != nil {
		c.countError(err)
		return v, err
	}
	return v, nil
}

// Health is whatever the backend's health endpoint returns.
type Health map[string]any

func (c *Client) Health(ctx context.Context) (Health, error) {
	return Send[Health](ctx, c, Get("/api/health", nil))
}
