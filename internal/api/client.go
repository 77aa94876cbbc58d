// Package api fetches the site's JSON resources from the backend.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"

	"clubsite/internal/remote"
)

// RequestIDHeader carries a per-request UUID to the backend.
const RequestIDHeader = "X-Request-Id"

// StatusError is returned when the backend answers with a non-2xx status.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Request failed: %d", e.Code)
}

// Client issues GET requests against a base URL prefix.
type Client struct {
	base   string
	http   *http.Client
	logger zerolog.Logger
	tracer oteltrace.Tracer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the client logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithTracer overrides the tracer taken from the global provider.
func WithTracer(tracer oteltrace.Tracer) Option {
	return func(c *Client) { c.tracer = tracer }
}

// NewClient creates a client for baseURL. An empty base leaves keys untouched.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		base:   strings.TrimRight(baseURL, "/"),
		http:   http.DefaultClient,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.tracer == nil {
		c.tracer = otel.Tracer("clubsite/api")
	}
	return c
}

// URL returns the address requested for key.
func (c *Client) URL(key string) string {
	return c.base + key
}

// Get fetches key and returns the response body. Non-2xx statuses yield a
// *StatusError; transport errors are returned as the client produced them.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	url := c.URL(key)
	ctx, span := c.tracer.Start(ctx, "GET "+key,
		oteltrace.WithSpanKind(oteltrace.SpanKindClient),
		oteltrace.WithAttributes(
			attribute.String("clubsite.resource.key", key),
			attribute.String("http.url", url),
		),
	)
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, c.fail(span, key, err)
	}
	reqID := uuid.NewString()
	req.Header.Set(RequestIDHeader, reqID)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, c.fail(span, key, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.fail(span, key, &StatusError{Code: resp.StatusCode, URL: url})
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.fail(span, key, err)
	}

	c.logger.Debug().
		Str("key", key).
		Str("request_id", reqID).
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Msg("fetched")
	return body, nil
}

func (c *Client) fail(span oteltrace.Span, key string, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	c.logger.Debug().Err(err).Str("key", key).Msg("fetch failed")
	return err
}

// JSON returns a fetcher that decodes key's body into T.
func JSON[T any](c *Client) remote.Fetcher[T] {
	return remote.FetcherFunc[T](func(ctx context.Context, key string) (T, error) {
		var v T
		body, err := c.Get(ctx, key)
		if err != nil {
			return v, err
		}
		if err := json.Unmarshal(body, &v); err != nil {
			var zero T
			return zero, fmt.Errorf("decode %s: %w", key, err)
		}
		return v, nil
	})
}
