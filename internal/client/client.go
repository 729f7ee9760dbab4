// Package client is the authenticated HTTP layer of the trip planner: it
// injects the bearer credential, classifies failures into APIError, and
// drives the session-expiry handling on 401 responses.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/triply/triply-go/internal/session"
	"github.com/triply/triply-go/internal/token"
)

// DefaultTimeout is the overall per-request deadline. Exceeding it is a
// transport failure, not a retry trigger.
const DefaultTimeout = 60 * time.Second

// Client issues authenticated requests against the trip-planner API.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  token.Store
	guard   *session.Guard
	logger  *zap.Logger
	tracer  trace.Tracer
	scratch *token.Scratch
}

// New creates a client for the API at baseURL. A zero timeout means
// DefaultTimeout.
func New(baseURL string, timeout time.Duration, tokens token.Store, guard *session.Guard, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		guard:   guard,
		logger:  logger,
		tracer:  otel.Tracer("triply/client"),
	}
}

// SetScratch enables the create-response fast path: when trip creation
// already returns a full itinerary it is normalized and cached here.
func (c *Client) SetScratch(s *token.Scratch) {
	c.scratch = s
}

// SetHTTPClient swaps the underlying transport. Used by tests.
func (c *Client) SetHTTPClient(h *http.Client) {
	c.http = h
}

// Do issues one request and returns the raw response body. body is JSON
// encoded when non-nil. Every failure comes back as a *APIError; a 401
// additionally fires the session guard.
func (c *Client) Do(ctx context.Context, method, path string, body any, query url.Values) ([]byte, error) {
	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, &APIError{Message: fmt.Sprintf("failed to encode request body: %v", err)}
		}
		payload = bytes.NewReader(data)
	}

	ctx, span := c.tracer.Start(ctx, method+" "+path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("http.url", fullURL),
		),
	)
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, method, fullURL, payload)
	if err != nil {
		return nil, &APIError{Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	if tok, ok := c.tokens.Get(); ok {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.guard.ResetIfAuthPage()
		apiErr := &APIError{Message: err.Error(), Code: classifyTransport(err)}
		c.logger.Warn("http_request_failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("code", apiErr.Code),
			zap.Error(err),
		)
		return nil, apiErr
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.guard.ResetIfAuthPage()
		return nil, &APIError{Message: err.Error(), Code: "network", Status: resp.StatusCode}
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	c.logger.Debug("http_request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status_code", resp.StatusCode),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
	)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return data, nil
	}

	// Landing on an auth page re-arms the redirect guard before any 401
	// handling runs.
	c.guard.ResetIfAuthPage()

	apiErr := &APIError{
		Message:   messageFromBody(data, resp.StatusCode),
		Status:    resp.StatusCode,
		RequestID: requestIDFromHeader(resp.Header),
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.guard.HandleUnauthorized(c.guard.Location())
	}

	return nil, apiErr
}

// messageFromBody prefers the server's message or error field; when neither
// is usable it falls back to a transport-level description.
func messageFromBody(body []byte, status int) string {
	var rec map[string]any
	if err := json.Unmarshal(body, &rec); err == nil {
		if m, ok := rec["message"].(string); ok && m != "" {
			return m
		}
		if m, ok := rec["error"].(string); ok && m != "" {
			return m
		}
	}
	return fmt.Sprintf("request failed with status code %d", status)
}

func requestIDFromHeader(h http.Header) string {
	if id := h.Get("X-Request-Id"); id != "" {
		return id
	}
	return h.Get("Traceparent")
}

func classifyTransport(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "timeout"
	}
	return "network"
}
