// Package gateway is the single HTTP entry point of the hikelog client.
//
// Every backend call goes through Client.Do, which owns the cross-cutting
// policy so the domain functions stay declarative:
//
//   - the stored bearer token is attached to every outgoing request;
//   - successful responses pass through unchanged;
//   - every failure is normalized into exactly one *Error of a closed set of
//     kinds (validation, application, timeout, network, unexpected);
//   - a 401 clears the session before the error reaches the caller.
//
// There is no retry, no backoff and no de-duplication: one Do call is one
// request. Client is safe for concurrent use.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/hikelog/internal/logging"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const (
	DefaultBaseURL  = "http://localhost:3000/api"
	DefaultTimeout  = 10 * time.Second
	ContentTypeJSON = "application/json"

	AuthorizationHeader = "Authorization"
	RequestIDHeader     = "X-Request-ID"

	tracerName = "github.com/dmitrijs2005/hikelog/internal/client/gateway"
)

// Config is fixed at construction.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// TokenSource supplies the bearer token. An empty token means "send the
// request unauthenticated".
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// SessionClearer is notified when the backend rejects the token.
type SessionClearer interface {
	Clear(ctx context.Context) error
}

// Request describes one backend call. Body is JSON-encoded unless it is an
// io.Reader, in which case it is sent as-is with ContentType.
type Request struct {
	Method      string
	Path        string
	Query       url.Values
	Body        any
	ContentType string
}

type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	clearer SessionClearer
	log     logging.Logger
	tracer  trace.Tracer
}

type Option func(*Client)

// WithHTTPClient replaces the transport. Its Timeout is overwritten by
// Config.Timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithSessionClearer sets the 401 hook. By default the TokenSource is used
// when it also implements SessionClearer.
func WithSessionClearer(sc SessionClearer) Option {
	return func(c *Client) { c.clearer = sc }
}

func New(cfg Config, tokens TokenSource, opts ...Option) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		tokens:  tokens,
		log:     logging.Nop(),
		tracer:  otel.Tracer(tracerName),
	}
	if sc, ok := tokens.(SessionClearer); ok {
		c.clearer = sc
	}
	for _, opt := range opts {
		opt(c)
	}

	hc := &http.Client{}
	if c.http != nil {
		*hc = *c.http
	}
	hc.Timeout = cfg.Timeout
	c.http = hc

	c.log = c.log.With("component", "gateway")
	return c
}

// BaseURL returns the normalized base URL requests are resolved against.
func (c *Client) BaseURL() string { return c.baseURL }

// Do performs r and decodes a successful JSON body into out (which may be
// nil). Any failure is returned as *Error.
func (c *Client) Do(ctx context.Context, r *Request, out any) error {
	ctx, span := c.tracer.Start(ctx, r.Method+" "+r.Path, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String("http.request.method", r.Method),
		attribute.String("url.path", r.Path),
	)

	req, err := c.newRequest(ctx, r)
	if err != nil {
		return c.reject(ctx, span, r, fromFailure(err))
	}
	c.authorize(ctx, req)

	resp, err := c.http.Do(req)
	if err != nil {
		return c.reject(ctx, span, r, fromTransport(err))
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	body, readErr := io.ReadAll(resp.Body)

	if resp.StatusCode == http.StatusUnauthorized {
		c.clearSession(ctx)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		e := fromResponse(resp.StatusCode, body)
		// a truncated body that still parses is kept; otherwise the read
		// failure decides the shape
		if readErr != nil && e.Kind == KindUnexpected {
			e = fromFailure(readErr)
			e.Status = resp.StatusCode
		}
		return c.reject(ctx, span, r, e)
	}
	if readErr != nil {
		return c.reject(ctx, span, r, fromFailure(readErr))
	}

	if out != nil && len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, out); err != nil {
			return c.reject(ctx, span, r, fromFailure(fmt.Errorf("decode response: %w", err)))
		}
	}

	c.log.Debug(ctx, "request done", "method", r.Method, "path", r.Path, "status", resp.StatusCode)
	return nil
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query}, out)
}

func (c *Client) Post(ctx context.Context, path string, body any, out any) error {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body}, out)
}

func (c *Client) Put(ctx context.Context, path string, body any, out any) error {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: body}, out)
}

func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path}, out)
}

// PostMultipart sends a pre-built multipart body; contentType must carry
// the boundary.
func (c *Client) PostMultipart(ctx context.Context, path string, body io.Reader, contentType string, out any) error {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body, ContentType: contentType}, out)
}

func (c *Client) PutMultipart(ctx context.Context, path string, body io.Reader, contentType string, out any) error {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: body, ContentType: contentType}, out)
}

func (c *Client) newRequest(ctx context.Context, r *Request) (*http.Request, error) {
	target := c.baseURL + "/" + strings.TrimLeft(r.Path, "/")
	if len(r.Query) > 0 {
		target += "?" + r.Query.Encode()
	}

	var (
		body        io.Reader
		contentType = r.ContentType
	)
	switch b := r.Body.(type) {
	case nil:
	case io.Reader:
		body = b
	default:
		buf, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}
	if body != nil && contentType == "" {
		contentType = ContentTypeJSON
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", ContentTypeJSON)
	req.Header.Set(RequestIDHeader, uuid.NewString())
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	return req, nil
}

// authorize attaches the bearer token. A failing token read never blocks
// the request; the backend decides what an anonymous call may do.
func (c *Client) authorize(ctx context.Context, req *http.Request) {
	if c.tokens == nil {
		return
	}
	token, err := c.tokens.Token(ctx)
	if err != nil {
		c.log.Warn(ctx, "token read failed, sending request without it", "error", err)
		return
	}
	if token != "" {
		req.Header.Set(AuthorizationHeader, "Bearer "+token)
	}
}

func (c *Client) clearSession(ctx context.Context) {
	if c.clearer == nil {
		return
	}
	// the clear must finish even when the caller's context is already done
	if err := c.clearer.Clear(context.WithoutCancel(ctx)); err != nil {
		c.log.Error(ctx, "session clear after 401 failed", "error", err)
		return
	}
	c.log.Warn(ctx, "backend rejected credentials, session cleared")
}

func (c *Client) reject(ctx context.Context, span trace.Span, r *Request, e *Error) error {
	span.SetStatus(codes.Error, e.Error())
	if e.cause != nil {
		span.RecordError(e.cause)
	}
	c.log.Debug(ctx, "request failed",
		"method", r.Method, "path", r.Path, "status", e.Status, "kind", e.Kind.String(), "error", e.Error())
	return e
}
