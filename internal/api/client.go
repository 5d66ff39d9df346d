// Package api is the OrderUp REST client.
//
// FetchWithToken is the single request path: it attaches the stored bearer
// token and folds network failures and non-2xx responses into a Result.
// Feature methods on Client turn a failed Result into an *APIError.
package api

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/Makepad-fr/orderup/internal/config"
)

// TokenSource yields the bearer token; "" means anonymous.
type TokenSource interface {
	Token() (string, error)
}

// StaticToken is a fixed TokenSource.
type StaticToken string

func (s StaticToken) Token() (string, error) { return string(s), nil }

type Client struct {
	BaseURL   string
	HTTP      *http.Client
	Tokens    TokenSource
	Endpoints config.Endpoints
	Logger    *zap.Logger

	pages singleflight.Group
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.HTTP = h } }

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.HTTP.Timeout = d
		}
	}
}

func WithTokens(ts TokenSource) Option        { return func(c *Client) { c.Tokens = ts } }
func WithLogger(l *zap.Logger) Option         { return func(c *Client) { c.Logger = l } }
func WithEndpoints(e config.Endpoints) Option { return func(c *Client) { c.Endpoints = e } }

// New returns a client for baseURL, e.g. https://api.orderup.com/api.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		HTTP:      &http.Client{Timeout: config.DefaultTimeout},
		Endpoints: config.DefaultEndpoints,
		Logger:    zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// NewFromConfig wires a client from the loaded configuration.
func NewFromConfig(cfg *config.Config, ts TokenSource, logger *zap.Logger) *Client {
	return New(cfg.BaseURL(),
		WithTimeout(cfg.RequestTimeout()),
		WithTokens(ts),
		WithLogger(logger),
	)
}

// APIError is a failed call: Status is the HTTP status, 0 for network errors.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// StatusOf extracts the HTTP status from err, 0 when there is none.
func StatusOf(err error) int {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Status
	}
	return 0
}

// Result is the normalised outcome of a request. Exactly one of Data and
// Error is meaningful; Data may still be nil on an empty 2xx body.
type Result[T any] struct {
	Data   *T
	Error  string
	Status int
}

// OK reports a 2xx response.
func (r Result[T]) OK() bool { return r.Error == "" }

func (r Result[T]) Err() error {
	if r.Error == "" {
		return nil
	}
	return &APIError{Status: r.Status, Message: r.Error}
}

// Value returns the decoded data, or an error carrying missing when the
// response had no body.
func (r Result[T]) Value(missing string) (T, error) {
	var zero T
	if err := r.Err(); err != nil {
		return zero, err
	}
	if r.Data == nil {
		return zero, &APIError{Status: r.Status, Message: missing}
	}
	return *r.Data, nil
}

type requestOptions struct {
	skipAuth bool
	header   http.Header
}

type RequestOption func(*requestOptions)

// SkipAuth sends the request without the bearer token.
func SkipAuth() RequestOption { return func(o *requestOptions) { o.skipAuth = true } }

// Header adds a request header; it can override the defaults but not
// Authorization.
func Header(key, value string) RequestOption {
	return func(o *requestOptions) {
		if o.header == nil {
			o.header = http.Header{}
		}
		o.header.Set(key, value)
	}
}

// FetchWithToken performs one JSON request against rawURL and decodes the
// body into T.
func FetchWithToken[T any](ctx context.Context, c *Client, method, rawURL string, body any, opts ...RequestOption) Result[T] {
	var ro requestOptions
	for _, o := range opts {
		o(&ro)
	}

	status, data, err := c.do(ctx, method, rawURL, body, ro)
	if err != nil {
		c.Logger.Error("Network error", zap.String("method", method), zap.String("url", rawURL), zap.Error(err))
		return Result[T]{Error: err.Error(), Status: 0}
	}

	if status < 200 || status > 299 {
		return Result[T]{Error: errorMessage(status, data), Status: status}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return Result[T]{Status: status}
	}
	out := new(T)
	if err := json.Unmarshal(data, out); err != nil {
		c.Logger.Error("Network error", zap.String("url", rawURL), zap.Error(err))
		return Result[T]{Error: fmt.Sprintf("decode response: %v", err), Status: 0}
	}
	return Result[T]{Data: out, Status: status}
}

func (c *Client) do(ctx context.Context, method, rawURL string, body any, ro requestOptions) (int, []byte, error) {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("encode body: %w", err)
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, rd)
	if err != nil {
		return 0, nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Encoding", "gzip")
	req.Header.Set("X-Request-ID", uuid.NewString())
	for k, vs := range ro.header {
		req.Header[k] = vs
	}
	if !ro.skipAuth && c.Tokens != nil {
		tok, err := c.Tokens.Token()
		if err != nil {
			return 0, nil, fmt.Errorf("read token: %w", err)
		}
		if tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	start := time.Now()
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	var r io.Reader = resp.Body
	if strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip") {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return 0, nil, fmt.Errorf("gzip: %w", err)
		}
		defer gz.Close()
		r = gz
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, nil, fmt.Errorf("read body: %w", err)
	}
	c.Logger.Debug("request",
		zap.String("method", method),
		zap.String("url", rawURL),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)),
		zap.String("request_id", req.Header.Get("X-Request-ID")),
	)
	return resp.StatusCode, data, nil
}

// errorMessage prefers the server's "message" field.
func errorMessage(status int, body []byte) string {
	var e struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &e) == nil && e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("HTTP %d", status)
}

// endpoint joins the base URL, an endpoint path and escaped segments.
func (c *Client) endpoint(path string, segments ...string) string {
	var b strings.Builder
	b.WriteString(c.BaseURL)
	b.WriteString(path)
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}
