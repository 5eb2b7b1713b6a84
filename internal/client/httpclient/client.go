// Package httpclient is the single transport to the Daily Hustle REST
// backend. It attaches the bearer token, paces requests and maps every
// failure to a *RequestError. It never retries.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/dailyhustle/hustle/internal/client/metrics"
	"github.com/dailyhustle/hustle/internal/common"
	"github.com/dailyhustle/hustle/internal/logging"
	"github.com/dailyhustle/hustle/internal/netx"
)

// TokenSource yields the current bearer token; "" means anonymous.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

type Options struct {
	BaseURL string
	Timeout time.Duration
	// RateLimit is requests per second; 0 disables pacing.
	RateLimit float64
	Tokens    TokenSource
	Logger    logging.Logger
	Metrics   *metrics.Metrics
	// HTTPClient overrides the default client; its Timeout wins over Timeout.
	HTTPClient *http.Client
}

type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	limiter *rate.Limiter
	log     logging.Logger
	metrics *metrics.Metrics
}

func New(opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	var limiter *rate.Limiter
	if opts.RateLimit > 0 {
		burst := int(opts.RateLimit)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}
	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		http:    hc,
		tokens:  opts.Tokens,
		limiter: limiter,
		log:     log,
		metrics: opts.Metrics,
	}
}

func (c *Client) BaseURL() string { return c.baseURL }

// Do sends body (JSON-encoded when non-nil) and decodes a 2xx response into
// out when out is non-nil.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	var (
		r  io.Reader
		ct string
	)
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		r = bytes.NewReader(b)
		ct = "application/json"
	}
	return c.send(ctx, method, path, r, ct, out)
}

// Upload posts r as a multipart file part named field. The content type is
// the writer's, boundary included.
func (c *Client) Upload(ctx context.Context, path, field, filename string, r io.Reader, out any) error {
	partType := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename)))
	body, ct, err := netx.MultipartFile(field, filename, partType, r)
	if err != nil {
		return fmt.Errorf("build upload %s: %w", filename, err)
	}
	return c.send(ctx, http.MethodPost, path, body, ct, out)
}

func (c *Client) send(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	reqID := uuid.NewString()
	ctx = logging.WithRequestID(ctx, reqID)

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return &RequestError{Kind: KindNetwork, Method: method, Path: path, Err: err}
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, netx.JoinURL(c.baseURL, path), body)
	if err != nil {
		return fmt.Errorf("build request %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, reqID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return fmt.Errorf("read token: %w", err)
		}
		if token != "" {
			req.Header.Set(common.AuthorizationHeaderName, "Bearer "+token)
		}
	}

	c.log.Debug(ctx, "request", "method", method, "path", path)
	start := time.Now()
	if c.metrics != nil {
		c.metrics.InFlight.Inc()
		defer c.metrics.InFlight.Dec()
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.ObserveRequest(method, path, 0, time.Since(start))
		c.log.Warn(ctx, "request failed", "method", method, "path", path, "error", err)
		return &RequestError{Kind: KindNetwork, Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()
	c.metrics.ObserveRequest(method, path, resp.StatusCode, time.Since(start))

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &RequestError{Kind: KindNetwork, Method: method, Path: path, Status: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := extractMessage(data)
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		c.log.Warn(ctx, "request rejected", "method", method, "path", path, "status", resp.StatusCode, "message", msg)
		return &RequestError{Kind: KindHTTP, Method: method, Path: path, Status: resp.StatusCode, Message: msg}
	}

	c.log.Debug(ctx, "response", "method", method, "path", path, "status", resp.StatusCode, "elapsed", time.Since(start))
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func extractMessage(body []byte) string {
	var env struct {
		Message any `json:"message"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return ""
	}
	switch m := env.Message.(type) {
	case string:
		return m
	case []any:
		// validation errors come back as a list of strings
		parts := make([]string, 0, len(m))
		for _, v := range m {
			if s, ok := v.(string); ok {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, "; ")
	}
	return ""
}
