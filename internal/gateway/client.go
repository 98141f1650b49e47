// Package gateway is the outbound side of the dashboard: it sends requests to
// the remote data service, decodes the JSON answers and folds every failure
// into a single error kind.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"familyspend/internal/i18n"
	applog "familyspend/internal/log"
	"familyspend/internal/notify"
)

const defaultTimeout = 10 * time.Second

// Client talks to the remote data service. It performs no retries.
type Client struct {
	baseURL  string
	http     *http.Client
	notifier notify.Notifier
	logger   *applog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithNotifier sets the notifier used when the request context carries none.
func WithNotifier(n notify.Notifier) Option {
	return func(c *Client) { c.notifier = n }
}

// WithLogger sets the logger.
func WithLogger(l *applog.Logger) Option {
	return func(c *Client) { c.logger = l.WithComponent(applog.ComponentGateway) }
}

// New creates a client for the service rooted at baseURL (for example
// http://localhost:5000/api).
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: defaultTimeout},
		notifier: notify.Discard,
		logger:   applog.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Request sends method to endpoint with body encoded as JSON (when non-nil)
// and decodes the answer into out (when non-nil). Any transport failure,
// non-2xx status or undecodable body yields a *Error and a localized error
// notification.
func (c *Client) Request(ctx context.Context, method, endpoint string, body, out any) error {
	return c.exchange(ctx, method, endpoint, body, func(r io.Reader) error {
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(r).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	})
}

// Download fetches a non-JSON resource and returns its body and the file name
// announced by the service, if any. Failures follow the same path as Request.
func (c *Client) Download(ctx context.Context, endpoint string) ([]byte, string, error) {
	var (
		data     []byte
		filename string
	)
	err := c.exchange(ctx, http.MethodGet, endpoint, nil, func(r io.Reader) error {
		var err error
		data, err = io.ReadAll(r)
		return err
	}, func(h http.Header) {
		if _, params, err := mime.ParseMediaType(h.Get("Content-Disposition")); err == nil {
			filename = params["filename"]
		}
	})
	if err != nil {
		return nil, "", err
	}
	return data, filename, nil
}

func (c *Client) exchange(ctx context.Context, method, endpoint string, body any, read func(io.Reader) error, headers ...func(http.Header)) error {
	start := time.Now()
	// The id of the request being served follows the call to the service.
	requestID := applog.RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}

	status, err := c.do(ctx, method, endpoint, requestID, body, read, headers...)
	fields := applog.NewFields().
		WithGatewayCall(method, endpoint, status, time.Since(start).Milliseconds()).
		WithRequestID(requestID)

	if err != nil {
		gerr := &Error{Method: method, Endpoint: endpoint, Err: err}
		if status < 200 || status > 299 {
			gerr.StatusCode = status
		}
		c.logger.ErrorContext(ctx, "Gateway request failed", fields.WithError(err).ToSlice()...)
		notify.From(ctx, c.notifier).Notify(notify.Error, i18n.ErrorOccurred)
		return gerr
	}

	c.logger.DebugContext(ctx, "Gateway request completed", fields.ToSlice()...)
	return nil
}

func (c *Client) do(ctx context.Context, method, endpoint, requestID string, body any, read func(io.Reader) error, headers ...func(http.Header)) (int, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("encode body: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return resp.StatusCode, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	for _, h := range headers {
		h(resp.Header)
	}
	if err := read(resp.Body); err != nil {
		return resp.StatusCode, err
	}
	return resp.StatusCode, nil
}
