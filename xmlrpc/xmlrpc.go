// Package xmlrpc implements the minimal XML-RPC transport the DokuWiki
// client builds on: one HTTP POST per call, a hand-rolled wire codec, and
// optional cookie-based session state.
//
// Remote-side errors surface as *Fault, malformed response framing as
// *ParseError, and non-200 HTTP exchanges as *ProtocolError. The transport
// never retries; classification of faults is the caller's concern.
package xmlrpc

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"time"
)

const (
	// DefaultTimeout for RPC round trips.
	DefaultTimeout = 30 * time.Second

	contentType = "text/xml"
)

// Fault is an error reported by the remote XML-RPC endpoint.
type Fault struct {
	Code    int
	Message string
}

func (f *Fault) Error() string {
	return fmt.Sprintf("xmlrpc: fault %d: %s", f.Code, f.Message)
}

// ParseError indicates the response body could not be decoded as an
// XML-RPC methodResponse.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return "xmlrpc: " + e.Reason
}

// ProtocolError indicates a failed HTTP exchange (non-200 status).
type ProtocolError struct {
	Status int
	Body   string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("xmlrpc: server returned HTTP %d", e.Status)
}

// Client performs XML-RPC calls against a single endpoint.
//
// When cookie support is enabled the client owns a cookie jar; the server
// may rewrite session cookies on any response and the jar applies a
// last-write-wins rule per cookie name.
type Client struct {
	endpoint   string
	httpClient *http.Client
	userAgent  string
	logger     *slog.Logger
}

// Option configures the Client.
type Option func(*Client)

// WithTimeout sets the per-call HTTP timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every call.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithCookies installs a cookie jar so the server can maintain a session
// across calls.
func WithCookies() Option {
	return func(c *Client) {
		jar, _ := cookiejar.New(nil)
		c.httpClient.Jar = jar
	}
}

// WithHTTPClient replaces the underlying HTTP client entirely.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a client for the given endpoint URL.
func NewClient(endpoint string, opts ...Option) *Client {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		ForceAttemptHTTP2:   true,
	}

	c := &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout:   DefaultTimeout,
			Transport: transport,
		},
		userAgent: "go-dokuwiki/1.0",
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Call invokes the named remote procedure with the given arguments and
// returns the decoded response value. Exactly one round trip is made.
func (c *Client) Call(ctx context.Context, method string, args []any) (any, error) {
	payload, err := marshalRequest(method, args)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("xmlrpc: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("xmlrpc: request failed: %w", err)
	}

	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("xmlrpc: failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("RPC endpoint returned non-OK status",
			"method", method,
			"status", resp.StatusCode)
		return nil, &ProtocolError{Status: resp.StatusCode, Body: string(body)}
	}

	result, err := parseResponse(body)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("RPC call completed", "method", method)
	return result, nil
}
