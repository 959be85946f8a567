package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/zestro/zestro-go/internal/credentials"
)

const (
	defaultTimeout = 30 * time.Second

	// maxBodyBytes caps how much of a response body is read. Gateways that
	// answer with HTML error pages can be arbitrarily large.
	maxBodyBytes = 4 << 20

	msgSessionExpired = "Session expired. Please log in again."
	msgNetworkError   = "Network error. Please check your connection."
)

// Config holds what a Client needs at construction time.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// HTTPClient overrides the default client when set (tests).
	HTTPClient *http.Client
	Session    *credentials.Session
	Logger     *slog.Logger
}

// Client issues requests against the platform API. It injects the stored
// bearer token, parses the response envelope, and translates every failure
// mode into a failure envelope rather than an error.
type Client struct {
	baseURL string
	httpc   *http.Client
	session *credentials.Session
	logger  *slog.Logger
	expiry  sessionNotifier
}

// New builds a Client. Session must be non-nil.
func New(cfg Config) *Client {
	httpc := cfg.HTTPClient
	if httpc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpc = &http.Client{Timeout: timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		httpc:   httpc,
		session: cfg.Session,
		logger:  logger,
	}
}

// OnSessionExpired registers the callback fired after a 401 clears the
// stored credentials. Registering replaces any previous callback.
func (c *Client) OnSessionExpired(fn func()) {
	c.expiry.set(fn)
}

// Session exposes the credential session the client reads tokens from.
func (c *Client) Session() *credentials.Session {
	return c.session
}

// Do sends a request and returns the typed envelope. It never panics and
// never returns an error: transport failures, unparseable bodies, and
// session expiry all come back as failure envelopes.
//
// On HTTP 401 the stored credentials are cleared first and the registered
// session-expiry callback is invoked second, so by the time the app reacts
// the stale token is already gone.
func Do[T any](ctx context.Context, c *Client, method, path string, body any) Envelope[T] {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			c.logger.Error("encode request body", "path", path, "error", err)
			return Fail[T]("Invalid request payload.")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		c.logger.Error("build request", "path", path, "error", err)
		return Fail[T](msgNetworkError)
	}
	req.Header.Set("Content-Type", "application/json")
	if token, ok := c.session.Token(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.logger.Warn("request failed", "method", method, "path", path, "error", err)
		return Fail[T](msgNetworkError)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		c.logger.Warn("read response", "method", method, "path", path, "error", err)
		return Fail[T](msgNetworkError)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.session.ClearAll()
		c.expiry.notify()
		return Fail[T](msgSessionExpired)
	}

	env, err := decodeEnvelope[T](raw)
	if err != nil {
		c.logger.Warn("unparseable response body",
			"method", method, "path", path, "status", resp.StatusCode)
		return Fail[T](statusMessage(resp.StatusCode))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if env.Message == "" {
			env.Message = statusMessage(resp.StatusCode)
		}
		env.Success = false
		env.Response = nil
	}

	return env
}

// Get issues a GET request.
func Get[T any](ctx context.Context, c *Client, path string) Envelope[T] {
	return Do[T](ctx, c, http.MethodGet, path, nil)
}

// Post issues a POST request with an optional JSON body.
func Post[T any](ctx context.Context, c *Client, path string, body any) Envelope[T] {
	return Do[T](ctx, c, http.MethodPost, path, body)
}

// Put issues a PUT request with a JSON body.
func Put[T any](ctx context.Context, c *Client, path string, body any) Envelope[T] {
	return Do[T](ctx, c, http.MethodPut, path, body)
}

// Delete issues a DELETE request.
func Delete[T any](ctx context.Context, c *Client, path string) Envelope[T] {
	return Do[T](ctx, c, http.MethodDelete, path, nil)
}

// Paged appends page/limit query parameters to a path.
func Paged(path string, page, limit int) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%spage=%d&limit=%d", path, sep, page, limit)
}

func statusMessage(status int) string {
	switch {
	case status >= 500:
		return fmt.Sprintf("Server error (%d). Please try again later.", status)
	case status >= 400:
		return fmt.Sprintf("Request failed (%d).", status)
	default:
		return fmt.Sprintf("Unexpected response (%d).", status)
	}
}
