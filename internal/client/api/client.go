// Package api implements the HTTP client for the brochure backend.
//
// Every outbound call passes through a single interception point (Client.do):
// the bearer token is attached there, error bodies are normalized into
// APIError, and 401 responses are reported to a registered handler unless
// the unauthorized-suppression gate is closed. Screens and services built on
// top of this client stay agnostic of authentication: they just receive an
// error when a call is rejected.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/brocat-app/brocat/internal/common"
	"github.com/brocat-app/brocat/internal/logging"
	"github.com/google/uuid"
)

// TokenSource supplies the current bearer token; an empty string means no
// session. Implemented by the credential store.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Gate reports whether unauthorized handling is currently suppressed.
// Implemented by the session layer's suppression window.
type Gate interface {
	Suppressed() bool
}

// Config carries the client's construction parameters.
type Config struct {
	// BaseURL is the API prefix, e.g. "https://api.example.com".
	BaseURL string
	// MediaBaseURL is prepended to relative image URLs.
	MediaBaseURL string
	// Timeout applies to calls whose context has no deadline of its own.
	Timeout time.Duration
	// HTTPClient overrides the transport; nil means http.DefaultClient.
	HTTPClient *http.Client
}

// Client is the process-wide API client. Construct one per process and pass
// it to the session controller and the catalog service.
type Client struct {
	baseURL  string
	mediaURL string
	http     *http.Client
	timeout  time.Duration
	tokens   TokenSource
	gate     Gate
	log      logging.Logger
	calls    *CallLog

	mu             sync.RWMutex
	onUnauthorized func()
}

// New builds a Client. tokens and gate may not be nil; log may be.
func New(cfg Config, tokens TokenSource, gate Gate, log logging.Logger) *Client {
	if log == nil {
		log = logging.Nop()
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		mediaURL: strings.TrimRight(cfg.MediaBaseURL, "/"),
		http:     hc,
		timeout:  timeout,
		tokens:   tokens,
		gate:     gate,
		log:      log,
		calls:    NewCallLog(100),
	}
}

// SetUnauthorizedHandler registers the callback fired when a call is
// rejected with 401 outside the suppression window. A single slot, not a
// list: registering replaces the previous handler, nil unregisters. Only
// one session controller exists per process, so a slot is sufficient.
func (c *Client) SetUnauthorizedHandler(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = fn
}

// Calls exposes the bounded log of recent API calls.
func (c *Client) Calls() *CallLog { return c.calls }

// AbsMediaURL makes a relative image URL absolute against the media base.
// Already-absolute URLs are returned unchanged.
func (c *Client) AbsMediaURL(url string) string {
	if url == "" || strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return url
	}
	return c.mediaURL + "/" + strings.TrimLeft(url, "/")
}

// do performs one HTTP call: request interception (token, request id),
// response interception (error-body parsing, 401 signaling), and call
// tracking. On success it returns the HTTP status and raw body.
func (c *Client) do(ctx context.Context, method, path string, body any) (int, []byte, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("encoding request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return 0, nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-Id", uuid.NewString())

	// Attach the bearer token unless the caller set its own Authorization.
	if req.Header.Get("Authorization") == "" {
		if token, err := c.tokens.Token(ctx); err == nil && token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.track(method, path, CallError, err.Error(), time.Since(start))
		// Timeouts and transport failures are indistinguishable to callers:
		// both mean the server could not be reached in time.
		return 0, nil, fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.track(method, path, CallError, err.Error(), time.Since(start))
		return resp.StatusCode, nil, fmt.Errorf("%w: reading response: %v", common.ErrUnavailable, err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		c.track(method, path, CallSuccess, "", time.Since(start))
		return resp.StatusCode, data, nil
	}

	apiErr := &APIError{Status: resp.StatusCode, Body: parseErrorBody(resp.Header.Get("Content-Type"), data)}
	c.track(method, path, CallError, apiErr.Message(), time.Since(start))

	if resp.StatusCode == http.StatusUnauthorized {
		c.signalUnauthorized(ctx)
	}

	return resp.StatusCode, nil, apiErr
}

// signalUnauthorized fires the registered handler once, in its own
// goroutine, so the rejection is never blocked on the handler's work.
// Inside the suppression window nothing is signaled: a stale 401 racing an
// in-flight login must not cause a spurious logout.
func (c *Client) signalUnauthorized(ctx context.Context) {
	if c.gate != nil && c.gate.Suppressed() {
		c.log.Debug(ctx, "unauthorized response during suppression window, not signaling")
		return
	}

	c.mu.RLock()
	fn := c.onUnauthorized
	c.mu.RUnlock()

	if fn == nil {
		c.log.Warn(ctx, "unauthorized response but no handler registered")
		return
	}
	go fn()
}

// parseErrorBody extracts a structured error from a rejected response
// without ever letting a parse failure break error handling.
func parseErrorBody(contentType string, data []byte) ErrorBody {
	if len(data) == 0 {
		return ErrorBody{Message: "empty error body"}
	}
	if strings.Contains(contentType, "application/json") || json.Valid(data) {
		var body ErrorBody
		if err := json.Unmarshal(data, &body); err == nil {
			if body == (ErrorBody{}) {
				body.Message = string(data)
			}
			return body
		}
	}
	return ErrorBody{Message: strings.TrimSpace(string(data))}
}

func (c *Client) track(method, resource string, status CallStatus, msg string, d time.Duration) {
	c.calls.add(CallEntry{
		Timestamp: time.Now(),
		Method:    method,
		Resource:  resource,
		Status:    status,
		Message:   msg,
		Duration:  d,
	})
}

// envelope is the uniform `{success, data, error}` response wrapper used by
// the backend.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Msg     string          `json:"msg"`
}

// call performs a request and unwraps the response envelope. A 2xx response
// with success=false is still a rejection and converts to an APIError
// carrying the server's message.
func (c *Client) call(ctx context.Context, method, path string, body any, out any) error {
	status, data, err := c.do(ctx, method, path, body)
	if err != nil {
		return err
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidResponse, err)
	}
	if !env.Success {
		msg := env.Error
		if msg == "" {
			msg = env.Msg
		}
		return &APIError{Status: status, Body: ErrorBody{Reason: msg}}
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidResponse, err)
	}
	return nil
}
