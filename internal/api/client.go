// internal/api/client.go
//
// staffdesk – backend API client.
//
// Context
//   The portal's backend is an external JSON service.  This client issues
//   exactly one POST per call, with no retries, and maps every outcome onto
//   either a decoded reply or an *Error.  Callers decide what to show.
//
// Workflow
//   •  post marshals the body, stamps an X-Request-ID, and sends it.
//   •  2xx replies decode into the caller's struct.  A body that does not
//      decode is reported as an *Error with the 2xx status and no message.
//   •  Non-2xx replies become *Error{Status, Message}, reading "message" from
//      the JSON body when present.
//   •  Transport failures become *Error{Status: 0}.
//
//------------------------------------------------------------------------------

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yanizio/staffdesk/internal/metrics"
)

// maxBody caps how much of a reply is read.
const maxBody = 1 << 20

// RequestIDHeader correlates client log lines with backend logs.
const RequestIDHeader = "X-Request-ID"

// Client talks to the backend.  Safe for concurrent use.
type Client struct {
	base string
	http *http.Client
	log  *zap.SugaredLogger
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }

// WithLogger sets the logger used for request events.
func WithLogger(l *zap.SugaredLogger) Option { return func(c *Client) { c.log = l } }

// Connection-level limits.  They bound each phase of a connection but never
// the request as a whole; that is the caller's timeout.
const (
	dialTimeout         = 10 * time.Second
	tlsHandshakeTimeout = 10 * time.Second
	idleConnTimeout     = 60 * time.Second
)

// newHTTPClient returns an *http.Client with the limits above.  A zero
// timeout means the request itself has no deadline.
func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			DialContext:         (&net.Dialer{Timeout: dialTimeout}).DialContext,
			TLSHandshakeTimeout: tlsHandshakeTimeout,
			IdleConnTimeout:     idleConnTimeout,
			MaxIdleConnsPerHost: 2,
		},
	}
}

// New returns a Client rooted at baseURL.  A zero timeout means none.
func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		base: baseURL,
		http: newHTTPClient(timeout),
		log:  zap.S(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// BaseURL returns the configured root.
func (c *Client) BaseURL() string { return c.base }

/*──────────────────────────── endpoints ───────────────────────────────────*/

// Login posts credentials.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var out LoginResponse
	if err := c.post(ctx, PathLogin, "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Signup registers a new account.
func (c *Client) Signup(ctx context.Context, req EmployeeRequest) (*SignupResponse, error) {
	var out SignupResponse
	if err := c.post(ctx, PathSignup, "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddEmployee creates an employee record on behalf of the bearer of token.
// An empty token is sent without an Authorization header; the backend
// decides what to do with an unauthenticated request.
func (c *Client) AddEmployee(ctx context.Context, token string, req EmployeeRequest) (*AddEmployeeResponse, error) {
	var out AddEmployeeResponse
	if err := c.post(ctx, PathAdd, token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

/*──────────────────────────── transport ───────────────────────────────────*/

func (c *Client) post(ctx context.Context, path, token string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return &Error{Path: path, Err: fmt.Errorf("encode body: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(payload))
	if err != nil {
		return &Error{Path: path, Err: err}
	}
	reqID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, reqID)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	log := c.log.With("path", path, "request_id", reqID)
	log.Debugw("api request", "authenticated", token != "")

	start := time.Now()
	res, err := c.http.Do(req)
	elapsed := time.Since(start)
	metrics.APIRequestDuration.WithLabelValues(path).Observe(elapsed.Seconds())
	if err != nil {
		metrics.APIRequestsTotal.WithLabelValues(path, "0").Inc()
		log.Warnw("api transport failure", "err", err, "elapsed", elapsed)
		return &Error{Path: path, Err: err}
	}
	defer res.Body.Close()
	metrics.APIRequestsTotal.WithLabelValues(path, strconv.Itoa(res.StatusCode)).Inc()

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxBody))
	if err != nil {
		log.Warnw("api read failure", "status", res.StatusCode, "err", err)
		return &Error{Path: path, Status: res.StatusCode, Err: err}
	}
	log.Infow("api response", "status", res.StatusCode, "bytes", len(raw), "elapsed", elapsed)

	if res.StatusCode < 200 || res.StatusCode > 299 {
		var eb errorBody
		_ = json.Unmarshal(raw, &eb)
		return &Error{Path: path, Status: res.StatusCode, Message: eb.Message}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		log.Warnw("api decode failure", "status", res.StatusCode, "err", err)
		return &Error{Path: path, Status: res.StatusCode, Err: fmt.Errorf("decode reply: %w", err)}
	}
	return nil
}
