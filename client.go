package todoist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"os"
	"sync"
	"time"

	uuid "github.com/nu7hatch/gouuid"
	log "github.com/sirupsen/logrus"
)

// DefaultEndpoint is the base URL of the Todoist unified API.
const DefaultEndpoint = "https://api.todoist.com/api/v1"

const (
	syncTimeout    = 15 * time.Second
	commandTimeout = 10 * time.Second
)

// ErrStatusCode is wrapped by StatusError, i.e., returned when the API responds with a status code that the
// client can't handle.
var ErrStatusCode = errors.New("unhandled status code")

// StatusError is returned when Todoist rejects a request. Op is one of "sync", "add", "complete".
type StatusError struct {
	Op   string
	Code int

	// Body holds the response body if it parsed as JSON, otherwise Text holds it verbatim.
	Body interface{}
	Text string
}

func (e *StatusError) Error() string {
	if e.Body != nil {
		return fmt.Sprintf("%s: %d %v", e.Op, e.Code, e.Body)
	}
	return fmt.Sprintf("%s: %d %s", e.Op, e.Code, http.StatusText(e.Code))
}

func (e *StatusError) Unwrap() error {
	return ErrStatusCode
}

// TransportError is returned when a request could not complete, e.g., a timeout or a connection failure.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ClientOption configures a Client built with NewClient.
type ClientOption func(*Client) error

// WithEndpoint is a client option to set the API base URL when building a client with NewClient. This is meant
// to be used in tests only.
func WithEndpoint(endpoint string) ClientOption {
	return func(c *Client) error {
		c.endpoint = endpoint
		return nil
	}
}

// WithHTTPClient replaces the HTTP client used for all calls. Timeouts are applied per call via the request
// context, so the given client does not need one.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) error {
		c.http = hc
		return nil
	}
}

// WithWireLog is a client option to be passed to NewClient in order to log all requests and responses to the
// specified log file. Useful for debugging the client itself, shouldn't be needed in normal operation.
func WithWireLog(pathname string) ClientOption {
	return func(c *Client) error {
		f, err := os.OpenFile(pathname, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0600)
		if err == nil {
			c.wlog = f
		}
		return err
	}
}

// Client is a Todoist API client. It is safe for concurrent use.
type Client struct {
	endpoint string
	http     *http.Client

	mu sync.RWMutex
	// The secret token to authenticate and authorize API calls. Callers must not invoke any method while it
	// is empty; the client does not check.
	token string

	// If non-nil, log all requests and responses to this file, one per line, in JSON format.
	wlmu sync.Mutex
	wlog io.Writer
}

// NewClient creates a new client authenticated and authorized by the given token.
func NewClient(token string, opts ...ClientOption) (*Client, error) {
	c := &Client{
		endpoint: DefaultEndpoint,
		http:     &http.Client{},
		token:    token,
		wlog:     ioutil.Discard,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// SetToken replaces the token used by subsequent calls. The launcher reads the token from the host
// configuration before every action, so it may change while the client is alive.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token returns the token currently in use.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) wireLog(kind string, b []byte) {
	c.wlmu.Lock()
	defer c.wlmu.Unlock()
	_, _ = fmt.Fprintf(c.wlog, `{"type": %q, %q: `, kind, kind)
	if json.Valid(b) {
		_, _ = c.wlog.Write(b)
	} else {
		_, _ = fmt.Fprintf(c.wlog, "%q", b)
	}
	_, _ = c.wlog.Write([]byte("}\n"))
}

// do sends a request and returns the response status and body. Only transport failures are returned as errors;
// the caller classifies the status code.
func (c *Client) do(ctx context.Context, op string, req *http.Request, timeout time.Duration) (int, []byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	req = req.WithContext(ctx)
	req.Header.Set("Authorization", "Bearer "+c.Token())
	r, err := c.http.Do(req)
	if err != nil {
		return 0, nil, &TransportError{Op: op, Err: err}
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			log.WithFields(log.Fields{
				"op":    op,
				"cause": err,
			}).Warning("Could not close response body")
		}
	}()
	b, err := ioutil.ReadAll(r.Body)
	if err != nil {
		return r.StatusCode, nil, &TransportError{Op: op, Err: fmt.Errorf("read body: %w", err)}
	}
	c.wireLog("response", b)
	return r.StatusCode, b, nil
}

// newStatusError opportunistically parses the response body as JSON for diagnostics.
func newStatusError(op string, code int, b []byte) *StatusError {
	e := &StatusError{Op: op, Code: code, Text: string(b)}
	var body interface{}
	if err := json.Unmarshal(b, &body); err == nil {
		e.Body = body
	}
	return e
}

func newRequestID() string {
	u, err := uuid.NewV4()
	if err != nil {
		return ""
	}
	return u.String()
}

func (c *Client) newJSONRequest(method, path string, body interface{}) (*http.Request, error) {
	var reader io.Reader = http.NoBody
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		c.wireLog("request", b)
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, c.endpoint+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if id := newRequestID(); id != "" {
		req.Header.Set("X-Request-Id", id)
	}
	return req, nil
}
