package sentence

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/phuslu/log"
	"golang.org/x/time/rate"

	"github.com/abhisek/tacit/internal/logging"
)

const (
	DefaultBaseURL   = "http://127.0.0.1:5000"
	DefaultTimeout   = 10 * time.Second
	DefaultRateLimit = 5 // requests per second

	getSentencePath = "/get-sentence"

	// maxBodyBytes caps how much of a response is read.
	maxBodyBytes = 1 << 20
)

// HTTPClient implements Client over the service's JSON HTTP API.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *log.Logger
}

var _ Client = (*HTTPClient)(nil)

// ClientOption configures the client.
type ClientOption func(*HTTPClient)

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) ClientOption {
	return func(c *HTTPClient) {
		c.logger = logger
	}
}

// WithRateLimit caps outgoing requests per second. Zero disables limiting.
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *HTTPClient) {
		if requestsPerSecond <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the per-request HTTP timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *HTTPClient) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *HTTPClient) {
		c.httpClient = hc
	}
}

// NewHTTPClient creates a client for the service at baseURL.
func NewHTTPClient(baseURL string, opts ...ClientOption) *HTTPClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  logging.Silent(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the service root this client targets.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

// FetchQuestion performs GET /get-sentence and validates the body.
func (c *HTTPClient) FetchQuestion(ctx context.Context) (*Question, error) {
	body, err := c.get(ctx, "fetch", getSentencePath)
	if err != nil {
		return nil, err
	}
	return decodeQuestion(body)
}

// Wake performs GET / and discards the body.
func (c *HTTPClient) Wake(ctx context.Context) error {
	_, err := c.get(ctx, "wake", "/")
	return err
}

// get performs a rate-limited GET and returns the body of a 2xx response.
func (c *HTTPClient) get(ctx context.Context, op, path string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("rate limit wait: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().Str("op", op).Str("url", req.URL.String()).Msg("sentence service request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &TransportError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(body),
		}
	}
	return body, nil
}

// errorMessage extracts {"error": "..."} from a failure body, falling back to
// the trimmed raw text.
func errorMessage(body []byte) string {
	var e struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &e) == nil && e.Error != "" {
		return e.Error
	}
	msg := strings.TrimSpace(string(body))
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return msg
}
