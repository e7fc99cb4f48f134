package gutendex

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/mrlokans/literalura/internal/apperr"
)

const (
	DefaultBaseURL   = "https://gutendex.com/books/"
	DefaultUserAgent = "Literalura/2.0 (+https://github.com/mrlokans/literalura)"

	defaultTimeout        = 30 * time.Second
	defaultConnectTimeout = 10 * time.Second
	defaultMaxRetries     = 3
	defaultRetryDelay     = 2 * time.Second
	pingTimeout           = 5 * time.Second

	maxSearchLength = 500
)

var languageCodePattern = regexp.MustCompile(`^[a-z]{2,3}$`)

// Options configures a Client. Zero values fall back to the defaults above;
// RequestsPerSecond <= 0 disables client-side rate limiting.
type Options struct {
	BaseURL           string
	UserAgent         string
	Timeout           time.Duration
	ConnectTimeout    time.Duration
	MaxRetries        int
	RetryDelay        time.Duration
	RequestsPerSecond float64
}

// Client queries the Gutendex books API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	maxRetries int
	retryDelay time.Duration
	limiter    *rate.Limiter
}

// NewClient creates a Gutendex client. The per-attempt timeout bounds the
// whole request; the connect timeout bounds dialing only.
func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.ConnectTimeout <= 0 {
		opts.ConnectTimeout = defaultConnectTimeout
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = defaultMaxRetries
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = defaultRetryDelay
	}

	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = (&net.Dialer{Timeout: opts.ConnectTimeout}).DialContext

	return &Client{
		httpClient: &http.Client{
			Timeout:   opts.Timeout,
			Transport: transport,
		},
		baseURL:    opts.BaseURL,
		userAgent:  opts.UserAgent,
		maxRetries: opts.MaxRetries,
		retryDelay: opts.RetryDelay,
		limiter:    rate.NewLimiter(limit, 1),
	}
}

// SearchByTitle runs a free-text search for title.
func (c *Client) SearchByTitle(ctx context.Context, title string) (*Response, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperr.NewValidation("title", "title must not be empty")
	}
	if len([]rune(title)) > maxSearchLength {
		return nil, apperr.NewValidation("title", fmt.Sprintf("title is too long (max %d characters)", maxSearchLength))
	}

	slog.Info("Searching books by title", "title", title)
	return c.search(ctx, url.Values{"search": {title}})
}

// SearchByAuthor runs a free-text search for an author name.
func (c *Client) SearchByAuthor(ctx context.Context, author string) (*Response, error) {
	author = strings.TrimSpace(author)
	if author == "" {
		return nil, apperr.NewValidation("author", "author name must not be empty")
	}
	if len([]rune(author)) > maxSearchLength {
		return nil, apperr.NewValidation("author", fmt.Sprintf("author name is too long (max %d characters)", maxSearchLength))
	}

	slog.Info("Searching books by author", "author", author)
	return c.search(ctx, url.Values{"search": {author}})
}

// SearchByLanguage lists books in the given language. The code is trimmed
// and lower-cased and must then be two or three letters.
func (c *Client) SearchByLanguage(ctx context.Context, code string) (*Response, error) {
	code, err := NormalizeLanguage(code)
	if err != nil {
		return nil, err
	}

	slog.Info("Searching books by language", "language", code)
	return c.search(ctx, url.Values{"languages": {code}})
}

// NormalizeLanguage trims and lower-cases a language code and checks it
// against the two-or-three letter format.
func NormalizeLanguage(code string) (string, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return "", apperr.NewValidation("language", "language code must not be empty")
	}
	if !languageCodePattern.MatchString(code) {
		return "", apperr.NewValidation("language", "invalid language code, use codes like 'pt', 'en', 'es'")
	}
	return code, nil
}

func (c *Client) search(ctx context.Context, params url.Values) (*Response, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	u.RawQuery = params.Encode()

	body, err := c.Fetch(ctx, u.String())
	if err != nil {
		return nil, err
	}
	return Decode(body)
}

// Fetch GETs rawURL and returns the response body. Transport failures and
// 5xx responses are retried after a fixed delay; anything else fails
// immediately with an *apperr.APIError.
func (c *Client) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	var lastErr error

	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		body, err := c.doRequest(ctx, rawURL, attempt)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if attempt == c.maxRetries || !isRetryableError(err) {
			return nil, err
		}

		slog.Warn("Gutendex request failed, retrying", "attempt", attempt, "delay", c.retryDelay, "error", err)
		select {
		case <-ctx.Done():
			return nil, &apperr.APIError{Message: "request interrupted", Cause: ctx.Err()}
		case <-time.After(c.retryDelay):
		}
	}

	return nil, &apperr.APIError{Message: "max retries exceeded", Cause: lastErr}
}

func (c *Client) doRequest(ctx context.Context, rawURL string, attempt int) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &apperr.APIError{Message: "request interrupted", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &apperr.APIError{
			Message: fmt.Sprintf("connection error on attempt %d: %v", attempt, err),
			Cause:   err,
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &apperr.APIError{
			Message: fmt.Sprintf("failed to read response on attempt %d: %v", attempt, err),
			Cause:   err,
		}
	}
	slog.Debug("Gutendex response", "status", resp.StatusCode, "bytes", len(body), "elapsed", time.Since(start), "attempt", attempt)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if strings.TrimSpace(string(body)) == "" {
			return nil, &apperr.APIError{StatusCode: resp.StatusCode, Message: "empty response from books API"}
		}
		return body, nil
	}

	msg := statusMessage(resp.StatusCode)
	slog.Error("Gutendex API error", "status", resp.StatusCode, "message", msg, "url", rawURL)
	return nil, &apperr.APIError{StatusCode: resp.StatusCode, Message: msg}
}

// Ping checks that the API is reachable. Any status below 400 counts as up.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &apperr.APIError{Message: "books API unreachable", Cause: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		return &apperr.APIError{StatusCode: resp.StatusCode, Message: statusMessage(resp.StatusCode)}
	}
	return nil
}

func statusMessage(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "Bad request, check the search parameters"
	case http.StatusUnauthorized:
		return "Unauthorized"
	case http.StatusForbidden:
		return "Access denied"
	case http.StatusNotFound:
		return "Endpoint not found"
	case http.StatusTooManyRequests:
		return "Too many requests, wait before trying again"
	case http.StatusInternalServerError:
		return "Books API internal error"
	case http.StatusBadGateway:
		return "Bad gateway, server temporarily unavailable"
	case http.StatusServiceUnavailable:
		return "Service unavailable, try again later"
	case http.StatusGatewayTimeout:
		return "Gateway timeout, server took too long to respond"
	default:
		return fmt.Sprintf("HTTP %d", status)
	}
}

func isRetryableError(err error) bool {
	if apiErr, ok := err.(*apperr.APIError); ok {
		return apiErr.Retryable()
	}
	return false
}
