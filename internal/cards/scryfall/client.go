// Package scryfall is a rate-limited client for the Scryfall card API.
package scryfall

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/ramonehamilton/commander-analyzer/internal/version"
)

const (
	DefaultBaseURL = "https://api.scryfall.com"
	rateLimitDelay = 100 * time.Millisecond // 10 req/sec, Scryfall's published limit
	requestTimeout = 30 * time.Second
	maxRetries     = 3
	initialBackoff = 1 * time.Second
	maxBackoff     = 16 * time.Second
)

// Client represents a Scryfall API client with rate limiting.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	baseURL     string
	userAgent   string
}

// Options configures a Client. Zero values fall back to defaults.
type Options struct {
	BaseURL   string
	UserAgent string
	// RateLimit is the minimum delay between requests.
	RateLimit time.Duration
	Timeout   time.Duration
}

// NewClient creates a new Scryfall API client with default options.
func NewClient() *Client {
	return NewClientWithOptions(Options{})
}

// NewClientWithOptions creates a client against opts.BaseURL.
func NewClientWithOptions(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.UserAgent == "" {
		opts.UserAgent = version.UserAgent()
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = rateLimitDelay
	}
	if opts.Timeout <= 0 {
		opts.Timeout = requestTimeout
	}

	return &Client{
		httpClient:  &http.Client{Timeout: opts.Timeout},
		rateLimiter: rate.NewLimiter(rate.Every(opts.RateLimit), 1),
		baseURL:     opts.BaseURL,
		userAgent:   opts.UserAgent,
	}
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetCardNamed retrieves a card by its exact name.
func (c *Client) GetCardNamed(ctx context.Context, name string) (*Card, error) {
	u := fmt.Sprintf("%s/cards/named?exact=%s", c.baseURL, url.QueryEscape(name))

	var card Card
	if err := c.doRequest(ctx, u, &card); err != nil {
		return nil, fmt.Errorf("failed to get card %q: %w", name, err)
	}

	return &card, nil
}

// GetCardFuzzy retrieves a card by an approximate name. The query is
// shortened with FuzzyName first.
func (c *Client) GetCardFuzzy(ctx context.Context, name string) (*Card, error) {
	u := fmt.Sprintf("%s/cards/named?fuzzy=%s", c.baseURL, FuzzyName(name))

	var card Card
	if err := c.doRequest(ctx, u, &card); err != nil {
		return nil, fmt.Errorf("failed to fuzzy match card %q: %w", name, err)
	}

	return &card, nil
}

// GetBulkData retrieves bulk data download information.
func (c *Client) GetBulkData(ctx context.Context) (*BulkDataList, error) {
	u := fmt.Sprintf("%s/bulk-data", c.baseURL)

	var bulkData BulkDataList
	if err := c.doRequest(ctx, u, &bulkData); err != nil {
		return nil, fmt.Errorf("failed to get bulk data: %w", err)
	}

	return &bulkData, nil
}

// Download opens a streaming GET on a bulk download URI. The caller closes
// the body.
func (c *Client) Download(ctx context.Context, uri string) (io.ReadCloser, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	// Bulk files are large; the per-request timeout of httpClient does not apply.
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", uri, err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code downloading %s: %d", uri, resp.StatusCode)
	}

	return resp.Body, nil
}

// retryableError is a failed attempt worth repeating. wait, when set,
// overrides the backoff before the next attempt.
type retryableError struct {
	err  error
	wait *time.Duration
}

func (e *retryableError) Error() string { return e.err.Error() }
func (e *retryableError) Unwrap() error { return e.err }

// doRequest GETs u and decodes the JSON body into result. Transport
// failures and 429 responses are retried with exponential backoff.
func (c *Client) doRequest(ctx context.Context, u string, result any) error {
	backoff := initialBackoff
	var retry *retryableError

	for attempt := 0; ; attempt++ {
		err := c.get(ctx, u, result)
		if !errors.As(err, &retry) {
			return err
		}
		if attempt == maxRetries {
			return fmt.Errorf("max retries exceeded: %w", retry.err)
		}

		wait := backoff
		if retry.wait != nil {
			wait = *retry.wait
		}
		if !sleep(ctx, wait) {
			return ctx.Err()
		}
		backoff = min(backoff*2, maxBackoff)
	}
}

// get makes one rate-limited attempt.
func (c *Client) get(ctx context.Context, u string, result any) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter error: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return &retryableError{err: fmt.Errorf("HTTP request failed: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to parse JSON response: %w", err)
		}
		return nil

	case http.StatusTooManyRequests:
		retry := &retryableError{err: errors.New("rate limited (HTTP 429)")}
		if secs, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil && secs >= 0 {
			wait := time.Duration(secs) * time.Second
			retry.wait = &wait
		}
		return retry

	case http.StatusNotFound:
		return &NotFoundError{URL: u}
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var apiErr APIError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Details != "" {
		return &apiErr
	}
	return fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
}

// sleep waits for d or until ctx is done. It reports whether the full
// duration elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
