package forum

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	userAgent    = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_12_3) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/56.0.2924.87 Safari/537.36"
	maxPageBytes = 8 << 20

	// The forum is slow and bans aggressive clients.
	requestsPerSecond = 2
	requestBurst      = 4
)

type Client struct {
	http    *http.Client
	limiter *rate.Limiter
}

func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		http:    httpClient,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), requestBurst),
	}
}

// SetRateLimit replaces the request pacing. A limit of rate.Inf disables it.
func (c *Client) SetRateLimit(limit rate.Limit, burst int) {
	c.limiter = rate.NewLimiter(limit, burst)
}

// Get downloads the raw page at pageURL.
func (c *Client) Get(ctx context.Context, pageURL string) (string, error) {
	req, err := c.newRequest(ctx, pageURL)
	if err != nil {
		return "", err
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("wait for request slot: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("get page request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("get page failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return "", fmt.Errorf("read page body: %w", err)
	}
	return string(body), nil
}

func (c *Client) newRequest(ctx context.Context, pageURL string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html")
	return req, nil
}
