package rakuten

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/pantryscan/backend/internal/domain"
)

// searchEndpointPath is the Ichiba item-search API version in use
const searchEndpointPath = "/IchibaItem/Search/20220601"

// maxErrorBodyBytes caps how much of an error response body is read for logs
const maxErrorBodyBytes = 4096

// Client handles communication with the Rakuten Ichiba item-search API
type Client struct {
	httpClient  *http.Client
	appID       string
	baseURL     string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a new Ichiba API client
func NewClient(appID, baseURL string) *Client {
	// Rakuten allows roughly one request per second per application ID
	limiter := rate.NewLimiter(rate.Limit(1), 3)

	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		appID:       appID,
		baseURL:     baseURL,
		rateLimiter: limiter,
	}
}

// SetDebug toggles verbose request/response logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// debugLog logs only when debug mode is enabled
func (c *Client) debugLog(format string, args ...interface{}) {
	if c.debug {
		log.Printf("[RAKUTEN] "+format, args...)
	}
}

// exponentialBackoff returns the sleep duration before the next retry
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(250<<attempt) * time.Millisecond
}

// readLimitedBody reads at most limit bytes from r
func readLimitedBody(r io.Reader, limit int64) ([]byte, error) {
	return io.ReadAll(io.LimitReader(r, limit))
}

// doRequest executes an HTTP GET request with proper headers and error handling
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "PantryScan/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSearchAPIFailure, err)
	}

	return resp, nil
}

// SearchItems searches Ichiba listings by keyword. Scanned barcodes are
// passed straight through as the keyword, which is how JAN lookups work on
// this API. Zero listings map to domain.ErrProductNotFound.
func (c *Client) SearchItems(ctx context.Context, keyword string) (*domain.IchibaSearchResponse, error) {
	c.debugLog("SearchItems called with keyword: %q", keyword)

	// Build request URL
	endpoint := c.baseURL + searchEndpointPath
	params := url.Values{}
	params.Add("applicationId", c.appID)
	params.Add("format", "json")
	params.Add("keyword", keyword)

	reqURL := fmt.Sprintf("%s?%s", endpoint, params.Encode())

	// Retry up to 3 times for transient failures
	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		// Wait for rate limiter
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		resp, err := c.doRequest(ctx, reqURL)
		if err != nil {
			c.debugLog("request error (attempt %d): %v", attempt, err)
			lastErr = err
			time.Sleep(exponentialBackoff(attempt))
			continue
		}

		body, readErr := readLimitedBody(resp.Body, 1<<20)
		resp.Body.Close()
		if readErr != nil {
			lastErr = fmt.Errorf("%w: reading response: %v", domain.ErrSearchAPIFailure, readErr)
			time.Sleep(exponentialBackoff(attempt))
			continue
		}

		// Retry on 5xx and 429; other 4xx are terminal
		if resp.StatusCode != http.StatusOK {
			if len(body) > maxErrorBodyBytes {
				body = body[:maxErrorBodyBytes]
			}
			c.debugLog("API error (attempt %d) - status: %d, body: %s", attempt, resp.StatusCode, string(body))
			if resp.StatusCode == http.StatusNotFound {
				return nil, domain.ErrProductNotFound
			}
			if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
				lastErr = fmt.Errorf("%w: status %d", domain.ErrSearchAPIFailure, resp.StatusCode)
				time.Sleep(exponentialBackoff(attempt))
				continue
			}
			return nil, fmt.Errorf("%w: status %d", domain.ErrSearchAPIFailure, resp.StatusCode)
		}

		var searchResp domain.IchibaSearchResponse
		if err := json.Unmarshal(body, &searchResp); err != nil {
			return nil, fmt.Errorf("%w: failed to decode response: %v", domain.ErrSearchAPIFailure, err)
		}

		if len(searchResp.Items) == 0 {
			c.debugLog("no listings found for keyword: %q", keyword)
			return nil, domain.ErrProductNotFound
		}

		c.debugLog("found %d listings for keyword: %q", len(searchResp.Items), keyword)
		return &searchResp, nil
	}

	return nil, lastErr
}
