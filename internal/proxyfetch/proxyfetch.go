// Package proxyfetch fetches pages through a third-party rendering proxy
// when the headless-browser tier is blocked or returns unusable markup.
package proxyfetch

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"
)

// DefaultEndpoint is the rendering proxy's API endpoint.
const DefaultEndpoint = "https://app.scrapingbee.com/api/v1/"

// DefaultTimeout bounds a proxy fetch. Rendering through the proxy is
// slower than driving a local browser, so this is generous.
const DefaultTimeout = 90 * time.Second

// Error represents a transport or status failure while fetching through
// the proxy.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("proxy fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("proxy fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Result is the outcome of a proxy fetch. Skipped is set when the client
// has no API credential and the call was never attempted.
type Result struct {
	HTML    string
	Skipped bool
}

// Client issues single outbound GETs through the rendering proxy,
// requesting JavaScript rendering and premium egress. It never retries.
type Client struct {
	apiKey   string
	endpoint string
	http     *http.Client
	verbose  bool
}

// New creates a proxy client. An empty apiKey produces a client whose
// fetches short-circuit to a skipped result.
func New(apiKey string, verbose bool) *Client {
	return &Client{
		apiKey:   apiKey,
		endpoint: DefaultEndpoint,
		http:     &http.Client{Timeout: DefaultTimeout},
		verbose:  verbose,
	}
}

// SetEndpoint overrides the proxy endpoint. Used by tests.
func (c *Client) SetEndpoint(endpoint string) {
	c.endpoint = endpoint
}

// Fetch retrieves targetURL through the proxy and returns the rendered
// HTML body. Transport errors and non-2xx statuses return an empty
// result and an error; the caller decides whether another tier remains.
func (c *Client) Fetch(ctx context.Context, targetURL string) (*Result, error) {
	if c.apiKey == "" {
		if c.verbose {
			log.Printf("[PROXY] no API key configured, skipping %s", targetURL)
		}
		return &Result{Skipped: true}, nil
	}

	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("url", targetURL)
	params.Set("render_js", "true")
	params.Set("premium_proxy", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return &Result{}, &Error{URL: targetURL, Message: "failed to create request", Cause: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &Result{}, &Error{URL: targetURL, Message: "proxy request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Result{}, &Error{URL: targetURL, Message: fmt.Sprintf("proxy returned HTTP %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Result{}, &Error{URL: targetURL, Message: "failed to read proxy response", Cause: err}
	}

	if c.verbose {
		log.Printf("[PROXY] fetched %s: %d bytes", targetURL, len(body))
	}
	return &Result{HTML: string(body)}, nil
}
