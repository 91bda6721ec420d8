// Package browser renders JavaScript-heavy pages in a headless browser
// and returns the resulting HTML. Extraction itself happens elsewhere,
// over the parsed tree, so the same logic serves the static-parse tier.
package browser

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/chromedp/chromedp"
)

// ErrPageNotFound is returned when navigation observes a 404 response.
var ErrPageNotFound = errors.New("page not found")

const (
	// DefaultNavTimeout bounds navigation.
	DefaultNavTimeout = 30 * time.Second
	// DefaultWaitTimeout bounds the content-presence wait, independent
	// of navigation.
	DefaultWaitTimeout = 10 * time.Second
	// DefaultSettleDelay absorbs client-side rendering races after the
	// wait selector attaches.
	DefaultSettleDelay = 1500 * time.Millisecond
)

// Renderer drives a headless Chrome instance. Each Render call acquires
// an isolated browser context and releases it on every exit path. A
// running render is never cancelled by the caller; it completes or hits
// its own deadlines.
type Renderer struct {
	navTimeout  time.Duration
	waitTimeout time.Duration
	settleDelay time.Duration
	verbose     bool
}

// Options configures a Renderer. Zero fields use defaults.
type Options struct {
	NavTimeout  time.Duration
	WaitTimeout time.Duration
	SettleDelay time.Duration
	Verbose     bool
}

// New creates a Renderer.
func New(opts Options) *Renderer {
	if opts.NavTimeout == 0 {
		opts.NavTimeout = DefaultNavTimeout
	}
	if opts.WaitTimeout == 0 {
		opts.WaitTimeout = DefaultWaitTimeout
	}
	if opts.SettleDelay == 0 {
		opts.SettleDelay = DefaultSettleDelay
	}
	return &Renderer{
		navTimeout:  opts.NavTimeout,
		waitTimeout: opts.WaitTimeout,
		settleDelay: opts.SettleDelay,
		verbose:     opts.Verbose,
	}
}

// Render navigates to url, waits for waitSelector to attach, applies the
// settle delay, and returns the full rendered HTML. The caller's context
// is consulted only before launch; once launched the render runs to its
// own timeouts (derived from context.Background) or completion.
func (r *Renderer) Render(ctx context.Context, url, waitSelector string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if r.verbose {
		log.Printf("[BROWSER] rendering %s", url)
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(),
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	// Navigate under its own timeout and capture the response status.
	navCtx, cancelNav := context.WithTimeout(browserCtx, r.navTimeout)
	defer cancelNav()

	resp, err := chromedp.RunResponse(navCtx, chromedp.Navigate(url))
	if err != nil {
		return "", err
	}
	if resp != nil && resp.Status == http.StatusNotFound {
		return "", ErrPageNotFound
	}

	// Wait for content with a timeout independent of navigation.
	if waitSelector != "" {
		waitCtx, cancelWait := context.WithTimeout(browserCtx, r.waitTimeout)
		err = chromedp.Run(waitCtx, chromedp.WaitReady(waitSelector, chromedp.ByQuery))
		cancelWait()
		if err != nil {
			return "", err
		}
	}

	var html string
	err = chromedp.Run(browserCtx,
		chromedp.Sleep(r.settleDelay),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", err
	}

	if r.verbose {
		log.Printf("[BROWSER] rendered %s: %d bytes", url, len(html))
	}
	return html, nil
}
