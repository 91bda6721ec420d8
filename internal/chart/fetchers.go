package chart

import (
	"context"
	"errors"

	"github.com/dkaplan/chartlist/internal/browser"
	"github.com/dkaplan/chartlist/internal/proxyfetch"
)

// ChartWaitSelector is the content-presence signal for chart pages: the
// extractor's primary title marker becoming attached.
const ChartWaitSelector = titleSelector

// BrowserFetcher is the tier-1 chart fetcher: render the page in a
// headless browser, then run the shared extraction over the HTML.
type BrowserFetcher struct {
	renderer *browser.Renderer
}

// NewBrowserFetcher wraps a renderer as a chart Fetcher.
func NewBrowserFetcher(r *browser.Renderer) *BrowserFetcher {
	return &BrowserFetcher{renderer: r}
}

// FetchChart renders the chart page and extracts its album list. A 404
// navigation yields an empty list, not an error.
func (f *BrowserFetcher) FetchChart(ctx context.Context, chartURL string) ([]AlbumEntry, error) {
	html, err := f.renderer.Render(ctx, chartURL, ChartWaitSelector)
	if err != nil {
		if errors.Is(err, browser.ErrPageNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return ParseChartHTML(html)
}

// ProxyFetcher is the tier-2 chart fetcher: fetch pre-rendered markup
// through the anti-bot proxy and run the same extraction server-side.
type ProxyFetcher struct {
	client *proxyfetch.Client
}

// NewProxyFetcher wraps a proxy client as a chart Fetcher.
func NewProxyFetcher(c *proxyfetch.Client) *ProxyFetcher {
	return &ProxyFetcher{client: c}
}

// FetchChart fetches through the proxy. A skipped fetch (no API key)
// returns an empty list with no error.
func (f *ProxyFetcher) FetchChart(ctx context.Context, chartURL string) ([]AlbumEntry, error) {
	result, err := f.client.Fetch(ctx, chartURL)
	if err != nil {
		return nil, err
	}
	if result.Skipped || result.HTML == "" {
		return nil, nil
	}
	return ParseChartHTML(result.HTML)
}
