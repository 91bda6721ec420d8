package chart

import (
	"context"
	"log"
)

// Tier names one acquisition strategy in the fixed fallback order.
type Tier string

const (
	// TierBrowser is the headless-browser render tier.
	TierBrowser Tier = "browser"
	// TierProxy is the rendering-proxy fallback tier.
	TierProxy Tier = "proxy"
	// TierNone means no tier produced albums.
	TierNone Tier = "none"
)

// Fetcher is one tier's chart acquisition: fetch the chart page and
// return its album list. An empty list with a nil error is a valid
// "nothing there" outcome.
type Fetcher interface {
	FetchChart(ctx context.Context, chartURL string) ([]AlbumEntry, error)
}

// Outcome is the tagged result of a tiered resolution.
type Outcome struct {
	Albums []AlbumEntry
	Tier   Tier
}

// Resolver attempts the browser tier, then the proxy tier. Tier errors
// are logged and absorbed; an empty outcome is normal, never an error.
// The proxy tier is never invoked when the browser tier yields albums,
// and there is no retry loop within a tier.
type Resolver struct {
	primary  Fetcher
	fallback Fetcher
}

// NewResolver builds the two-tier resolver.
func NewResolver(primary, fallback Fetcher) *Resolver {
	return &Resolver{primary: primary, fallback: fallback}
}

// Resolve runs the tiers in order and returns the first non-empty result.
func (r *Resolver) Resolve(ctx context.Context, chartURL string) Outcome {
	if albums, err := r.primary.FetchChart(ctx, chartURL); err != nil {
		log.Printf("[RESOLVER] browser tier failed for %s: %v", chartURL, err)
	} else if len(albums) > 0 {
		return Outcome{Albums: albums, Tier: TierBrowser}
	}

	if r.fallback != nil {
		if albums, err := r.fallback.FetchChart(ctx, chartURL); err != nil {
			log.Printf("[RESOLVER] proxy tier failed for %s: %v", chartURL, err)
		} else if len(albums) > 0 {
			return Outcome{Albums: albums, Tier: TierProxy}
		}
	}

	return Outcome{Tier: TierNone}
}
