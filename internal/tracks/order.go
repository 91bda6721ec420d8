package tracks

import (
	"context"
	"log"
	"strings"

	"github.com/dkaplan/chartlist/internal/chart"
)

// AlbumWaitSelector is the content-presence signal for album detail
// pages: the rating table materializing.
const AlbumWaitSelector = "table"

// PageRenderer renders a page and returns its HTML.
type PageRenderer interface {
	Render(ctx context.Context, url, waitSelector string) (string, error)
}

// OrderResolver recovers the community-rating-ordered track name list for
// an album's detail page. It never propagates failure: any error, a 404,
// or an unusable page all produce an empty sequence.
type OrderResolver struct {
	renderer PageRenderer
	baseURL  string
	verbose  bool
}

// NewOrderResolver creates an OrderResolver against the source site root.
func NewOrderResolver(renderer PageRenderer, baseURL string, verbose bool) *OrderResolver {
	return &OrderResolver{renderer: renderer, baseURL: baseURL, verbose: verbose}
}

// RatingOrder returns track names ordered by descending community rating,
// or an empty list. An absent or malformed album path short-circuits with
// no network call.
func (o *OrderResolver) RatingOrder(ctx context.Context, albumPath string) []string {
	if albumPath == "" || !strings.HasPrefix(albumPath, "/") {
		return nil
	}

	html, err := o.renderer.Render(ctx, o.baseURL+albumPath, AlbumWaitSelector)
	if err != nil {
		log.Printf("[TRACKS] failed to render album page %s: %v", albumPath, err)
		return nil
	}

	names, err := chart.ParseTrackRatings(html)
	if err != nil {
		log.Printf("[TRACKS] failed to parse album page %s: %v", albumPath, err)
		return nil
	}
	if o.verbose {
		log.Printf("[TRACKS] %s: %d rated tracks", albumPath, len(names))
	}
	return names
}
