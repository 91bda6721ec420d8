package genre

import (
	"context"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DirectoryTTL is how long a fetched genre list stays fresh.
const DirectoryTTL = 24 * time.Hour

// DirectorySource fetches the raw genre list from the source site.
type DirectorySource interface {
	FetchGenres(ctx context.Context, indexURL string) ([]Link, error)
}

// Directory is a single-flight, long-TTL in-process cache of the full
// genre list. A failed refresh keeps serving the previous list
// indefinitely; only a first-run failure yields an empty list.
type Directory struct {
	source   DirectorySource
	indexURL string
	ttl      time.Duration

	mu        sync.RWMutex
	genres    []Link
	fetchedAt time.Time

	group singleflight.Group
}

// NewDirectory creates a Directory backed by the given source.
func NewDirectory(source DirectorySource, indexURL string) *Directory {
	return &Directory{
		source:   source,
		indexURL: indexURL,
		ttl:      DirectoryTTL,
	}
}

// Genres returns the cached genre list, refreshing it when stale.
// Concurrent callers share one in-flight refresh.
func (d *Directory) Genres(ctx context.Context) []Link {
	d.mu.RLock()
	fresh := !d.fetchedAt.IsZero() && time.Since(d.fetchedAt) < d.ttl
	cached := d.genres
	d.mu.RUnlock()

	if fresh {
		return cached
	}

	result, _, _ := d.group.Do("refresh", func() (any, error) {
		return d.refresh(ctx), nil
	})
	return result.([]Link)
}

// refresh fetches the directory and replaces the cache on success. On
// failure (error or empty result) the previous list is kept as
// last-known-good.
func (d *Directory) refresh(ctx context.Context) []Link {
	genres, err := d.source.FetchGenres(ctx, d.indexURL)
	if err != nil {
		log.Printf("[DIRECTORY] refresh failed, serving stale: %v", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if len(genres) > 0 {
		d.genres = genres
		d.fetchedAt = time.Now()
	}
	return d.genres
}
