package chart

import (
	"context"
	"log"
	"time"

	"github.com/dkaplan/chartlist/internal/genre"
)

// CacheTTL is the freshness window for cached charts.
const CacheTTL = 24 * time.Hour

// Store is the durable chart cache. GetChart returns (nil, nil) when no
// row exists for the key, distinguishing a plain miss from lookup errors.
type Store interface {
	GetChart(ctx context.Context, genreKey string) (*CacheRecord, error)
	UpsertChart(ctx context.Context, result ChartResult) error
}

// Source resolves a chart from the live source site.
type Source interface {
	Resolve(ctx context.Context, chartURL string) Outcome
}

// Service is the cache-fronted chart pipeline: normalize the genre, serve
// a fresh cached chart when one exists, otherwise run the tiered resolver
// and upsert the result.
type Service struct {
	store   Store
	source  Source
	baseURL string
	verbose bool
}

// NewService creates a chart service. baseURL is the source site root.
func NewService(store Store, source Source, baseURL string, verbose bool) *Service {
	return &Service{store: store, source: source, baseURL: baseURL, verbose: verbose}
}

// ChartURL builds the chart page URL for a normalized genre key.
func (s *Service) ChartURL(genreKey string) string {
	return s.baseURL + "/genre/" + genreKey
}

// Chart returns the chart for a free-text genre. A *NotFoundError means
// both tiers produced nothing; a stale cache row is never surfaced as the
// answer in that case, but it is also never deleted.
func (s *Service) Chart(ctx context.Context, rawGenre string) (*Response, error) {
	key := genre.Slugify(rawGenre)
	if key == "" {
		return nil, &InvalidGenreError{Genre: rawGenre}
	}

	rec, err := s.store.GetChart(ctx, key)
	if err != nil {
		// Lookup errors degrade to a miss so acquisition can still run.
		log.Printf("[CACHE] lookup failed for %q: %v", key, err)
	} else if rec != nil && time.Since(rec.UpdatedAt) < CacheTTL {
		if s.verbose {
			log.Printf("[CACHE] hit for %q (%d albums)", key, len(rec.Result.Albums))
		}
		cachedAt := rec.UpdatedAt
		return &Response{
			Genre:    key,
			Data:     rec.Result.Albums,
			Cached:   true,
			CachedAt: &cachedAt,
		}, nil
	}

	outcome := s.source.Resolve(ctx, s.ChartURL(key))
	if len(outcome.Albums) == 0 {
		return nil, &NotFoundError{Genre: rawGenre}
	}
	if s.verbose {
		log.Printf("[CHART] resolved %q via %s tier (%d albums)", key, outcome.Tier, len(outcome.Albums))
	}

	result := ChartResult{
		GenreKey:  key,
		Albums:    outcome.Albums,
		FetchedAt: time.Now().UTC(),
	}
	if err := s.store.UpsertChart(ctx, result); err != nil {
		// The acquisition succeeded; a failed cache write is not fatal.
		log.Printf("[CACHE] upsert failed for %q: %v", key, err)
	}

	fetchedAt := result.FetchedAt
	return &Response{
		Genre:     key,
		Data:      result.Albums,
		Cached:    false,
		FetchedAt: &fetchedAt,
	}, nil
}
