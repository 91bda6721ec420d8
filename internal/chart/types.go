// Package chart implements the genre-chart acquisition pipeline: parsed-tree
// extraction, the tiered resolver, and the cache-fronted chart service.
package chart

import "time"

// AlbumEntry is one ranked album from a genre chart. Rank is the 1-based
// position in source order and is never reassigned after caching.
// AlbumURL is a relative detail-page path used later for track ordering;
// it may be empty.
type AlbumEntry struct {
	Rank     int    `json:"rank"`
	Artist   string `json:"artist"`
	Album    string `json:"album"`
	AlbumURL string `json:"albumUrl,omitempty"`
}

// ChartResult is the resolved chart for one normalized genre key.
type ChartResult struct {
	GenreKey  string       `json:"genreKey"`
	Albums    []AlbumEntry `json:"albums"`
	FetchedAt time.Time    `json:"fetchedAt"`
}

// CacheRecord wraps a stored ChartResult with its write time. A record is
// usable iff now - UpdatedAt < CacheTTL; staleness never deletes it.
type CacheRecord struct {
	Result    ChartResult
	UpdatedAt time.Time
}

// Response is the chart payload handed to the HTTP layer.
type Response struct {
	Genre     string       `json:"genre"`
	Data      []AlbumEntry `json:"data"`
	Cached    bool         `json:"cached"`
	CachedAt  *time.Time   `json:"cachedAt,omitempty"`
	FetchedAt *time.Time   `json:"fetchedAt,omitempty"`
}
