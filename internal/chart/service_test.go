package chart

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type spyStore struct {
	rec       *CacheRecord
	getErr    error
	upsertErr error

	gets    int
	upserts []ChartResult
}

func (s *spyStore) GetChart(ctx context.Context, genreKey string) (*CacheRecord, error) {
	s.gets++
	return s.rec, s.getErr
}

func (s *spyStore) UpsertChart(ctx context.Context, result ChartResult) error {
	s.upserts = append(s.upserts, result)
	return s.upsertErr
}

type spySource struct {
	outcome Outcome
	calls   int
	lastURL string
}

func (s *spySource) Resolve(ctx context.Context, chartURL string) Outcome {
	s.calls++
	s.lastURL = chartURL
	return s.outcome
}

func freshRecord(key string) *CacheRecord {
	return &CacheRecord{
		Result: ChartResult{
			GenreKey:  key,
			Albums:    someAlbums(),
			FetchedAt: time.Now().UTC().Add(-time.Hour),
		},
		UpdatedAt: time.Now().UTC().Add(-time.Hour),
	}
}

func TestService_FreshCacheHitSkipsResolver(t *testing.T) {
	store := &spyStore{rec: freshRecord("shoegaze")}
	source := &spySource{outcome: Outcome{Albums: someAlbums(), Tier: TierBrowser}}
	svc := NewService(store, source, "https://example.com", false)

	resp, err := svc.Chart(context.Background(), "Shoegaze")
	require.NoError(t, err)

	assert.True(t, resp.Cached)
	assert.Equal(t, "shoegaze", resp.Genre)
	require.NotNil(t, resp.CachedAt)
	assert.Nil(t, resp.FetchedAt)
	assert.Len(t, resp.Data, 1)
	assert.Equal(t, 0, source.calls, "a fresh cache hit must not touch the source site")
	assert.Empty(t, store.upserts)
}

func TestService_StaleCacheTriggersResolve(t *testing.T) {
	stale := freshRecord("shoegaze")
	stale.UpdatedAt = time.Now().UTC().Add(-CacheTTL - time.Minute)
	store := &spyStore{rec: stale}
	source := &spySource{outcome: Outcome{Albums: someAlbums(), Tier: TierBrowser}}
	svc := NewService(store, source, "https://example.com", false)

	resp, err := svc.Chart(context.Background(), "shoegaze")
	require.NoError(t, err)

	assert.False(t, resp.Cached)
	require.NotNil(t, resp.FetchedAt)
	assert.Equal(t, 1, source.calls)
	require.Len(t, store.upserts, 1)
	assert.Equal(t, "shoegaze", store.upserts[0].GenreKey)
}

func TestService_MissResolvesAndUpserts(t *testing.T) {
	store := &spyStore{}
	source := &spySource{outcome: Outcome{Albums: someAlbums(), Tier: TierProxy}}
	svc := NewService(store, source, "https://example.com", false)

	resp, err := svc.Chart(context.Background(), "Synth Pop")
	require.NoError(t, err)

	assert.Equal(t, "synth-pop", resp.Genre)
	assert.Equal(t, "https://example.com/genre/synth-pop", source.lastURL)
	require.Len(t, store.upserts, 1)
	assert.Equal(t, "synth-pop", store.upserts[0].GenreKey)
	assert.False(t, store.upserts[0].FetchedAt.IsZero())
}

func TestService_EmptyResolveIsNotFound(t *testing.T) {
	store := &spyStore{}
	source := &spySource{outcome: Outcome{Tier: TierNone}}
	svc := NewService(store, source, "https://example.com", false)

	_, err := svc.Chart(context.Background(), "nonexistent-genre")

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "nonexistent-genre", nf.Genre)
	assert.Empty(t, store.upserts, "an empty resolution must not overwrite the cache")
}

func TestService_InvalidGenre(t *testing.T) {
	store := &spyStore{}
	source := &spySource{}
	svc := NewService(store, source, "https://example.com", false)

	_, err := svc.Chart(context.Background(), "!!!")

	var ig *InvalidGenreError
	require.ErrorAs(t, err, &ig)
	assert.Equal(t, 0, store.gets)
	assert.Equal(t, 0, source.calls)
}

func TestService_LookupErrorDegradesToMiss(t *testing.T) {
	store := &spyStore{getErr: errors.New("connection refused")}
	source := &spySource{outcome: Outcome{Albums: someAlbums(), Tier: TierBrowser}}
	svc := NewService(store, source, "https://example.com", false)

	resp, err := svc.Chart(context.Background(), "shoegaze")
	require.NoError(t, err)

	assert.False(t, resp.Cached)
	assert.Equal(t, 1, source.calls)
}

func TestService_UpsertFailureIsNotFatal(t *testing.T) {
	store := &spyStore{upsertErr: errors.New("disk full")}
	source := &spySource{outcome: Outcome{Albums: someAlbums(), Tier: TierBrowser}}
	svc := NewService(store, source, "https://example.com", false)

	resp, err := svc.Chart(context.Background(), "shoegaze")
	require.NoError(t, err)
	assert.Len(t, resp.Data, 1)
}
