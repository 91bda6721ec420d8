package chart

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	albums []AlbumEntry
	err    error
	calls  int
}

func (f *stubFetcher) FetchChart(ctx context.Context, chartURL string) ([]AlbumEntry, error) {
	f.calls++
	return f.albums, f.err
}

func someAlbums() []AlbumEntry {
	return []AlbumEntry{{Rank: 1, Artist: "Slowdive", Album: "Souvlaki"}}
}

func TestResolver_PrimarySuccessSkipsFallback(t *testing.T) {
	primary := &stubFetcher{albums: someAlbums()}
	fallback := &stubFetcher{albums: someAlbums()}
	r := NewResolver(primary, fallback)

	out := r.Resolve(context.Background(), "https://example.com/genre/shoegaze")

	assert.Equal(t, TierBrowser, out.Tier)
	require.Len(t, out.Albums, 1)
	assert.Equal(t, 0, fallback.calls, "fallback must not run when the primary yields albums")
}

func TestResolver_PrimaryErrorFallsThrough(t *testing.T) {
	primary := &stubFetcher{err: errors.New("chrome crashed")}
	fallback := &stubFetcher{albums: someAlbums()}
	r := NewResolver(primary, fallback)

	out := r.Resolve(context.Background(), "https://example.com/genre/shoegaze")

	assert.Equal(t, TierProxy, out.Tier)
	require.Len(t, out.Albums, 1)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, fallback.calls)
}

func TestResolver_PrimaryEmptyFallsThrough(t *testing.T) {
	primary := &stubFetcher{}
	fallback := &stubFetcher{albums: someAlbums()}
	r := NewResolver(primary, fallback)

	out := r.Resolve(context.Background(), "https://example.com/genre/shoegaze")

	assert.Equal(t, TierProxy, out.Tier)
	assert.Equal(t, 1, fallback.calls)
}

func TestResolver_BothEmptyIsNotAnError(t *testing.T) {
	r := NewResolver(&stubFetcher{}, &stubFetcher{})

	out := r.Resolve(context.Background(), "https://example.com/genre/obscure")

	assert.Equal(t, TierNone, out.Tier)
	assert.Empty(t, out.Albums)
}

func TestResolver_NilFallback(t *testing.T) {
	r := NewResolver(&stubFetcher{}, nil)

	out := r.Resolve(context.Background(), "https://example.com/genre/shoegaze")

	assert.Equal(t, TierNone, out.Tier)
}

func TestResolver_SingleAttemptPerTier(t *testing.T) {
	primary := &stubFetcher{err: errors.New("timeout")}
	fallback := &stubFetcher{err: errors.New("proxy 500")}
	r := NewResolver(primary, fallback)

	r.Resolve(context.Background(), "https://example.com/genre/shoegaze")

	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, fallback.calls)
}
