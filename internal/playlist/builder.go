// Package playlist turns a resolved genre chart into a destination
// catalog playlist, best effort per album.
package playlist

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/dkaplan/chartlist/internal/catalog"
	"github.com/dkaplan/chartlist/internal/chart"
	"github.com/dkaplan/chartlist/internal/tracks"
)

// ErrNoTracksResolved means no album yielded a single catalog track; a
// playlist build fails closed only in this case.
var ErrNoTracksResolved = errors.New("no tracks could be resolved for any album")

// DefaultConcurrency bounds concurrent per-album resolution. Album units
// are independent; concurrency here is a throughput option, not a
// correctness requirement.
const DefaultConcurrency = 4

// TrackOrderer supplies the rating-ordered track names for an album page.
type TrackOrderer interface {
	RatingOrder(ctx context.Context, albumPath string) []string
}

// Builder assembles playlists from chart entries.
type Builder struct {
	catalog        catalog.Catalog
	orderer        TrackOrderer
	tracksPerAlbum int
	concurrency    int
	verbose        bool
}

// NewBuilder creates a Builder. Zero tracksPerAlbum or concurrency use
// package defaults.
func NewBuilder(cat catalog.Catalog, orderer TrackOrderer, tracksPerAlbum, concurrency int, verbose bool) *Builder {
	if tracksPerAlbum <= 0 {
		tracksPerAlbum = tracks.DefaultTracksPerAlbum
	}
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Builder{
		catalog:        cat,
		orderer:        orderer,
		tracksPerAlbum: tracksPerAlbum,
		concurrency:    concurrency,
		verbose:        verbose,
	}
}

// BuildResult summarizes a playlist build. Warnings carry per-album and
// per-chunk degradations that did not fail the build.
type BuildResult struct {
	RunID      uuid.UUID `json:"runId"`
	PlaylistID string    `json:"playlistId"`
	TrackCount int       `json:"trackCount"`
	Warnings   []string  `json:"warnings,omitempty"`
}

// albumSelection is one album's resolved track ids, slot-indexed so album
// order survives concurrent resolution.
type albumSelection struct {
	trackIDs []string
	warning  string
}

// Build resolves tracks for every chart entry, creates the playlist, and
// adds the tracks in chunks. Authentication failures propagate; a partial
// add failure leaves the playlist in place and is reported as a warning.
func (b *Builder) Build(ctx context.Context, name, description string, albums []chart.AlbumEntry) (*BuildResult, error) {
	runID := uuid.New()
	if b.verbose {
		log.Printf("[PLAYLIST] build %s: %q across %d albums", runID, name, len(albums))
	}

	selections := make([]albumSelection, len(albums))
	var mu sync.Mutex

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)
	for i, entry := range albums {
		g.Go(func() error {
			sel, err := b.resolveAlbum(gCtx, entry)
			if err != nil {
				return err
			}
			mu.Lock()
			selections[i] = sel
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &BuildResult{RunID: runID}
	var trackIDs []string
	for _, sel := range selections {
		trackIDs = append(trackIDs, sel.trackIDs...)
		if sel.warning != "" {
			result.Warnings = append(result.Warnings, sel.warning)
		}
	}
	if len(trackIDs) == 0 {
		return nil, ErrNoTracksResolved
	}

	playlistID, err := b.catalog.CreatePlaylist(ctx, name, description)
	if err != nil {
		return nil, fmt.Errorf("failed to create playlist: %w", err)
	}
	result.PlaylistID = playlistID

	// The playlist exists from here on; add failures degrade to warnings
	// rather than rolling it back.
	for start := 0; start < len(trackIDs); start += catalog.AddTracksChunkSize {
		end := start + catalog.AddTracksChunkSize
		if end > len(trackIDs) {
			end = len(trackIDs)
		}
		if err := b.catalog.AddTracks(ctx, playlistID, trackIDs[start:end]); err != nil {
			if errors.Is(err, catalog.ErrReauthRequired) {
				return result, err
			}
			log.Printf("[PLAYLIST] build %s: failed to add tracks %d-%d: %v", runID, start+1, end, err)
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("failed to add tracks %d-%d", start+1, end))
			continue
		}
		result.TrackCount += end - start
	}

	return result, nil
}

// resolveAlbum selects tracks for one chart entry. Unmatched albums and
// non-auth catalog errors degrade to an empty selection with a warning.
func (b *Builder) resolveAlbum(ctx context.Context, entry chart.AlbumEntry) (albumSelection, error) {
	albumID, err := b.catalog.SearchAlbum(ctx, entry.Artist, entry.Album)
	if err != nil {
		if errors.Is(err, catalog.ErrReauthRequired) {
			return albumSelection{}, err
		}
		return albumSelection{warning: fmt.Sprintf("search failed for %s - %s", entry.Artist, entry.Album)}, nil
	}
	if albumID == "" {
		return albumSelection{warning: fmt.Sprintf("no catalog match for %s - %s", entry.Artist, entry.Album)}, nil
	}

	catalogTracks, err := b.catalog.ListAlbumTracks(ctx, albumID)
	if err != nil {
		if errors.Is(err, catalog.ErrReauthRequired) {
			return albumSelection{}, err
		}
		return albumSelection{warning: fmt.Sprintf("track listing failed for %s - %s", entry.Artist, entry.Album)}, nil
	}

	ratingOrder := b.orderer.RatingOrder(ctx, entry.AlbumURL)

	sel, err := tracks.SelectTracks(ctx, catalogTracks, ratingOrder, b.tracksPerAlbum, b.catalog.TrackDetails)
	if err != nil {
		return albumSelection{}, err
	}
	if b.verbose {
		log.Printf("[PLAYLIST] %s - %s: %d tracks (%v)", entry.Artist, entry.Album, len(sel.TrackIDs), sel.StageCounts)
	}
	return albumSelection{trackIDs: sel.TrackIDs}, nil
}
