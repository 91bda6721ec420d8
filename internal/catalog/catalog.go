// Package catalog defines the destination music catalog boundary and its
// Spotify implementation.
package catalog

import "context"

// Track is a destination-catalog track. Popularity is 0..100 and only
// populated by TrackDetails; plain album listings carry a zero value.
type Track struct {
	ID         string
	Name       string
	URI        string
	Popularity int
}

// Catalog is the destination catalog consumed by the pipeline. All
// methods distinguish authentication failures (ErrReauthRequired) from
// other errors so callers can demand re-authentication instead of
// treating an album as unmatched.
type Catalog interface {
	// SearchAlbum returns the catalog album id for an artist/album pair,
	// or "" when no match exists.
	SearchAlbum(ctx context.Context, artist, album string) (string, error)
	// ListAlbumTracks returns the album's full track list in catalog
	// order, paginating internally.
	ListAlbumTracks(ctx context.Context, albumID string) ([]Track, error)
	// TrackDetails returns full track records, including popularity, for
	// the given ids.
	TrackDetails(ctx context.Context, ids []string) ([]Track, error)
	// CreatePlaylist creates a playlist for the authenticated user.
	CreatePlaylist(ctx context.Context, name, description string) (string, error)
	// AddTracks appends tracks to a playlist. Callers chunk at
	// AddTracksChunkSize.
	AddTracks(ctx context.Context, playlistID string, trackIDs []string) error
}

// AddTracksChunkSize is the maximum tracks per add call.
const AddTracksChunkSize = 100

// TrackDetailsChunkSize is the maximum ids per details call.
const TrackDetailsChunkSize = 50
