package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/zmb3/spotify/v2"
)

// SpotifyCatalog implements Catalog against the Spotify Web API. The
// http.Client must already carry the user's OAuth token (see the session
// package); the login flow itself lives outside this repository.
type SpotifyCatalog struct {
	client *spotify.Client
}

// NewSpotify creates a SpotifyCatalog over an authenticated HTTP client.
func NewSpotify(httpClient *http.Client) *SpotifyCatalog {
	return &SpotifyCatalog{client: spotify.New(httpClient)}
}

// SearchAlbum looks up an album by artist and title. No match is ("", nil).
func (c *SpotifyCatalog) SearchAlbum(ctx context.Context, artist, album string) (string, error) {
	query := fmt.Sprintf("album:%s artist:%s", album, artist)
	result, err := c.client.Search(ctx, query, spotify.SearchTypeAlbum, spotify.Limit(5))
	if err != nil {
		return "", wrapErr("search album", err)
	}
	if result.Albums == nil || len(result.Albums.Albums) == 0 {
		return "", nil
	}
	return string(result.Albums.Albums[0].ID), nil
}

// ListAlbumTracks returns the album's tracks in catalog order, following
// pagination past the 50-item page size.
func (c *SpotifyCatalog) ListAlbumTracks(ctx context.Context, albumID string) ([]Track, error) {
	page, err := c.client.GetAlbumTracks(ctx, spotify.ID(albumID), spotify.Limit(50))
	if err != nil {
		return nil, wrapErr("list album tracks", err)
	}

	var tracks []Track
	for {
		for _, t := range page.Tracks {
			tracks = append(tracks, Track{
				ID:   string(t.ID),
				Name: t.Name,
				URI:  string(t.URI),
			})
		}
		err = c.client.NextPage(ctx, page)
		if errors.Is(err, spotify.ErrNoMorePages) {
			break
		}
		if err != nil {
			return nil, wrapErr("list album tracks", err)
		}
	}
	return tracks, nil
}

// TrackDetails fetches full track records, chunking ids at the API limit.
func (c *SpotifyCatalog) TrackDetails(ctx context.Context, ids []string) ([]Track, error) {
	var tracks []Track
	for _, chunk := range chunkStrings(ids, TrackDetailsChunkSize) {
		spotifyIDs := make([]spotify.ID, len(chunk))
		for i, id := range chunk {
			spotifyIDs[i] = spotify.ID(id)
		}
		full, err := c.client.GetTracks(ctx, spotifyIDs)
		if err != nil {
			return nil, wrapErr("get track details", err)
		}
		for _, ft := range full {
			if ft == nil {
				continue
			}
			tracks = append(tracks, Track{
				ID:         string(ft.ID),
				Name:       ft.Name,
				URI:        string(ft.URI),
				Popularity: int(ft.Popularity),
			})
		}
	}
	return tracks, nil
}

// CreatePlaylist creates a private playlist for the current user.
func (c *SpotifyCatalog) CreatePlaylist(ctx context.Context, name, description string) (string, error) {
	user, err := c.client.CurrentUser(ctx)
	if err != nil {
		return "", wrapErr("current user", err)
	}
	playlist, err := c.client.CreatePlaylistForUser(ctx, user.ID, name, description, false, false)
	if err != nil {
		return "", wrapErr("create playlist", err)
	}
	return string(playlist.ID), nil
}

// AddTracks appends tracks to a playlist in one call. Callers are
// responsible for chunking at AddTracksChunkSize.
func (c *SpotifyCatalog) AddTracks(ctx context.Context, playlistID string, trackIDs []string) error {
	spotifyIDs := make([]spotify.ID, len(trackIDs))
	for i, id := range trackIDs {
		spotifyIDs[i] = spotify.ID(id)
	}
	_, err := c.client.AddTracksToPlaylist(ctx, spotify.ID(playlistID), spotifyIDs...)
	return wrapErr("add tracks", err)
}

// chunkStrings splits ids into slices of at most size.
func chunkStrings(ids []string, size int) [][]string {
	var chunks [][]string
	for len(ids) > 0 {
		n := size
		if len(ids) < n {
			n = len(ids)
		}
		chunks = append(chunks, ids[:n])
		ids = ids[n:]
	}
	return chunks
}
