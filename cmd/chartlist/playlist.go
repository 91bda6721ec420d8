package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dkaplan/chartlist/internal/catalog"
	"github.com/dkaplan/chartlist/internal/chart"
	"github.com/dkaplan/chartlist/internal/observability"
	"github.com/dkaplan/chartlist/internal/playlist"
)

var playlistName string

var playlistCmd = &cobra.Command{
	Use:   "playlist <genre>",
	Short: "Build a playlist from a genre's top albums",
	Long:  "Resolve the genre chart, pick representative tracks per album, and create a Spotify playlist. Requires a saved catalog session.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPlaylist,
}

func init() {
	playlistCmd.Flags().StringVar(&playlistName, "name", "", "Playlist name (default derived from the genre)")
	rootCmd.AddCommand(playlistCmd)
}

func runPlaylist(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	rawGenre := strings.Join(args, " ")

	d, err := buildDeps(ctx)
	if err != nil {
		return err
	}
	defer d.close()

	builder, store, source, err := d.buildPlaylistBuilder(ctx)
	if err != nil {
		return err
	}

	resp, err := d.charts.Chart(ctx, rawGenre)
	if err != nil {
		return err
	}

	name := playlistName
	if name == "" {
		name = "Top " + resp.Genre + " Albums"
	}
	result, err := builder.Build(ctx, name, "Built by chartlist from the "+resp.Genre+" chart", resp.Data)
	if err != nil {
		if errors.Is(err, catalog.ErrReauthRequired) {
			return fmt.Errorf("catalog authentication expired, please log in again: %w", err)
		}
		return err
	}

	// Refreshes happen inside the token source; pull the current token
	// back out so the next run starts from it.
	if fresh, tokErr := source.Token(); tokErr == nil {
		store.SetToken(fresh)
	}
	if saveErr := store.Save(); saveErr != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to save session: %v\n", saveErr)
	}

	observability.NewPrinter(os.Stdout).PrintBuildResult(result)
	return nil
}

// unauthenticatedBuilder stands in when no catalog session exists so the
// server can still run its chart endpoints.
type unauthenticatedBuilder struct {
	cause error
}

func (b *unauthenticatedBuilder) Build(context.Context, string, string, []chart.AlbumEntry) (*playlist.BuildResult, error) {
	return nil, fmt.Errorf("%w: %v", catalog.ErrReauthRequired, b.cause)
}
