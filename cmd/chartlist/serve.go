package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/dkaplan/chartlist/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  "Start an HTTP server exposing chart, genre directory, and playlist endpoints.",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	d, err := buildDeps(ctx)
	if err != nil {
		return err
	}
	defer d.close()

	builder, _, _, err := d.buildPlaylistBuilder(ctx)
	var playlists server.PlaylistBuilder
	if err == nil {
		playlists = builder
	}
	// Without a catalog session the chart and genre endpoints still
	// work; playlist builds report the missing session.
	if playlists == nil {
		playlists = &unauthenticatedBuilder{cause: err}
	}

	port := servePort
	if port == 0 {
		port = d.cfg.Port
	}

	srv := server.New(server.Config{
		Port:      port,
		Charts:    d.charts,
		Genres:    d.genres,
		Playlists: playlists,
		DB:        d.database,
	})
	return srv.Start()
}
