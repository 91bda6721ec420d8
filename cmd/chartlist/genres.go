package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/dkaplan/chartlist/internal/observability"
)

var genresCmd = &cobra.Command{
	Use:   "genres",
	Short: "List the source site's genre directory",
	RunE:  runGenres,
}

func init() {
	rootCmd.AddCommand(genresCmd)
}

func runGenres(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	d, err := buildDeps(ctx)
	if err != nil {
		return err
	}
	defer d.close()

	observability.NewPrinter(os.Stdout).PrintGenres(d.genres.Genres(ctx))
	return nil
}
