// Package main provides the entry point for the chartlist CLI and server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "chartlist",
	Short: "Genre chart scraper and playlist builder",
	Long:  "chartlist resolves ranked album charts for a music genre from the source site and builds Spotify playlists of each album's most representative tracks.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
