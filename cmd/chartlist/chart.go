package main

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dkaplan/chartlist/internal/observability"
)

var chartCmd = &cobra.Command{
	Use:   "chart <genre>",
	Short: "Fetch the top-albums chart for a genre",
	Long:  "Resolve the ranked album chart for a genre, serving from the durable cache when fresh.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runChart,
}

func init() {
	rootCmd.AddCommand(chartCmd)
}

func runChart(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	d, err := buildDeps(ctx)
	if err != nil {
		return err
	}
	defer d.close()

	resp, err := d.charts.Chart(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}

	observability.NewPrinter(os.Stdout).PrintChart(resp)
	return nil
}
