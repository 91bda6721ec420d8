// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/dkaplan/chartlist/internal/chart"
	"github.com/dkaplan/chartlist/internal/genre"
	"github.com/dkaplan/chartlist/internal/playlist"
)

// boxWidth is the default width for formatted output boxes
const boxWidth = 64

// Printer handles formatted output for CLI commands
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintChart outputs a chart response as a ranked album list.
func (p *Printer) PrintChart(resp *chart.Response) {
	var b strings.Builder
	for _, a := range resp.Data {
		fmt.Fprintf(&b, "%2d. %s - %s\n", a.Rank, a.Artist, a.Album)
	}
	source := "live"
	if resp.Cached {
		source = "cached"
	}
	p.printBox(fmt.Sprintf("Top Albums: %s (%s)", resp.Genre, source), strings.TrimRight(b.String(), "\n"))
}

// PrintGenres outputs the genre directory.
func (p *Printer) PrintGenres(genres []genre.Link) {
	var b strings.Builder
	for _, g := range genres {
		fmt.Fprintf(&b, "%-24s %s\n", g.Slug, g.Name)
	}
	p.printBox(fmt.Sprintf("Genres (%d)", len(genres)), strings.TrimRight(b.String(), "\n"))
}

// PrintBuildResult outputs a playlist build summary with its warnings.
func (p *Printer) PrintBuildResult(result *playlist.BuildResult) {
	var b strings.Builder
	fmt.Fprintf(&b, "Playlist: %s\n", result.PlaylistID)
	fmt.Fprintf(&b, "Tracks added: %d\n", result.TrackCount)
	for _, w := range result.Warnings {
		fmt.Fprintf(&b, "warning: %s\n", w)
	}
	p.printBox("Playlist Build", strings.TrimRight(b.String(), "\n"))
}
