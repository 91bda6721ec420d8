package chart

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// TopAlbumLimit caps the number of albums taken from a chart page.
const TopAlbumLimit = 20

// Chart pages carry paired title/artist markers; album detail links share
// a common path prefix. These are the structural family this extractor
// targets, not a general scraping vocabulary.
const (
	titleSelector    = ".albumTitle"
	artistSelector   = ".artistTitle"
	albumLinkPattern = "/album/"
	// pairDelimiter separates artist from title in fallback anchor text.
	pairDelimiter = " - "
)

var (
	// durationSuffix matches a trailing mm:ss duration on a track name.
	durationSuffix = regexp.MustCompile(`\s+\d+:\d{2}$`)
	numericCell    = regexp.MustCompile(`^\d+$`)
)

// ParseChartHTML extracts the rank-ordered album list from chart-page
// markup. The same implementation serves both the rendered-browser tier
// and the proxy-fetch tier.
func ParseChartHTML(html string) ([]AlbumEntry, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse chart HTML: %w", err)
	}
	return extractChart(doc), nil
}

func extractChart(doc *goquery.Document) []AlbumEntry {
	titles := doc.Find(titleSelector)
	artists := doc.Find(artistSelector)

	var pairs [][2]string
	var urls []string

	switch {
	case titles.Length() == 0 && artists.Length() == 0:
		pairs, urls = anchorFallback(doc)
	case titles.Length() == artists.Length():
		titles.Each(func(i int, t *goquery.Selection) {
			pairs = append(pairs, [2]string{text(artists.Eq(i)), text(t)})
			urls = append(urls, albumHref(t))
		})
	default:
		// Marker counts disagree; trust the longer list and recover the
		// counterpart from the nearest ancestor containing both markers.
		longer, longerIsTitle := titles, true
		if artists.Length() > titles.Length() {
			longer, longerIsTitle = artists, false
		}
		longer.Each(func(_ int, s *goquery.Selection) {
			counterpart := nearestCounterpart(s, longerIsTitle)
			if longerIsTitle {
				pairs = append(pairs, [2]string{text(counterpart), text(s)})
				urls = append(urls, albumHref(s))
			} else {
				pairs = append(pairs, [2]string{text(s), text(counterpart)})
				urls = append(urls, albumHref(counterpart))
			}
		})
	}

	var entries []AlbumEntry
	for i, p := range pairs {
		if len(entries) >= TopAlbumLimit {
			break
		}
		artist, album := p[0], p[1]
		if artist == "" && album == "" {
			continue
		}
		entry := AlbumEntry{Rank: len(entries) + 1, Artist: artist, Album: album}
		if i < len(urls) {
			entry.AlbumURL = urls[i]
		}
		entries = append(entries, entry)
	}
	return entries
}

// nearestCounterpart walks the ancestors of s until one contains the
// opposite marker, then returns that marker element. The marker's text
// and any album link it carries are both recovered from it.
func nearestCounterpart(s *goquery.Selection, sIsTitle bool) *goquery.Selection {
	other := titleSelector
	if sIsTitle {
		other = artistSelector
	}
	for cur := s.Parent(); cur.Length() > 0; cur = cur.Parent() {
		if found := cur.Find(other).First(); found.Length() > 0 {
			return found
		}
	}
	return s.Slice(0, 0)
}

// anchorFallback recovers pairs from album-detail anchors whose visible
// text contains the artist-title delimiter.
func anchorFallback(doc *goquery.Document) ([][2]string, []string) {
	var pairs [][2]string
	var urls []string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if !strings.Contains(href, albumLinkPattern) {
			return
		}
		txt := text(s)
		idx := strings.Index(txt, pairDelimiter)
		if idx < 0 {
			return
		}
		artist := strings.TrimSpace(txt[:idx])
		album := strings.TrimSpace(txt[idx+len(pairDelimiter):])
		pairs = append(pairs, [2]string{artist, album})
		urls = append(urls, href)
	})
	return pairs, urls
}

// albumHref finds the album-detail link for a title element: the element
// itself, a descendant anchor, or an enclosing anchor.
func albumHref(s *goquery.Selection) string {
	if href, ok := s.Attr("href"); ok && strings.Contains(href, albumLinkPattern) {
		return href
	}
	if a := s.Find("a[href*='" + albumLinkPattern + "']").First(); a.Length() > 0 {
		href, _ := a.Attr("href")
		return href
	}
	if a := s.Closest("a[href*='" + albumLinkPattern + "']"); a.Length() > 0 {
		href, _ := a.Attr("href")
		return href
	}
	return ""
}

// ratedTrack is an internal row from an album page's rating table.
type ratedTrack struct {
	name   string
	rating int
}

// ParseTrackRatings extracts the community-rating-ordered track name list
// from album-page markup. An empty result means no usable rating table
// was found, which is a meaningful outcome rather than an error.
func ParseTrackRatings(html string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse album HTML: %w", err)
	}

	var names []string
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		rows := dataRows(table)
		if !isCandidateTrackTable(rows) {
			return true
		}

		var rated []ratedTrack
		for _, cells := range rows {
			rating, err := strconv.Atoi(strings.TrimSpace(cells[2]))
			if err != nil || rating < 0 || rating > 100 {
				continue
			}
			name := strings.TrimSpace(durationSuffix.ReplaceAllString(strings.TrimSpace(cells[1]), ""))
			rated = append(rated, ratedTrack{name: name, rating: rating})
		}
		if len(rated) < 2 {
			return true
		}

		// Descending rating, ties kept in original row order.
		sort.SliceStable(rated, func(i, j int) bool {
			return rated[i].rating > rated[j].rating
		})
		for _, r := range rated {
			names = append(names, r.name)
		}
		return false
	})

	return names, nil
}

// dataRows returns the cell texts of every row with at least three cells.
func dataRows(table *goquery.Selection) [][]string {
	var rows [][]string
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var cells []string
		tr.Find("td").Each(func(_ int, td *goquery.Selection) {
			cells = append(cells, text(td))
		})
		if len(cells) >= 3 {
			rows = append(rows, cells)
		}
	})
	return rows
}

// isCandidateTrackTable applies the structural test for a rating table:
// at least two data rows and a purely numeric first cell on the first row.
func isCandidateTrackTable(rows [][]string) bool {
	if len(rows) < 2 {
		return false
	}
	return numericCell.MatchString(strings.TrimSpace(rows[0][0]))
}

func text(s *goquery.Selection) string {
	return strings.TrimSpace(s.Text())
}
