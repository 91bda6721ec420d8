package genre

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// genreLinkPattern identifies anchors that point at a genre chart page.
const genreLinkPattern = "/genre/"

// Link is one entry in the source site's genre directory.
type Link struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// headingSelector matches elements considered headings when recovering a
// display name for a placeholder link.
const headingSelector = "h1, h2, h3, h4"

// placeholder link texts that carry no genre name of their own.
var placeholderTexts = map[string]bool{
	"":           true,
	"view":       true,
	"view all":   true,
	"view chart": true,
	"more":       true,
	"click here": true,
	"»":          true,
}

// ParseDirectoryHTML extracts the genre directory from a rendered genre
// index page. Links are de-duplicated by their trailing id/slug segments;
// display names come from the link text, the nearest preceding heading,
// or the slug itself, in that order.
func ParseDirectoryHTML(html string) ([]Link, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse directory HTML: %w", err)
	}

	seen := make(map[string]bool)
	var links []Link

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		idx := strings.Index(href, genreLinkPattern)
		if idx < 0 {
			return
		}

		// Identity is the numeric-id + slug tail, e.g. "123/shoegaze".
		tail := strings.Trim(href[idx+len(genreLinkPattern):], "/")
		if tail == "" {
			return
		}
		if seen[tail] {
			return
		}
		seen[tail] = true

		slug := tail
		if i := strings.LastIndex(tail, "/"); i >= 0 {
			slug = tail[i+1:]
		}

		name := strings.TrimSpace(s.Text())
		if placeholderTexts[strings.ToLower(name)] {
			name = precedingHeading(s)
		}
		if name == "" {
			name = DisplayName(slug)
		}

		links = append(links, Link{Slug: slug, Name: name, URL: href})
	})

	return links, nil
}

// precedingHeading walks up from the anchor looking for the nearest
// heading that precedes it in document order.
func precedingHeading(s *goquery.Selection) string {
	for cur := s; cur.Length() > 0; cur = cur.Parent() {
		if h := cur.PrevAllFiltered(headingSelector).First(); h.Length() > 0 {
			return strings.TrimSpace(h.Text())
		}
	}
	return ""
}
