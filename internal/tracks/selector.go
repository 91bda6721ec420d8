package tracks

import (
	"context"
	"errors"
	"log"
	"sort"
	"strings"

	"github.com/dkaplan/chartlist/internal/catalog"
)

// DefaultTracksPerAlbum is the policy default for N.
const DefaultTracksPerAlbum = 3

// popularityProbeLimit caps how many catalog tracks the popularity
// fallback fetches details for.
const popularityProbeLimit = 50

// prefixMatchMinLen is the minimum query length for a prefix match.
const prefixMatchMinLen = 4

// Stage names one selection strategy, in fallback order.
type Stage string

const (
	// StageRatingMatch matches rating-ordered names against the catalog.
	StageRatingMatch Stage = "rating-match"
	// StagePopularity fills remaining slots by catalog popularity.
	StagePopularity Stage = "popularity"
	// StagePad fills remaining slots from original catalog order.
	StagePad Stage = "pad"
)

// Selection is the ordered, deduplicated set of up to N track ids chosen
// for one album, tagged with how many ids each stage contributed.
type Selection struct {
	TrackIDs    []string
	StageCounts map[Stage]int
}

// DetailFetcher supplies popularity-bearing track details for the
// fallback stage.
type DetailFetcher func(ctx context.Context, ids []string) ([]catalog.Track, error)

// namedTrack pairs a normalized name with a track id, preserving
// insertion order for deterministic containment scans.
type namedTrack struct {
	norm string
	id   string
}

// SelectTracks picks up to n representative track ids for an album:
// rating-ordered name matching first, then popularity fallback, then
// padding from catalog order. The result is shorter than n only when the
// catalog itself has fewer tracks. Authentication errors from the detail
// fetcher propagate; other detail-fetch failures degrade to padding.
func SelectTracks(ctx context.Context, catalogTracks []catalog.Track, ratingOrder []string, n int, fetchDetails DetailFetcher) (Selection, error) {
	if n <= 0 {
		n = DefaultTracksPerAlbum
	}
	sel := Selection{StageCounts: make(map[Stage]int)}
	if len(catalogTracks) == 0 {
		return sel, nil
	}

	// Normalized name -> id, first occurrence wins on collision.
	index := make(map[string]string, len(catalogTracks))
	var ordered []namedTrack
	for _, t := range catalogTracks {
		norm := NormalizeName(t.Name)
		if _, exists := index[norm]; !exists {
			index[norm] = t.ID
			ordered = append(ordered, namedTrack{norm: norm, id: t.ID})
		}
	}

	chosen := make(map[string]bool)
	add := func(id string, stage Stage) {
		if id == "" || chosen[id] {
			return
		}
		chosen[id] = true
		sel.TrackIDs = append(sel.TrackIDs, id)
		sel.StageCounts[stage]++
	}

	// Stage 1: rating-ordered name matching. Unmatched names are skipped,
	// not retried against other candidates.
	limit := n
	if len(ratingOrder) < limit {
		limit = len(ratingOrder)
	}
	for _, name := range ratingOrder[:limit] {
		if id := matchName(NormalizeName(name), index, ordered); id != "" {
			add(id, StageRatingMatch)
		}
	}

	// Stage 2: popularity fallback, when matching fell short or there was
	// nothing to match.
	if len(sel.TrackIDs) < n && fetchDetails != nil {
		probe := catalogTracks
		if len(probe) > popularityProbeLimit {
			probe = probe[:popularityProbeLimit]
		}
		ids := make([]string, len(probe))
		for i, t := range probe {
			ids[i] = t.ID
		}
		detailed, err := fetchDetails(ctx, ids)
		if err != nil {
			if errors.Is(err, catalog.ErrReauthRequired) {
				return sel, err
			}
			log.Printf("[TRACKS] popularity fallback failed, padding instead: %v", err)
		} else {
			sort.SliceStable(detailed, func(i, j int) bool {
				return detailed[i].Popularity > detailed[j].Popularity
			})
			for _, t := range detailed {
				if len(sel.TrackIDs) >= n {
					break
				}
				add(t.ID, StagePopularity)
			}
		}
	}

	// Stage 3: pad from original catalog order until n or exhaustion.
	for _, t := range catalogTracks {
		if len(sel.TrackIDs) >= n {
			break
		}
		add(t.ID, StagePad)
	}

	return sel, nil
}

// matchName resolves a normalized rating-ordered name to a catalog track
// id: exact match, then containment, then prefix.
func matchName(query string, index map[string]string, ordered []namedTrack) string {
	if query == "" {
		return ""
	}
	if id, ok := index[query]; ok {
		return id
	}
	// Containment either way, scanning in insertion order. Short names
	// can match unrelated tracks ("live" inside "alive"); that tradeoff
	// is deliberate, it carries real catalogs where titles diverge.
	for _, nt := range ordered {
		if nt.norm == "" {
			continue
		}
		if strings.Contains(nt.norm, query) || strings.Contains(query, nt.norm) {
			return nt.id
		}
	}
	if len(query) >= prefixMatchMinLen {
		for _, nt := range ordered {
			if strings.HasPrefix(nt.norm, query) {
				return nt.id
			}
		}
	}
	return ""
}
