package extract

import (
	"sort"
	"strconv"

	"github.com/coolbeans/lexcite/pkg/citation"
	"github.com/coolbeans/lexcite/pkg/reporterdb"
)

// guessEditions resolves reporter editions for case citations, memoized
// by reporter and year. A guess is pure in the database, so one cache
// entry serves every citation of the same reporter and year.
func guessEditions(cites []citation.Citation, db *reporterdb.DB, cache *Cache) {
	for i := range cites {
		c := &cites[i]
		switch c.Kind {
		case citation.KindFullCase, citation.KindShortCase:
		default:
			continue
		}
		rep := c.Metadata.Reporter
		if rep == "" {
			continue
		}
		key := rep + "|" + strconv.Itoa(c.Metadata.YearValue)
		g, ok := cache.get(key)
		if !ok {
			if ed, found := db.GuessEdition(rep, c.Metadata.YearValue); found {
				g = editionGuess{edition: ed.Series}
			} else if db.IsAmbiguous(rep) {
				g = editionGuess{ambiguous: true}
			}
			cache.set(key, g)
		}
		c.Metadata.Edition = g.edition
		c.Metadata.AmbiguousEdition = g.ambiguous
	}
}

// filterCitations collapses redundant readings, prunes ambiguous case
// citations when asked, applies the overlap policy, and restores
// document order.
func filterCitations(cites []citation.Citation, opts Options) []citation.Citation {
	drop := make([]bool, len(cites))

	// A strictly contained span is a redundant reading of the same
	// text, except between siblings of one multi-section expansion.
	for i := range cites {
		for j := range cites {
			if i == j {
				continue
			}
			if cites[i].Span.StrictlyContains(cites[j].Span) && !cites[i].SameSiblingGroup(&cites[j]) {
				drop[j] = true
			}
		}
	}

	if opts.RemoveAmbiguous {
		for i := range cites {
			k := cites[i].Kind
			if (k == citation.KindFullCase || k == citation.KindShortCase) && cites[i].Metadata.AmbiguousEdition {
				drop[i] = true
			}
		}
	}

	// The policy runs over the base survivors so its result does not
	// depend on citation order. Strict containment makes "outermost"
	// unambiguous: the container starts no later and extends no less.
	switch opts.OverlapHandling {
	case OverlapParentOnly, OverlapChildrenOnly:
		base := make([]bool, len(drop))
		copy(base, drop)
		for i := range cites {
			if base[i] {
				continue
			}
			for j := range cites {
				if i == j || base[j] {
					continue
				}
				if cites[i].Span.StrictlyContains(cites[j].Span) {
					if opts.OverlapHandling == OverlapParentOnly {
						drop[j] = true
					} else {
						drop[i] = true
					}
				}
			}
		}
	}

	kept := make([]citation.Citation, 0, len(cites))
	for i := range cites {
		if !drop[i] {
			kept = append(kept, cites[i])
		}
	}
	sortCitations(kept)
	return kept
}

// sortCitations orders citations by document position, then by stream
// position.
func sortCitations(cites []citation.Citation) {
	sort.SliceStable(cites, func(a, b int) bool {
		if cites[a].Span.Start != cites[b].Span.Start {
			return cites[a].Span.Start < cites[b].Span.Start
		}
		return cites[a].Index < cites[b].Index
	})
}
