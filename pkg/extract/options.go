package extract

import (
	"fmt"

	"github.com/coolbeans/lexcite/pkg/clean"
	"github.com/coolbeans/lexcite/pkg/tokenize"
)

// OverlapPolicy selects how the filter treats citation spans that
// remain nested after the base redundancy collapse.
type OverlapPolicy string

const (
	// OverlapAll keeps every citation the base rule kept.
	OverlapAll OverlapPolicy = "all"

	// OverlapParentOnly keeps only the outermost citation of each
	// nested group: earliest start, then longest span.
	OverlapParentOnly OverlapPolicy = "parent-only"

	// OverlapChildrenOnly keeps only contained citations, dropping any
	// citation whose span strictly contains another survivor.
	OverlapChildrenOnly OverlapPolicy = "children-only"
)

// defaultSectionParenThreshold bounds the parenthetical length the
// subsection heuristic will fold into a section number.
const defaultSectionParenThreshold = 10

// Options configures one extraction call. The zero value is usable:
// default tokenizer, all overlaps kept, ambiguous citations kept, a
// fresh edition cache per call.
type Options struct {
	// RemoveAmbiguous drops case citations whose reporter abbreviation
	// is historically ambiguous and whose edition the year could not
	// pin down.
	RemoveAmbiguous bool

	// OverlapHandling applies after the base containment collapse.
	OverlapHandling OverlapPolicy

	// Tokenizer overrides the shared default registry.
	Tokenizer *tokenize.Registry

	// MarkupText supplies the original HTML. When set and text is
	// empty, the plain text is derived from the markup; emphasis-based
	// case-name recovery, reference citations and markup span mapping
	// activate. Custom CleanSteps replace the built-in markup
	// rendering, which disables span mapping unless they produce the
	// identical plain text.
	MarkupText string

	// CleanSteps run over the input before tokenization. Spans in the
	// result index the cleaned text.
	CleanSteps []clean.Step

	// SectionParenThreshold overrides the subsection heuristic bound:
	// a parenthetical at most this long and purely alphanumeric is
	// folded into the section number. Zero means the default (10).
	SectionParenThreshold int

	// Cache holds memoized edition guesses. Nil means a fresh cache
	// per call; hosts that parallelize across documents should leave
	// it nil or inject one cache per worker.
	Cache *Cache
}

// withDefaults fills unset options.
func (o Options) withDefaults() Options {
	if o.OverlapHandling == "" {
		o.OverlapHandling = OverlapAll
	}
	if o.Tokenizer == nil {
		o.Tokenizer = tokenize.Default()
	}
	if o.SectionParenThreshold == 0 {
		o.SectionParenThreshold = defaultSectionParenThreshold
	}
	if o.Cache == nil {
		o.Cache = NewCache()
	}
	return o
}

// validate rejects configuration errors. Document content never makes
// extraction fail; bad configuration always does.
func (o Options) validate() error {
	switch o.OverlapHandling {
	case OverlapAll, OverlapParentOnly, OverlapChildrenOnly:
	default:
		return fmt.Errorf("extract: unknown overlap policy %q", o.OverlapHandling)
	}
	return nil
}
