// Package citation defines the data model for extracted legal
// citations: byte spans, raw tokens, the closed set of citation kinds,
// and the metadata recovered around each match. The extraction engine
// in pkg/extract produces these records; pkg/resolve groups them by the
// authority they denote.
package citation

import "strconv"

// Kind classifies a citation. The set is closed: consumers switch over
// it exhaustively rather than type-asserting on an open hierarchy.
type Kind string

const (
	KindFullCase    Kind = "full-case"
	KindShortCase   Kind = "short-case"
	KindFullLaw     Kind = "full-law"
	KindFullJournal Kind = "full-journal"
	KindSupra       Kind = "supra"
	KindID          Kind = "id"
	KindReference   Kind = "reference"
	KindDOLOpinion  Kind = "dol-opinion"
	KindUnknown     Kind = "unknown"
)

// IsFull reports whether the kind denotes a full citation, one that
// identifies its authority on its own and therefore mints a Resource
// during resolution.
func (k Kind) IsFull() bool {
	switch k {
	case KindFullCase, KindFullLaw, KindFullJournal, KindDOLOpinion:
		return true
	default:
		return false
	}
}

// IsShortForm reports whether the kind refers back to an antecedent
// citation rather than identifying an authority on its own.
func (k Kind) IsShortForm() bool {
	switch k {
	case KindShortCase, KindSupra, KindID, KindReference:
		return true
	default:
		return false
	}
}

// Metadata holds the optional fields recovered around a citation match.
// Fields are populated by the builders during the enrichment phase and
// are read-only afterwards.
type Metadata struct {
	// Case-name fields.
	Plaintiff string `json:"plaintiff,omitempty"`
	Defendant string `json:"defendant,omitempty"`
	CaseName  string `json:"case_name,omitempty"` // joined form, used by reference citations

	// Location within the cited authority.
	PinCite string `json:"pin_cite,omitempty"`
	Section string `json:"section,omitempty"`
	Chapter string `json:"chapter,omitempty"`
	Title   string `json:"title,omitempty"`
	Volume  string `json:"volume,omitempty"`
	Page    string `json:"page,omitempty"`

	// Source identification.
	Reporter      string `json:"reporter,omitempty"`       // corrected form
	ReporterFound string `json:"reporter_found,omitempty"` // as matched
	Journal       string `json:"journal,omitempty"`
	LawType       string `json:"law_type,omitempty"`

	// Edition disambiguation for case reporters.
	Edition          string `json:"edition,omitempty"`
	AmbiguousEdition bool   `json:"ambiguous_edition,omitempty"`

	// Date and issuing context, typically from a trailing parenthetical.
	Year      string `json:"year,omitempty"`
	YearValue int    `json:"year_value,omitempty"`
	Month     string `json:"month,omitempty"`
	Day       string `json:"day,omitempty"`
	Court     string `json:"court,omitempty"`
	Publisher string `json:"publisher,omitempty"`

	// Free-text descriptive parenthetical, if any.
	Parenthetical string `json:"parenthetical,omitempty"`

	// Antecedent guess carried by short forms ("Jones, supra").
	Antecedent string `json:"antecedent,omitempty"`

	// Agency opinion letters.
	OpinionFamily string `json:"opinion_family,omitempty"`
	OpinionNumber string `json:"opinion_number,omitempty"`
}

// Citation is one extracted legal-citation record. Span covers the core
// match; FullSpan extends it over recovered context (case name, pin
// cite, parenthetical) and always contains Span. RawText is the exact
// substring Span covers.
type Citation struct {
	Kind  Kind  `json:"kind"`
	Token Token `json:"token"`

	// Index is the citation's position in the tokenizer stream, or -1
	// for citations synthesized outside it (markup references).
	Index int `json:"index"`

	Span     Span   `json:"span"`
	FullSpan Span   `json:"full_span"`
	RawText  string `json:"raw_text"`

	// MarkupSpan maps Span back into the original markup document when
	// extraction ran with markup input.
	MarkupSpan *Span `json:"markup_span,omitempty"`

	Metadata Metadata `json:"metadata"`

	// SiblingGroup links citations produced by one multi-section
	// expansion. Zero means the citation is not part of a group; equal
	// non-zero values mark siblings, which the overlap filter never
	// collapses into each other.
	SiblingGroup int `json:"sibling_group,omitempty"`
}

// MatchedText returns the exact substring of the source text the
// citation's span covers.
func (c *Citation) MatchedText() string {
	return c.RawText
}

// SameSiblingGroup reports whether two citations came from the same
// multi-section expansion.
func (c *Citation) SameSiblingGroup(other *Citation) bool {
	return c.SiblingGroup != 0 && c.SiblingGroup == other.SiblingGroup
}

// ComparisonKey returns the tuple a caller can use to test two
// extraction runs for identical results: kind, span bounds, and the
// stable metadata fields.
func (c *Citation) ComparisonKey() [6]string {
	return [6]string{
		string(c.Kind),
		strconv.Itoa(c.Span.Start) + ":" + strconv.Itoa(c.Span.End),
		c.Metadata.Reporter + c.Metadata.Journal + c.Metadata.LawType,
		c.Metadata.Volume + "|" + c.Metadata.Page + "|" + c.Metadata.Section,
		c.Metadata.PinCite,
		c.Metadata.Year,
	}
}
