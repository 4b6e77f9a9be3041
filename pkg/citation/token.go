package citation

// TokenKind classifies the raw match an extractor produced.
type TokenKind string

const (
	// TokenCase is a volume/reporter/page case citation. Short forms
	// ("531 U.S. at 103") carry ExtraShortForm.
	TokenCase TokenKind = "case"

	// TokenLaw is a statute or regulation citation. ExtraLawType holds
	// the law family (code, regulation, register, session-law).
	TokenLaw TokenKind = "law"

	// TokenJournal is a volume/journal/page article citation.
	TokenJournal TokenKind = "journal"

	// TokenSupra is a "supra" back-reference.
	TokenSupra TokenKind = "supra"

	// TokenID is an "id."/"ibid." back-reference, plain or with a
	// law-style section pin cite.
	TokenID TokenKind = "id"

	// TokenSection is a bare section marker ("§ 101") with no source.
	TokenSection TokenKind = "section"

	// TokenStopWord is an introductory signal or case-name stop word
	// ("see", "v.", "in re").
	TokenStopWord TokenKind = "stop-word"

	// TokenDOLOpinion is a Department of Labor opinion letter.
	TokenDOLOpinion TokenKind = "dol-opinion"

	// TokenCaseName is a case-name-only mention: matched ahead of a
	// reporter cite by the case-name extractor, or synthesized by
	// reference recovery for bare mentions.
	TokenCaseName TokenKind = "case-name"
)

// Extra keys attached by extractors.
const (
	ExtraShortForm = "short"    // "true" on short-form case tokens
	ExtraLawType   = "law_type" // code, regulation, register, session-law
)

// Token is one raw extractor match: the matched text, its byte offsets
// in the plain text, and the pattern's named capture groups. Tokens are
// immutable once the tokenizer returns them.
type Token struct {
	Kind   TokenKind         `json:"kind"`
	Data   string            `json:"data"`
	Start  int               `json:"start"`
	End    int               `json:"end"`
	Groups map[string]string `json:"groups,omitempty"`
	Extra  map[string]string `json:"extra,omitempty"`
}

// Span returns the token's byte range.
func (t Token) Span() Span {
	return Span{Start: t.Start, End: t.End}
}

// Group returns the named capture group, or "" if the group did not
// participate in the match.
func (t Token) Group(name string) string {
	return t.Groups[name]
}

// Is reports whether the named Extra flag is set to "true".
func (t Token) Is(key string) bool {
	return t.Extra[key] == "true"
}
