package citation

// Span is a half-open [Start, End) byte range into the plain text a
// citation was extracted from.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of bytes the span covers.
func (s Span) Len() int {
	return s.End - s.Start
}

// IsValid reports whether the span is well-formed for a text of the
// given length: 0 <= Start < End <= textLen.
func (s Span) IsValid(textLen int) bool {
	return s.Start >= 0 && s.Start < s.End && s.End <= textLen
}

// Contains reports whether other lies entirely inside s (other may
// equal s).
func (s Span) Contains(other Span) bool {
	return s.Start <= other.Start && other.End <= s.End
}

// StrictlyContains reports whether other lies inside s and the two
// spans are not identical.
func (s Span) StrictlyContains(other Span) bool {
	return s.Contains(other) && s != other
}

// Overlaps reports whether the two spans share at least one byte.
func (s Span) Overlaps(other Span) bool {
	return s.Start < other.End && other.Start < s.End
}

// Text returns the substring of text the span covers. The span must be
// valid for the text.
func (s Span) Text(text string) string {
	return text[s.Start:s.End]
}
