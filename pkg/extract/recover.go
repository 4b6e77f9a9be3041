package extract

import (
	"sort"
	"strings"

	"github.com/coolbeans/lexcite/pkg/citation"
)

// minReferenceNameLength keeps initials and connector fragments from
// becoming reference sources.
const minReferenceNameLength = 4

// referenceStopNames are parties too generic to anchor a reference.
var referenceStopNames = map[string]bool{
	"united states": true,
	"state":         true,
	"commonwealth":  true,
	"people":        true,
	"government":    true,
	"the court":     true,
}

// recoverReferences finds later bare-name mentions of parties already
// cited in full: "the Gore court" after Bush v. Gore. Mentions are
// literal, word-bounded, must follow the full citation that defined the
// name, and never overlap another citation.
func recoverReferences(text string, cites []citation.Citation) []citation.Citation {
	type source struct {
		field string
		after int // earliest offset a mention may start at
	}
	names := map[string]source{}
	add := func(name, field string, after int) {
		name = strings.TrimSpace(name)
		if len(name) < minReferenceNameLength || referenceStopNames[strings.ToLower(name)] {
			return
		}
		if s, ok := names[name]; !ok || after < s.after {
			names[name] = source{field: field, after: after}
		}
	}
	for _, c := range cites {
		if c.Kind != citation.KindFullCase {
			continue
		}
		add(c.Metadata.Plaintiff, "plaintiff", c.Span.End)
		add(c.Metadata.Defendant, "defendant", c.Span.End)
		add(c.Metadata.CaseName, "case_name", c.Span.End)
	}
	if len(names) == 0 {
		return nil
	}

	// Longest names scan first so a full-name mention is not claimed
	// piecemeal by its parties.
	ordered := make([]string, 0, len(names))
	for n := range names {
		ordered = append(ordered, n)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if len(ordered[i]) != len(ordered[j]) {
			return len(ordered[i]) > len(ordered[j])
		}
		return ordered[i] < ordered[j]
	})

	blocked := make([]citation.Span, 0, len(cites))
	for _, c := range cites {
		blocked = append(blocked, c.FullSpan)
	}

	var refs []citation.Citation
	for _, name := range ordered {
		src := names[name]
		for from := 0; ; {
			idx := strings.Index(text[from:], name)
			if idx < 0 {
				break
			}
			start := from + idx
			end := start + len(name)
			from = end
			span := citation.Span{Start: start, End: end}
			if start < src.after || !wordBounded(text, start, end) || overlapsAny(span, blocked) {
				continue
			}
			md := citation.Metadata{}
			switch src.field {
			case "plaintiff":
				md.Plaintiff = name
			case "defendant":
				md.Defendant = name
			default:
				md.CaseName = name
			}
			refs = append(refs, citation.Citation{
				Kind:     citation.KindReference,
				Token:    citation.Token{Kind: citation.TokenCaseName, Data: name, Start: start, End: end},
				Index:    -1,
				Span:     span,
				FullSpan: span,
				RawText:  name,
				Metadata: md,
			})
			blocked = append(blocked, span)
		}
	}
	return refs
}

func wordBounded(text string, start, end int) bool {
	if start > 0 && isWordByte(text[start-1]) {
		return false
	}
	if end < len(text) && isWordByte(text[end]) {
		return false
	}
	return true
}

func overlapsAny(s citation.Span, spans []citation.Span) bool {
	for _, b := range spans {
		if s.Overlaps(b) {
			return true
		}
	}
	return false
}
