package extract

import (
	"regexp"
	"strings"

	"github.com/coolbeans/lexcite/pkg/citation"
	"github.com/coolbeans/lexcite/pkg/reporterdb"
)

// sectionPartPattern matches one more section in a list continuing past
// the token, optionally re-introduced by a marker: ", 778.114" or
// "; and § 778.115". The list inside the token stops at the first
// parenthetical, so continuation parts only exist after one.
var sectionPartPattern = regexp.MustCompile(`^\s*[,;]\s*(?:and\s+|or\s+)?(?:§§?\s*)?(\d(?:[\w.\-]*\w)?(?:\(\w+\))*)`)

// lawPart is one section of a (possibly multi-section) law citation.
type lawPart struct {
	section string
	span    citation.Span
	paren   string // descriptive parenthetical for this part
	extent  int    // end of this part's text including its parenthetical
}

func (b *builder) buildLaw(i int) []citation.Citation {
	tok := b.tokens[i].Token
	law, _ := b.db.LawByAbbrev(tok.Group("lawSource"))
	if tok.Group("sections") == "" {
		return b.buildVolumeLaw(i, law)
	}
	return b.buildTitleLaw(i, law)
}

// buildVolumeLaw handles volume-first sources: "85 Fed. Reg. 12,345".
func (b *builder) buildVolumeLaw(i int, law reporterdb.Law) []citation.Citation {
	tok := b.tokens[i].Token
	c := b.newCitation(citation.KindFullLaw, i)
	c.Metadata.Volume = tok.Group("volume")
	c.Metadata.Page = tok.Group("page")
	c.Metadata.Reporter = tok.Group("lawSource")
	c.Metadata.LawType = string(law.Kind)
	b.scanParentheticals(tok.End, &c)
	return []citation.Citation{c}
}

// buildTitleLaw handles title-first sources ("42 U.S.C. § 1983") and
// expands multi-section lists into sibling citations, one per section,
// each with a span covering exactly its section text.
func (b *builder) buildTitleLaw(i int, law reporterdb.Law) []citation.Citation {
	tok := b.tokens[i].Token
	marker := tok.Group("sectionMarker")
	plural := marker == "§§" || strings.EqualFold(marker, "sections")

	// Locate the section list inside the token. Searching from the
	// marker keeps a section numerically equal to the title ("42
	// U.S.C. § 42") from being found at the title's offset.
	markerRel := strings.Index(tok.Data, marker)
	if markerRel < 0 {
		return nil
	}
	cursor := tok.Start + markerRel + len(marker)
	var parts []lawPart
	for _, raw := range splitList(tok.Group("sections")) {
		off := strings.Index(b.text[cursor:tok.End], raw)
		if off < 0 {
			continue
		}
		span := citation.Span{Start: cursor + off, End: cursor + off + len(raw)}
		parts = append(parts, lawPart{section: raw, span: span, extent: span.End})
		cursor = span.End
	}
	if len(parts) == 0 {
		return nil
	}

	// Consume per-part parentheticals and, after a plural marker, list
	// parts continuing past the token: "§§ 778.113 (method A), 778.114
	// (method B)". Year and publisher parentheticals accumulate at the
	// anchor level and apply to every sibling.
	var anchor citation.Metadata
	limit := b.windowEnd(i)
	for pos := tok.End; ; {
		j := skipSpaces(b.text, pos)
		if content, end, ok := scanParen(b.text, j); ok {
			last := &parts[len(parts)-1]
			b.attachLawParen(content, last, &anchor)
			last.extent = end
			pos = end
			continue
		}
		if !plural || pos >= limit {
			break
		}
		m := sectionPartPattern.FindStringSubmatchIndex(b.text[pos:limit])
		if m == nil {
			break
		}
		span := citation.Span{Start: pos + m[2], End: pos + m[3]}
		parts = append(parts, lawPart{
			section: b.text[span.Start:span.End],
			span:    span,
			extent:  span.End,
		})
		pos = span.End
	}

	group := 0
	if len(parts) > 1 {
		b.siblings++
		group = b.siblings
	}
	cites := make([]citation.Citation, 0, len(parts))
	for _, p := range parts {
		c := b.newCitation(citation.KindFullLaw, i)
		c.Metadata = citation.Metadata{
			Title:         tok.Group("title"),
			Reporter:      tok.Group("lawSource"),
			LawType:       string(law.Kind),
			Section:       p.section,
			Parenthetical: p.paren,
			Year:          anchor.Year,
			YearValue:     anchor.YearValue,
			Month:         anchor.Month,
			Day:           anchor.Day,
			Court:         anchor.Court,
			Publisher:     anchor.Publisher,
		}
		if group != 0 {
			c.Span = p.span
			c.RawText = b.text[p.span.Start:p.span.End]
		}
		c.FullSpan = citation.Span{Start: tok.Start, End: p.extent}
		c.SiblingGroup = group
		cites = append(cites, c)
	}
	return cites
}

// attachLawParen applies the subsection heuristic: a short, purely
// alphanumeric parenthetical that is not a year is part of the section
// number ("1985" + "(3)" reads § 1985(3)); dates and publishers go to
// the anchor metadata; anything else is this part's descriptive
// parenthetical.
func (b *builder) attachLawParen(content string, part *lawPart, anchor *citation.Metadata) {
	t := strings.TrimSpace(content)
	if len(t) <= b.opts.SectionParenThreshold && isAlnum(t) && !yearPattern.MatchString(t) {
		part.section += "(" + t + ")"
		return
	}
	facts := classifyParen(content, b.db)
	if facts.free != "" {
		if part.paren == "" {
			part.paren = facts.free
		}
		return
	}
	facts.apply(anchor)
}

// splitList breaks a matched section list into its parts.
func splitList(s string) []string {
	var parts []string
	for _, piece := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' }) {
		p := strings.TrimSpace(piece)
		p = strings.TrimPrefix(p, "and ")
		p = strings.TrimPrefix(p, "or ")
		p = strings.TrimSpace(p)
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}
