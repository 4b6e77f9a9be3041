package extract

import (
	"strings"

	"github.com/coolbeans/lexcite/pkg/citation"
	"github.com/coolbeans/lexcite/pkg/markup"
	"github.com/coolbeans/lexcite/pkg/reporterdb"
	"github.com/coolbeans/lexcite/pkg/tokenize"
)

// builder enriches raw tokens into citations. Forward scans are
// bounded by the next token so one citation's pin cite never eats the
// next citation's volume; parenthetical scans are exempt because a
// parenthetical may legitimately contain further citations.
type builder struct {
	text     string
	tokens   []tokenize.IndexedToken
	opts     Options
	db       *reporterdb.DB
	doc      *markup.Document // nil without markup input
	siblings int              // last multi-section group id
}

func (b *builder) buildAll() []citation.Citation {
	var cites []citation.Citation
	for i := range b.tokens {
		cites = append(cites, b.build(i)...)
	}
	return cites
}

// build turns one token into zero or more citations. Stop words, bare
// section markers and case-name mentions carry no authority of their
// own and yield nothing.
func (b *builder) build(i int) []citation.Citation {
	tok := b.tokens[i].Token
	switch tok.Kind {
	case citation.TokenCase:
		if tok.Is(citation.ExtraShortForm) {
			return b.buildShortCase(i)
		}
		return b.buildFullCase(i)
	case citation.TokenLaw:
		return b.buildLaw(i)
	case citation.TokenJournal:
		return b.buildJournal(i)
	case citation.TokenSupra:
		return b.buildSupra(i)
	case citation.TokenID:
		return b.buildID(i)
	case citation.TokenDOLOpinion:
		return b.buildDOL(i)
	default:
		return nil
	}
}

func (b *builder) newCitation(kind citation.Kind, i int) citation.Citation {
	tok := b.tokens[i].Token
	return citation.Citation{
		Kind:     kind,
		Token:    tok,
		Index:    b.tokens[i].Index,
		Span:     tok.Span(),
		FullSpan: tok.Span(),
		RawText:  tok.Data,
	}
}

// windowEnd bounds forward scans at the next token.
func (b *builder) windowEnd(i int) int {
	if i+1 < len(b.tokens) {
		return b.tokens[i+1].Token.Start
	}
	return len(b.text)
}

// windowStart bounds backward scans at the previous token.
func (b *builder) windowStart(i int) int {
	if i > 0 {
		return b.tokens[i-1].Token.End
	}
	return 0
}

func (b *builder) buildFullCase(i int) []citation.Citation {
	tok := b.tokens[i].Token
	c := b.newCitation(citation.KindFullCase, i)
	c.Metadata.Volume = tok.Group("volume")
	c.Metadata.ReporterFound = tok.Group("reporter")
	c.Metadata.Reporter = b.db.CorrectReporter(tok.Group("reporter"))
	c.Metadata.Page = tok.Group("page")

	end := b.scanPinCite(tok.End, b.windowEnd(i), &c)
	b.scanParentheticals(end, &c)
	b.recoverCaseName(i, &c)
	return []citation.Citation{c}
}

func (b *builder) buildShortCase(i int) []citation.Citation {
	tok := b.tokens[i].Token
	c := b.newCitation(citation.KindShortCase, i)
	c.Metadata.Volume = tok.Group("volume")
	c.Metadata.ReporterFound = tok.Group("reporter")
	c.Metadata.Reporter = b.db.CorrectReporter(tok.Group("reporter"))
	// The trailing page of an "at" form is the pin cite, not a first
	// page.
	c.Metadata.PinCite = tok.Group("page")
	b.scanParentheticals(tok.End, &c)
	b.recoverAntecedent(i, &c)
	return []citation.Citation{c}
}

func (b *builder) buildJournal(i int) []citation.Citation {
	tok := b.tokens[i].Token
	c := b.newCitation(citation.KindFullJournal, i)
	c.Metadata.Volume = tok.Group("volume")
	c.Metadata.Journal = tok.Group("journal")
	c.Metadata.Page = tok.Group("page")
	end := b.scanPinCite(tok.End, b.windowEnd(i), &c)
	b.scanParentheticals(end, &c)
	return []citation.Citation{c}
}

func (b *builder) buildSupra(i int) []citation.Citation {
	tok := b.tokens[i].Token
	c := b.newCitation(citation.KindSupra, i)
	c.Metadata.PinCite = tok.Group("page")
	b.scanParentheticals(tok.End, &c)
	b.recoverAntecedent(i, &c)
	return []citation.Citation{c}
}

func (b *builder) buildID(i int) []citation.Citation {
	tok := b.tokens[i].Token
	c := b.newCitation(citation.KindID, i)
	if s := tok.Group("sections"); s != "" {
		parts := splitList(s)
		if len(parts) > 0 {
			c.Metadata.Section = parts[0]
		}
	} else {
		c.Metadata.PinCite = tok.Group("page")
	}
	b.scanParentheticals(tok.End, &c)
	return []citation.Citation{c}
}

func (b *builder) buildDOL(i int) []citation.Citation {
	tok := b.tokens[i].Token
	c := b.newCitation(citation.KindDOLOpinion, i)
	c.Metadata.OpinionFamily = tok.Group("family")
	c.Metadata.OpinionNumber = tok.Group("number")
	b.scanParentheticals(tok.End, &c)
	return []citation.Citation{c}
}

// scanPinCite reads a ", 103" style pin cite directly after the core
// match and returns the offset where trailing parentheticals may start.
func (b *builder) scanPinCite(from, limit int, c *citation.Citation) int {
	m := pinCitePattern.FindStringSubmatchIndex(b.text[from:limit])
	if m == nil {
		return from
	}
	c.Metadata.PinCite = b.text[from+m[2] : from+m[3]]
	c.FullSpan.End = from + m[1]
	return from + m[1]
}

// scanParentheticals consumes consecutive parentheticals directly after
// the citation. A sentence period before the parenthesis breaks the
// attachment.
func (b *builder) scanParentheticals(from int, c *citation.Citation) {
	pos := from
	for {
		j := skipSpaces(b.text, pos)
		content, end, ok := scanParen(b.text, j)
		if !ok {
			return
		}
		classifyParen(content, b.db).apply(&c.Metadata)
		c.FullSpan.End = end
		pos = end
	}
}

// recoverCaseName fills the party fields by looking backward from a
// full case citation: an adjacent case-name token first, then the gap
// around a preceding "v." stop word, then "In re" forms, then an
// adjacent markup emphasis.
func (b *builder) recoverCaseName(i int, c *citation.Citation) {
	tok := b.tokens[i].Token
	if i > 0 {
		prev := b.tokens[i-1].Token
		gap := b.text[prev.End:tok.Start]
		switch {
		case prev.Kind == citation.TokenCaseName && adjacentGapPattern.MatchString(gap):
			c.Metadata.Plaintiff = prev.Group("plaintiff")
			c.Metadata.Defendant = prev.Group("defendant")
			c.FullSpan.Start = prev.Start
		case prev.Kind == citation.TokenStopWord && isVersusStop(prev.Data):
			if m := partyGapPattern.FindStringSubmatch(gap); m != nil {
				c.Metadata.Defendant = m[1]
				c.FullSpan.Start = prev.Start
				b.recoverPlaintiff(i-1, c)
			}
		case prev.Kind == citation.TokenStopWord && isInReStop(prev.Data):
			if m := partyGapPattern.FindStringSubmatch(gap); m != nil {
				c.Metadata.CaseName = prev.Data + " " + m[1]
				c.FullSpan.Start = prev.Start
			}
		}
	}
	if c.Metadata.Defendant == "" && c.Metadata.CaseName == "" && b.doc != nil {
		b.emphasisCaseName(c)
	}
	if c.Metadata.CaseName == "" && c.Metadata.Defendant != "" {
		if c.Metadata.Plaintiff != "" {
			c.Metadata.CaseName = c.Metadata.Plaintiff + " v. " + c.Metadata.Defendant
		} else {
			c.Metadata.CaseName = c.Metadata.Defendant
		}
	}
}

// recoverPlaintiff scans backward from the "v." stop word at token v
// for the plaintiff name.
func (b *builder) recoverPlaintiff(v int, c *citation.Citation) {
	stop := b.tokens[v].Token
	lo := 0
	if v > 0 {
		lo = b.tokens[v-1].Token.End
	}
	if stop.Start-lo > maxNameWindow {
		lo = stop.Start - maxNameWindow
	}
	m := partyPattern.FindStringSubmatchIndex(b.text[lo:stop.Start])
	if m == nil {
		return
	}
	raw := b.text[lo+m[2] : lo+m[3]]
	name := stripLeadingNoise(strings.TrimSpace(raw))
	if name == "" {
		return
	}
	c.Metadata.Plaintiff = name
	c.FullSpan.Start = lo + m[2] + strings.LastIndex(raw, name)
}

// recoverAntecedent guesses the party a short form refers back to from
// the words directly before it: "Bush, 531 U.S. at 103".
func (b *builder) recoverAntecedent(i int, c *citation.Citation) {
	tok := b.tokens[i].Token
	lo := b.windowStart(i)
	if tok.Start-lo > maxNameWindow {
		lo = tok.Start - maxNameWindow
	}
	m := antecedentPattern.FindStringSubmatchIndex(b.text[lo:tok.Start])
	if m == nil {
		return
	}
	raw := b.text[lo+m[2] : lo+m[3]]
	name := stripLeadingNoise(strings.TrimSpace(raw))
	if name == "" {
		return
	}
	c.Metadata.Antecedent = name
	c.FullSpan.Start = lo + m[2] + strings.LastIndex(raw, name)
}

// emphasisCaseName uses a markup emphasis ending flush against the
// citation as the case name. This catches names the token patterns
// cannot, like parties starting lowercase or containing commas.
func (b *builder) emphasisCaseName(c *citation.Citation) {
	for k := len(b.doc.Emphases) - 1; k >= 0; k-- {
		e := b.doc.Emphases[k]
		if e.Span.End > c.Span.Start {
			continue
		}
		if !adjacentGapPattern.MatchString(b.text[e.Span.End:c.Span.Start]) {
			return
		}
		name := strings.TrimSuffix(strings.TrimSpace(e.Text), ",")
		if name == "" {
			return
		}
		if p, d, found := strings.Cut(name, " v. "); found {
			c.Metadata.Plaintiff = strings.TrimSpace(p)
			c.Metadata.Defendant = strings.TrimSpace(d)
		} else {
			c.Metadata.CaseName = name
		}
		c.FullSpan.Start = e.Span.Start
		return
	}
}

func isVersusStop(data string) bool {
	return data == "v." || data == "vs."
}

func isInReStop(data string) bool {
	switch strings.ToLower(data) {
	case "in re", "ex parte":
		return true
	default:
		return false
	}
}
