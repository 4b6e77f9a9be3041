// Package markup renders an HTML document to the plain text the
// extraction engine runs over, while keeping enough bookkeeping to map
// plain-text spans back to byte offsets in the original markup. It also
// records emphasized runs (em, i, strong, b, u), which case-name
// recovery uses to find party names the token patterns cannot.
package markup

import (
	"sort"
	"strings"

	"golang.org/x/net/html"

	"github.com/coolbeans/lexcite/pkg/citation"
)

// Emphasis is one emphasized run of the document. Span indexes the
// plain rendering, not the markup.
type Emphasis struct {
	Text string        `json:"text"`
	Span citation.Span `json:"span"`
}

// segment maps a run of plain-text bytes onto the markup bytes it was
// rendered from.
type segment struct {
	plainStart  int
	markupStart int
	length      int
}

// Document is a parsed markup document: the original markup, its plain
// rendering, the emphasized runs, and the plain-to-markup offset table.
type Document struct {
	Markup   string
	Plain    string
	Emphases []Emphasis

	segments []segment
}

// blockTags mirror the html clean step: block-level elements break the
// text flow so adjacent paragraphs cannot merge into one false match.
var blockTags = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "ul": true,
	"ol": true, "h1": true, "h2": true, "h3": true, "h4": true,
	"h5": true, "h6": true, "tr": true, "table": true,
	"blockquote": true, "section": true, "article": true,
	"header": true, "footer": true, "center": true,
}

var emphasisTags = map[string]bool{
	"em": true, "i": true, "u": true, "strong": true, "b": true,
}

// Parse renders the markup to plain text and builds the offset table.
// Text runs whose markup position cannot be recovered (entity-decoded
// runs that no longer appear verbatim in the source) stay in the plain
// rendering but map to no markup span.
func Parse(markupText string) (*Document, error) {
	root, err := html.Parse(strings.NewReader(markupText))
	if err != nil {
		return nil, err
	}

	doc := &Document{Markup: markupText}

	var plain strings.Builder
	cursor := 0 // forward-only position in the markup

	var emphasisStack []int // plain offsets where open emphasis elements began

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}

		if n.Type == html.TextNode && n.Data != "" {
			// Locate the decoded text in the raw markup. Only verbatim
			// runs get a segment: entity-decoded text has no
			// byte-for-byte markup counterpart, so it renders unmapped.
			if at := strings.Index(markupText[cursor:], n.Data); at >= 0 {
				doc.segments = append(doc.segments, segment{
					plainStart:  plain.Len(),
					markupStart: cursor + at,
					length:      len(n.Data),
				})
				cursor += at + len(n.Data)
			} else if escaped := html.EscapeString(n.Data); escaped != n.Data {
				if at := strings.Index(markupText[cursor:], escaped); at >= 0 {
					cursor += at + len(escaped)
				}
			}
			plain.WriteString(n.Data)
		}

		emphasized := n.Type == html.ElementNode && emphasisTags[n.Data]
		if emphasized {
			emphasisStack = append(emphasisStack, plain.Len())
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}

		if emphasized {
			start := emphasisStack[len(emphasisStack)-1]
			emphasisStack = emphasisStack[:len(emphasisStack)-1]
			span := citation.Span{Start: start, End: plain.Len()}
			if span.Len() > 0 && strings.TrimSpace(plain.String()[span.Start:span.End]) != "" {
				doc.Emphases = append(doc.Emphases, Emphasis{
					Text: plain.String()[span.Start:span.End],
					Span: span,
				})
			}
		}

		if n.Type == html.ElementNode && blockTags[n.Data] {
			plain.WriteString("\n")
		}
	}
	walk(root)

	doc.Plain = plain.String()
	sort.Slice(doc.Emphases, func(i, j int) bool {
		return doc.Emphases[i].Span.Start < doc.Emphases[j].Span.Start
	})
	return doc, nil
}

// mapStart translates a span start: the offset must lie inside a
// mapped plain-text run.
func (d *Document) mapStart(plainOffset int) (int, bool) {
	for _, seg := range d.segments {
		if plainOffset >= seg.plainStart && plainOffset < seg.plainStart+seg.length {
			return seg.markupStart + (plainOffset - seg.plainStart), true
		}
	}
	return 0, false
}

// mapEnd translates a span end: exclusive, so the offset may sit one
// past a mapped run.
func (d *Document) mapEnd(plainOffset int) (int, bool) {
	for _, seg := range d.segments {
		if plainOffset > seg.plainStart && plainOffset <= seg.plainStart+seg.length {
			return seg.markupStart + (plainOffset - seg.plainStart), true
		}
	}
	return 0, false
}

// ToMarkup maps a plain-text span back to the markup. The mapping fails
// when either endpoint falls in text with no markup source: synthesized
// block breaks or entity-decoded runs.
func (d *Document) ToMarkup(span citation.Span) (citation.Span, bool) {
	start, ok := d.mapStart(span.Start)
	if !ok {
		return citation.Span{}, false
	}
	end, ok := d.mapEnd(span.End)
	if !ok || end <= start {
		return citation.Span{}, false
	}
	return citation.Span{Start: start, End: end}, true
}

// ToPlain maps a markup byte offset to its plain-text offset, when the
// offset lies inside a rendered text run.
func (d *Document) ToPlain(markupOffset int) (int, bool) {
	for _, seg := range d.segments {
		if markupOffset >= seg.markupStart && markupOffset < seg.markupStart+seg.length {
			return seg.plainStart + (markupOffset - seg.markupStart), true
		}
	}
	return 0, false
}
