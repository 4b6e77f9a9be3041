// Package clean provides the text-normalization steps applied to a
// document before citation extraction. Extraction spans index the
// cleaned text, so hosts that need offsets into their original input
// either run the same steps themselves or extract from markup via
// pkg/markup, which tracks the offset correspondence.
package clean

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// Step transforms document text. Steps compose left to right via Apply.
type Step func(string) string

var registry = map[string]Step{
	"html":              HTML,
	"xml":               XML,
	"inline-whitespace": InlineWhitespace,
	"all-whitespace":    AllWhitespace,
	"underscores":       Underscores,
}

// Named returns the built-in step registered under the name. Unknown
// names are a configuration error.
func Named(name string) (Step, error) {
	step, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("clean: unknown step %q", name)
	}
	return step, nil
}

// Steps resolves a list of built-in step names in order.
func Steps(names ...string) ([]Step, error) {
	steps := make([]Step, 0, len(names))
	for _, name := range names {
		step, err := Named(name)
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}
	return steps, nil
}

// Names lists the built-in step names in registration order.
func Names() []string {
	return []string{"html", "xml", "inline-whitespace", "all-whitespace", "underscores"}
}

// Apply runs the steps over the text in order.
func Apply(text string, steps ...Step) string {
	for _, step := range steps {
		text = step(text)
	}
	return text
}

// blockTags are the elements whose close should break the text flow.
// Inline elements (em, i, span) must not split a citation that crosses
// them.
var blockTags = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "ul": true,
	"ol": true, "h1": true, "h2": true, "h3": true, "h4": true,
	"h5": true, "h6": true, "tr": true, "table": true,
	"blockquote": true, "section": true, "article": true,
	"header": true, "footer": true, "center": true,
}

// HTML renders markup to visible text. Script, style, noscript and
// iframe subtrees are dropped; block-level elements emit a newline so
// text from adjacent paragraphs cannot run together into a false match.
func HTML(text string) string {
	doc, err := html.Parse(strings.NewReader(text))
	if err != nil {
		return text
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode && blockTags[n.Data] {
			buf.WriteString("\n")
		}
	}
	walk(doc)

	return buf.String()
}

var (
	xmlTagPattern = regexp.MustCompile(`<[^>]*>`)
	xmlEntities   = strings.NewReplacer(
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&apos;", "'",
		"&#167;", "§",
	)
)

// XML strips tags and decodes the predefined entities. Unlike HTML it
// does not build a tree, so it also serves for fragments that are not
// well-formed documents.
func XML(text string) string {
	return xmlEntities.Replace(xmlTagPattern.ReplaceAllString(text, ""))
}

var inlineSpacePattern = regexp.MustCompile("[ \t ]+")

// InlineWhitespace collapses runs of spaces, tabs and non-breaking
// spaces to a single space. Newlines survive, preserving line structure
// for hosts that segment by line.
func InlineWhitespace(text string) string {
	return inlineSpacePattern.ReplaceAllString(text, " ")
}

var anySpacePattern = regexp.MustCompile(`\s+`)

// AllWhitespace collapses every whitespace run, newlines included, to a
// single space.
func AllWhitespace(text string) string {
	return anySpacePattern.ReplaceAllString(text, " ")
}

var underscorePattern = regexp.MustCompile(`__+`)

// Underscores removes the underscore runs OCR produces for underlined
// case names, which otherwise glue onto party names.
func Underscores(text string) string {
	return underscorePattern.ReplaceAllString(text, "")
}
