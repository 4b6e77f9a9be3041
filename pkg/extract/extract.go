// Package extract turns plain or markup legal text into structured
// citation records. The pipeline tokenizes the text, enriches each
// token with context scanned from its neighborhood (case names, pin
// cites, parentheticals), expands multi-section statute citations into
// sibling citations, recovers bare-name references in markup input, and
// filters redundant or ambiguous readings.
//
// Document content never makes extraction fail; only configuration
// errors do. Spans in the result index the exact text that was
// tokenized, so callers can slice it back out verbatim.
package extract

import (
	"fmt"

	"github.com/coolbeans/lexcite/pkg/citation"
	"github.com/coolbeans/lexcite/pkg/clean"
	"github.com/coolbeans/lexcite/pkg/markup"
)

// Citations extracts every citation from text. The zero Options give
// the default pipeline; see Options for the knobs.
func Citations(text string, opts Options) ([]citation.Citation, error) {
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}

	// Markup mode: derive the plain text unless the caller supplied
	// one. Span mapping and emphasis recovery only work when the plain
	// text is the document's own rendering.
	var doc *markup.Document
	if opts.MarkupText != "" {
		d, err := markup.Parse(opts.MarkupText)
		if err != nil {
			return nil, fmt.Errorf("extract: parse markup: %w", err)
		}
		doc = d
		if text == "" {
			if len(opts.CleanSteps) > 0 {
				text = clean.Apply(opts.MarkupText, opts.CleanSteps...)
			} else {
				text = doc.Plain
			}
		}
		if text != doc.Plain {
			doc = nil
		}
	} else if len(opts.CleanSteps) > 0 {
		text = clean.Apply(text, opts.CleanSteps...)
	}

	_, tokens, err := opts.Tokenizer.Tokenize(text)
	if err != nil {
		return nil, fmt.Errorf("extract: tokenize: %w", err)
	}

	b := &builder{
		text:   text,
		tokens: tokens,
		opts:   opts,
		db:     opts.Tokenizer.DB(),
		doc:    doc,
	}
	cites := b.buildAll()
	if doc != nil {
		cites = append(cites, recoverReferences(text, cites)...)
	}

	guessEditions(cites, b.db, opts.Cache)
	cites = filterCitations(cites, opts)

	if doc != nil {
		for i := range cites {
			if ms, ok := doc.ToMarkup(cites[i].Span); ok {
				span := ms
				cites[i].MarkupSpan = &span
			}
		}
	}
	return cites, nil
}

// PlainText returns the text a markup document will be extracted
// against, letting callers line citation spans up with their own copy
// of the input.
func PlainText(markupText string, steps ...clean.Step) (string, error) {
	if len(steps) > 0 {
		return clean.Apply(markupText, steps...), nil
	}
	doc, err := markup.Parse(markupText)
	if err != nil {
		return "", fmt.Errorf("extract: parse markup: %w", err)
	}
	return doc.Plain, nil
}
