package tokenize

import (
	"sort"
	"strings"

	"github.com/coolbeans/lexcite/pkg/citation"
)

// Segment is one piece of the tokenized document: either a literal text
// run (Token nil) or a token. Concatenating segment texts in order
// reconstructs the input exactly.
type Segment struct {
	Text  string
	Span  citation.Span
	Token *citation.Token
}

// IndexedToken pairs a token with its position in the token stream.
// Builders use the index for bounded neighbor scans.
type IndexedToken struct {
	Index int
	Token citation.Token
}

// candidate is one extractor match before the selection sweep.
type candidate struct {
	start, end int
	order, seq int
	token      citation.Token
}

// Tokenize scans the text with every active extractor and selects the
// surviving tokens: candidates ordered by (start, priority), greedy
// left-to-right, equal starts won by the higher-priority extractor, a
// later start never displacing an earlier match. The result is
// deterministic for a given registry.
func (r *Registry) Tokenize(text string) ([]Segment, []IndexedToken, error) {
	r.mu.RLock()
	extractors := r.extractors
	automaton := r.automaton
	owners := r.anchorOwners
	r.mu.RUnlock()

	if text == "" {
		return nil, nil, nil
	}

	// Prefilter: one pass over the lowercased text decides which
	// anchored extractors can possibly match.
	var active map[*Extractor]bool
	if automaton != nil {
		active = make(map[*Extractor]bool)
		for _, m := range automaton.FindAllOverlapping([]byte(strings.ToLower(text))) {
			for _, e := range owners[m.PatternID] {
				active[e] = true
			}
		}
	}

	var candidates []candidate
	for _, e := range extractors {
		if len(e.Anchors) > 0 && !active[e] {
			continue
		}
		for _, loc := range e.pattern.FindAllStringSubmatchIndex(text, -1) {
			candidates = append(candidates, candidate{
				start: loc[0],
				end:   loc[1],
				order: e.Order,
				seq:   e.seq,
				token: e.tokenAt(text, loc),
			})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].start != candidates[j].start {
			return candidates[i].start < candidates[j].start
		}
		if candidates[i].order != candidates[j].order {
			return candidates[i].order < candidates[j].order
		}
		return candidates[i].seq < candidates[j].seq
	})

	var tokens []IndexedToken
	cursor := 0
	for _, c := range candidates {
		if c.start < cursor {
			continue
		}
		tokens = append(tokens, IndexedToken{Index: len(tokens), Token: c.token})
		cursor = c.end
	}

	segments := buildSegments(text, tokens)
	return segments, tokens, nil
}

// tokenAt builds a token from one submatch location.
func (e *Extractor) tokenAt(text string, loc []int) citation.Token {
	tok := citation.Token{
		Kind:  e.Kind,
		Data:  text[loc[0]:loc[1]],
		Start: loc[0],
		End:   loc[1],
	}

	names := e.pattern.SubexpNames()
	for i, name := range names {
		if name == "" || 2*i+1 >= len(loc) || loc[2*i] < 0 {
			continue
		}
		if tok.Groups == nil {
			tok.Groups = make(map[string]string)
		}
		tok.Groups[name] = text[loc[2*i]:loc[2*i+1]]
	}

	if len(e.Extra) > 0 {
		tok.Extra = make(map[string]string, len(e.Extra))
		for k, v := range e.Extra {
			tok.Extra[k] = v
		}
	}
	return tok
}

// buildSegments interleaves literal runs with the chosen tokens so the
// segments reconstruct the text exactly.
func buildSegments(text string, tokens []IndexedToken) []Segment {
	var segments []Segment
	pos := 0
	for i := range tokens {
		tok := &tokens[i].Token
		if tok.Start > pos {
			segments = append(segments, Segment{
				Text: text[pos:tok.Start],
				Span: citation.Span{Start: pos, End: tok.Start},
			})
		}
		segments = append(segments, Segment{
			Text:  tok.Data,
			Span:  tok.Span(),
			Token: tok,
		})
		pos = tok.End
	}
	if pos < len(text) {
		segments = append(segments, Segment{
			Text: text[pos:],
			Span: citation.Span{Start: pos, End: len(text)},
		})
	}
	return segments
}
