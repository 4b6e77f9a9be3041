// Package resolve groups extracted citations by the authority they
// denote. A single left-to-right pass over a filtered, document-ordered
// citation list mints a Resource for every full citation and binds each
// short form back to the Resource its antecedent context identifies.
// Citations that cannot be bound are left out of the result rather than
// reported as errors.
package resolve

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/coolbeans/lexcite/pkg/citation"
)

// maxIDPageDelta bounds how far past an authority's first page an
// "id. at N" pin cite may point and still bind to that authority.
const maxIDPageDelta = 150

// Context carries the state of one resolution pass: the resources
// minted so far, the full case citations available as antecedent
// candidates, and the chain pointers id-style forms bind through.
// Replacement per-kind funcs receive the Context and may consult all of
// it.
type Context struct {
	res     *Resolutions
	fulls   []Resolved // full case citations, document order
	last    *Resolved  // most recent resolution; nil after a failed one
	lastLaw *Resolved  // most recent full law citation
	nextID  int
}

// Mint creates a new Resource defined by the given authority citation.
func (ctx *Context) Mint(authority citation.Citation) Resource {
	ctx.nextID++
	r := Resource{id: ctx.nextID}
	ctx.res.authorities[r] = authority
	return r
}

// FullCases returns the full case citations resolved so far, in
// document order.
func (ctx *Context) FullCases() []Resolved { return ctx.fulls }

// Last returns the most recent resolution, or nil when none exists yet
// or an unresolved citation broke the chain.
func (ctx *Context) Last() *Resolved { return ctx.last }

// LastLaw returns the most recent full law resolution, or nil.
func (ctx *Context) LastLaw() *Resolved { return ctx.lastLaw }

// Authority returns the defining citation for a minted Resource.
func (ctx *Context) Authority(r Resource) (citation.Citation, bool) {
	c, ok := ctx.res.authorities[r]
	return c, ok
}

// Func resolves one citation against the pass state. The boolean is
// false when the citation cannot be bound to any authority.
type Func func(*Context, citation.Citation) (Resource, bool)

// Resolver resolves citations to Resources. Every per-kind step can be
// replaced individually; nil fields fall back to the package defaults.
// A host backing resolution with a store wraps the default it needs and
// leaves the rest alone.
type Resolver struct {
	ShortCase Func
	Supra     Func
	Reference Func
	ID        Func
}

// Resolve runs one pass using the default per-kind steps.
func Resolve(cites []citation.Citation) *Resolutions {
	return Resolver{}.Resolve(cites)
}

// Resolve groups citations by the authority they denote. The input must
// be in document order; out-of-order input yields silently incomplete
// groups, not an error.
func (r Resolver) Resolve(cites []citation.Citation) *Resolutions {
	shortCase := fallback(r.ShortCase, DefaultShortCase)
	supra := fallback(r.Supra, DefaultSupra)
	reference := fallback(r.Reference, DefaultReference)
	id := fallback(r.ID, DefaultID)

	ctx := &Context{res: newResolutions()}
	for _, c := range cites {
		var (
			res Resource
			ok  bool
		)
		switch {
		case c.Kind.IsFull():
			res, ok = ctx.Mint(c), true
		case c.Kind == citation.KindShortCase:
			res, ok = shortCase(ctx, c)
		case c.Kind == citation.KindSupra:
			res, ok = supra(ctx, c)
		case c.Kind == citation.KindReference:
			res, ok = reference(ctx, c)
		case c.Kind == citation.KindID:
			res, ok = id(ctx, c)
		}
		if !ok {
			// A failed link breaks the chain: a later "id." must not
			// silently bind across it.
			ctx.last = nil
			continue
		}
		ctx.res.add(res, c)
		rv := Resolved{Citation: c, Resource: res}
		ctx.last = &rv
		switch c.Kind {
		case citation.KindFullCase:
			ctx.fulls = append(ctx.fulls, rv)
		case citation.KindFullLaw:
			ctx.lastLaw = &rv
		}
	}
	return ctx.res
}

func fallback(f, def Func) Func {
	if f == nil {
		return def
	}
	return f
}

// DefaultShortCase resolves a short-form case citation. Prior full
// cases with the same corrected reporter and volume form the candidate
// set; a single distinct candidate binds immediately, and otherwise the
// antecedent text narrows the set by party name.
func DefaultShortCase(ctx *Context, c citation.Citation) (Resource, bool) {
	var candidates []Resolved
	for _, f := range ctx.FullCases() {
		m := f.Citation.Metadata
		if m.Reporter == c.Metadata.Reporter && m.Volume == c.Metadata.Volume {
			candidates = append(candidates, f)
		}
	}
	if res, ok := uniqueResource(candidates); ok {
		return res, true
	}
	return narrowByAntecedent(candidates, c.Metadata.Antecedent)
}

// DefaultSupra resolves a supra citation by antecedent party-name match
// over all prior full cases, with no reporter or volume prefilter.
func DefaultSupra(ctx *Context, c citation.Citation) (Resource, bool) {
	return narrowByAntecedent(ctx.FullCases(), c.Metadata.Antecedent)
}

// DefaultReference resolves a bare case-name mention by matching its
// recovered name against every string metadata value of each prior full
// case. Exactly one matching case binds; zero or several fail.
func DefaultReference(ctx *Context, c citation.Citation) (Resource, bool) {
	name := referenceName(c.Metadata)
	if name == "" {
		return Resource{}, false
	}
	var matched []Resolved
	for _, cand := range ctx.FullCases() {
		if hasMetadataValue(cand.Citation.Metadata, name) {
			matched = append(matched, cand)
		}
	}
	return uniqueResource(matched)
}

// DefaultID resolves an id citation against the immediately preceding
// resolution. A numeric pin cite must stay within maxIDPageDelta pages
// of the authority's own first page; a section substitution instead
// forks a sibling provision of the last full law.
func DefaultID(ctx *Context, c citation.Citation) (Resource, bool) {
	if c.Metadata.Section != "" {
		return resolveSectionID(ctx, c)
	}
	last := ctx.Last()
	if last == nil {
		return Resource{}, false
	}
	page, ok := leadingInt(c.Metadata.PinCite)
	if !ok {
		return last.Resource, true
	}
	auth, ok := ctx.Authority(last.Resource)
	if !ok {
		return last.Resource, true
	}
	base, ok := leadingInt(auth.Metadata.Page)
	if !ok {
		return last.Resource, true
	}
	if page < base || page > base+maxIDPageDelta {
		return Resource{}, false
	}
	return last.Resource, true
}

// resolveSectionID handles "Id. § N". The same section as the authority
// in effect stays on it; a different section of the last full law's
// source is a distinct authority, so its defining citation is
// synthesized from the anchoring full law and minted fresh. The anchor
// itself stays the chain's origin: a following "Id. § M" forks from the
// full law again, not from the synthesized sibling.
func resolveSectionID(ctx *Context, c citation.Citation) (Resource, bool) {
	sec := c.Metadata.Section
	if last := ctx.Last(); last != nil {
		if auth, ok := ctx.Authority(last.Resource); ok && auth.Metadata.Section == sec {
			return last.Resource, true
		}
	}
	law := ctx.LastLaw()
	if law == nil {
		return Resource{}, false
	}
	if law.Citation.Metadata.Section == sec {
		return law.Resource, true
	}
	clone := law.Citation
	clone.Metadata.Section = sec
	clone.Metadata.PinCite = ""
	clone.Index = -1
	clone.SiblingGroup = 0
	return ctx.Mint(clone), true
}

// uniqueResource reports the single distinct Resource among candidates.
func uniqueResource(candidates []Resolved) (Resource, bool) {
	var res Resource
	for _, cand := range candidates {
		if res.IsZero() {
			res = cand.Resource
			continue
		}
		if cand.Resource != res {
			return Resource{}, false
		}
	}
	return res, !res.IsZero()
}

// narrowByAntecedent keeps the candidates whose party names contain the
// antecedent text, comparing with punctuation stripped. Exactly one
// surviving Resource binds.
func narrowByAntecedent(candidates []Resolved, antecedent string) (Resource, bool) {
	ante := stripPunct(antecedent)
	if ante == "" {
		return Resource{}, false
	}
	var matched []Resolved
	for _, cand := range candidates {
		if matchesParty(cand.Citation.Metadata, ante) {
			matched = append(matched, cand)
		}
	}
	return uniqueResource(matched)
}

// matchesParty reports whether the stripped antecedent occurs in the
// candidate's party names. The joined case name stands in when neither
// party was recovered separately, as in In re and Ex parte styles.
func matchesParty(m citation.Metadata, ante string) bool {
	if p := stripPunct(m.Plaintiff); p != "" && strings.Contains(p, ante) {
		return true
	}
	if d := stripPunct(m.Defendant); d != "" && strings.Contains(d, ante) {
		return true
	}
	if m.Plaintiff == "" && m.Defendant == "" {
		if n := stripPunct(m.CaseName); n != "" && strings.Contains(n, ante) {
			return true
		}
	}
	return false
}

// referenceName returns the first non-empty name field a reference
// citation carries, punctuation-stripped.
func referenceName(m citation.Metadata) string {
	for _, s := range []string{m.Plaintiff, m.Defendant, m.CaseName} {
		if v := stripPunct(s); v != "" {
			return v
		}
	}
	return ""
}

// hasMetadataValue reports whether any string metadata field of m
// equals name after punctuation stripping.
func hasMetadataValue(m citation.Metadata, name string) bool {
	values := []string{
		m.Plaintiff, m.Defendant, m.CaseName,
		m.PinCite, m.Section, m.Chapter, m.Title, m.Volume, m.Page,
		m.Reporter, m.ReporterFound, m.Journal, m.LawType,
		m.Edition, m.Year, m.Month, m.Day, m.Court, m.Publisher,
		m.Parenthetical, m.Antecedent,
		m.OpinionFamily, m.OpinionNumber,
	}
	for _, v := range values {
		if v == "" {
			continue
		}
		if stripPunct(v) == name {
			return true
		}
	}
	return false
}

// stripPunct reduces s to letters, digits, and single spaces, dropping
// the punctuation that party names and antecedent guesses disagree on.
func stripPunct(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// leadingInt parses the leading decimal run of s, tolerating thousands
// separators.
func leadingInt(s string) (int, bool) {
	s = strings.ReplaceAll(s, ",", "")
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
