// Package tokenize turns document text into a stream of typed citation
// tokens. A registry of regex extractors runs over the text; candidate
// matches are ordered by start position and extractor priority, then a
// greedy left-to-right sweep picks the surviving, non-overlapping
// tokens. An Aho-Corasick prefilter over short anchor substrings keeps
// extractors whose vocabulary never appears from scanning at all.
package tokenize

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/coregx/ahocorasick"
	"gopkg.in/fsnotify.v1"

	"github.com/coolbeans/lexcite/pkg/citation"
	"github.com/coolbeans/lexcite/pkg/reporterdb"
)

// Extractor is one registered token pattern. Template holds a regex
// template whose $placeholders expand from the abbreviation database at
// registration; the compiled pattern is immutable afterwards.
type Extractor struct {
	Name     string             `yaml:"name" json:"name"`
	Kind     citation.TokenKind `yaml:"kind" json:"kind"`
	Template string             `yaml:"pattern" json:"pattern"`

	// Anchors are lowercase substrings, at least one of which must
	// occur in the document for the extractor to run. No anchors means
	// the extractor always runs.
	Anchors []string `yaml:"anchors,omitempty" json:"anchors,omitempty"`

	// Extra is copied onto every token the extractor produces.
	Extra map[string]string `yaml:"extra,omitempty" json:"extra,omitempty"`

	// Order ranks extractors: lower runs earlier and wins ties when two
	// candidates start at the same offset. Zero means "after all
	// built-ins", in registration order.
	Order int `yaml:"priority,omitempty" json:"priority,omitempty"`

	pattern *regexp.Regexp
	seq     int // registration sequence, breaks Order ties
}

// Validate checks the fields a pack author must supply.
func (e *Extractor) Validate() error {
	if e.Name == "" {
		return fmt.Errorf("extractor name is required")
	}
	if e.Kind == "" {
		return fmt.Errorf("extractor %q: kind is required", e.Name)
	}
	if e.Template == "" {
		return fmt.Errorf("extractor %q: pattern is required", e.Name)
	}
	for _, anchor := range e.Anchors {
		if anchor == "" {
			return fmt.Errorf("extractor %q: empty anchor", e.Name)
		}
		if anchor != strings.ToLower(anchor) {
			return fmt.Errorf("extractor %q: anchor %q must be lowercase", e.Name, anchor)
		}
	}
	return nil
}

// compile expands the template against the database and compiles it.
func (e *Extractor) compile(db *reporterdb.DB) error {
	expanded, err := expandTemplate(e.Template, db)
	if err != nil {
		return fmt.Errorf("extractor %q: %w", e.Name, err)
	}
	compiled, err := regexp.Compile(expanded)
	if err != nil {
		return fmt.Errorf("extractor %q: compiling pattern: %w", e.Name, err)
	}
	e.pattern = compiled
	return nil
}

// Pattern returns the compiled pattern source, after expansion.
func (e *Extractor) Pattern() string {
	if e.pattern == nil {
		return ""
	}
	return e.pattern.String()
}

// Registry holds the extractor set and its prefilter automaton. A
// registry is safe for concurrent Tokenize calls; registration takes
// the write lock and rebuilds the prefilter.
type Registry struct {
	mu         sync.RWMutex
	db         *reporterdb.DB
	extractors []*Extractor
	nextSeq    int

	automaton    *ahocorasick.Automaton
	anchorOwners [][]*Extractor // automaton pattern id -> extractors sharing the anchor

	// Pack loading state.
	dir       string
	packFiles map[string][]string // pack file path -> extractor names it registered
	watcher   *fsnotify.Watcher
	stopChan  chan struct{}
	onChange  func(event string, pack *Pack)
}

// NewRegistry builds a registry with the built-in extractors expanded
// against the given abbreviation database.
func NewRegistry(db *reporterdb.DB) (*Registry, error) {
	if db == nil {
		return nil, fmt.Errorf("tokenize: nil reporter database")
	}
	r := &Registry{db: db}
	for _, e := range builtinExtractors(db) {
		if err := r.register(e); err != nil {
			return nil, err
		}
	}
	if err := r.rebuild(); err != nil {
		return nil, err
	}
	return r, nil
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// Default returns the shared registry built over the default
// abbreviation database. It is meant to be used as-is; hosts that load
// extractor packs should construct their own registry so the shared
// default stays pristine.
func Default() *Registry {
	defaultRegistryOnce.Do(func() {
		r, err := NewRegistry(reporterdb.Default())
		if err != nil {
			panic("tokenize: building default registry: " + err.Error())
		}
		defaultRegistry = r
	})
	return defaultRegistry
}

// Register validates, compiles and adds an extractor, then rebuilds the
// prefilter. Extractors with Order zero run after every built-in.
func (r *Registry) Register(e *Extractor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.register(e); err != nil {
		return err
	}
	return r.rebuild()
}

// register adds without rebuilding; callers hold the write lock (or, at
// construction, exclusive ownership).
func (r *Registry) register(e *Extractor) error {
	if e == nil {
		return fmt.Errorf("tokenize: nil extractor")
	}
	if err := e.Validate(); err != nil {
		return err
	}
	for _, existing := range r.extractors {
		if existing.Name == e.Name {
			return fmt.Errorf("extractor %q already registered", e.Name)
		}
	}
	if e.pattern == nil {
		if err := e.compile(r.db); err != nil {
			return err
		}
	}
	if e.Order == 0 {
		e.Order = orderCustom
	}
	e.seq = r.nextSeq
	r.nextSeq++
	r.extractors = append(r.extractors, e)
	return nil
}

// Unregister removes an extractor by name and rebuilds the prefilter.
func (r *Registry) Unregister(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, e := range r.extractors {
		if e.Name == name {
			r.extractors = append(r.extractors[:i], r.extractors[i+1:]...)
			return r.rebuild()
		}
	}
	return fmt.Errorf("extractor %q not found", name)
}

// rebuild re-sorts the extractor order and rebuilds the anchor
// automaton. Callers hold the write lock.
func (r *Registry) rebuild() error {
	sort.SliceStable(r.extractors, func(i, j int) bool {
		if r.extractors[i].Order != r.extractors[j].Order {
			return r.extractors[i].Order < r.extractors[j].Order
		}
		return r.extractors[i].seq < r.extractors[j].seq
	})

	anchorIndex := make(map[string]int)
	var anchors []string
	var owners [][]*Extractor
	for _, e := range r.extractors {
		for _, anchor := range e.Anchors {
			idx, ok := anchorIndex[anchor]
			if !ok {
				idx = len(anchors)
				anchorIndex[anchor] = idx
				anchors = append(anchors, anchor)
				owners = append(owners, nil)
			}
			owners[idx] = append(owners[idx], e)
		}
	}

	if len(anchors) == 0 {
		r.automaton = nil
		r.anchorOwners = nil
		return nil
	}

	automaton, err := ahocorasick.NewBuilder().
		AddStrings(anchors).
		SetMatchKind(ahocorasick.LeftmostLongest).
		SetPrefilter(true).
		Build()
	if err != nil {
		return fmt.Errorf("building anchor prefilter: %w", err)
	}
	r.automaton = automaton
	r.anchorOwners = owners
	return nil
}

// List returns the extractors in priority order.
func (r *Registry) List() []*Extractor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Extractor, len(r.extractors))
	copy(out, r.extractors)
	return out
}

// Count returns the number of registered extractors.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.extractors)
}

// DB returns the abbreviation database the registry was built over.
func (r *Registry) DB() *reporterdb.DB {
	return r.db
}
