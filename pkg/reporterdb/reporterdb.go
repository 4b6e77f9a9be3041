// Package reporterdb provides the read-only abbreviation tables the
// extraction engine consults: case reporter editions with coverage
// years, statute and regulation sources, journal abbreviations, and
// court abbreviations. The engine never mutates a DB, so one instance
// is safely shared across concurrent extractions.
package reporterdb

import (
	"regexp"
	"sort"
	"strings"
)

// LawKind classifies a statute/regulation source by citation shape.
type LawKind string

const (
	LawCode       LawKind = "code"        // 42 U.S.C. § 1983 (title first)
	LawRegulation LawKind = "regulation"  // 29 C.F.R. § 778.113 (title first)
	LawRegister   LawKind = "register"    // 85 Fed. Reg. 12345 (volume first)
	LawSessionLaw LawKind = "session-law" // 124 Stat. 119 (volume first)
)

// Edition is one dated print run of a reporter series. End == 0 means
// the edition is still publishing.
type Edition struct {
	Abbrev string `json:"abbrev"`
	Series string `json:"series"`
	Start  int    `json:"start,omitempty"`
	End    int    `json:"end,omitempty"`
}

// covers reports whether the edition's date range includes the year.
func (e Edition) covers(year int) bool {
	if year == 0 {
		return false
	}
	if e.Start != 0 && year < e.Start {
		return false
	}
	if e.End != 0 && year > e.End {
		return false
	}
	return true
}

// Law is one statute or regulation source.
type Law struct {
	Abbrev string  `json:"abbrev"`
	Name   string  `json:"name"`
	Kind   LawKind `json:"kind"`
}

// Journal is one law journal.
type Journal struct {
	Abbrev string `json:"abbrev"`
	Name   string `json:"name"`
}

// Tables is the raw input for constructing a DB. Hosts with a larger
// abbreviation corpus build their own Tables; the engine only ever sees
// the resulting DB.
type Tables struct {
	Reporters []Edition
	Laws      []Law
	Journals  []Journal

	// Variants maps nonstandard spellings to canonical abbreviations
	// ("U. S." -> "U.S.").
	Variants map[string]string

	// Courts lists court abbreviations recognized inside citation
	// parentheticals ("9th Cir.", "S.D.N.Y.").
	Courts []string
}

// DB is an immutable abbreviation database.
type DB struct {
	editions map[string][]Edition // abbrev -> editions sharing it
	laws     map[string]Law
	journals map[string]Journal
	variants map[string]string
	courts   map[string]bool

	reporterAbbrevs []string // canonical + variant spellings, for alternation
	lawAbbrevs      map[LawKind][]string
	journalAbbrevs  []string
}

// New builds a DB from the given tables. The tables are copied; later
// mutation of the input does not affect the DB.
func New(t Tables) *DB {
	db := &DB{
		editions: make(map[string][]Edition),
		laws:     make(map[string]Law),
		journals: make(map[string]Journal),
		variants: make(map[string]string),
		courts:   make(map[string]bool),
		lawAbbrevs: map[LawKind][]string{
			LawCode:       nil,
			LawRegulation: nil,
			LawRegister:   nil,
			LawSessionLaw: nil,
		},
	}

	for _, ed := range t.Reporters {
		db.editions[ed.Abbrev] = append(db.editions[ed.Abbrev], ed)
	}
	for abbrev := range db.editions {
		db.reporterAbbrevs = append(db.reporterAbbrevs, abbrev)
	}
	for variant, canonical := range t.Variants {
		db.variants[variant] = canonical
		if _, known := db.editions[canonical]; known {
			db.reporterAbbrevs = append(db.reporterAbbrevs, variant)
		}
	}
	for _, law := range t.Laws {
		db.laws[law.Abbrev] = law
		db.lawAbbrevs[law.Kind] = append(db.lawAbbrevs[law.Kind], law.Abbrev)
	}
	for _, journal := range t.Journals {
		db.journals[journal.Abbrev] = journal
		db.journalAbbrevs = append(db.journalAbbrevs, journal.Abbrev)
	}
	for _, court := range t.Courts {
		db.courts[court] = true
	}

	return db
}

// Editions returns every edition registered under the abbreviation, in
// table order. An abbreviation with more than one edition from distinct
// series is historically ambiguous.
func (db *DB) Editions(abbrev string) []Edition {
	return db.editions[abbrev]
}

// IsAmbiguous reports whether the abbreviation maps to editions of more
// than one reporter series.
func (db *DB) IsAmbiguous(abbrev string) bool {
	eds := db.editions[db.CorrectReporter(abbrev)]
	if len(eds) < 2 {
		return false
	}
	first := eds[0].Series
	for _, ed := range eds[1:] {
		if ed.Series != first {
			return true
		}
	}
	return false
}

// CorrectReporter normalizes a matched reporter string: whitespace runs
// collapse to single spaces, then the variants table maps nonstandard
// spellings to the canonical abbreviation. Unknown strings come back
// unchanged apart from whitespace.
func (db *DB) CorrectReporter(found string) string {
	normalized := strings.Join(strings.Fields(found), " ")
	if canonical, ok := db.variants[normalized]; ok {
		return canonical
	}
	return normalized
}

// GuessEdition resolves an abbreviation (canonical or variant) to a
// single edition. For ambiguous abbreviations the year narrows the
// candidates to editions whose coverage includes it; the guess fails
// unless exactly one edition survives. Unambiguous abbreviations
// resolve without a year.
func (db *DB) GuessEdition(abbrev string, year int) (Edition, bool) {
	eds := db.editions[db.CorrectReporter(abbrev)]
	switch len(eds) {
	case 0:
		return Edition{}, false
	case 1:
		return eds[0], true
	}

	var match Edition
	matches := 0
	for _, ed := range eds {
		if ed.covers(year) {
			match = ed
			matches++
		}
	}
	if matches == 1 {
		return match, true
	}
	return Edition{}, false
}

// LawByAbbrev returns the law source registered under the abbreviation.
func (db *DB) LawByAbbrev(abbrev string) (Law, bool) {
	law, ok := db.laws[db.CorrectReporter(abbrev)]
	return law, ok
}

// JournalByAbbrev returns the journal registered under the abbreviation.
func (db *DB) JournalByAbbrev(abbrev string) (Journal, bool) {
	j, ok := db.journals[db.CorrectReporter(abbrev)]
	return j, ok
}

var (
	circuitCourtPattern  = regexp.MustCompile(`^\d{1,2}(?:st|d|th) Cir\.$`)
	districtCourtPattern = regexp.MustCompile(`^[CEMNSW]\.?D\. ?[A-Z][a-zA-Z.]*$`)
)

// IsCourt reports whether the string names a court: either a table
// entry or a federal circuit/district abbreviation shape.
func (db *DB) IsCourt(s string) bool {
	s = strings.Join(strings.Fields(s), " ")
	if db.courts[s] {
		return true
	}
	return circuitCourtPattern.MatchString(s) || districtCourtPattern.MatchString(s)
}

// ReporterAbbrevs returns every reporter abbreviation and known
// variant spelling, sorted longest first.
func (db *DB) ReporterAbbrevs() []string {
	return sortedCopy(db.reporterAbbrevs)
}

// LawAbbrevs returns the law-source abbreviations of the given kinds,
// sorted longest first.
func (db *DB) LawAbbrevs(kinds ...LawKind) []string {
	var abbrevs []string
	for _, kind := range kinds {
		abbrevs = append(abbrevs, db.lawAbbrevs[kind]...)
	}
	return sortedCopy(abbrevs)
}

// JournalAbbrevs returns every journal abbreviation, sorted longest
// first.
func (db *DB) JournalAbbrevs() []string {
	return sortedCopy(db.journalAbbrevs)
}

// ReporterAlternation returns a regex alternation fragment matching
// every reporter abbreviation and known variant, longest first so the
// regexp engine prefers the most specific spelling.
func (db *DB) ReporterAlternation() string {
	return alternation(db.reporterAbbrevs)
}

// LawAlternation returns a regex alternation fragment for the law
// sources of the given kinds.
func (db *DB) LawAlternation(kinds ...LawKind) string {
	var abbrevs []string
	for _, kind := range kinds {
		abbrevs = append(abbrevs, db.lawAbbrevs[kind]...)
	}
	return alternation(abbrevs)
}

// JournalAlternation returns a regex alternation fragment for every
// journal abbreviation.
func (db *DB) JournalAlternation() string {
	return alternation(db.journalAbbrevs)
}

// sortedCopy orders abbreviations longest first, then lexicographic
// for determinism.
func sortedCopy(abbrevs []string) []string {
	sorted := make([]string, len(abbrevs))
	copy(sorted, abbrevs)
	sort.Slice(sorted, func(i, j int) bool {
		if len(sorted[i]) != len(sorted[j]) {
			return len(sorted[i]) > len(sorted[j])
		}
		return sorted[i] < sorted[j]
	})
	return sorted
}

// alternation quotes and joins abbreviations into a regex fragment,
// longest first so the regexp engine prefers the most specific
// spelling.
func alternation(abbrevs []string) string {
	sorted := sortedCopy(abbrevs)
	quoted := make([]string, 0, len(sorted))
	for _, abbrev := range sorted {
		quoted = append(quoted, regexp.QuoteMeta(abbrev))
	}
	return strings.Join(quoted, "|")
}
