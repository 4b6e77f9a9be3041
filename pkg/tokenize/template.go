package tokenize

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/coolbeans/lexcite/pkg/reporterdb"
)

// Pattern templates carry $placeholders for the fragments that depend
// on the abbreviation database or recur across extractors. Expansion
// happens exactly once, when an extractor is registered; compiled
// patterns never change afterwards.

const (
	fragmentVolume  = `\d{1,4}`
	fragmentPage    = `\d{1,5}`
	fragmentBigPage = `\d{1,3}(?:,\d{3})+|\d{1,6}`

	// Section marker: "§", "§§", "Section", "Sections", "Sec.".
	fragmentSectionMarker = `§§?|[Ss]ections?\b|[Ss]ec\.`

	// One section number: "1983", "778.113", "2000e-2(a)(1)". The core
	// must end on a word character so a sentence period is never
	// swallowed.
	fragmentSection = `\d(?:[\w.\-]*\w)?(?:\(\w+\))*`
)

var placeholderPattern = regexp.MustCompile(`\$[a-zA-Z]+`)

// fragments builds the placeholder table for one abbreviation database.
func fragments(db *reporterdb.DB) map[string]string {
	sectionList := fragmentSection +
		`(?:\s*[,;]\s*(?:and\s+|or\s+)?` + fragmentSection + `)*`

	return map[string]string{
		"$volume":        fragmentVolume,
		"$page":          fragmentPage,
		"$bigPage":       `(?:` + fragmentBigPage + `)`,
		"$sectionMarker": `(?:` + fragmentSectionMarker + `)`,
		"$section":       fragmentSection,
		"$sectionList":   sectionList,
		"$reporter":      `(?:` + db.ReporterAlternation() + `)`,
		"$codeSource":    `(?:` + db.LawAlternation(reporterdb.LawCode, reporterdb.LawRegulation) + `)`,
		"$volumeSource":  `(?:` + db.LawAlternation(reporterdb.LawRegister, reporterdb.LawSessionLaw) + `)`,
		"$journal":       `(?:` + db.JournalAlternation() + `)`,
	}
}

// expandTemplate substitutes every $placeholder in the template from
// the database-derived fragment table. Unknown placeholders are a
// construction-time error.
func expandTemplate(template string, db *reporterdb.DB) (string, error) {
	table := fragments(db)

	var badName string
	expanded := placeholderPattern.ReplaceAllStringFunc(template, func(name string) string {
		fragment, ok := table[name]
		if !ok {
			if badName == "" {
				badName = name
			}
			return name
		}
		return fragment
	})
	if badName != "" {
		return "", fmt.Errorf("unknown placeholder %s in pattern template %q", badName, template)
	}
	return expanded, nil
}

// anchorsFor derives lowercase prefilter anchors from abbreviation
// lists, so database-driven extractors stay in sync with the database
// they were expanded from.
func anchorsFor(abbrevs ...string) []string {
	anchors := make([]string, 0, len(abbrevs))
	for _, abbrev := range abbrevs {
		anchors = append(anchors, strings.ToLower(abbrev))
	}
	return anchors
}
