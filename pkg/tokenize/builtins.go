package tokenize

import (
	"github.com/coolbeans/lexcite/pkg/citation"
	"github.com/coolbeans/lexcite/pkg/reporterdb"
)

// Built-in extractor priorities, spaced so pack authors can interleave
// custom extractors between them. Lower wins ties at the same start
// offset.
const (
	orderStopWord   = 100
	orderDOLOpinion = 200
	orderLawCode    = 300
	orderLawVolume  = 400
	orderFullCase   = 500
	orderShortCase  = 600
	orderJournal    = 700
	orderIDLaw      = 800
	orderIDPlain    = 900
	orderSupra      = 1000
	orderSection    = 1100
	orderCaseName   = 1200
	orderCustom     = 10000
)

// builtinExtractors defines the default token patterns, expanded
// against the given database. Extractors whose vocabulary table is
// empty in the database are omitted.
func builtinExtractors(db *reporterdb.DB) []*Extractor {
	extractors := []*Extractor{
		{
			// Example: "See also", "cf.", "In re", "v.". Signal and
			// boundary words the case-name scans stop at. Periods take
			// no trailing \b: there is no word boundary between "." and
			// a following space.
			Name:  "stop-word",
			Kind:  citation.TokenStopWord,
			Order: orderStopWord,
			Template: `\b(?:[Ss]ee, e\.g\.,|[Ss]ee also\b|[Ss]ee\b|[Aa]ccord\b|[Cc]ompare\b|[Cc]ontra\b|` +
				`[Ii]n re\b|[Ee]x parte\b|[Qq]uoting\b|[Cc]iting\b|[Bb]ut see\b|[Cc]f\.|[Ee]\.g\.|` +
				`aff'd\b|cert\. denied\b|rev'd\b|vs\.|v\.)`,
		},
		{
			// Example: "Opinion Letter FLSA2021-6". The date
			// parenthetical that usually follows is picked up during
			// the build phase.
			Name:     "dol-opinion",
			Kind:     citation.TokenDOLOpinion,
			Order:    orderDOLOpinion,
			Template: `\bOpinion Letter (?P<family>[A-Z]{2,8})(?P<number>\d{4}-\d+)\b`,
			Anchors:  []string{"opinion letter"},
		},
		{
			// Example: "42 U.S.C. § 1983", "29 C.F.R. §§ 778.113,
			// 778.114". Title-first statute and regulation sources; the
			// sections group captures the whole comma/semicolon list
			// for the multi-section expander.
			Name:     "law-code",
			Kind:     citation.TokenLaw,
			Order:    orderLawCode,
			Template: `(?P<title>\d{1,3})\s+(?P<lawSource>$codeSource)\s+(?P<sectionMarker>$sectionMarker)\s*(?P<sections>$sectionList)`,
			Anchors:  anchorsFor(db.LawAbbrevs(reporterdb.LawCode, reporterdb.LawRegulation)...),
		},
		{
			// Example: "85 Fed. Reg. 12,345", "124 Stat. 119".
			// Volume-first register and session-law sources.
			Name:     "law-volume",
			Kind:     citation.TokenLaw,
			Order:    orderLawVolume,
			Template: `(?P<volume>$volume)\s+(?P<lawSource>$volumeSource)\s+(?P<page>$bigPage)\b`,
			Anchors:  anchorsFor(db.LawAbbrevs(reporterdb.LawRegister, reporterdb.LawSessionLaw)...),
		},
		{
			// Example: "531 U.S. 98", "29 F. Supp. 2d 1100".
			Name:     "full-case",
			Kind:     citation.TokenCase,
			Order:    orderFullCase,
			Template: `(?P<volume>$volume)\s+(?P<reporter>$reporter)\s+(?P<page>$page)\b`,
			Anchors:  anchorsFor(db.ReporterAbbrevs()...),
		},
		{
			// Example: "531 U.S. at 103", "531 U.S., at 103".
			Name:     "short-case",
			Kind:     citation.TokenCase,
			Order:    orderShortCase,
			Template: `(?P<volume>$volume)\s+(?P<reporter>$reporter),?\s+at\s+(?P<page>$page)\b`,
			Anchors:  anchorsFor(db.ReporterAbbrevs()...),
			Extra:    map[string]string{citation.ExtraShortForm: "true"},
		},
		{
			// Example: "110 Harv. L. Rev. 689".
			Name:     "journal",
			Kind:     citation.TokenJournal,
			Order:    orderJournal,
			Template: `(?P<volume>$volume)\s+(?P<journal>$journal)\s+(?P<page>$page)\b`,
			Anchors:  anchorsFor(db.JournalAbbrevs()...),
		},
		{
			// Example: "Id. § 778.114", "id. at § 405.1". Runs before
			// the plain id extractor so the section-bearing form wins
			// the shared start offset.
			Name:     "id-law",
			Kind:     citation.TokenID,
			Order:    orderIDLaw,
			Template: `\b(?P<id>[Ii]d\.|[Ii]bid\.)\s+(?:at\s+)?(?P<sectionMarker>§§?)\s*(?P<sections>$sectionList)`,
			Anchors:  []string{"id.", "ibid."},
		},
		{
			// Example: "Id.", "id. at 105", "Ibid."
			Name:     "id",
			Kind:     citation.TokenID,
			Order:    orderIDPlain,
			Template: `\b(?P<id>[Ii]d\.|[Ii]bid\.)(?:,?\s+at\s+(?P<page>\d{1,5}(?:[-–]\d{1,5})?))?`,
			Anchors:  []string{"id.", "ibid."},
		},
		{
			// Example: "supra, at 22", "supra note 4". The antecedent
			// is recovered by a backward scan during the build phase.
			Name:     "supra",
			Kind:     citation.TokenSupra,
			Order:    orderSupra,
			Template: `\b[Ss]upra\b(?:,?\s+note\s+(?P<note>\d+))?(?:,?\s+at\s+(?P<page>\d{1,5}(?:[-–]\d{1,5})?))?`,
			Anchors:  []string{"supra"},
		},
		{
			// Example: "§ 101(a)" with no source in sight. Stays a bare
			// token unless resolution can attach it.
			Name:     "section",
			Kind:     citation.TokenSection,
			Order:    orderSection,
			Template: `(?P<sectionMarker>§§?)\s*(?P<sections>$sectionList)`,
			Anchors:  []string{"§"},
		},
		{
			// Example: "Bush v. Gore", "United States v. Lopez".
			// Registered last: at a shared start offset every other
			// reading wins. Lowercase connectors keep "Bd. of Educ."
			// shapes intact.
			Name:  "case-name",
			Kind:  citation.TokenCaseName,
			Order: orderCaseName,
			Template: `(?P<plaintiff>[A-Z][\w.\-'’&]*(?:\s+(?:of|the|for|&|[A-Z][\w.\-'’&]*)){0,5})\s+` +
				`(?:v\.|vs\.)\s+` +
				`(?P<defendant>[A-Z][\w.\-'’&]*(?:\s+(?:of|the|for|&|[A-Z][\w.\-'’&]*)){0,5})`,
			Anchors: []string{" v. ", " vs. "},
		},
	}

	// Drop extractors whose database tables are empty: an empty
	// alternation compiles to a match-anything group.
	kept := extractors[:0]
	for _, e := range extractors {
		switch e.Name {
		case "law-code":
			if len(db.LawAbbrevs(reporterdb.LawCode, reporterdb.LawRegulation)) == 0 {
				continue
			}
		case "law-volume":
			if len(db.LawAbbrevs(reporterdb.LawRegister, reporterdb.LawSessionLaw)) == 0 {
				continue
			}
		case "full-case", "short-case":
			if len(db.ReporterAbbrevs()) == 0 {
				continue
			}
		case "journal":
			if len(db.JournalAbbrevs()) == 0 {
				continue
			}
		}
		kept = append(kept, e)
	}
	return kept
}
