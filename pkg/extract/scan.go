package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/coolbeans/lexcite/pkg/citation"
	"github.com/coolbeans/lexcite/pkg/reporterdb"
)

// maxParenLength bounds the balanced-parenthesis scan so an unclosed
// parenthesis never drags half the document into one citation.
const maxParenLength = 400

// maxNameWindow bounds backward party scans.
const maxNameWindow = 80

var (
	// ", 103", ", 103-04, 107" directly after a citation core.
	pinCitePattern = regexp.MustCompile(`^,\s*(\d{1,5}(?:[-–]\d{1,5})?(?:\s*(?:,|&)\s*\d{1,5}(?:[-–]\d{1,5})?)*)`)

	// "Jan. 8, 2021" inside a parenthetical.
	datePattern = regexp.MustCompile(`^([A-Z][a-z]{2}[a-z.]*)\s+(\d{1,2}),\s+(\d{4})$`)

	// "9th Cir. 2021", "West 2021": a short issuer followed by a year.
	// The issuer shape is strict on purpose; prose endings like
	// "decided in 2001" must stay free text.
	issuerYearPattern = regexp.MustCompile(`^([A-Z0-9][A-Za-z0-9.&' ]{0,24}?),?\s+(\d{4})$`)

	yearPattern = regexp.MustCompile(`^\d{4}$`)

	// Gap between a recovered name and the citation it belongs to.
	adjacentGapPattern = regexp.MustCompile(`^,?\s*$`)

	// Party filling the whole gap after a "v." or "In re" stop word.
	partyGapPattern = regexp.MustCompile(`^\s+([A-Z][\w.\-'’&]*(?:\s+(?:of|the|for|&|[A-Z][\w.\-'’&]*)){0,5})\s*,?\s*$`)

	// Party name trailing a backward window, before a "v." stop word.
	partyPattern = regexp.MustCompile(`([A-Z][\w.\-'’&]*(?:\s+(?:of|the|for|&|[A-Z][\w.\-'’&]*)){0,5})\s*,?\s*$`)

	// Shorter trailing name used for short-form antecedents.
	antecedentPattern = regexp.MustCompile(`([A-Z][\w.\-'’&]*(?:\s+(?:of|the|for|&|[A-Z][\w.\-'’&]*)){0,3})\s*,?\s*$`)
)

var monthNames = map[string]bool{
	"Jan.": true, "Feb.": true, "Mar.": true, "Apr.": true, "May": true,
	"June": true, "July": true, "Aug.": true, "Sept.": true, "Oct.": true,
	"Nov.": true, "Dec.": true, "January": true, "February": true,
	"March": true, "April": true, "August": true, "September": true,
	"October": true, "November": true, "December": true,
}

// leadNoise are sentence leads and signal words the backward party scan
// can drag in: "In Bush, 531 U.S. at 103" wants the antecedent "Bush".
var leadNoise = map[string]bool{
	"in": true, "see": true, "but": true, "and": true, "under": true,
	"accord": true, "compare": true, "quoting": true, "citing": true,
	"contra": true, "the": true, "as": true, "cf.": true, "e.g.": true,
}

// scanParen reads one balanced parenthetical starting at text[i] == '('
// and returns the content between the outer parentheses plus the offset
// just past the closing one.
func scanParen(text string, i int) (content string, end int, ok bool) {
	if i >= len(text) || text[i] != '(' {
		return "", i, false
	}
	depth := 0
	for j := i; j < len(text) && j-i <= maxParenLength; j++ {
		switch text[j] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return text[i+1 : j], j + 1, true
			}
		}
	}
	return "", i, false
}

// parenFacts is what one trailing parenthetical contributed.
type parenFacts struct {
	year      string
	month     string
	day       string
	court     string
	publisher string
	free      string
}

// classifyParen sorts a parenthetical into a bare year, a full date, an
// issuer-plus-year pair, or free descriptive text. Issuers the database
// recognizes as courts go to court, anything else to publisher.
func classifyParen(content string, db *reporterdb.DB) parenFacts {
	c := strings.TrimSpace(content)
	if yearPattern.MatchString(c) && plausibleYear(c) {
		return parenFacts{year: c}
	}
	if m := datePattern.FindStringSubmatch(c); m != nil && monthNames[m[1]] && plausibleYear(m[3]) {
		return parenFacts{year: m[3], month: m[1], day: m[2]}
	}
	if m := issuerYearPattern.FindStringSubmatch(c); m != nil && plausibleYear(m[2]) {
		issuer := strings.TrimSpace(m[1])
		if db.IsCourt(issuer) {
			return parenFacts{year: m[2], court: issuer}
		}
		return parenFacts{year: m[2], publisher: issuer}
	}
	return parenFacts{free: c}
}

// apply copies parenthetical facts into md. The first parenthetical
// carrying a valid year wins; the first free-text one becomes the
// descriptive parenthetical.
func (p parenFacts) apply(md *citation.Metadata) {
	if p.year != "" && md.Year == "" {
		md.Year = p.year
		md.YearValue, _ = strconv.Atoi(p.year)
		md.Month = p.month
		md.Day = p.day
		md.Court = p.court
		md.Publisher = p.publisher
	}
	if p.free != "" && md.Parenthetical == "" {
		md.Parenthetical = p.free
	}
}

func plausibleYear(s string) bool {
	y, err := strconv.Atoi(s)
	return err == nil && y >= 1600 && y <= 2199
}

// stripLeadingNoise removes lead words from a backward-scanned name.
// A name that is nothing but noise comes back empty.
func stripLeadingNoise(s string) string {
	for s != "" {
		word, rest, found := strings.Cut(s, " ")
		if !leadNoise[strings.ToLower(word)] {
			return s
		}
		if !found {
			return ""
		}
		s = strings.TrimSpace(rest)
	}
	return s
}

func skipSpaces(text string, i int) int {
	for i < len(text) && (text[i] == ' ' || text[i] == '\t') {
		i++
	}
	return i
}

func isWordByte(b byte) bool {
	return b == '_' ||
		('0' <= b && b <= '9') ||
		('a' <= b && b <= 'z') ||
		('A' <= b && b <= 'Z')
}

func isAlnum(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		b := s[i]
		if ('0' <= b && b <= '9') || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z') {
			continue
		}
		return false
	}
	return true
}
