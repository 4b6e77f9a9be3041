package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coolbeans/lexcite/pkg/citation"
	"github.com/coolbeans/lexcite/pkg/extract"
)

func fullCase(plaintiff, defendant, volume, reporter, page string) citation.Citation {
	return citation.Citation{
		Kind: citation.KindFullCase,
		Metadata: citation.Metadata{
			Plaintiff: plaintiff,
			Defendant: defendant,
			CaseName:  plaintiff + " v. " + defendant,
			Volume:    volume,
			Reporter:  reporter,
			Page:      page,
		},
	}
}

func caseNamed(name, volume, reporter, page string) citation.Citation {
	return citation.Citation{
		Kind: citation.KindFullCase,
		Metadata: citation.Metadata{
			CaseName: name,
			Volume:   volume,
			Reporter: reporter,
			Page:     page,
		},
	}
}

func shortCase(volume, reporter, pin, antecedent string) citation.Citation {
	return citation.Citation{
		Kind: citation.KindShortCase,
		Metadata: citation.Metadata{
			Volume:     volume,
			Reporter:   reporter,
			PinCite:    pin,
			Antecedent: antecedent,
		},
	}
}

func supraOf(antecedent string) citation.Citation {
	return citation.Citation{
		Kind:     citation.KindSupra,
		Metadata: citation.Metadata{Antecedent: antecedent},
	}
}

func idAt(pin string) citation.Citation {
	return citation.Citation{
		Kind:     citation.KindID,
		Metadata: citation.Metadata{PinCite: pin},
	}
}

func idSection(section string) citation.Citation {
	return citation.Citation{
		Kind:     citation.KindID,
		Metadata: citation.Metadata{Section: section},
	}
}

func fullLaw(title, source, section string) citation.Citation {
	return citation.Citation{
		Kind: citation.KindFullLaw,
		Metadata: citation.Metadata{
			Title:    title,
			Reporter: source,
			LawType:  "regulation",
			Section:  section,
		},
	}
}

func referenceTo(defendant string) citation.Citation {
	return citation.Citation{
		Kind:     citation.KindReference,
		Index:    -1,
		Metadata: citation.Metadata{Defendant: defendant},
	}
}

func TestFullCitationsMintDistinctResources(t *testing.T) {
	a := fullCase("Bush", "Gore", "531", "U.S.", "98")
	b := fullCase("Bush", "Gore", "531", "U.S.", "98")
	res := Resolve([]citation.Citation{a, b})

	rs := res.Resources()
	require.Len(t, rs, 2)
	assert.NotEqual(t, rs[0], rs[1])
	assert.Equal(t, 1, rs[0].ID())
	assert.Equal(t, 2, rs[1].ID())
	for _, r := range rs {
		assert.Len(t, res.Citations(r), 1)
		auth, ok := res.Authority(r)
		require.True(t, ok)
		assert.Equal(t, citation.KindFullCase, auth.Kind)
	}
}

func TestShortCaseResolution(t *testing.T) {
	bush := fullCase("Bush", "Gore", "531", "U.S.", "98")
	roe := fullCase("Roe", "Wade", "410", "U.S.", "113")

	t.Run("volume and reporter identify a single case", func(t *testing.T) {
		res := Resolve([]citation.Citation{bush, roe, shortCase("531", "U.S.", "103", "")})

		rs := res.Resources()
		require.Len(t, rs, 2)
		got := res.Citations(rs[0])
		require.Len(t, got, 2)
		assert.Equal(t, citation.KindShortCase, got[1].Kind)
		assert.Len(t, res.Citations(rs[1]), 1)
	})

	t.Run("antecedent narrows same-volume candidates", func(t *testing.T) {
		smith := fullCase("Smith", "Doe", "531", "U.S.", "200")
		res := Resolve([]citation.Citation{bush, smith, shortCase("531", "U.S.", "103", "Bush")})

		rs := res.Resources()
		require.Len(t, rs, 2)
		got := res.Citations(rs[0])
		require.Len(t, got, 2)
		assert.Equal(t, citation.KindShortCase, got[1].Kind)
		assert.Len(t, res.Citations(rs[1]), 1)
	})

	t.Run("no antecedent among several candidates stays unresolved", func(t *testing.T) {
		smith := fullCase("Smith", "Doe", "531", "U.S.", "200")
		res := Resolve([]citation.Citation{bush, smith, shortCase("531", "U.S.", "103", "")})

		for _, r := range res.Resources() {
			for _, c := range res.Citations(r) {
				assert.NotEqual(t, citation.KindShortCase, c.Kind)
			}
		}
	})

	t.Run("reporter mismatch is not a candidate", func(t *testing.T) {
		res := Resolve([]citation.Citation{bush, shortCase("531", "F.3d", "103", "")})

		rs := res.Resources()
		require.Len(t, rs, 1)
		assert.Len(t, res.Citations(rs[0]), 1)
	})
}

func TestSupraAntecedentUniqueness(t *testing.T) {
	smith := fullCase("United States", "Smith", "100", "F.3d", "1")
	jones := fullCase("United States", "Jones", "200", "F.3d", "50")

	t.Run("unique defendant resolves", func(t *testing.T) {
		res := Resolve([]citation.Citation{smith, jones, supraOf("Jones")})

		rs := res.Resources()
		require.Len(t, rs, 2)
		assert.Len(t, res.Citations(rs[0]), 1)
		got := res.Citations(rs[1])
		require.Len(t, got, 2)
		assert.Equal(t, citation.KindSupra, got[1].Kind)
	})

	t.Run("antecedent matching both cases stays unresolved", func(t *testing.T) {
		res := Resolve([]citation.Citation{smith, jones, supraOf("United States")})

		for _, r := range res.Resources() {
			assert.Len(t, res.Citations(r), 1)
		}
	})

	t.Run("joined name covers In re styles", func(t *testing.T) {
		gault := caseNamed("In re Gault", "387", "U.S.", "1")
		res := Resolve([]citation.Citation{gault, supraOf("Gault")})

		rs := res.Resources()
		require.Len(t, rs, 1)
		assert.Len(t, res.Citations(rs[0]), 2)
	})

	t.Run("punctuation differences do not block the match", func(t *testing.T) {
		ebay := fullCase("eBay Inc.", "MercExchange, L.L.C.", "547", "U.S.", "388")
		res := Resolve([]citation.Citation{ebay, supraOf("MercExchange")})

		rs := res.Resources()
		require.Len(t, rs, 1)
		assert.Len(t, res.Citations(rs[0]), 2)
	})
}

func TestReferenceResolution(t *testing.T) {
	bush := fullCase("Bush", "Gore", "531", "U.S.", "98")
	roe := fullCase("Roe", "Wade", "410", "U.S.", "113")

	t.Run("name matching one candidate resolves", func(t *testing.T) {
		res := Resolve([]citation.Citation{bush, roe, referenceTo("Gore")})

		rs := res.Resources()
		require.Len(t, rs, 2)
		got := res.Citations(rs[0])
		require.Len(t, got, 2)
		assert.Equal(t, citation.KindReference, got[1].Kind)
	})

	t.Run("name shared by two candidates stays unresolved", func(t *testing.T) {
		harris := fullCase("Gore", "Harris", "772", "So. 2d", "1243")
		res := Resolve([]citation.Citation{bush, harris, referenceTo("Gore")})

		for _, r := range res.Resources() {
			assert.Len(t, res.Citations(r), 1)
		}
	})

	t.Run("empty name stays unresolved", func(t *testing.T) {
		res := Resolve([]citation.Citation{bush, referenceTo("")})

		rs := res.Resources()
		require.Len(t, rs, 1)
		assert.Len(t, res.Citations(rs[0]), 1)
	})
}

func TestIDResolution(t *testing.T) {
	t.Run("plain id follows the last resolution", func(t *testing.T) {
		bush := fullCase("Bush", "Gore", "531", "U.S.", "98")
		res := Resolve([]citation.Citation{bush, idAt("")})

		rs := res.Resources()
		require.Len(t, rs, 1)
		got := res.Citations(rs[0])
		require.Len(t, got, 2)
		assert.Equal(t, citation.KindID, got[1].Kind)
	})

	t.Run("pin cite inside the page window binds", func(t *testing.T) {
		bush := fullCase("Bush", "Gore", "531", "U.S.", "98")
		res := Resolve([]citation.Citation{bush, idAt("103"), idAt("248")})

		rs := res.Resources()
		require.Len(t, rs, 1)
		assert.Len(t, res.Citations(rs[0]), 3)
	})

	t.Run("pin cite past the window stays unresolved", func(t *testing.T) {
		anchored := fullCase("Smith", "Doe", "100", "F.3d", "100")
		res := Resolve([]citation.Citation{anchored, idAt("500")})

		rs := res.Resources()
		require.Len(t, rs, 1)
		assert.Len(t, res.Citations(rs[0]), 1)
	})

	t.Run("pin cite before the first page stays unresolved", func(t *testing.T) {
		anchored := fullCase("Smith", "Doe", "100", "F.3d", "100")
		res := Resolve([]citation.Citation{anchored, idAt("50")})

		rs := res.Resources()
		require.Len(t, rs, 1)
		assert.Len(t, res.Citations(rs[0]), 1)
	})

	t.Run("an unresolved citation breaks the chain", func(t *testing.T) {
		anchored := fullCase("Smith", "Doe", "100", "F.3d", "100")
		res := Resolve([]citation.Citation{anchored, idAt("500"), idAt("")})

		rs := res.Resources()
		require.Len(t, rs, 1)
		assert.Len(t, res.Citations(rs[0]), 1)
	})

	t.Run("non-numeric authority page skips the window", func(t *testing.T) {
		law := fullLaw("29", "C.F.R.", "778.113")
		res := Resolve([]citation.Citation{law, idAt("500")})

		rs := res.Resources()
		require.Len(t, rs, 1)
		assert.Len(t, res.Citations(rs[0]), 2)
	})

	t.Run("id with nothing prior stays unresolved", func(t *testing.T) {
		res := Resolve([]citation.Citation{idAt("")})
		assert.Zero(t, res.Len())
	})
}

func TestSectionSubstitution(t *testing.T) {
	law := fullLaw("29", "C.F.R.", "778.113")

	t.Run("different section mints a sibling authority", func(t *testing.T) {
		res := Resolve([]citation.Citation{law, idSection("778.114")})

		rs := res.Resources()
		require.Len(t, rs, 2)
		auth, ok := res.Authority(rs[1])
		require.True(t, ok)
		assert.Equal(t, "778.114", auth.Metadata.Section)
		assert.Equal(t, "29", auth.Metadata.Title)
		assert.Equal(t, "C.F.R.", auth.Metadata.Reporter)
		assert.Equal(t, -1, auth.Index)

		got := res.Citations(rs[1])
		require.Len(t, got, 1)
		assert.Equal(t, citation.KindID, got[0].Kind)
	})

	t.Run("chain forks from the anchor, not the sibling", func(t *testing.T) {
		res := Resolve([]citation.Citation{
			law,
			idSection("778.114"), // mints the .114 sibling
			idAt(""),             // stays on .114
			idSection("778.114"), // same section, stays
			idSection("778.115"), // forks from the .113 anchor
			idSection("778.113"), // the anchor itself, no new mint
		})

		rs := res.Resources()
		require.Len(t, rs, 3)
		assert.Len(t, res.Citations(rs[0]), 2)
		assert.Len(t, res.Citations(rs[1]), 3)
		assert.Len(t, res.Citations(rs[2]), 1)

		auth, ok := res.Authority(rs[2])
		require.True(t, ok)
		assert.Equal(t, "778.115", auth.Metadata.Section)
	})

	t.Run("no prior law stays unresolved", func(t *testing.T) {
		bush := fullCase("Bush", "Gore", "531", "U.S.", "98")
		res := Resolve([]citation.Citation{bush, idSection("5")})

		rs := res.Resources()
		require.Len(t, rs, 1)
		assert.Len(t, res.Citations(rs[0]), 1)
	})
}

func TestUnknownKindStaysUnresolved(t *testing.T) {
	bush := fullCase("Bush", "Gore", "531", "U.S.", "98")
	odd := citation.Citation{Kind: citation.KindUnknown}
	res := Resolve([]citation.Citation{bush, odd, idAt("")})

	// The unknown citation also breaks the id chain behind it.
	rs := res.Resources()
	require.Len(t, rs, 1)
	assert.Len(t, res.Citations(rs[0]), 1)
}

func TestResolverOverride(t *testing.T) {
	bush := fullCase("Bush", "Gore", "531", "U.S.", "98")
	refused := 0
	r := Resolver{
		ID: func(ctx *Context, c citation.Citation) (Resource, bool) {
			refused++
			return Resource{}, false
		},
	}
	res := r.Resolve([]citation.Citation{bush, idAt(""), supraOf("Gore")})

	assert.Equal(t, 1, refused)
	rs := res.Resources()
	require.Len(t, rs, 1)
	// The supra step keeps its default and still binds by name.
	got := res.Citations(rs[0])
	require.Len(t, got, 2)
	assert.Equal(t, citation.KindSupra, got[1].Kind)
}

func TestResolveExtractedText(t *testing.T) {
	text := "Bush v. Gore, 531 U.S. 98, 103 (2000), settled it. Id. at 110. " +
		"See 29 C.F.R. § 778.113 (2020). Id. § 778.114."
	cites, err := extract.Citations(text, extract.Options{})
	require.NoError(t, err)
	require.Len(t, cites, 4)

	res := Resolve(cites)
	rs := res.Resources()
	require.Len(t, rs, 3)

	caseGroup := res.Citations(rs[0])
	require.Len(t, caseGroup, 2)
	assert.Equal(t, citation.KindFullCase, caseGroup[0].Kind)
	assert.Equal(t, citation.KindID, caseGroup[1].Kind)
	assert.Equal(t, "110", caseGroup[1].Metadata.PinCite)

	lawGroup := res.Citations(rs[1])
	require.Len(t, lawGroup, 1)
	assert.Equal(t, "778.113", lawGroup[0].Metadata.Section)

	forked := res.Citations(rs[2])
	require.Len(t, forked, 1)
	assert.Equal(t, citation.KindID, forked[0].Kind)
	auth, ok := res.Authority(rs[2])
	require.True(t, ok)
	assert.Equal(t, "778.114", auth.Metadata.Section)
	assert.Equal(t, "C.F.R.", auth.Metadata.Reporter)
}

func TestStripPunct(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"MercExchange, L.L.C.", "MercExchange LLC"},
		{"United  States", "United States"},
		{"O'Brien", "OBrien"},
		{"", ""},
		{"  ...  ", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, stripPunct(tt.in), "stripPunct(%q)", tt.in)
	}
}
