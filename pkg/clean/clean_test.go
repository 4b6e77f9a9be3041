package clean

import (
	"strings"
	"testing"
)

func TestHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string // substrings that must appear in the output
		deny []string // substrings that must not
	}{
		{
			name: "inline emphasis does not split a citation",
			in:   `<p><em>Bush</em> v. <em>Gore</em>, 531 U.S. 98 (2000)</p>`,
			want: []string{"Bush v. Gore, 531 U.S. 98 (2000)"},
		},
		{
			name: "script and style are dropped",
			in:   `<p>See 42 U.S.C. § 1983.</p><script>var x = "550 U.S. 544";</script><style>.a{}</style>`,
			want: []string{"See 42 U.S.C. § 1983."},
			deny: []string{"550 U.S. 544", ".a{}"},
		},
		{
			name: "paragraph boundary breaks text flow",
			in:   `<p>volume 531</p><p>U.S. 98</p>`,
			want: []string{"volume 531\n"},
			deny: []string{"531 U.S."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HTML(tt.in)
			for _, want := range tt.want {
				if !strings.Contains(got, want) {
					t.Errorf("HTML(%q) = %q, missing %q", tt.in, got, want)
				}
			}
			for _, deny := range tt.deny {
				if strings.Contains(got, deny) {
					t.Errorf("HTML(%q) = %q, should not contain %q", tt.in, got, deny)
				}
			}
		})
	}
}

func TestXML(t *testing.T) {
	in := `<opinion><cite>410 U.S. 113</cite> &amp; 29 C.F.R. &#167; 778.113</opinion>`
	want := "410 U.S. 113 & 29 C.F.R. § 778.113"
	if got := XML(in); got != want {
		t.Errorf("XML = %q, want %q", got, want)
	}
}

func TestInlineWhitespace(t *testing.T) {
	in := "531  U.S.\t 98\nnext  line"
	want := "531 U.S. 98\nnext line"
	if got := InlineWhitespace(in); got != want {
		t.Errorf("InlineWhitespace = %q, want %q", got, want)
	}
}

func TestAllWhitespace(t *testing.T) {
	in := "531\n U.S.\t\t98"
	want := "531 U.S. 98"
	if got := AllWhitespace(in); got != want {
		t.Errorf("AllWhitespace = %q, want %q", got, want)
	}
}

func TestUnderscores(t *testing.T) {
	in := "__Bush__ v. __Gore__, 531 U.S. 98"
	want := "Bush v. Gore, 531 U.S. 98"
	if got := Underscores(in); got != want {
		t.Errorf("Underscores = %q, want %q", got, want)
	}
}

func TestStepsUnknownName(t *testing.T) {
	if _, err := Steps("html", "nope"); err == nil {
		t.Fatal("expected error for unknown step name")
	}
}

func TestApplyOrder(t *testing.T) {
	steps, err := Steps("html", "all-whitespace")
	if err != nil {
		t.Fatalf("Steps: %v", err)
	}
	in := "<p>See   Bush v. Gore,\n531 U.S. 98 (2000).</p>"
	got := Apply(in, steps...)
	if !strings.Contains(got, "Bush v. Gore, 531 U.S. 98 (2000).") {
		t.Errorf("Apply = %q, want cleaned single-spaced text", got)
	}
}

func TestNamedCoversAllNames(t *testing.T) {
	for _, name := range Names() {
		if _, err := Named(name); err != nil {
			t.Errorf("Named(%q): %v", name, err)
		}
	}
}
