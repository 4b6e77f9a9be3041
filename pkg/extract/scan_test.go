package extract

import (
	"testing"

	"github.com/coolbeans/lexcite/pkg/reporterdb"
)

func TestScanParen(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		at      int
		content string
		end     int
		ok      bool
	}{
		{"simple", "(2000)", 0, "2000", 6, true},
		{"nested", "(foo (bar) baz)", 0, "foo (bar) baz", 15, true},
		{"offset", "x (en banc)", 2, "en banc", 11, true},
		{"unbalanced", "(never closes", 0, "", 0, false},
		{"not a paren", "2000)", 0, "", 0, false},
		{"empty", "", 0, "", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content, end, ok := scanParen(tt.text, tt.at)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			if content != tt.content {
				t.Errorf("content = %q, want %q", content, tt.content)
			}
			if end != tt.end {
				t.Errorf("end = %d, want %d", end, tt.end)
			}
		})
	}
}

func TestClassifyParen(t *testing.T) {
	db := reporterdb.Default()
	tests := []struct {
		content string
		want    parenFacts
	}{
		{"2000", parenFacts{year: "2000"}},
		{" 2000 ", parenFacts{year: "2000"}},
		{"Jan. 8, 2021", parenFacts{year: "2021", month: "Jan.", day: "8"}},
		{"9th Cir. 2021", parenFacts{year: "2021", court: "9th Cir."}},
		{"D. Mass. 2019", parenFacts{year: "2019", court: "D. Mass."}},
		{"West 2021", parenFacts{year: "2021", publisher: "West"}},
		{"en banc", parenFacts{free: "en banc"}},
		{"decided in 2001", parenFacts{free: "decided in 2001"}},
		{"emphasis added", parenFacts{free: "emphasis added"}},
		{"0999", parenFacts{free: "0999"}},
	}
	for _, tt := range tests {
		t.Run(tt.content, func(t *testing.T) {
			got := classifyParen(tt.content, db)
			if got != tt.want {
				t.Errorf("classifyParen(%q) = %+v, want %+v", tt.content, got, tt.want)
			}
		})
	}
}

func TestStripLeadingNoise(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Bush", "Bush"},
		{"In Bush", "Bush"},
		{"See In Bush", "Bush"},
		{"The Slaughter-House Cases", "Slaughter-House Cases"},
		{"See", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := stripLeadingNoise(tt.in); got != tt.want {
			t.Errorf("stripLeadingNoise(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"778.113", []string{"778.113"}},
		{"778.113, 778.114, 778.115", []string{"778.113", "778.114", "778.115"}},
		{"101; 102", []string{"101", "102"}},
		{"101, and 102", []string{"101", "102"}},
		{"101, or 102", []string{"101", "102"}},
		{" , , ", nil},
	}
	for _, tt := range tests {
		got := splitList(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("splitList(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("splitList(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}
