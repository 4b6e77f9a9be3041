package citation

import "testing"

func TestSpanIsValid(t *testing.T) {
	tests := []struct {
		name    string
		span    Span
		textLen int
		want    bool
	}{
		{"inside text", Span{Start: 2, End: 5}, 10, true},
		{"full text", Span{Start: 0, End: 10}, 10, true},
		{"empty span", Span{Start: 3, End: 3}, 10, false},
		{"inverted span", Span{Start: 5, End: 2}, 10, false},
		{"negative start", Span{Start: -1, End: 4}, 10, false},
		{"end past text", Span{Start: 0, End: 11}, 10, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.span.IsValid(tt.textLen); got != tt.want {
				t.Errorf("IsValid(%d) = %v, want %v", tt.textLen, got, tt.want)
			}
		})
	}
}

func TestSpanContainment(t *testing.T) {
	outer := Span{Start: 10, End: 50}

	tests := []struct {
		name     string
		inner    Span
		contains bool
		strict   bool
	}{
		{"proper subset", Span{Start: 15, End: 40}, true, true},
		{"identical", Span{Start: 10, End: 50}, true, false},
		{"shared start", Span{Start: 10, End: 30}, true, true},
		{"shared end", Span{Start: 20, End: 50}, true, true},
		{"overlapping left", Span{Start: 5, End: 20}, false, false},
		{"disjoint", Span{Start: 60, End: 70}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outer.Contains(tt.inner); got != tt.contains {
				t.Errorf("Contains = %v, want %v", got, tt.contains)
			}
			if got := outer.StrictlyContains(tt.inner); got != tt.strict {
				t.Errorf("StrictlyContains = %v, want %v", got, tt.strict)
			}
		})
	}
}

func TestSpanOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Span
		want bool
	}{
		{"disjoint", Span{0, 5}, Span{5, 10}, false},
		{"adjacent share no byte", Span{0, 5}, Span{5, 6}, false},
		{"partial", Span{0, 5}, Span{4, 10}, true},
		{"nested", Span{0, 10}, Span{3, 6}, true},
		{"identical", Span{2, 8}, Span{2, 8}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("%v.Overlaps(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Errorf("%v.Overlaps(%v) = %v, want %v", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestSpanText(t *testing.T) {
	text := "42 U.S.C. § 1983"
	span := Span{Start: 3, End: 9}
	if got := span.Text(text); got != "U.S.C." {
		t.Errorf("Text = %q, want %q", got, "U.S.C.")
	}
}
