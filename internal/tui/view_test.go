package tui

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"short stays whole", "Taxi", 10, "Taxi"},
		{"exact fit", "Taxi", 4, "Taxi"},
		{"long gets ellipsis", "groceries and sundries", 10, "groceries…"},
		{"multibyte kept intact", "Caffè al bar sotto casa", 8, "Caffè a…"},
		{"cut lands after accent", "Caffè", 5, "Caffè"},
		{"tiny budget", "Taxi", 1, "…"},
		{"empty", "", 5, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.in, tt.max)
			if got != tt.want {
				t.Fatalf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Fatalf("truncate(%q, %d) produced invalid UTF-8", tt.in, tt.max)
			}
		})
	}
}

func TestTruncateNeverExceedsBudget(t *testing.T) {
	in := strings.Repeat("è", 50)
	got := truncate(in, 20)
	if n := utf8.RuneCountInString(got); n > 20 {
		t.Fatalf("rune count = %d, want at most 20", n)
	}
}
