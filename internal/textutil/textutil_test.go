package textutil

import "testing"

func TestDisplayTitle(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase", "breaking bad", "Breaking Bad"},
		{"separators", "the_expanse.2015", "The Expanse 2015"},
		{"acronym preserved", "NCIS", "NCIS"},
		{"mixed case preserved", "iZombie", "iZombie"},
		{"punctuation kept", "it's always sunny", "It's Always Sunny"},
		{"empty", "", "Unknown Show"},
		{"only separators", "--__..", "Unknown Show"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DisplayTitle(tc.input); got != tc.want {
				t.Errorf("DisplayTitle(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 10); got != "short" {
		t.Errorf("Truncate short = %q", got)
	}
	if got := Truncate("a long title indeed", 10); got != "a long ..." {
		t.Errorf("Truncate long = %q", got)
	}
	if got := Truncate("abcdef", 3); got != "abc" {
		t.Errorf("Truncate tiny limit = %q", got)
	}
}
