package slug

import (
	"strings"
	"testing"
)

func TestMake(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"  Intro to Go: Loops! ":  "intro-to-go-loops",
		"???":                     "untitled",
		strings.Repeat("ab ", 40): strings.TrimRight(strings.Repeat("ab-", 20), "-"),
	}
	for in, want := range cases {
		if got := Make(in); got != want {
			t.Fatalf("Make(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFilename(t *testing.T) {
	t.Parallel()
	if got := Filename("Loops", "65F0-ab12cd34ef"); got != "loops-65f0ab12.md" {
		t.Fatalf("unexpected filename %q", got)
	}
	if got := Filename("Loops", ""); got != "loops.md" {
		t.Fatalf("unexpected filename %q", got)
	}
}
