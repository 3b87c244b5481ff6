package slug

import (
	"regexp"
	"strings"
)

const maxLen = 60

var nonAlphaNum = regexp.MustCompile(`[^a-z0-9]+`)

func Make(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	s = nonAlphaNum.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > maxLen {
		s = strings.TrimRight(s[:maxLen], "-")
	}
	if s == "" {
		return "untitled"
	}
	return s
}

// Filename builds "<slug>-<id>.md" so two items with the same title never collide.
func Filename(title, id string) string {
	suffix := nonAlphaNum.ReplaceAllString(strings.ToLower(id), "")
	if len(suffix) > 8 {
		suffix = suffix[:8]
	}
	if suffix == "" {
		return Make(title) + ".md"
	}
	return Make(title) + "-" + suffix + ".md"
}
