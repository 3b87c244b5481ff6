package domain

import (
	"net/url"
	"strings"
)

// Location is the address the client is showing: an optional path and
// search string plus the hash that carries the client route.
type Location struct {
	Path   string
	Search string
	Hash   string
}

// ParseLocation accepts a full URL ("https://host/app?x=1#/tasks"), a bare
// hash ("#/tasks?filter=overdue") or a hash without its leading '#'
// ("/tasks", "tasks").
func ParseLocation(raw string) Location {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Location{}
	}
	absolute := false
	if i := strings.Index(raw, "://"); i >= 0 {
		absolute = true
		rest := raw[i+3:]
		raw = ""
		if cut := strings.IndexAny(rest, "/?#"); cut >= 0 {
			raw = rest[cut:]
		}
	}

	before, hash, found := strings.Cut(raw, "#")
	if !found && !absolute {
		return Location{Hash: "#/" + strings.TrimPrefix(raw, "/")}
	}
	loc := Location{}
	if found {
		loc.Hash = "#" + hash
	}
	if i := strings.Index(before, "?"); i >= 0 {
		loc.Path, loc.Search = before[:i], before[i:]
	} else {
		loc.Path = before
	}
	return loc
}

func (l Location) String() string {
	return l.Path + l.Search + l.Hash
}

func (l Location) IsZero() bool {
	return l == Location{}
}

// HashContains reports whether the hash contains fragment, e.g. "#/tasks".
func (l Location) HashContains(fragment string) bool {
	return strings.Contains(l.Hash, fragment)
}

// Query reads parameters from the hash's query part first and fills any
// remaining keys from the search string. Malformed pairs are skipped.
func (l Location) Query() url.Values {
	values, _ := l.ParseQuery()
	return values
}

// ParseQuery is Query that also reports the first malformed pair it skipped.
func (l Location) ParseQuery() (url.Values, error) {
	out := url.Values{}
	var first error
	if i := strings.Index(l.Hash, "?"); i >= 0 {
		first = mergeQuery(out, l.Hash[i+1:])
	}
	if err := mergeQuery(out, strings.TrimPrefix(l.Search, "?")); first == nil {
		first = err
	}
	return out, first
}

func mergeQuery(dst url.Values, raw string) error {
	if raw == "" {
		return nil
	}
	values, err := url.ParseQuery(raw)
	for key, vals := range values {
		if _, ok := dst[key]; ok {
			continue
		}
		dst[key] = vals
	}
	return err
}
