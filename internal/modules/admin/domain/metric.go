package domain

import (
	"sort"
	"strconv"
)

// Metric is one leaf of a stats or analytics document. Nested objects are
// flattened into dotted keys.
type Metric struct {
	Key   string
	Value float64
	Text  string
}

func (m Metric) String() string {
	if m.Text != "" {
		return m.Text
	}
	return strconv.FormatFloat(m.Value, 'f', -1, 64)
}

// Flatten walks a decoded JSON object. Arrays report their length; nulls are
// dropped.
func Flatten(doc map[string]any) []Metric {
	out := []Metric{}
	flatten("", doc, &out)
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

func flatten(prefix string, v any, out *[]Metric) {
	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			key := k
			if prefix != "" {
				key = prefix + "." + k
			}
			flatten(key, child, out)
		}
	case []any:
		*out = append(*out, Metric{Key: prefix, Value: float64(len(t))})
	case float64:
		*out = append(*out, Metric{Key: prefix, Value: t})
	case bool:
		*out = append(*out, Metric{Key: prefix, Text: strconv.FormatBool(t)})
	case string:
		*out = append(*out, Metric{Key: prefix, Text: t})
	}
}
