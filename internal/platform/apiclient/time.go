package apiclient

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

var timeLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

// Time decodes the timestamp shapes the API sends: RFC 3339, a bare date,
// null or the empty string (zero time).
type Time struct {
	time.Time
}

func (t *Time) UnmarshalJSON(raw []byte) error {
	if string(raw) == "null" {
		t.Time = time.Time{}
		return nil
	}
	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return fmt.Errorf("decode time: %w", err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, text); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("decode time: unsupported format %q", text)
}

func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	return json.Marshal(t.UTC().Format(time.RFC3339))
}

// ID is an identifier the API sends either as a string or as an object with
// an `_id` or `id` field.
type ID string

func (i *ID) UnmarshalJSON(raw []byte) error {
	if string(raw) == "null" {
		*i = ""
		return nil
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		*i = ID(text)
		return nil
	}
	var obj struct {
		MongoID string `json:"_id"`
		ID      string `json:"id"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return fmt.Errorf("decode id: %w", err)
	}
	if obj.MongoID != "" {
		*i = ID(obj.MongoID)
		return nil
	}
	*i = ID(obj.ID)
	return nil
}
