package domain

import (
	"encoding/json"
	"testing"
)

func TestFlattenSortsAndDotsKeys(t *testing.T) {
	t.Parallel()
	doc := map[string]any{}
	raw := `{"totalContent":12,"byStatus":{"approved":7,"rejected":2},"providers":["a","b"],"healthy":true,"note":null,"label":"march"}`
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	got := Flatten(doc)
	want := []string{"byStatus.approved=7", "byStatus.rejected=2", "healthy=true", "label=march", "providers=2", "totalContent=12"}
	if len(got) != len(want) {
		t.Fatalf("got %d metrics: %+v", len(got), got)
	}
	for i, m := range got {
		if m.Key+"="+m.String() != want[i] {
			t.Fatalf("metric %d: got %s=%s want %s", i, m.Key, m.String(), want[i])
		}
	}
}

func TestGuidelineIsNewAndPatchEmpty(t *testing.T) {
	t.Parallel()
	if !(Guideline{}).IsNew() || (Guideline{ID: "g1"}).IsNew() {
		t.Fatalf("IsNew should depend on the id only")
	}
	active := false
	if !(UserPatch{}).Empty() || (UserPatch{Active: &active}).Empty() {
		t.Fatalf("unexpected Empty result")
	}
}
