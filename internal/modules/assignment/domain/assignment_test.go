package domain

import (
	"testing"
	"time"

	navigation "cvp/internal/modules/navigation/domain"
)

var now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func sample() []Assignment {
	return []Assignment{
		{ID: "a1", Status: StatusAssigned, DueDate: now.Add(48 * time.Hour)},
		{ID: "a2", Status: StatusInProgress, DueDate: now.Add(-time.Hour)},
		{ID: "a3", Status: StatusCompleted, ContentStatus: "APPROVED", DueDate: now.Add(-time.Hour)},
		{ID: "a4", Status: StatusCompleted, ContentStatus: "rejected"},
		{ID: "a5", Status: StatusOverdue},
	}
}

func ids(items []Assignment) string {
	out := ""
	for _, item := range items {
		out += item.ID
	}
	return out
}

func TestFilter(t *testing.T) {
	t.Parallel()
	cases := map[navigation.Filter]string{
		navigation.FilterAll:        "a1a2a3a4a5",
		navigation.FilterAssigned:   "a1",
		navigation.FilterInProgress: "",
		navigation.FilterOverdue:    "a2a5",
		navigation.FilterCompleted:  "a3a4",
		navigation.FilterApproved:   "a3",
		navigation.FilterRejected:   "a4",
	}
	for filter, want := range cases {
		if got := ids(Filter(sample(), filter, now)); got != want {
			t.Fatalf("filter %s: got %q want %q", filter, got, want)
		}
	}
}

func TestToTaskRoundTripsThroughLocation(t *testing.T) {
	t.Parallel()
	a := Assignment{ID: "a1", Topic: "Recursion", ContentType: "ASSIGNMENT", Guidelines: "Two examples"}
	state := navigation.State{View: navigation.ViewCreateContent, Tab: navigation.TabAssignments, Filter: navigation.FilterAll}
	task := a.ToTask()
	state.Task = &task

	got := navigation.CreatorTable().Resolve(navigation.Encode(state), nil)
	if !got.Equal(state) {
		t.Fatalf("task lost in location: %+v", got.Task)
	}
	if got.Task.PrerequisiteTopics == nil {
		t.Fatalf("prerequisites must encode as an empty list")
	}
}
