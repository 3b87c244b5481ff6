package dashboard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	navigation "cvp/internal/modules/navigation/domain"
	"cvp/internal/platform/notify"
)

type recordingFetch struct {
	mu      sync.Mutex
	filters []navigation.Filter
	err     error
}

func (f *recordingFetch) fetch(_ context.Context, filter navigation.Filter) ([]Row, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filters = append(f.filters, filter)
	if f.err != nil {
		return nil, f.err
	}
	return []Row{{ID: string(filter), Title: "row for " + string(filter)}}, nil
}

func newModel(f *recordingFetch) Model {
	profile := Profile{Role: "CREATOR", Panels: []Panel{
		{Tab: navigation.TabAssignments, Fetch: f.fetch},
		{Tab: navigation.TabReview, Fetch: f.fetch, Reviewable: true},
	}}
	m := New(profile, time.Minute)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m
}

func TestStaleResponseIsDiscarded(t *testing.T) {
	t.Parallel()
	f := &recordingFetch{}
	m := newModel(f)
	m.state = navigation.State{View: navigation.ViewDashboard, Tab: navigation.TabAssignments, Filter: navigation.FilterAll}

	first := m.load(false)().(LoadedMsg)
	second := m.SetState(navigation.State{View: navigation.ViewDashboard, Tab: navigation.TabAssignments, Filter: navigation.FilterOverdue})().(LoadedMsg)

	m, _ = m.Update(second)
	m, _ = m.Update(first)

	row, ok := m.Selected()
	if !ok || row.ID != string(navigation.FilterOverdue) {
		t.Fatalf("stale response replaced the newer one: %+v", row)
	}
}

func TestSetStateWithoutChangeDoesNotFetch(t *testing.T) {
	t.Parallel()
	m := newModel(&recordingFetch{})
	state := navigation.State{View: navigation.ViewDashboard, Tab: navigation.TabReview, Filter: navigation.FilterAll}
	m.state = state
	if cmd := m.SetState(state); cmd != nil {
		t.Fatalf("unchanged state should not fetch")
	}
}

func TestPollAfterStopIsIgnored(t *testing.T) {
	t.Parallel()
	m := newModel(&recordingFetch{})
	m.Start(navigation.State{View: navigation.ViewDashboard, Tab: navigation.TabAssignments, Filter: navigation.FilterAll})
	gen := m.gen

	_, cmd := m.Update(pollMsg{gen: gen})
	if cmd == nil {
		t.Fatalf("current poll should fetch and reschedule")
	}

	m.Stop()
	if _, cmd := m.Update(pollMsg{gen: gen}); cmd != nil {
		t.Fatalf("poll from a stopped cycle must be dropped")
	}
}

func TestResponseAfterStopIsDropped(t *testing.T) {
	t.Parallel()
	m := newModel(&recordingFetch{})
	m.state = navigation.State{View: navigation.ViewDashboard, Tab: navigation.TabAssignments, Filter: navigation.FilterAll}
	inflight := m.load(false)().(LoadedMsg)
	m.Stop()
	m, _ = m.Update(inflight)
	if _, ok := m.Selected(); ok {
		t.Fatalf("response after stop should not render")
	}
}

func TestBackgroundFailureIsSilent(t *testing.T) {
	t.Parallel()
	f := &recordingFetch{err: errors.New("timeout")}
	m := newModel(f)
	m.state = navigation.State{View: navigation.ViewDashboard, Tab: navigation.TabAssignments, Filter: navigation.FilterAll}

	msg := m.load(true)().(LoadedMsg)
	_, cmd := m.Update(msg)
	notice := cmd().(NoticeMsg).Notice
	if notice.Level != notify.Silent {
		t.Fatalf("background failure should be silent, got %s", notice.Level)
	}
}

func TestEnterOpensReviewOrTask(t *testing.T) {
	t.Parallel()
	m := newModel(&recordingFetch{})
	m.state = navigation.State{View: navigation.ViewDashboard, Tab: navigation.TabReview, Filter: navigation.FilterAll}
	m, _ = m.Update(m.load(false)())
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if _, ok := cmd().(OpenReviewMsg); !ok {
		t.Fatalf("enter on a reviewable panel should open the review form")
	}

	task := navigation.TaskPayload{TaskID: "t1", Topic: "Graphs", PrerequisiteTopics: []string{}}
	m.state.Tab = navigation.TabAssignments
	m.rows[navigation.TabAssignments] = []Row{{ID: "t1", Title: "Graphs", Task: &task}}
	m.applyRows()
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	open, ok := cmd().(OpenTaskMsg)
	if !ok || open.Task.TaskID != "t1" {
		t.Fatalf("enter on a task row should open content creation")
	}
}

func TestRemoveDropsDecidedItem(t *testing.T) {
	t.Parallel()
	m := newModel(&recordingFetch{})
	m.state = navigation.State{View: navigation.ViewDashboard, Tab: navigation.TabReview, Filter: navigation.FilterAll}
	m.rows[navigation.TabReview] = []Row{{ID: "a", Title: "A"}, {ID: "b", Title: "B"}}
	m.applyRows()
	m.Remove("a")
	row, ok := m.Selected()
	if !ok || row.ID != "b" || len(m.rows[navigation.TabReview]) != 1 {
		t.Fatalf("decided item should be gone: %+v", m.rows)
	}
}
