package review

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	reviewdomain "cvp/internal/modules/review/domain"
	reviewdto "cvp/internal/modules/review/dto"
)

type fakePort struct {
	submits []reviewdto.SubmitInput
}

func (f *fakePort) Get(_ context.Context, id string) (reviewdto.ContentOutput, error) {
	return reviewdto.ContentOutput{ID: id, Title: "Graphs", Body: "# Graphs"}, nil
}

func (f *fakePort) Submit(_ context.Context, in reviewdto.SubmitInput) error {
	f.submits = append(f.submits, in)
	return nil
}

func (f *fakePort) Revalidate(context.Context, string) (reviewdto.ValidationOutput, error) {
	return reviewdto.ValidationOutput{ConsensusScore: 8, Report: "## Consensus 8.0"}, nil
}

func key(s string) tea.KeyMsg {
	switch s {
	case "ctrl+t":
		return tea.KeyMsg{Type: tea.KeyCtrlT}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func openForm(t *testing.T, port *fakePort) Model {
	t.Helper()
	m := New(port)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m.Open("c1", "Graphs")
	m, _ = m.Update(m.getCmd("c1")())
	return m
}

func TestRejectNeedsFeedback(t *testing.T) {
	t.Parallel()
	port := &fakePort{}
	m := openForm(t, port)

	m, _ = m.Update(key("ctrl+t"))
	if m.Form().Action != reviewdomain.ActionReject {
		t.Fatalf("toggle should switch to reject")
	}
	m, cmd := m.Update(key("ctrl+s"))
	if cmd != nil || m.Form().Submitting {
		t.Fatalf("reject without feedback must not submit")
	}
	if !strings.Contains(m.View(), "feedback is required") {
		t.Fatalf("form should explain why submit is disabled")
	}

	for _, r := range "Needs examples" {
		m, _ = m.Update(key(string(r)))
	}
	m, cmd = m.Update(key("ctrl+s"))
	if cmd == nil || !m.Form().Submitting {
		t.Fatalf("reject with feedback should submit")
	}
	msg := cmd().(SubmittedMsg)
	if msg.Err != nil || len(port.submits) != 1 || port.submits[0].Feedback != "Needs examples" || port.submits[0].Action != "reject" {
		t.Fatalf("unexpected submit: %+v", port.submits)
	}

	if _, cmd := m.Update(key("ctrl+s")); cmd != nil {
		t.Fatalf("second submit while in flight must be ignored")
	}
	m, _ = m.Update(msg)
	if m.Form().Submitting {
		t.Fatalf("submit result should re-enable the form")
	}
}

func TestApproveSubmitsWithoutFeedback(t *testing.T) {
	t.Parallel()
	port := &fakePort{}
	m := openForm(t, port)
	_, cmd := m.Update(key("ctrl+s"))
	if cmd == nil {
		t.Fatalf("approve should submit")
	}
	cmd()
	if port.submits[0].Action != "approve" {
		t.Fatalf("unexpected action: %+v", port.submits[0])
	}
}
