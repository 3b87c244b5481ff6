package components

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"cvp/internal/platform/notify"
)

func TestModalQueuesAndDismisses(t *testing.T) {
	t.Parallel()
	m := NewModal()
	if m.Visible() {
		t.Fatalf("new modal should be hidden")
	}
	m.Push(notify.ActionFailed("login", errors.New("bad credentials")))
	m.Push(notify.ActionFailed("review", errors.New("gone")))
	if !strings.Contains(m.View(), "login failed: bad credentials") {
		t.Fatalf("unexpected view: %s", m.View())
	}

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	if cmd != nil || !m.Visible() {
		t.Fatalf("other keys must not dismiss")
	}
	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("dismiss should emit a message")
	}
	if _, ok := cmd().(ModalDismissedMsg); !ok {
		t.Fatalf("unexpected dismiss message")
	}
	if !strings.Contains(m.View(), "review failed: gone") {
		t.Fatalf("second alert should show next")
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.Visible() {
		t.Fatalf("modal should be empty")
	}
}

func TestPaletteSubmit(t *testing.T) {
	t.Parallel()
	p := NewPalette()
	p.Open()
	for _, r := range "tasks overdue" {
		p, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if p.Visible() {
		t.Fatalf("palette should close on enter")
	}
	msg, ok := cmd().(PaletteSubmitMsg)
	if !ok || msg.Input != "tasks overdue" {
		t.Fatalf("unexpected submit: %#v", msg)
	}
}

func TestPaletteCompletesCommandsAndArgs(t *testing.T) {
	t.Parallel()
	p := NewPalette(
		Command{Name: "tasks", Usage: "tasks [filter]", Args: []string{"all", "overdue"}},
		Command{Name: "settings", Usage: "settings"},
	)
	p.Open()
	typeText := func(s string) {
		for _, r := range s {
			p, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		}
	}

	typeText("ta")
	if got := p.Suggestions(); len(got) != 1 || got[0] != "tasks" {
		t.Fatalf("unexpected suggestions: %v", got)
	}
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyTab})
	if got := p.Suggestions(); len(got) != 2 {
		t.Fatalf("expected filter completions, got %v", got)
	}
	typeText("ov")
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyTab})
	if !strings.Contains(p.View(), "tasks overdue") {
		t.Fatalf("completion missing from view: %s", p.View())
	}
	_, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if msg := cmd().(PaletteSubmitMsg); msg.Input != "tasks overdue" {
		t.Fatalf("unexpected submit: %q", msg.Input)
	}
}
