package settings

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	sessiondto "cvp/internal/modules/session/dto"
)

type fakePort struct{ err error }

func (f fakePort) RefreshProfile(context.Context) (sessiondto.SessionOutput, error) {
	if f.err != nil {
		return sessiondto.SessionOutput{}, f.err
	}
	return sessiondto.SessionOutput{Authenticated: true, User: &sessiondto.UserOutput{Name: "Ada", Role: "ADMIN"}}, nil
}

func TestRefreshShowsProfile(t *testing.T) {
	t.Parallel()
	m := New(fakePort{}, Info{APIURL: "http://api.test"})
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	m, _ = m.Update(cmd())
	view := m.View()
	if !strings.Contains(view, "Ada") || !strings.Contains(view, "http://api.test") {
		t.Fatalf("unexpected view: %s", view)
	}
}

func TestRefreshErrorAndLogout(t *testing.T) {
	t.Parallel()
	m := New(fakePort{err: errors.New("offline")}, Info{})
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	m, _ = m.Update(cmd())
	if !strings.Contains(m.View(), "offline") {
		t.Fatalf("error should be shown")
	}
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("L")})
	if _, ok := cmd().(LogoutMsg); !ok {
		t.Fatalf("L should request logout")
	}
}
