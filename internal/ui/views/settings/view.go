package settings

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sessiondto "cvp/internal/modules/session/dto"
	"cvp/internal/ui/theme"
)

// Port is the part of the session use case the settings page drives.
type Port interface {
	RefreshProfile(ctx context.Context) (sessiondto.SessionOutput, error)
}

// Info is the static part of the page.
type Info struct {
	APIURL       string
	StateDir     string
	LogFile      string
	PollInterval string
}

type RefreshedMsg struct {
	Session sessiondto.SessionOutput
	Err     error
}

// LogoutMsg asks the shell to end the session.
type LogoutMsg struct{}

type Model struct {
	port    Port
	info    Info
	user    *sessiondto.UserOutput
	loading bool
	err     string
	width   int
}

func New(port Port, info Info) Model {
	return Model{port: port, info: info}
}

func (m *Model) SetUser(user *sessiondto.UserOutput) { m.user = user }

// Refresh reloads the profile from the server.
func (m *Model) Refresh() tea.Cmd {
	m.loading = true
	return func() tea.Msg {
		out, err := m.port.RefreshProfile(context.Background())
		return RefreshedMsg{Session: out, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case RefreshedMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err.Error()
			return m, nil
		}
		m.err = ""
		m.user = msg.Session.User
	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			return m, m.Refresh()
		case "L":
			return m, func() tea.Msg { return LogoutMsg{} }
		}
	}
	return m, nil
}

func (m Model) View() string {
	row := func(label, value string) string {
		return theme.Muted.Render(label+strings.Repeat(" ", max(14-len(label), 1))) + value
	}
	lines := []string{theme.Title.Render("Profile")}
	if m.user != nil {
		lines = append(lines,
			row("Name", m.user.Name),
			row("Email", m.user.Email),
			row("Role", m.user.Role),
		)
	} else {
		lines = append(lines, theme.Muted.Render("not signed in"))
	}
	if m.loading {
		lines = append(lines, theme.Muted.Render("refreshing…"))
	} else if m.err != "" {
		lines = append(lines, theme.Error.Render(m.err))
	}
	lines = append(lines, "",
		theme.Title.Render("Client"),
		row("API", m.info.APIURL),
		row("State dir", m.info.StateDir),
		row("Log file", m.info.LogFile),
		row("Poll every", m.info.PollInterval),
		"",
		theme.Muted.Render("r: refresh profile  L: sign out"),
	)
	return theme.Pane.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
