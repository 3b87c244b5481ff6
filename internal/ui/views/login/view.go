package login

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sessiondto "cvp/internal/modules/session/dto"
	"cvp/internal/platform/apiclient"
	"cvp/internal/ui/theme"
)

// Port is the part of the session use case the login screen drives.
type Port interface {
	Login(ctx context.Context, input sessiondto.LoginInput) (sessiondto.SessionOutput, error)
	ForgotPassword(ctx context.Context, email string) error
}

// LoggedInMsg reports a login attempt.
type LoggedInMsg struct {
	Session sessiondto.SessionOutput
	Err     error
}

// ResetSentMsg reports a forgot-password request.
type ResetSentMsg struct {
	Email string
	Err   error
}

const (
	fieldEmail = iota
	fieldPassword
)

type Model struct {
	port       Port
	inputs     [2]textinput.Model
	focus      int
	submitting bool
	err        string
	info       string
	width      int
}

func New(port Port) Model {
	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.Prompt = "Email    "
	email.CharLimit = 254

	password := textinput.New()
	password.Placeholder = "password"
	password.Prompt = "Password "
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	m := Model{port: port, inputs: [2]textinput.Model{email, password}}
	m.inputs[fieldEmail].Focus()
	return m
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

// Reset clears the form after a logout, keeping the email.
func (m *Model) Reset() {
	m.inputs[fieldPassword].SetValue("")
	m.submitting = false
	m.err = ""
	m.info = ""
	m.setFocus(fieldEmail)
}

func (m Model) Submitting() bool { return m.submitting }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case LoggedInMsg:
		m.submitting = false
		if msg.Err != nil {
			m.err = apiclient.Message(msg.Err)
			m.inputs[fieldPassword].SetValue("")
			m.setFocus(fieldPassword)
		}
		return m, nil
	case ResetSentMsg:
		if msg.Err != nil {
			m.err = apiclient.Message(msg.Err)
		} else {
			m.err = ""
			m.info = "If " + msg.Email + " has an account, a reset link is on its way."
		}
		return m, nil
	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		switch msg.String() {
		case "tab", "down":
			m.setFocus((m.focus + 1) % len(m.inputs))
			return m, nil
		case "shift+tab", "up":
			m.setFocus((m.focus + len(m.inputs) - 1) % len(m.inputs))
			return m, nil
		case "ctrl+r":
			email := strings.TrimSpace(m.inputs[fieldEmail].Value())
			m.info = ""
			return m, m.forgotCmd(email)
		case "enter":
			if m.focus == fieldEmail {
				m.setFocus(fieldPassword)
				return m, nil
			}
			m.submitting = true
			m.err = ""
			m.info = ""
			return m, m.loginCmd(strings.TrimSpace(m.inputs[fieldEmail].Value()), m.inputs[fieldPassword].Value())
		}
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) View() string {
	lines := []string{
		theme.Title.Render("Content Validation Platform"),
		theme.Muted.Render("Sign in to continue"),
		"",
		m.inputs[fieldEmail].View(),
		m.inputs[fieldPassword].View(),
		"",
	}
	switch {
	case m.submitting:
		lines = append(lines, theme.Muted.Render("Signing in…"))
	case m.err != "":
		lines = append(lines, theme.Error.Render(m.err))
	case m.info != "":
		lines = append(lines, theme.Success.Render(m.info))
	}
	lines = append(lines, "", theme.Muted.Render("enter: sign in  tab: next field  ctrl+r: reset password  ctrl+c: quit"))
	w := m.width
	if w < 40 {
		w = 60
	}
	return theme.Pane.Width(min(w-4, 72)).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m *Model) setFocus(i int) {
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[i].Focus()
}

func (m Model) loginCmd(email, password string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Login(context.Background(), sessiondto.LoginInput{Email: email, Password: password})
		return LoggedInMsg{Session: out, Err: err}
	}
}

func (m Model) forgotCmd(email string) tea.Cmd {
	return func() tea.Msg {
		return ResetSentMsg{Email: email, Err: m.port.ForgotPassword(context.Background(), email)}
	}
}
