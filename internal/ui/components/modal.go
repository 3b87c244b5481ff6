package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"cvp/internal/platform/notify"
	"cvp/internal/ui/theme"
)

// ModalDismissedMsg is emitted when the user closes the alert.
type ModalDismissedMsg struct{}

// Modal shows one alert notice at a time and swallows input until it is
// dismissed with enter or esc. Alerts raised while one is showing queue up.
type Modal struct {
	queue []notify.Notice
	width int
}

func NewModal() Modal { return Modal{} }

func (m Modal) Visible() bool { return len(m.queue) > 0 }

func (m *Modal) Push(n notify.Notice) { m.queue = append(m.queue, n) }

func (m *Modal) SetWidth(w int) { m.width = w }

func (m Modal) Update(msg tea.Msg) (Modal, tea.Cmd) {
	if !m.Visible() {
		return m, nil
	}
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "enter", "esc":
			m.queue = m.queue[1:]
			return m, func() tea.Msg { return ModalDismissedMsg{} }
		}
	}
	return m, nil
}

func (m Modal) View() string {
	if !m.Visible() {
		return ""
	}
	w := m.width
	if w < 30 {
		w = 60
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		theme.Error.Render("Error"),
		"",
		lipgloss.NewStyle().Width(w-6).Render(m.queue[0].Message),
		"",
		theme.Muted.Render("enter/esc: dismiss"),
	)
	return theme.Modal.Width(w - 2).Render(body)
}
