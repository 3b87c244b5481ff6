package review

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	reviewdomain "cvp/internal/modules/review/domain"
	reviewdto "cvp/internal/modules/review/dto"
	"cvp/internal/ui/theme"
)

// Port is the part of the review use case the form drives.
type Port interface {
	Get(ctx context.Context, id string) (reviewdto.ContentOutput, error)
	Submit(ctx context.Context, input reviewdto.SubmitInput) error
	Revalidate(ctx context.Context, id string) (reviewdto.ValidationOutput, error)
}

type LoadedMsg struct {
	Item reviewdto.ContentOutput
	Err  error
}

// SubmittedMsg reports a decision. The shell removes the item from its
// queue only when Err is nil.
type SubmittedMsg struct {
	ID     string
	Action string
	Err    error
}

type RevalidatedMsg struct {
	ID     string
	Result reviewdto.ValidationOutput
	Err    error
}

// ClosedMsg asks the shell to return to the dashboard.
type ClosedMsg struct{}

type Model struct {
	port       Port
	item       reviewdto.ContentOutput
	form       reviewdomain.Form
	feedback   textarea.Model
	detail     viewport.Model
	renderer   *glamour.TermRenderer
	loading    bool
	validating bool
	width      int
	height     int
}

func New(port Port) Model {
	ta := textarea.New()
	ta.Placeholder = "Feedback for the creator (required to reject)"
	ta.ShowLineNumbers = false
	ta.SetHeight(4)

	r, _ := glamour.NewTermRenderer(glamour.WithStylePath("dark"), glamour.WithWordWrap(80))
	return Model{
		port:     port,
		form:     reviewdomain.Form{Action: reviewdomain.ActionApprove},
		feedback: ta,
		detail:   viewport.New(0, 0),
		renderer: r,
	}
}

// Open resets the form for id and starts loading the full item.
func (m *Model) Open(id, title string) tea.Cmd {
	m.item = reviewdto.ContentOutput{ID: id, Title: title}
	m.form = reviewdomain.Form{Action: reviewdomain.ActionApprove}
	m.feedback.Reset()
	m.loading = true
	m.validating = false
	m.detail.SetContent(theme.Muted.Render("Loading…"))
	return tea.Batch(m.feedback.Focus(), m.getCmd(id))
}

func (m Model) ItemID() string { return m.item.ID }

func (m Model) Form() reviewdomain.Form { return m.form }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.feedback.SetWidth(max(m.width-4, 20))
		m.detail.Width = m.width
		m.detail.Height = max(m.height-12, 3)
		if r, err := glamour.NewTermRenderer(glamour.WithStylePath("dark"), glamour.WithWordWrap(max(m.width-4, 20))); err == nil {
			m.renderer = r
		}
		m.renderDetail()
		return m, nil

	case LoadedMsg:
		if msg.Item.ID != m.item.ID && msg.Err == nil {
			return m, nil
		}
		m.loading = false
		if msg.Err != nil {
			m.detail.SetContent(theme.Error.Render("Could not load: " + msg.Err.Error()))
			return m, nil
		}
		m.item = msg.Item
		m.renderDetail()
		return m, nil

	case SubmittedMsg:
		if msg.ID == m.item.ID {
			m.form.Submitting = false
		}
		return m, nil

	case RevalidatedMsg:
		if msg.ID != m.item.ID {
			return m, nil
		}
		m.validating = false
		if msg.Err == nil {
			result := msg.Result
			m.item.Validation = &result
			m.renderDetail()
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return ClosedMsg{} }
		case "ctrl+t":
			if m.form.Action == reviewdomain.ActionApprove {
				m.form.Action = reviewdomain.ActionReject
			} else {
				m.form.Action = reviewdomain.ActionApprove
			}
			return m, nil
		case "ctrl+s":
			return m, m.submit()
		case "ctrl+v":
			if m.validating || m.item.ID == "" {
				return m, nil
			}
			m.validating = true
			return m, m.revalidateCmd(m.item.ID)
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.detail, cmd = m.detail.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.feedback, cmd = m.feedback.Update(msg)
	m.form.Feedback = m.feedback.Value()
	return m, cmd
}

// submit is a no-op while the form cannot be submitted; the server is
// never asked to reject without feedback.
func (m *Model) submit() tea.Cmd {
	m.form.Feedback = m.feedback.Value()
	if !m.form.CanSubmit() {
		return nil
	}
	m.form.Submitting = true
	id, action, feedback := m.item.ID, string(m.form.Action), m.form.Feedback
	return func() tea.Msg {
		err := m.port.Submit(context.Background(), reviewdto.SubmitInput{ID: id, Action: action, Feedback: feedback})
		return SubmittedMsg{ID: id, Action: action, Err: err}
	}
}

func (m Model) View() string {
	header := theme.Title.Render(m.item.Title)
	if m.item.ContentType != "" {
		header += "  " + theme.Muted.Render(fmt.Sprintf("%s · %s · %s", m.item.ContentType, m.item.Topic, m.item.CreatorName))
	}
	if m.item.Status != "" {
		header += "  " + theme.Status(m.item.Status).Render(m.item.Status)
	}

	approve, reject := theme.Muted.Render("( ) approve"), theme.Muted.Render("( ) reject")
	if m.form.Action == reviewdomain.ActionApprove {
		approve = theme.Success.Render("(•) approve")
	} else {
		reject = theme.Error.Render("(•) reject")
	}

	submit := theme.Hot.Render("[ submit ]")
	switch {
	case m.form.Submitting:
		submit = theme.Muted.Render("[ submitting… ]")
	case !m.form.CanSubmit():
		submit = theme.Muted.Render("[ submit ]") + " " + theme.Warning.Render("feedback is required to reject")
	}
	if m.validating {
		submit += "  " + theme.Muted.Render("re-validating…")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.detail.View(),
		approve+"   "+reject,
		m.feedback.View(),
		submit,
		theme.Muted.Render("ctrl+t: toggle  ctrl+s: submit  ctrl+v: re-validate  pgup/pgdn: scroll  esc: back"),
	)
}

func (m *Model) renderDetail() {
	if m.loading {
		return
	}
	var sb strings.Builder
	if m.item.Body != "" {
		sb.WriteString(m.item.Body)
		sb.WriteString("\n\n---\n\n")
	}
	if m.item.Validation != nil {
		sb.WriteString(m.item.Validation.Report)
	} else {
		sb.WriteString("_Validation pending._\n")
	}
	content := sb.String()
	if m.renderer != nil {
		if rendered, err := m.renderer.Render(content); err == nil {
			content = rendered
		}
	}
	m.detail.SetContent(content)
	m.detail.GotoTop()
}

func (m Model) getCmd(id string) tea.Cmd {
	return func() tea.Msg {
		item, err := m.port.Get(context.Background(), id)
		if err == nil && item.ID == "" {
			item.ID = id
		}
		return LoadedMsg{Item: item, Err: err}
	}
}

func (m Model) revalidateCmd(id string) tea.Cmd {
	return func() tea.Msg {
		result, err := m.port.Revalidate(context.Background(), id)
		return RevalidatedMsg{ID: id, Result: result, Err: err}
	}
}
