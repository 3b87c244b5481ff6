package create

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	contentdto "cvp/internal/modules/content/dto"
	navigation "cvp/internal/modules/navigation/domain"
	"cvp/internal/platform/apiclient"
	"cvp/internal/ui/theme"
)

// Port is the part of the content use case this view drives.
type Port interface {
	Prepare(ctx context.Context, input contentdto.SubmitInput) (contentdto.DraftOutput, error)
	Submit(ctx context.Context, input contentdto.SubmitInput) (contentdto.SubmitOutput, error)
}

type PreparedMsg struct {
	Draft contentdto.DraftOutput
	Err   error
}

type SubmittedMsg struct {
	Output contentdto.SubmitOutput
	Err    error
}

const (
	fieldTitle = iota
	fieldType
	fieldTopic
	fieldFile
	fieldCount
)

type Model struct {
	port       Port
	task       *navigation.TaskPayload
	inputs     [fieldCount]textinput.Model
	focus      int
	preview    viewport.Model
	renderer   *glamour.TermRenderer
	prepared   bool
	submitting bool
	err        string
	width      int
	height     int
}

func New(port Port) Model {
	prompts := [fieldCount]string{"Title  ", "Type   ", "Topic  ", "File   "}
	placeholders := [fieldCount]string{"Lecture title", "ASSIGNMENT | LECTURE_NOTES | PRE_READ", "Topic", "path/to/draft.md or .pdf"}
	m := Model{port: port, preview: viewport.New(0, 0)}
	for i := range m.inputs {
		in := textinput.New()
		in.Prompt = prompts[i]
		in.Placeholder = placeholders[i]
		in.CharLimit = 512
		m.inputs[i] = in
	}
	m.renderer, _ = glamour.NewTermRenderer(glamour.WithStylePath("dark"), glamour.WithWordWrap(80))
	return m
}

// Load resets the form for task, which may be nil for free-standing content.
func (m *Model) Load(task *navigation.TaskPayload) tea.Cmd {
	m.task = task
	for i := range m.inputs {
		m.inputs[i].SetValue("")
	}
	if task != nil {
		m.inputs[fieldType].SetValue(task.ContentType)
		m.inputs[fieldTopic].SetValue(task.Topic)
	}
	m.prepared = false
	m.submitting = false
	m.err = ""
	m.preview.SetContent(m.renderTask())
	return m.setFocus(fieldTitle)
}

func (m Model) Task() *navigation.TaskPayload { return m.task }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.preview.Width = m.width
		m.preview.Height = max(m.height-fieldCount-5, 3)
		if r, err := glamour.NewTermRenderer(glamour.WithStylePath("dark"), glamour.WithWordWrap(max(m.width-4, 20))); err == nil {
			m.renderer = r
		}
		if !m.prepared {
			m.preview.SetContent(m.renderTask())
		}
		return m, nil

	case PreparedMsg:
		if msg.Err != nil {
			m.err = apiclient.Message(msg.Err)
			return m, nil
		}
		m.err = ""
		m.prepared = true
		if m.inputs[fieldTitle].Value() == "" {
			m.inputs[fieldTitle].SetValue(msg.Draft.Title)
		}
		m.preview.SetContent(m.render("# " + msg.Draft.Title + "\n\n" + msg.Draft.Body))
		m.preview.GotoTop()
		return m, nil

	case SubmittedMsg:
		m.submitting = false
		if msg.Err != nil {
			m.err = apiclient.Message(msg.Err)
		}
		return m, nil

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		switch msg.String() {
		case "tab", "down":
			return m, m.setFocus((m.focus + 1) % fieldCount)
		case "shift+tab", "up":
			return m, m.setFocus((m.focus + fieldCount - 1) % fieldCount)
		case "ctrl+p":
			return m, m.prepareCmd(m.input())
		case "ctrl+s":
			m.submitting = true
			m.err = ""
			return m, m.submitCmd(m.input())
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.preview, cmd = m.preview.Update(msg)
			return m, cmd
		}
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) View() string {
	lines := []string{theme.Title.Render("Create content")}
	if m.task != nil {
		lines[0] += "  " + theme.Muted.Render("for task "+m.task.TaskID)
	}
	for i := range m.inputs {
		lines = append(lines, m.inputs[i].View())
	}
	switch {
	case m.submitting:
		lines = append(lines, theme.Muted.Render("Submitting…"))
	case m.err != "":
		lines = append(lines, theme.Error.Render(m.err))
	default:
		lines = append(lines, "")
	}
	lines = append(lines, m.preview.View(),
		theme.Muted.Render("tab: next field  ctrl+p: preview  ctrl+s: submit  esc: back"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) input() contentdto.SubmitInput {
	in := contentdto.SubmitInput{
		Title:       strings.TrimSpace(m.inputs[fieldTitle].Value()),
		ContentType: strings.TrimSpace(m.inputs[fieldType].Value()),
		Topic:       strings.TrimSpace(m.inputs[fieldTopic].Value()),
		FilePath:    strings.TrimSpace(m.inputs[fieldFile].Value()),
	}
	if t := m.task; t != nil {
		in.Task = &contentdto.TaskInput{
			TaskID:             t.TaskID,
			Topic:              t.Topic,
			ContentType:        t.ContentType,
			Guidelines:         t.Guidelines,
			PrerequisiteTopics: t.PrerequisiteTopics,
		}
	}
	return in
}

func (m *Model) setFocus(i int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = i
	return m.inputs[i].Focus()
}

func (m Model) renderTask() string {
	if m.task == nil {
		return m.render("_No task selected. Fill in the fields and point File at your draft._")
	}
	var sb strings.Builder
	sb.WriteString("## " + m.task.Topic + "\n\n")
	sb.WriteString("**Type:** " + m.task.ContentType + "\n\n")
	if len(m.task.PrerequisiteTopics) > 0 {
		sb.WriteString("**Prerequisites:** " + strings.Join(m.task.PrerequisiteTopics, ", ") + "\n\n")
	}
	if m.task.Guidelines != "" {
		sb.WriteString("### Guidelines\n\n" + m.task.Guidelines + "\n")
	}
	return m.render(sb.String())
}

func (m Model) render(md string) string {
	if m.renderer == nil {
		return md
	}
	out, err := m.renderer.Render(md)
	if err != nil {
		return md
	}
	return out
}

func (m Model) prepareCmd(in contentdto.SubmitInput) tea.Cmd {
	return func() tea.Msg {
		draft, err := m.port.Prepare(context.Background(), in)
		return PreparedMsg{Draft: draft, Err: err}
	}
}

func (m Model) submitCmd(in contentdto.SubmitInput) tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Submit(context.Background(), in)
		return SubmittedMsg{Output: out, Err: err}
	}
}
