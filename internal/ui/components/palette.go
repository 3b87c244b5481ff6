package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"cvp/internal/ui/theme"
)

type PaletteSubmitMsg struct{ Input string }

type PaletteCancelMsg struct{}

// Command is one palette entry. Args, when set, are offered as completions
// once the command word has been typed.
type Command struct {
	Name  string
	Usage string
	Help  string
	Args  []string
}

var (
	paletteBox = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Peach).
			Background(theme.Mantle).
			Foreground(theme.Text).
			Padding(0, 1)

	usageStyle = lipgloss.NewStyle().Foreground(theme.Lavender)
	helpStyle  = lipgloss.NewStyle().Foreground(theme.Subtext0)
	pickStyle  = lipgloss.NewStyle().Foreground(theme.Peach).Bold(true)
)

const maxSuggestions = 6

type Palette struct {
	input    textinput.Model
	commands []Command
	visible  bool
	width    int
}

func NewPalette(commands ...Command) Palette {
	ti := textinput.New()
	ti.Placeholder = "command, tab completes"
	ti.CharLimit = 256
	return Palette{input: ti, commands: commands}
}

// SetCommands replaces the command set, e.g. after the signed in role changes.
func (p *Palette) SetCommands(commands []Command) { p.commands = commands }

func (p Palette) Visible() bool { return p.visible }

func (p *Palette) Open() tea.Cmd {
	p.visible = true
	p.input.SetValue("")
	return p.input.Focus()
}

func (p *Palette) SetWidth(w int) { p.width = w }

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			p.close()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case "enter":
			val := strings.Join(strings.Fields(p.input.Value()), " ")
			p.close()
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: val} }
		case "tab":
			if s := p.Suggestions(); len(s) > 0 {
				p.input.SetValue(s[0] + " ")
				p.input.CursorEnd()
			}
			return p, nil
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p *Palette) close() {
	p.visible = false
	p.input.Blur()
}

// Suggestions completes the current input: command names while the first
// word is being typed, then that command's arguments.
func (p Palette) Suggestions() []string {
	raw := strings.ToLower(strings.TrimLeft(p.input.Value(), " "))
	name, arg, hasArg := strings.Cut(raw, " ")
	var out []string
	for _, c := range p.commands {
		if !hasArg {
			if strings.HasPrefix(c.Name, name) {
				out = append(out, c.Name)
			}
			continue
		}
		if c.Name != name {
			continue
		}
		arg = strings.TrimSpace(arg)
		for _, a := range c.Args {
			if strings.HasPrefix(a, arg) {
				out = append(out, c.Name+" "+a)
			}
		}
	}
	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Command Palette") + "\n")
	sb.WriteString(": " + p.input.View() + "\n")

	suggestions := p.Suggestions()
	if len(suggestions) > 0 {
		sb.WriteString("\n")
	}
	for i, s := range suggestions {
		line := "  " + usageStyle.Render(s)
		if c, ok := p.lookup(s); ok {
			line = "  " + usageStyle.Render(c.Usage) + "  " + helpStyle.Render(c.Help)
		}
		if i == 0 {
			line = pickStyle.Render(">") + line[1:]
		}
		sb.WriteString(line + "\n")
	}

	w := p.width
	if w < 20 {
		w = 64
	}
	return paletteBox.Width(w - 2).Render(sb.String())
}

func (p Palette) lookup(name string) (Command, bool) {
	for _, c := range p.commands {
		if c.Name == name {
			return c, true
		}
	}
	return Command{}, false
}
