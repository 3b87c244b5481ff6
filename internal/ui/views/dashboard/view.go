package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	navigation "cvp/internal/modules/navigation/domain"
	"cvp/internal/platform/latest"
	"cvp/internal/platform/notify"
	"cvp/internal/ui/theme"
)

// Row is one entry of a dashboard panel. Detail is markdown.
type Row struct {
	ID       string
	Title    string
	Subtitle string
	Status   string
	Detail   string
	Task     *navigation.TaskPayload
}

type rowItem struct{ row Row }

func (i rowItem) Title() string { return i.row.Title }
func (i rowItem) Description() string {
	if i.row.Status == "" {
		return i.row.Subtitle
	}
	return theme.Status(i.row.Status).Render(i.row.Status) + "  " + i.row.Subtitle
}
func (i rowItem) FilterValue() string { return i.row.Title }

// Panel is the data source behind one tab.
type Panel struct {
	Tab   navigation.Tab
	Fetch func(ctx context.Context, filter navigation.Filter) ([]Row, error)
	// Reviewable rows open the review form on enter.
	Reviewable bool
	Empty      string
	// Summary, when set, is fetched alongside the rows and shown in the header.
	Summary func(ctx context.Context) (string, error)
}

// Profile is what distinguishes one role's dashboard from another.
type Profile struct {
	Role   string
	Panels []Panel
}

func (p Profile) panel(tab navigation.Tab) (Panel, bool) {
	for _, panel := range p.Panels {
		if panel.Tab == tab {
			return panel, true
		}
	}
	return Panel{}, false
}

// LoadedMsg carries one panel fetch. Seq is checked against the latest
// guard so only the newest response per tab is shown.
type LoadedMsg struct {
	Tab        navigation.Tab
	Seq        uint64
	Rows       []Row
	Err        error
	Summary    string
	Background bool
	At         time.Time
}

// OpenTaskMsg asks the shell to start content creation for a task.
type OpenTaskMsg struct{ Task navigation.TaskPayload }

// OpenReviewMsg asks the shell to open the review form.
type OpenReviewMsg struct{ Row Row }

// NoticeMsg forwards a fetch failure to the shell's notifier.
type NoticeMsg struct{ Notice notify.Notice }

type pollMsg struct{ gen int }

type Model struct {
	profile  Profile
	interval time.Duration
	guard    *latest.Guard
	gen      int
	running  bool

	state     navigation.State
	rows      map[navigation.Tab][]Row
	summaries map[navigation.Tab]string
	fetchedAt time.Time
	loading   bool

	list     list.Model
	preview  viewport.Model
	spinner  spinner.Model
	renderer *glamour.TermRenderer
	width    int
	height   int
}

func New(profile Profile, interval time.Duration) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().Background(theme.Mantle).Foreground(theme.Text).Padding(0, 1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	r, _ := glamour.NewTermRenderer(glamour.WithStylePath("dark"), glamour.WithWordWrap(60))

	return Model{
		profile:   profile,
		interval:  interval,
		guard:     latest.New(),
		rows:      map[navigation.Tab][]Row{},
		summaries: map[navigation.Tab]string{},
		list:      l,
		preview:   vp,
		spinner:   sp,
		renderer:  r,
	}
}

func (m Model) Profile() Profile { return m.profile }

// Start begins polling for state. Calling it again restarts the cycle.
func (m *Model) Start(state navigation.State) tea.Cmd {
	m.gen++
	m.running = true
	m.state = state
	m.applyRows()
	return tea.Batch(m.load(false), m.tick(), m.spinner.Tick)
}

// Stop ends polling; ticks and responses already in flight are dropped.
func (m *Model) Stop() {
	m.gen++
	m.running = false
	m.loading = false
	m.guard.Reset()
}

func (m Model) Running() bool { return m.running }

// SetState follows a route change, fetching when the tab or filter moved.
func (m *Model) SetState(state navigation.State) tea.Cmd {
	prev := m.state
	m.state = state
	if prev.Tab == state.Tab && prev.Filter == state.Filter {
		return nil
	}
	m.list.ResetFilter()
	m.applyRows()
	return m.load(false)
}

func (m *Model) Refresh() tea.Cmd {
	return m.load(false)
}

// Filtering reports whether the list filter owns the keyboard.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Selected() (Row, bool) {
	item, ok := m.list.SelectedItem().(rowItem)
	if !ok {
		return Row{}, false
	}
	return item.row, true
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.renderPreview()
		return m, nil

	case pollMsg:
		if msg.gen != m.gen || !m.running {
			return m, nil
		}
		return m, tea.Batch(m.load(true), m.tick())

	case LoadedMsg:
		if !m.guard.Accept(string(msg.Tab), msg.Seq) {
			return m, nil
		}
		m.loading = false
		if msg.Err != nil {
			notice := notify.BackgroundFailed("refresh "+msg.Tab.Label(), msg.Err)
			if !msg.Background {
				notice = notify.Notice{Level: notify.Banner, Message: "could not load " + msg.Tab.Label(), Err: msg.Err}
			}
			return m, func() tea.Msg { return NoticeMsg{Notice: notice} }
		}
		m.rows[msg.Tab] = msg.Rows
		m.summaries[msg.Tab] = msg.Summary
		m.fetchedAt = msg.At
		if msg.Tab == m.state.Tab {
			cmds = append(cmds, m.applyRows())
		}
		return m, tea.Batch(cmds...)

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		if !m.Filtering() && msg.String() == "enter" {
			return m, m.open()
		}
	}

	prev := m.list.Index()
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	cmds = append(cmds, cmd)
	if m.list.Index() != prev {
		m.renderPreview()
	}
	var vCmd tea.Cmd
	m.preview, vCmd = m.preview.Update(msg)
	cmds = append(cmds, vCmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	panel, ok := m.profile.panel(m.state.Tab)
	if !ok {
		return theme.Muted.Render("Nothing to show for " + m.state.Tab.Label())
	}
	header := m.renderHeader()
	if m.loading && len(m.rows[m.state.Tab]) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, header,
			lipgloss.Place(m.width, max(m.height-2, 1), lipgloss.Center, lipgloss.Center, m.spinner.View()+" Loading…"))
	}
	if len(m.rows[m.state.Tab]) == 0 {
		empty := panel.Empty
		if empty == "" {
			empty = "Nothing here yet."
		}
		return lipgloss.JoinVertical(lipgloss.Left, header, theme.Muted.Render(empty))
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.list.View(), m.preview.View())
	return lipgloss.JoinVertical(lipgloss.Left, header, body)
}

func (m Model) renderHeader() string {
	parts := []string{theme.Title.Render(m.state.Tab.Label())}
	if m.state.Tab == navigation.TabAssignments {
		filters := make([]string, 0, len(navigation.Filters))
		for _, f := range navigation.Filters {
			label := string(f)
			if f == m.state.Filter {
				filters = append(filters, theme.Hot.Render(label))
			} else {
				filters = append(filters, theme.Muted.Render(label))
			}
		}
		parts = append(parts, strings.Join(filters, " "))
	}
	if summary := m.summaries[m.state.Tab]; summary != "" {
		parts = append(parts, theme.Muted.Render(summary))
	}
	if !m.fetchedAt.IsZero() {
		parts = append(parts, theme.Muted.Render("updated "+m.fetchedAt.Format("15:04:05")))
	}
	return strings.Join(parts, "  ")
}

func (m *Model) resize() {
	listW := m.width * 2 / 5
	m.list.SetSize(listW, max(m.height-2, 1))
	m.preview.Width = max(m.width-listW, 1)
	m.preview.Height = max(m.height-2, 1)
	if r, err := glamour.NewTermRenderer(glamour.WithStylePath("dark"), glamour.WithWordWrap(max(m.preview.Width-4, 20))); err == nil {
		m.renderer = r
	}
}

func (m *Model) applyRows() tea.Cmd {
	rows := m.rows[m.state.Tab]
	items := make([]list.Item, len(rows))
	for i, r := range rows {
		items[i] = rowItem{row: r}
	}
	m.list.Title = m.state.Tab.Label()
	cmd := m.list.SetItems(items)
	m.renderPreview()
	return cmd
}

func (m *Model) renderPreview() {
	row, ok := m.Selected()
	if !ok {
		m.preview.SetContent("")
		return
	}
	content := "# " + row.Title + "\n\n" + row.Detail
	if m.renderer != nil {
		if rendered, err := m.renderer.Render(content); err == nil {
			content = rendered
		}
	}
	m.preview.SetContent(content)
	m.preview.GotoTop()
}

func (m Model) open() tea.Cmd {
	panel, ok := m.profile.panel(m.state.Tab)
	if !ok {
		return nil
	}
	row, ok := m.Selected()
	if !ok {
		return nil
	}
	switch {
	case panel.Reviewable:
		return func() tea.Msg { return OpenReviewMsg{Row: row} }
	case row.Task != nil:
		task := *row.Task
		return func() tea.Msg { return OpenTaskMsg{Task: task} }
	}
	return nil
}

func (m *Model) load(background bool) tea.Cmd {
	panel, ok := m.profile.panel(m.state.Tab)
	if !ok || panel.Fetch == nil {
		return nil
	}
	tab, filter := m.state.Tab, m.state.Filter
	seq := m.guard.Begin(string(tab))
	if !background {
		m.loading = true
	}
	return func() tea.Msg {
		ctx := context.Background()
		rows, err := panel.Fetch(ctx, filter)
		msg := LoadedMsg{Tab: tab, Seq: seq, Rows: rows, Err: err, Background: background, At: time.Now()}
		if err == nil && panel.Summary != nil {
			// A missing summary never hides the rows.
			msg.Summary, _ = panel.Summary(ctx)
		}
		return msg
	}
}

func (m Model) tick() tea.Cmd {
	if m.interval <= 0 {
		return nil
	}
	gen := m.gen
	return tea.Tick(m.interval, func(time.Time) tea.Msg { return pollMsg{gen: gen} })
}

// Remove drops an item from every panel, after the server accepted a
// decision on it.
func (m *Model) Remove(id string) tea.Cmd {
	for tab, rows := range m.rows {
		kept := rows[:0:0]
		for _, r := range rows {
			if r.ID != id {
				kept = append(kept, r)
			}
		}
		m.rows[tab] = kept
	}
	return m.applyRows()
}

// Describe is a one-line summary used by the status bar.
func (m Model) Describe() string {
	return fmt.Sprintf("%s · %d items", m.state.Tab.Label(), len(m.rows[m.state.Tab]))
}
