package app

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	admindto "cvp/internal/modules/admin/dto"
	assignmentdto "cvp/internal/modules/assignment/dto"
	navigation "cvp/internal/modules/navigation/domain"
	navigationin "cvp/internal/modules/navigation/port/in"
	reviewdto "cvp/internal/modules/review/dto"
	sessiondto "cvp/internal/modules/session/dto"
	"cvp/internal/platform/logging"
	"cvp/internal/platform/notify"
	"cvp/internal/ui/components"
	"cvp/internal/ui/theme"
	"cvp/internal/ui/views/create"
	"cvp/internal/ui/views/dashboard"
	"cvp/internal/ui/views/login"
	"cvp/internal/ui/views/review"
	"cvp/internal/ui/views/settings"
)

// Each port is the slice of a use case the shell needs. View ports are
// embedded so one use case value satisfies both.

type sessionPort interface {
	login.Port
	settings.Port
	Restore(ctx context.Context) (sessiondto.SessionOutput, error)
	ValidateOnStartup(ctx context.Context) (sessiondto.StartupOutput, error)
	Logout(ctx context.Context) error
	Subscribe(fn func(sessiondto.SessionOutput)) (cancel func())
}

type navigationPort interface {
	ForRole(role string) navigationin.Navigator
	Assign(raw string)
}

type reviewPort interface {
	review.Port
	Queue(ctx context.Context) (reviewdto.QueueOutput, error)
}

type assignmentPort interface {
	MyTasks(ctx context.Context, filter string) ([]assignmentdto.AssignmentOutput, error)
	List(ctx context.Context, filter string) ([]assignmentdto.AssignmentOutput, error)
}

type contentPort interface {
	create.Port
	Mine(ctx context.Context) ([]reviewdto.ContentOutput, error)
}

type adminPort interface {
	Stats(ctx context.Context) ([]admindto.MetricOutput, error)
	AssignedCreators(ctx context.Context) ([]admindto.CreatorOutput, error)
	Analytics(ctx context.Context) ([]admindto.MetricOutput, error)
	Users(ctx context.Context) ([]admindto.UserOutput, error)
	Prompts(ctx context.Context) ([]admindto.PromptOutput, error)
	Guidelines(ctx context.Context) ([]admindto.GuidelineOutput, error)
}

// Deps wires the shell. With a nil Admin the admin tabs are left out.
type Deps struct {
	Session      sessionPort
	Navigation   navigationPort
	Review       reviewPort
	Assignments  assignmentPort
	Content      contentPort
	Admin        adminPort
	Health       func(ctx context.Context) error
	PollInterval time.Duration
	InitialRoute string
	Settings     settings.Info
	Logger       *slog.Logger
}

type startupMsg struct {
	session sessiondto.SessionOutput
	err     error
}

type sessionChangedMsg struct{ session sessiondto.SessionOutput }

type loggedOutMsg struct{ err error }

const sessionEventBuffer = 16

// Model is the root Bubble Tea model. It owns authentication state, the
// navigator for the signed-in role and the overlays; rendering is left to
// the views.
type Model struct {
	deps   Deps
	logger *slog.Logger
	events chan sessiondto.SessionOutput
	cancel func()

	ready   bool
	session sessiondto.SessionOutput
	nav     navigationin.Navigator
	unmount func()
	route   navigation.State

	loginView    login.Model
	dash         dashboard.Model
	reviewView   review.Model
	reviewing    bool
	createView   create.Model
	settingsView settings.Model

	keys     keyMap
	help     help.Model
	showHelp bool
	palette  components.Palette
	modal    components.Modal
	status   string
	width    int
	height   int
}

func NewModel(deps Deps) Model {
	logger := logging.OrDiscard(deps.Logger)
	m := Model{
		deps:         deps,
		logger:       logger,
		events:       make(chan sessiondto.SessionOutput, sessionEventBuffer),
		loginView:    login.New(deps.Session),
		dash:         dashboard.New(dashboard.Profile{}, deps.PollInterval),
		reviewView:   review.New(deps.Review),
		createView:   create.New(deps.Content),
		settingsView: settings.New(deps.Session, deps.Settings),
		keys:         defaultKeys(),
		help:         help.New(),
		palette:      components.NewPalette(),
		modal:        components.NewModal(),
		status:       "starting…",
	}
	events := m.events
	m.cancel = deps.Session.Subscribe(func(s sessiondto.SessionOutput) {
		select {
		case events <- s:
		default:
			logger.Warn("session event dropped", "authenticated", s.Authenticated)
		}
	})
	if route := strings.TrimSpace(deps.InitialRoute); route != "" {
		deps.Navigation.Assign(route)
	}
	return m
}

// Close stops listening for session changes. Call it after the program exits.
func (m Model) Close() {
	if m.unmount != nil {
		m.unmount()
	}
	if m.cancel != nil {
		m.cancel()
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.startupCmd(), m.waitForSession(), m.healthCmd(), m.loginView.Init())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.palette.SetWidth(min(msg.Width-4, 80))
		m.modal.SetWidth(min(msg.Width-4, 70))
		m.propagateSize()
		return m, nil

	case startupMsg:
		m.ready = true
		m.status = "ready"
		if msg.err != nil {
			m.logger.Warn("session restore failed", "err", msg.err)
		}
		if msg.session.Authenticated {
			return m, m.enter(msg.session)
		}
		return m, nil

	case sessionChangedMsg:
		cmd := m.waitForSession()
		switch {
		case !msg.session.Authenticated && m.nav != nil:
			m.leave()
			m.notify(notify.Info("signed out"))
		case msg.session.Authenticated && m.nav != nil:
			m.session = msg.session
			m.settingsView.SetUser(msg.session.User)
		}
		return m, cmd

	case loggedOutMsg:
		if msg.err != nil {
			m.notify(notify.ActionFailed("logout", msg.err))
		}
		if m.nav != nil {
			m.leave()
		}
		return m, nil

	case login.LoggedInMsg:
		var cmd tea.Cmd
		m.loginView, cmd = m.loginView.Update(msg)
		if msg.Err != nil {
			m.notify(notify.ActionFailed("login", msg.Err))
			return m, cmd
		}
		return m, tea.Batch(cmd, m.enter(msg.Session))

	case login.ResetSentMsg:
		var cmd tea.Cmd
		m.loginView, cmd = m.loginView.Update(msg)
		if msg.Err == nil {
			m.notify(notify.Info("password reset requested"))
		}
		return m, cmd

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg, components.ModalDismissedMsg:
		return m, nil

	case dashboard.NoticeMsg:
		m.notify(msg.Notice)
		return m, nil

	case dashboard.OpenTaskMsg:
		task := msg.Task
		return m, m.navigate(navigation.State{View: navigation.ViewCreateContent, Task: &task})

	case dashboard.OpenReviewMsg:
		m.reviewing = true
		return m, m.reviewView.Open(msg.Row.ID, msg.Row.Title)

	case review.SubmittedMsg:
		var cmd tea.Cmd
		m.reviewView, cmd = m.reviewView.Update(msg)
		if msg.Err != nil {
			m.notify(notify.ActionFailed("review", msg.Err))
			return m, cmd
		}
		m.reviewing = false
		m.notify(notify.Info("content " + pastTense(msg.Action)))
		return m, tea.Batch(cmd, m.dash.Remove(msg.ID))

	case review.RevalidatedMsg:
		var cmd tea.Cmd
		m.reviewView, cmd = m.reviewView.Update(msg)
		if msg.Err != nil {
			m.notify(notify.ActionFailed("re-validation", msg.Err))
		} else {
			m.notify(notify.Info("validation refreshed"))
		}
		return m, cmd

	case review.ClosedMsg:
		m.reviewing = false
		return m, nil

	case create.SubmittedMsg:
		var cmd tea.Cmd
		m.createView, cmd = m.createView.Update(msg)
		if msg.Err != nil {
			m.notify(notify.ActionFailed("content submission", msg.Err))
			return m, cmd
		}
		m.notify(notify.Info("submitted “" + msg.Output.Title + "” for validation"))
		return m, tea.Batch(cmd, m.navigate(m.afterSubmitState()))

	case settings.LogoutMsg:
		return m, m.logoutCmd()

	case settings.RefreshedMsg:
		var cmd tea.Cmd
		m.settingsView, cmd = m.settingsView.Update(msg)
		if msg.Err != nil {
			m.notify(notify.Notice{Level: notify.Banner, Message: "profile refresh failed", Err: msg.Err})
		}
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.forward(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.modal.Visible() {
		var cmd tea.Cmd
		m.modal, cmd = m.modal.Update(msg)
		return m, cmd
	}
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}
	if m.showHelp {
		if msg.String() == "?" || msg.String() == "esc" {
			m.showHelp = false
		}
		return m, nil
	}
	if m.nav == nil {
		var cmd tea.Cmd
		m.loginView, cmd = m.loginView.Update(msg)
		return m, cmd
	}
	if m.reviewing {
		var cmd tea.Cmd
		m.reviewView, cmd = m.reviewView.Update(msg)
		return m, cmd
	}
	if m.route.View == navigation.ViewCreateContent {
		if msg.String() == "esc" {
			return m, m.back()
		}
		var cmd tea.Cmd
		m.createView, cmd = m.createView.Update(msg)
		return m, cmd
	}
	if m.route.View == navigation.ViewDashboard && m.dash.Filtering() {
		var cmd tea.Cmd
		m.dash, cmd = m.dash.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "?":
		m.showHelp = true
		return m, nil
	case ":":
		return m, m.palette.Open()
	case "tab":
		return m, m.cycleTab(1)
	case "shift+tab":
		return m, m.cycleTab(-1)
	case "alt+left", "[":
		return m, m.back()
	case "alt+right", "]":
		return m, m.forwardHistory()
	case "ctrl+r":
		return m, m.refresh()
	case "f":
		if m.route.View == navigation.ViewDashboard && m.route.Tab == navigation.TabAssignments {
			return m, m.navigate(navigation.State{View: navigation.ViewDashboard, Tab: navigation.TabAssignments, Filter: nextFilter(m.route.Filter)})
		}
	case "n":
		if m.route.View == navigation.ViewDashboard && m.session.User != nil && strings.EqualFold(m.session.User.Role, navigation.RoleCreator) {
			return m, m.navigate(navigation.State{View: navigation.ViewCreateContent})
		}
	}

	var cmd tea.Cmd
	switch m.route.View {
	case navigation.ViewSettings:
		m.settingsView, cmd = m.settingsView.Update(msg)
	default:
		m.dash, cmd = m.dash.Update(msg)
	}
	return m, cmd
}

// forward hands everything else to the views. The dashboard always sees
// its own messages so polls and late responses are settled even while it
// is hidden.
func (m Model) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	if m.nav == nil {
		m.loginView, cmd = m.loginView.Update(msg)
		return m, cmd
	}
	m.dash, cmd = m.dash.Update(msg)
	cmds = append(cmds, cmd)
	switch {
	case m.reviewing:
		m.reviewView, cmd = m.reviewView.Update(msg)
		cmds = append(cmds, cmd)
	case m.route.View == navigation.ViewCreateContent:
		m.createView, cmd = m.createView.Update(msg)
		cmds = append(cmds, cmd)
	case m.route.View == navigation.ViewSettings:
		m.settingsView, cmd = m.settingsView.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// enter mounts the role's navigator and shows its dashboard.
func (m *Model) enter(session sessiondto.SessionOutput) tea.Cmd {
	if m.nav != nil || session.User == nil {
		return nil
	}
	role := strings.ToUpper(session.User.Role)
	m.session = session
	m.nav = m.deps.Navigation.ForRole(role)
	m.unmount = m.nav.Mount()
	m.dash = dashboard.New(m.profileFor(role, m.nav.Table()), m.deps.PollInterval)
	m.settingsView.SetUser(session.User)
	m.palette.SetCommands(paletteCommands(role))
	m.propagateSize()
	m.route = m.nav.State()
	m.logger.Info("signed in", "role", role, "route", m.route.String())
	m.status = "signed in as " + session.User.Name
	return m.applyRoute(navigation.State{})
}

// leave unmounts the navigator. Pending polls die with the dashboard's
// generation.
func (m *Model) leave() {
	m.dash.Stop()
	if m.unmount != nil {
		m.unmount()
	}
	m.nav = nil
	m.unmount = nil
	m.reviewing = false
	m.route = navigation.State{}
	m.session = sessiondto.SessionOutput{}
	m.loginView.Reset()
}

func (m *Model) navigate(target navigation.State) tea.Cmd {
	if m.nav == nil {
		return nil
	}
	m.nav.NavigateTo(target)
	return m.syncRoute()
}

func (m *Model) back() tea.Cmd {
	if m.nav == nil {
		return nil
	}
	if !m.nav.Back() {
		if m.route.View != navigation.ViewDashboard {
			return m.navigate(navigation.State{View: navigation.ViewDashboard, Tab: m.nav.Table().DefaultTab})
		}
		return nil
	}
	return m.syncRoute()
}

func (m *Model) forwardHistory() tea.Cmd {
	if m.nav == nil || !m.nav.Forward() {
		return nil
	}
	return m.syncRoute()
}

// syncRoute picks up whatever the navigator resolved after a history move.
func (m *Model) syncRoute() tea.Cmd {
	next := m.nav.State()
	if next.Equal(m.route) {
		return nil
	}
	prev := m.route
	m.route = next
	return m.applyRoute(prev)
}

func (m *Model) applyRoute(prev navigation.State) tea.Cmd {
	m.reviewing = false
	switch m.route.View {
	case navigation.ViewCreateContent:
		m.dash.Stop()
		return m.createView.Load(m.route.Task)
	case navigation.ViewSettings:
		m.dash.Stop()
		if prev.View != navigation.ViewSettings {
			return m.settingsView.Refresh()
		}
		return nil
	default:
		if !m.dash.Running() {
			return m.dash.Start(m.route)
		}
		return m.dash.SetState(m.route)
	}
}

func (m *Model) cycleTab(step int) tea.Cmd {
	tabs := m.nav.Table().Tabs
	if len(tabs) == 0 {
		return nil
	}
	i := 0
	for j, tab := range tabs {
		if tab == m.route.Tab {
			i = j
			break
		}
	}
	next := tabs[(i+step+len(tabs))%len(tabs)]
	if next == navigation.TabSettings {
		return m.navigate(navigation.State{View: navigation.ViewSettings, Tab: navigation.TabSettings})
	}
	return m.navigate(navigation.State{View: navigation.ViewDashboard, Tab: next, Filter: navigation.FilterAll})
}

func (m *Model) refresh() tea.Cmd {
	switch m.route.View {
	case navigation.ViewSettings:
		return m.settingsView.Refresh()
	case navigation.ViewDashboard:
		return m.dash.Refresh()
	}
	return nil
}

func (m Model) afterSubmitState() navigation.State {
	table := m.nav.Table()
	if table.HasTab(navigation.TabSubmissions) {
		return navigation.State{View: navigation.ViewDashboard, Tab: navigation.TabSubmissions}
	}
	return navigation.State{View: navigation.ViewDashboard, Tab: table.DefaultTab}
}

// notify applies the notice policy: everything is logged, banners go to the
// status bar, alerts block in the modal.
func (m *Model) notify(n notify.Notice) {
	notify.NewLogNotifier(m.logger).Notify(n)
	switch n.Level {
	case notify.Banner:
		m.status = n.Message
	case notify.Alert:
		m.modal.Push(n)
	}
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: max(m.height-4, 1)}
	m.loginView, _ = m.loginView.Update(sz)
	m.dash, _ = m.dash.Update(sz)
	m.reviewView, _ = m.reviewView.Update(sz)
	m.createView, _ = m.createView.Update(sz)
	m.settingsView, _ = m.settingsView.Update(sz)
}

func (m Model) startupCmd() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		session, err := m.deps.Session.Restore(ctx)
		if err != nil {
			return startupMsg{err: err}
		}
		if !session.Authenticated {
			return startupMsg{session: session}
		}
		out, err := m.deps.Session.ValidateOnStartup(ctx)
		if err != nil || !out.Valid {
			m.logger.Info("persisted session rejected", "reason", out.Reason, "err", err)
			return startupMsg{err: err}
		}
		return startupMsg{session: session}
	}
}

func (m Model) waitForSession() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		return sessionChangedMsg{session: <-events}
	}
}

func (m Model) healthCmd() tea.Cmd {
	if m.deps.Health == nil {
		return nil
	}
	return func() tea.Msg {
		_ = m.deps.Health(context.Background())
		return nil
	}
}

func (m Model) logoutCmd() tea.Cmd {
	return func() tea.Msg {
		return loggedOutMsg{err: m.deps.Session.Logout(context.Background())}
	}
}

func nextFilter(current navigation.Filter) navigation.Filter {
	for i, f := range navigation.Filters {
		if f == current {
			return navigation.Filters[(i+1)%len(navigation.Filters)]
		}
	}
	return navigation.FilterAll
}

func pastTense(action string) string {
	switch action {
	case "approve":
		return "approved"
	case "reject":
		return "rejected"
	}
	return action
}

func (m Model) View() string {
	if m.nav == nil {
		body := m.loginView.View()
		if !m.ready {
			body = theme.Muted.Render("Restoring session…")
		}
		if m.modal.Visible() {
			body = m.modal.View()
		}
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
	}

	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := max(m.height-lipgloss.Height(tabBar)-lipgloss.Height(statusBar), 1)

	var content string
	switch {
	case m.modal.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.modal.View())
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.palette.View())
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys))
	case m.reviewing:
		content = m.reviewView.View()
	case m.route.View == navigation.ViewCreateContent:
		content = m.createView.View()
	case m.route.View == navigation.ViewSettings:
		content = m.settingsView.View()
	default:
		content = m.dash.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) renderTabBar() string {
	tabs := m.nav.Table().Tabs
	parts := make([]string, 0, len(tabs))
	for _, tab := range tabs {
		label := " " + tab.Label() + " "
		if tab == m.route.Tab && m.route.View != navigation.ViewCreateContent {
			parts = append(parts, theme.Hot.Render(label))
		} else {
			parts = append(parts, theme.Muted.Render(label))
		}
	}
	bar := "cvp  " + strings.Join(parts, theme.Muted.Render(" │ "))
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.route.View == navigation.ViewDashboard {
		left = m.dash.Describe() + "  " + left
	}
	if m.session.User != nil {
		left = theme.Hot.Render("● "+m.session.User.Name) + "  " + left
	}
	right := theme.Muted.Render(m.nav.Location().String() + "  ?:help  :::palette  q:quit")
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}
