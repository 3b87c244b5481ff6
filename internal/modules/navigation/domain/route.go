package domain

import (
	"encoding/json"
	"log/slog"
	"net/url"
	"slices"
)

// Route matches a location and writes its part of the view state.
type Route struct {
	Name  string
	Match func(Location) bool
	Apply func(Location, *State, *slog.Logger)
}

// RouteTable is an ordered list of routes; the first match wins. A state
// whose tab is not in Tabs falls back to DefaultTab.
type RouteTable struct {
	Name       string
	Routes     []Route
	Tabs       []Tab
	DefaultTab Tab
}

// Resolve is a pure function of loc: calling it twice on the same location
// yields the same state.
func (t RouteTable) Resolve(loc Location, logger *slog.Logger) State {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	state := State{View: ViewDashboard, Tab: t.DefaultTab, Filter: FilterAll}
	for _, route := range t.Routes {
		if route.Match(loc) {
			route.Apply(loc, &state, logger)
			break
		}
	}
	if !t.HasTab(state.Tab) {
		state.Tab = t.DefaultTab
	}
	if state.Tab != TabAssignments {
		state.Filter = FilterAll
	}
	return state
}

func (t RouteTable) HasTab(tab Tab) bool {
	return slices.Contains(t.Tabs, tab)
}

func hashRoute(name, fragment string, apply func(Location, *State, *slog.Logger)) Route {
	return Route{
		Name:  name,
		Match: func(loc Location) bool { return loc.HashContains(fragment) },
		Apply: apply,
	}
}

func tabRoute(tab Tab) Route {
	return hashRoute(string(tab), "#/"+string(tab), func(_ Location, s *State, _ *slog.Logger) {
		s.Tab = tab
	})
}

// ShellRoutes are shared by every role and always come first.
func ShellRoutes() []Route {
	return []Route{
		hashRoute("create-content", "#/create-content", func(loc Location, s *State, logger *slog.Logger) {
			s.View = ViewCreateContent
			s.Task = nil
			query, qerr := loc.ParseQuery()
			raw := query.Get("task")
			if raw == "" {
				if qerr != nil {
					logger.Warn("ignoring malformed task in location", "location", loc.String(), "err", qerr)
				}
				return
			}
			task, err := ParseTaskPayload(raw)
			if err != nil {
				logger.Warn("ignoring malformed task in location", "location", loc.String(), "err", err)
				return
			}
			s.Task = task
		}),
		hashRoute("settings", "#/settings", func(_ Location, s *State, _ *slog.Logger) {
			s.View = ViewSettings
			s.Tab = TabSettings
		}),
		tabRoute(TabAssignedCreators),
		hashRoute("tasks", "#/tasks", func(loc Location, s *State, _ *slog.Logger) {
			s.Tab = TabAssignments
			s.Filter = ParseFilter(loc.Query().Get("filter"))
		}),
	}
}

const (
	RoleCreator    = "CREATOR"
	RoleAdmin      = "ADMIN"
	RoleSuperAdmin = "SUPER_ADMIN"
)

// ShellTable is used before a role is known.
func ShellTable() RouteTable {
	return RouteTable{
		Name:       "shell",
		Routes:     ShellRoutes(),
		Tabs:       []Tab{TabAssignments, TabAssignedCreators, TabSettings},
		DefaultTab: TabAssignments,
	}
}

func CreatorTable() RouteTable {
	return roleTable("creator", TabAssignments, TabAssignments, TabSubmissions, TabSettings)
}

func AdminTable() RouteTable {
	return roleTable("admin", TabReview, TabReview, TabAssignedCreators, TabAssignments, TabSettings)
}

func SuperAdminTable() RouteTable {
	return roleTable("super-admin", TabUsers,
		TabUsers, TabPrompts, TabGuidelines, TabAnalytics, TabReview, TabAssignments, TabSettings)
}

// TableForRole picks the role's table, falling back to the shell table.
func TableForRole(role string) RouteTable {
	switch role {
	case RoleCreator:
		return CreatorTable()
	case RoleAdmin:
		return AdminTable()
	case RoleSuperAdmin, "SUPERADMIN":
		return SuperAdminTable()
	default:
		return ShellTable()
	}
}

func roleTable(name string, defaultTab Tab, tabs ...Tab) RouteTable {
	routes := ShellRoutes()
	for _, tab := range tabs {
		if shellTab(tab) {
			continue
		}
		routes = append(routes, tabRoute(tab))
	}
	return RouteTable{Name: name, Routes: routes, Tabs: tabs, DefaultTab: defaultTab}
}

func shellTab(tab Tab) bool {
	return tab == TabAssignments || tab == TabAssignedCreators || tab == TabSettings
}

// Encode returns the canonical location for s. Resolving the result with a
// table that knows s.Tab reproduces s. Create-content and settings carry no
// tab: create-content resolves to the table's default tab.
func Encode(s State) Location {
	switch s.View {
	case ViewCreateContent:
		if s.Task == nil {
			return Location{Hash: "#/create-content"}
		}
		raw, err := json.Marshal(s.Task)
		if err != nil {
			return Location{Hash: "#/create-content"}
		}
		return Location{Hash: "#/create-content?task=" + url.QueryEscape(string(raw))}
	case ViewSettings:
		return Location{Hash: "#/settings"}
	}
	switch s.Tab {
	case "":
		return Location{Hash: "#/dashboard"}
	case TabAssignments:
		if s.Filter == "" || s.Filter == FilterAll {
			return Location{Hash: "#/tasks"}
		}
		return Location{Hash: "#/tasks?filter=" + url.QueryEscape(string(s.Filter))}
	default:
		return Location{Hash: "#/" + string(s.Tab)}
	}
}
