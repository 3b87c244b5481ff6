package app

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	navigation "cvp/internal/modules/navigation/domain"
	"cvp/internal/ui/components"
)

// paletteCommands lists what executePalette accepts for role. create is
// offered to creators only; the command itself still works for any role.
func paletteCommands(role string) []components.Command {
	filters := make([]string, 0, len(navigation.Filters))
	for _, f := range navigation.Filters {
		filters = append(filters, string(f))
	}
	cmds := []components.Command{
		{Name: "go", Usage: "go <location>", Help: "open a location such as review or tasks?filter=overdue"},
		{Name: "tasks", Usage: "tasks [filter]", Help: "assignments tab with a filter", Args: filters},
	}
	if strings.EqualFold(role, navigation.RoleCreator) {
		cmds = append(cmds, components.Command{Name: "create", Usage: "create", Help: "new content"})
	}
	return append(cmds,
		components.Command{Name: "settings", Usage: "settings", Help: "profile and local settings"},
		components.Command{Name: "back", Usage: "back", Help: "history back"},
		components.Command{Name: "forward", Usage: "forward", Help: "history forward"},
		components.Command{Name: "refresh", Usage: "refresh", Help: "reload the current tab"},
		components.Command{Name: "logout", Usage: "logout", Help: "end the session"},
	)
}

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 || m.nav == nil {
		return m, nil
	}
	arg := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(input), parts[0]))

	switch parts[0] {
	case "go":
		if arg == "" {
			m.status = "usage: go <location>"
			return m, nil
		}
		if !strings.Contains(arg, "#") {
			arg = "#/" + strings.TrimPrefix(arg, "/")
		}
		// Typed locations arrive as hashchange, the same as a deep link.
		m.deps.Navigation.Assign(arg)
		return m, m.syncRoute()
	case "tasks":
		return m, m.navigate(navigation.State{View: navigation.ViewDashboard, Tab: navigation.TabAssignments, Filter: navigation.ParseFilter(arg)})
	case "create":
		return m, m.navigate(navigation.State{View: navigation.ViewCreateContent})
	case "settings":
		return m, m.navigate(navigation.State{View: navigation.ViewSettings, Tab: navigation.TabSettings})
	case "back":
		return m, m.back()
	case "forward":
		return m, m.forwardHistory()
	case "refresh":
		return m, m.refresh()
	case "logout":
		return m, m.logoutCmd()
	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}
