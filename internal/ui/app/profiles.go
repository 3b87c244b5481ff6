package app

import (
	"context"
	"fmt"
	"strings"

	admindto "cvp/internal/modules/admin/dto"
	assignmentdto "cvp/internal/modules/assignment/dto"
	navigation "cvp/internal/modules/navigation/domain"
	reviewdto "cvp/internal/modules/review/dto"
	"cvp/internal/ui/views/dashboard"
)

// profileFor assembles the role's dashboard from its route table. Tabs
// without a panel, such as settings, are drawn by the shell.
func (m Model) profileFor(role string, table navigation.RouteTable) dashboard.Profile {
	profile := dashboard.Profile{Role: role}
	for _, tab := range table.Tabs {
		if panel, ok := m.panel(role, tab); ok {
			profile.Panels = append(profile.Panels, panel)
		}
	}
	return profile
}

func (m Model) panel(role string, tab navigation.Tab) (dashboard.Panel, bool) {
	switch tab {
	case navigation.TabAssignedCreators, navigation.TabUsers, navigation.TabPrompts, navigation.TabGuidelines, navigation.TabAnalytics:
		if m.deps.Admin == nil {
			return dashboard.Panel{}, false
		}
	}
	switch tab {
	case navigation.TabAssignments:
		if role == navigation.RoleCreator {
			return dashboard.Panel{Tab: tab, Fetch: m.myTasksRows, Empty: "No tasks match this filter."}, true
		}
		return dashboard.Panel{Tab: tab, Fetch: m.allAssignmentRows, Empty: "No assignments match this filter."}, true
	case navigation.TabSubmissions:
		return dashboard.Panel{Tab: tab, Fetch: m.submissionRows, Empty: "You have not submitted anything yet."}, true
	case navigation.TabReview:
		panel := dashboard.Panel{Tab: tab, Fetch: m.queueRows, Reviewable: true, Empty: "The review queue is empty."}
		if m.deps.Admin != nil {
			panel.Summary = m.statsSummary
		}
		return panel, true
	case navigation.TabAssignedCreators:
		return dashboard.Panel{Tab: tab, Fetch: m.creatorRows, Empty: "No creators are assigned to you."}, true
	case navigation.TabUsers:
		return dashboard.Panel{Tab: tab, Fetch: m.userRows}, true
	case navigation.TabPrompts:
		return dashboard.Panel{Tab: tab, Fetch: m.promptRows}, true
	case navigation.TabGuidelines:
		return dashboard.Panel{Tab: tab, Fetch: m.guidelineRows}, true
	case navigation.TabAnalytics:
		return dashboard.Panel{Tab: tab, Fetch: m.analyticsRows}, true
	}
	return dashboard.Panel{}, false
}

func (m Model) myTasksRows(ctx context.Context, filter navigation.Filter) ([]dashboard.Row, error) {
	items, err := m.deps.Assignments.MyTasks(ctx, string(filter))
	if err != nil {
		return nil, err
	}
	return assignmentRows(items, true), nil
}

func (m Model) allAssignmentRows(ctx context.Context, filter navigation.Filter) ([]dashboard.Row, error) {
	items, err := m.deps.Assignments.List(ctx, string(filter))
	if err != nil {
		return nil, err
	}
	return assignmentRows(items, false), nil
}

func assignmentRows(items []assignmentdto.AssignmentOutput, withTask bool) []dashboard.Row {
	rows := make([]dashboard.Row, 0, len(items))
	for _, a := range items {
		row := dashboard.Row{
			ID:       a.ID,
			Title:    a.Topic,
			Subtitle: a.ContentType,
			Status:   a.Status,
			Detail:   assignmentDetail(a),
		}
		if !a.DueDate.IsZero() {
			row.Subtitle += " · due " + a.DueDate.Format("2006-01-02")
		}
		if a.CreatorName != "" {
			row.Subtitle += " · " + a.CreatorName
		}
		if withTask && a.TaskJSON != "" {
			if task, err := navigation.ParseTaskPayload(a.TaskJSON); err == nil {
				row.Task = task
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func assignmentDetail(a assignmentdto.AssignmentOutput) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "**Type:** %s  \n**Status:** %s", a.ContentType, a.Status)
	if a.ContentStatus != "" {
		fmt.Fprintf(&sb, "  \n**Content:** %s", a.ContentStatus)
	}
	if len(a.PrerequisiteTopics) > 0 {
		fmt.Fprintf(&sb, "\n\n**Prerequisites:** %s", strings.Join(a.PrerequisiteTopics, ", "))
	}
	if a.Guidelines != "" {
		fmt.Fprintf(&sb, "\n\n### Guidelines\n\n%s", a.Guidelines)
	}
	return sb.String()
}

func (m Model) submissionRows(ctx context.Context, _ navigation.Filter) ([]dashboard.Row, error) {
	items, err := m.deps.Content.Mine(ctx)
	if err != nil {
		return nil, err
	}
	return contentRows(items), nil
}

func (m Model) queueRows(ctx context.Context, _ navigation.Filter) ([]dashboard.Row, error) {
	queue, err := m.deps.Review.Queue(ctx)
	if err != nil {
		return nil, err
	}
	return contentRows(queue.Items), nil
}

func contentRows(items []reviewdto.ContentOutput) []dashboard.Row {
	rows := make([]dashboard.Row, 0, len(items))
	for _, c := range items {
		subtitle := c.ContentType + " · " + c.Topic
		if c.CreatorName != "" {
			subtitle += " · " + c.CreatorName
		}
		detail := "_Validation pending._"
		if c.Validation != nil {
			detail = c.Validation.Report
		}
		rows = append(rows, dashboard.Row{ID: c.ID, Title: c.Title, Subtitle: subtitle, Status: c.Status, Detail: detail})
	}
	return rows
}

func (m Model) statsSummary(ctx context.Context) (string, error) {
	stats, err := m.deps.Admin.Stats(ctx)
	if err != nil {
		return "", err
	}
	return metricsLine(stats), nil
}

func metricsLine(metrics []admindto.MetricOutput) string {
	parts := make([]string, 0, len(metrics))
	for _, s := range metrics {
		parts = append(parts, s.Key+" "+s.Value)
	}
	return strings.Join(parts, " · ")
}

func (m Model) creatorRows(ctx context.Context, _ navigation.Filter) ([]dashboard.Row, error) {
	creators, err := m.deps.Admin.AssignedCreators(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]dashboard.Row, 0, len(creators))
	for _, c := range creators {
		rows = append(rows, dashboard.Row{
			ID:       c.ID,
			Title:    c.Name,
			Subtitle: fmt.Sprintf("%s · %d assigned · %d pending", c.Email, c.AssignedCount, c.PendingCount),
			Detail:   fmt.Sprintf("**Email:** %s  \n**Assigned:** %d  \n**Pending review:** %d", c.Email, c.AssignedCount, c.PendingCount),
		})
	}
	return rows, nil
}

func (m Model) userRows(ctx context.Context, _ navigation.Filter) ([]dashboard.Row, error) {
	users, err := m.deps.Admin.Users(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]dashboard.Row, 0, len(users))
	for _, u := range users {
		state := "active"
		if !u.Active {
			state = "disabled"
		}
		rows = append(rows, dashboard.Row{
			ID:       u.ID,
			Title:    u.Name,
			Subtitle: u.Email + " · " + state,
			Status:   u.Role,
			Detail:   fmt.Sprintf("**Email:** %s  \n**Role:** %s  \n**State:** %s", u.Email, u.Role, state),
		})
	}
	return rows, nil
}

func (m Model) promptRows(ctx context.Context, _ navigation.Filter) ([]dashboard.Row, error) {
	prompts, err := m.deps.Admin.Prompts(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]dashboard.Row, 0, len(prompts))
	for _, p := range prompts {
		rows = append(rows, dashboard.Row{
			ID:       p.ID,
			Title:    p.Name,
			Subtitle: p.Provider,
			Detail:   "```\n" + p.Template + "\n```",
		})
	}
	return rows, nil
}

func (m Model) guidelineRows(ctx context.Context, _ navigation.Filter) ([]dashboard.Row, error) {
	guidelines, err := m.deps.Admin.Guidelines(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]dashboard.Row, 0, len(guidelines))
	for _, g := range guidelines {
		rows = append(rows, dashboard.Row{ID: g.ID, Title: g.Title, Subtitle: g.ContentType, Detail: g.Body})
	}
	return rows, nil
}

func (m Model) analyticsRows(ctx context.Context, _ navigation.Filter) ([]dashboard.Row, error) {
	metrics, err := m.deps.Admin.Analytics(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]dashboard.Row, 0, len(metrics))
	for _, metric := range metrics {
		rows = append(rows, dashboard.Row{ID: metric.Key, Title: metric.Key, Subtitle: metric.Value, Detail: "**" + metric.Key + ":** " + metric.Value})
	}
	return rows, nil
}
