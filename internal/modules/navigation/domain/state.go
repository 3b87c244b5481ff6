package domain

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

type ViewKind string

const (
	ViewDashboard     ViewKind = "dashboard"
	ViewCreateContent ViewKind = "create-content"
	ViewSettings      ViewKind = "settings"
)

type Tab string

const (
	TabReview           Tab = "review"
	TabAssignments      Tab = "assignments"
	TabAssignedCreators Tab = "assigned-creators"
	TabSubmissions      Tab = "submissions"
	TabUsers            Tab = "users"
	TabPrompts          Tab = "prompts"
	TabGuidelines       Tab = "guidelines"
	TabAnalytics        Tab = "analytics"
	TabSettings         Tab = "settings"
)

func (t Tab) Label() string {
	switch t {
	case TabAssignedCreators:
		return "Assigned Creators"
	case TabReview:
		return "Review Queue"
	default:
		s := string(t)
		if s == "" {
			return ""
		}
		return strings.ToUpper(s[:1]) + s[1:]
	}
}

type Filter string

const (
	FilterAll        Filter = "all"
	FilterAssigned   Filter = "assigned"
	FilterInProgress Filter = "in_progress"
	FilterCompleted  Filter = "completed"
	FilterOverdue    Filter = "overdue"
	FilterApproved   Filter = "approved"
	FilterRejected   Filter = "rejected"
)

var Filters = []Filter{
	FilterAll,
	FilterAssigned,
	FilterInProgress,
	FilterCompleted,
	FilterOverdue,
	FilterApproved,
	FilterRejected,
}

// ParseFilter maps raw onto the allowed set; anything else is FilterAll.
func ParseFilter(raw string) Filter {
	candidate := Filter(strings.ToLower(strings.TrimSpace(raw)))
	for _, f := range Filters {
		if f == candidate {
			return f
		}
	}
	return FilterAll
}

// TaskPayload is handed from an assignment to the content creation view. The
// shell never looks inside it.
type TaskPayload struct {
	TaskID             string   `json:"taskId"`
	Topic              string   `json:"topic"`
	ContentType        string   `json:"contentType"`
	Guidelines         string   `json:"guidelines,omitempty"`
	PrerequisiteTopics []string `json:"prerequisiteTopics"`
}

func ParseTaskPayload(raw string) (*TaskPayload, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("empty task payload")
	}
	task := &TaskPayload{}
	if err := json.Unmarshal([]byte(raw), task); err != nil {
		return nil, fmt.Errorf("decode task payload: %w", err)
	}
	return task, nil
}

type State struct {
	View   ViewKind
	Task   *TaskPayload
	Tab    Tab
	Filter Filter
}

func (s State) Equal(o State) bool {
	if s.View != o.View || s.Tab != o.Tab || s.Filter != o.Filter {
		return false
	}
	if s.Task == nil || o.Task == nil {
		return s.Task == o.Task
	}
	a, b := s.Task, o.Task
	return a.TaskID == b.TaskID && a.Topic == b.Topic && a.ContentType == b.ContentType &&
		a.Guidelines == b.Guidelines && slices.Equal(a.PrerequisiteTopics, b.PrerequisiteTopics)
}

func (s State) String() string {
	out := string(s.View) + "/" + string(s.Tab)
	if s.Filter != "" && s.Filter != FilterAll {
		out += "?filter=" + string(s.Filter)
	}
	if s.Task != nil {
		out += " task=" + s.Task.TaskID
	}
	return out
}
