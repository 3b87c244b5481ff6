package domain

import (
	"strings"
	"time"

	navigation "cvp/internal/modules/navigation/domain"
)

type Status string

const (
	StatusAssigned   Status = "ASSIGNED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusOverdue    Status = "OVERDUE"
)

type Assignment struct {
	ID                 string
	Topic              string
	ContentType        string
	Status             Status
	ContentStatus      string
	DueDate            time.Time
	Guidelines         string
	PrerequisiteTopics []string
	CreatorID          string
	CreatorName        string
}

// EffectiveStatus reports OVERDUE for unfinished work past its due date even
// if the server has not caught up yet.
func (a Assignment) EffectiveStatus(now time.Time) Status {
	if a.Status == StatusCompleted || a.DueDate.IsZero() {
		return a.Status
	}
	if now.After(a.DueDate) {
		return StatusOverdue
	}
	return a.Status
}

func (a Assignment) Matches(filter navigation.Filter, now time.Time) bool {
	switch filter {
	case navigation.FilterAll, "":
		return true
	case navigation.FilterApproved:
		return strings.EqualFold(a.ContentStatus, "APPROVED")
	case navigation.FilterRejected:
		return strings.EqualFold(a.ContentStatus, "REJECTED")
	default:
		return strings.EqualFold(string(a.EffectiveStatus(now)), string(filter))
	}
}

// ToTask is the payload handed to the content creation view.
func (a Assignment) ToTask() navigation.TaskPayload {
	prereqs := a.PrerequisiteTopics
	if prereqs == nil {
		prereqs = []string{}
	}
	return navigation.TaskPayload{
		TaskID:             a.ID,
		Topic:              a.Topic,
		ContentType:        a.ContentType,
		Guidelines:         a.Guidelines,
		PrerequisiteTopics: prereqs,
	}
}

func Filter(items []Assignment, filter navigation.Filter, now time.Time) []Assignment {
	out := make([]Assignment, 0, len(items))
	for _, item := range items {
		if item.Matches(filter, now) {
			out = append(out, item)
		}
	}
	return out
}

type NewAssignment struct {
	Topic              string
	ContentType        string
	CreatorID          string
	DueDate            time.Time
	Guidelines         string
	PrerequisiteTopics []string
}
