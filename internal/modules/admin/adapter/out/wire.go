package out

import (
	"encoding/json"
	"fmt"
	"strings"

	"cvp/internal/modules/admin/domain"
	"cvp/internal/platform/apiclient"
)

type userWire struct {
	ID        string         `json:"id"`
	MongoID   string         `json:"_id"`
	Name      string         `json:"name"`
	FullName  string         `json:"fullName"`
	Email     string         `json:"email"`
	Role      string         `json:"role"`
	Active    *bool          `json:"active"`
	IsActive  *bool          `json:"isActive"`
	CreatedAt apiclient.Time `json:"createdAt"`
}

func (w userWire) toDomain() domain.User {
	u := domain.User{
		ID:        firstNonEmpty(w.ID, w.MongoID),
		Name:      firstNonEmpty(w.Name, w.FullName),
		Email:     w.Email,
		Role:      strings.ToUpper(w.Role),
		Active:    true,
		CreatedAt: w.CreatedAt.Time,
	}
	switch {
	case w.Active != nil:
		u.Active = *w.Active
	case w.IsActive != nil:
		u.Active = *w.IsActive
	}
	return u
}

type creatorWire struct {
	userWire
	AssignedCount   int `json:"assignedCount"`
	AssignmentCount int `json:"assignmentCount"`
	PendingCount    int `json:"pendingCount"`
	PendingReviews  int `json:"pendingReviews"`
}

func (w creatorWire) toDomain() domain.Creator {
	u := w.userWire.toDomain()
	return domain.Creator{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		AssignedCount: max(w.AssignedCount, w.AssignmentCount),
		PendingCount:  max(w.PendingCount, w.PendingReviews),
	}
}

type promptWire struct {
	ID        string         `json:"id"`
	MongoID   string         `json:"_id"`
	Name      string         `json:"name"`
	Key       string         `json:"key"`
	Provider  string         `json:"provider"`
	Template  string         `json:"template"`
	Content   string         `json:"content"`
	UpdatedAt apiclient.Time `json:"updatedAt"`
}

func (w promptWire) toDomain() domain.Prompt {
	return domain.Prompt{
		ID:        firstNonEmpty(w.ID, w.MongoID),
		Name:      firstNonEmpty(w.Name, w.Key),
		Provider:  w.Provider,
		Template:  firstNonEmpty(w.Template, w.Content),
		UpdatedAt: w.UpdatedAt.Time,
	}
}

type guidelineWire struct {
	ID          string         `json:"id"`
	MongoID     string         `json:"_id"`
	Title       string         `json:"title"`
	ContentType string         `json:"contentType"`
	Body        string         `json:"body"`
	Content     string         `json:"content"`
	UpdatedAt   apiclient.Time `json:"updatedAt"`
}

func (w guidelineWire) toDomain() domain.Guideline {
	return domain.Guideline{
		ID:          firstNonEmpty(w.ID, w.MongoID),
		Title:       w.Title,
		ContentType: strings.ToUpper(w.ContentType),
		Body:        firstNonEmpty(w.Body, w.Content),
		UpdatedAt:   w.UpdatedAt.Time,
	}
}

// decodeList accepts a bare array or an object wrapping it under key.
func decodeList[T any](raw json.RawMessage, key string) ([]T, error) {
	var list []T
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}
	wrapped := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	inner, ok := wrapped[key]
	if !ok {
		inner, ok = wrapped["data"]
	}
	if !ok {
		return []T{}, nil
	}
	if err := json.Unmarshal(inner, &list); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return list, nil
}

// decodeOne accepts a bare object or an object wrapping it under key.
func decodeOne[T any](raw json.RawMessage, key string) (T, error) {
	var zero T
	wrapped := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return zero, fmt.Errorf("decode %s: %w", key, err)
	}
	target := raw
	if inner, ok := wrapped[key]; ok && len(inner) > 0 && inner[0] == '{' {
		target = inner
	}
	var out T
	if err := json.Unmarshal(target, &out); err != nil {
		return zero, fmt.Errorf("decode %s: %w", key, err)
	}
	return out, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
