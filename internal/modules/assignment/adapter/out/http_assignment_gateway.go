package out

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"cvp/internal/modules/assignment/domain"
	assignmentout "cvp/internal/modules/assignment/port/out"
	"cvp/internal/platform/apiclient"
)

type assignmentWire struct {
	ID                 string         `json:"id"`
	MongoID            string         `json:"_id"`
	Topic              string         `json:"topic"`
	ContentType        string         `json:"contentType"`
	Status             string         `json:"status"`
	ContentStatus      string         `json:"contentStatus"`
	DueDate            apiclient.Time `json:"dueDate"`
	Guidelines         string         `json:"guidelines"`
	PrerequisiteTopics []string       `json:"prerequisiteTopics"`
	CreatorID          apiclient.ID   `json:"creatorId"`
	AssignedTo         *userWire      `json:"assignedTo"`
	Content            *struct {
		Status string `json:"status"`
	} `json:"content"`
}

type userWire struct {
	ID   apiclient.ID
	Name string
}

// UnmarshalJSON accepts a bare id or a populated user object.
func (u *userWire) UnmarshalJSON(raw []byte) error {
	if err := json.Unmarshal(raw, &u.ID); err != nil {
		return err
	}
	var obj struct {
		Name string `json:"name"`
	}
	if json.Unmarshal(raw, &obj) == nil {
		u.Name = obj.Name
	}
	return nil
}

func (w assignmentWire) toDomain() domain.Assignment {
	a := domain.Assignment{
		ID:                 w.ID,
		Topic:              w.Topic,
		ContentType:        strings.ToUpper(w.ContentType),
		Status:             domain.Status(strings.ToUpper(w.Status)),
		ContentStatus:      strings.ToUpper(w.ContentStatus),
		DueDate:            w.DueDate.Time,
		Guidelines:         w.Guidelines,
		PrerequisiteTopics: w.PrerequisiteTopics,
		CreatorID:          string(w.CreatorID),
	}
	if a.ID == "" {
		a.ID = w.MongoID
	}
	if a.ContentStatus == "" && w.Content != nil {
		a.ContentStatus = strings.ToUpper(w.Content.Status)
	}
	if w.AssignedTo != nil {
		if a.CreatorID == "" {
			a.CreatorID = string(w.AssignedTo.ID)
		}
		a.CreatorName = w.AssignedTo.Name
	}
	return a
}

type createRequest struct {
	Topic              string   `json:"topic"`
	ContentType        string   `json:"contentType"`
	AssignedTo         string   `json:"assignedTo"`
	DueDate            string   `json:"dueDate,omitempty"`
	Guidelines         string   `json:"guidelines,omitempty"`
	PrerequisiteTopics []string `json:"prerequisiteTopics"`
}

type HTTPAssignmentGateway struct {
	client *apiclient.Client
}

func NewHTTPAssignmentGateway(client *apiclient.Client) assignmentout.Gateway {
	return &HTTPAssignmentGateway{client: client}
}

func (g *HTTPAssignmentGateway) MyTasks(ctx context.Context) ([]domain.Assignment, error) {
	return g.list(ctx, "/api/assignments/my-tasks")
}

func (g *HTTPAssignmentGateway) List(ctx context.Context) ([]domain.Assignment, error) {
	return g.list(ctx, "/api/assignments")
}

func (g *HTTPAssignmentGateway) list(ctx context.Context, path string) ([]domain.Assignment, error) {
	raw := json.RawMessage{}
	if err := g.client.Do(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return nil, err
	}
	wires, err := decodeList(raw)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}
	out := make([]domain.Assignment, 0, len(wires))
	for _, w := range wires {
		out = append(out, w.toDomain())
	}
	return out, nil
}

func (g *HTTPAssignmentGateway) Create(ctx context.Context, input domain.NewAssignment) (domain.Assignment, error) {
	req := createRequest{
		Topic:              input.Topic,
		ContentType:        input.ContentType,
		AssignedTo:         input.CreatorID,
		Guidelines:         input.Guidelines,
		PrerequisiteTopics: input.PrerequisiteTopics,
	}
	if req.PrerequisiteTopics == nil {
		req.PrerequisiteTopics = []string{}
	}
	if !input.DueDate.IsZero() {
		req.DueDate = input.DueDate.UTC().Format(time.RFC3339)
	}
	raw := json.RawMessage{}
	if err := g.client.Do(ctx, http.MethodPost, "/api/assignments", req, &raw); err != nil {
		return domain.Assignment{}, err
	}
	var wrapped struct {
		Assignment *assignmentWire `json:"assignment"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Assignment != nil {
		return wrapped.Assignment.toDomain(), nil
	}
	w := assignmentWire{}
	if err := json.Unmarshal(raw, &w); err != nil {
		return domain.Assignment{}, fmt.Errorf("POST /api/assignments: decode assignment: %w", err)
	}
	return w.toDomain(), nil
}

// decodeList accepts a bare array or an object wrapping it.
func decodeList(raw json.RawMessage) ([]assignmentWire, error) {
	var list []assignmentWire
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}
	var wrapped struct {
		Assignments []assignmentWire `json:"assignments"`
		Tasks       []assignmentWire `json:"tasks"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("decode assignment list: %w", err)
	}
	if wrapped.Tasks != nil {
		return wrapped.Tasks, nil
	}
	return wrapped.Assignments, nil
}
