package out

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"cvp/internal/modules/content/domain"
	contentout "cvp/internal/modules/content/port/out"
	"cvp/internal/platform/apiclient"
)

type createRequest struct {
	Title        string `json:"title"`
	ContentType  string `json:"contentType"`
	Topic        string `json:"topic"`
	Content      string `json:"content"`
	AssignmentID string `json:"assignmentId,omitempty"`
}

type createdWire struct {
	ID      string `json:"id"`
	MongoID string `json:"_id"`
	Status  string `json:"status"`
}

type HTTPContentGateway struct {
	client *apiclient.Client
}

func NewHTTPContentGateway(client *apiclient.Client) contentout.ContentGateway {
	return &HTTPContentGateway{client: client}
}

func (g *HTTPContentGateway) Create(ctx context.Context, draft domain.Draft) (domain.Created, error) {
	req := createRequest{
		Title:       draft.Title,
		ContentType: draft.ContentType,
		Topic:       draft.Topic,
		Content:     draft.Body,
	}
	if draft.Task != nil {
		req.AssignmentID = draft.Task.ID
	}
	raw := json.RawMessage{}
	if err := g.client.Do(ctx, http.MethodPost, "/api/content", req, &raw); err != nil {
		return domain.Created{}, err
	}
	var wrapped struct {
		Content *createdWire `json:"content"`
	}
	w := createdWire{}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Content != nil {
		w = *wrapped.Content
	} else if err := json.Unmarshal(raw, &w); err != nil {
		return domain.Created{}, fmt.Errorf("POST /api/content: decode content: %w", err)
	}
	id := w.ID
	if id == "" {
		id = w.MongoID
	}
	return domain.Created{ID: id, Status: w.Status}, nil
}
