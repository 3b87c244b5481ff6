package out

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"cvp/internal/modules/review/domain"
	reviewout "cvp/internal/modules/review/port/out"
	"cvp/internal/platform/apiclient"
)

type HTTPReviewGateway struct {
	client *apiclient.Client
}

func NewHTTPReviewGateway(client *apiclient.Client) reviewout.ReviewGateway {
	return &HTTPReviewGateway{client: client}
}

func (g *HTTPReviewGateway) Queue(ctx context.Context) ([]domain.ContentItem, error) {
	return g.list(ctx, "/api/admin/review-queue")
}

func (g *HTTPReviewGateway) Submissions(ctx context.Context) ([]domain.ContentItem, error) {
	return g.list(ctx, "/api/content")
}

func (g *HTTPReviewGateway) list(ctx context.Context, path string) ([]domain.ContentItem, error) {
	raw := json.RawMessage{}
	if err := g.client.Do(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return nil, err
	}
	wires, err := decodeList(raw)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}
	items := make([]domain.ContentItem, 0, len(wires))
	for _, w := range wires {
		items = append(items, w.toDomain())
	}
	return items, nil
}

func (g *HTTPReviewGateway) Get(ctx context.Context, id string) (domain.ContentItem, error) {
	raw := json.RawMessage{}
	path := "/api/content/" + url.PathEscape(id)
	if err := g.client.Do(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return domain.ContentItem{}, err
	}
	var wrapped struct {
		Content *contentWire `json:"content"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Content != nil && wrapped.Content.id() != "" {
		return wrapped.Content.toDomain(), nil
	}
	w := contentWire{}
	if err := json.Unmarshal(raw, &w); err != nil {
		return domain.ContentItem{}, fmt.Errorf("GET %s: decode content: %w", path, err)
	}
	return w.toDomain(), nil
}

type reviewRequest struct {
	Action   string `json:"action"`
	Feedback string `json:"feedback"`
}

func (g *HTTPReviewGateway) Submit(ctx context.Context, id string, action domain.Action, feedback string) error {
	path := "/api/content/" + url.PathEscape(id) + "/review"
	return g.client.Do(ctx, http.MethodPost, path, reviewRequest{Action: string(action), Feedback: feedback}, nil)
}

func (g *HTTPReviewGateway) Revalidate(ctx context.Context, id string) (domain.ValidationResult, error) {
	raw := json.RawMessage{}
	path := "/api/validate/" + url.PathEscape(id)
	if err := g.client.Do(ctx, http.MethodPost, path, struct{}{}, &raw); err != nil {
		return domain.ValidationResult{}, err
	}
	var wrapped struct {
		ValidationResult *validationWire `json:"validationResult"`
		Validation       *validationWire `json:"validation"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil {
		if wrapped.ValidationResult != nil {
			return wrapped.ValidationResult.toDomain(), nil
		}
		if wrapped.Validation != nil {
			return wrapped.Validation.toDomain(), nil
		}
	}
	var content struct {
		Content *contentWire `json:"content"`
	}
	if err := json.Unmarshal(raw, &content); err == nil && content.Content != nil && content.Content.validation() != nil {
		return content.Content.validation().toDomain(), nil
	}
	w := validationWire{}
	if err := json.Unmarshal(raw, &w); err != nil {
		return domain.ValidationResult{}, fmt.Errorf("POST %s: decode validation: %w", path, err)
	}
	return w.toDomain(), nil
}
