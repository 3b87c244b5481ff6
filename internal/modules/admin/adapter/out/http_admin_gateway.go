package out

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"cvp/internal/modules/admin/domain"
	adminout "cvp/internal/modules/admin/port/out"
	"cvp/internal/platform/apiclient"
)

const superAdminPrefix = "/api/super-admin"

// HTTPAdminGateway serves both the admin and the super-admin surfaces.
type HTTPAdminGateway struct {
	client *apiclient.Client
}

var (
	_ adminout.AdminGateway      = (*HTTPAdminGateway)(nil)
	_ adminout.SuperAdminGateway = (*HTTPAdminGateway)(nil)
)

func NewHTTPAdminGateway(client *apiclient.Client) *HTTPAdminGateway {
	return &HTTPAdminGateway{client: client}
}

func (g *HTTPAdminGateway) Stats(ctx context.Context) (map[string]any, error) {
	return g.document(ctx, "/api/admin/stats", "stats")
}

func (g *HTTPAdminGateway) Analytics(ctx context.Context) (map[string]any, error) {
	return g.document(ctx, superAdminPrefix+"/analytics", "analytics")
}

func (g *HTTPAdminGateway) document(ctx context.Context, path, key string) (map[string]any, error) {
	doc := map[string]any{}
	if err := g.client.Do(ctx, http.MethodGet, path, nil, &doc); err != nil {
		return nil, err
	}
	if inner, ok := doc[key].(map[string]any); ok && len(doc) == 1 {
		return inner, nil
	}
	return doc, nil
}

func (g *HTTPAdminGateway) AssignedCreators(ctx context.Context) ([]domain.Creator, error) {
	wires, err := list[creatorWire](ctx, g.client, "/api/admin/assigned-creators", "creators")
	if err != nil {
		return nil, err
	}
	out := make([]domain.Creator, 0, len(wires))
	for _, w := range wires {
		out = append(out, w.toDomain())
	}
	return out, nil
}

func (g *HTTPAdminGateway) Users(ctx context.Context) ([]domain.User, error) {
	wires, err := list[userWire](ctx, g.client, superAdminPrefix+"/users", "users")
	if err != nil {
		return nil, err
	}
	out := make([]domain.User, 0, len(wires))
	for _, w := range wires {
		out = append(out, w.toDomain())
	}
	return out, nil
}

type createUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (g *HTTPAdminGateway) CreateUser(ctx context.Context, user domain.NewUser) (domain.User, error) {
	req := createUserRequest{Name: user.Name, Email: user.Email, Password: user.Password, Role: user.Role}
	w, err := one[userWire](ctx, g.client, http.MethodPost, superAdminPrefix+"/users", req, "user")
	if err != nil {
		return domain.User{}, err
	}
	return w.toDomain(), nil
}

type patchUserRequest struct {
	Role   *string `json:"role,omitempty"`
	Active *bool   `json:"active,omitempty"`
}

func (g *HTTPAdminGateway) UpdateUser(ctx context.Context, id string, patch domain.UserPatch) (domain.User, error) {
	path := superAdminPrefix + "/users/" + url.PathEscape(id)
	w, err := one[userWire](ctx, g.client, http.MethodPatch, path, patchUserRequest{Role: patch.Role, Active: patch.Active}, "user")
	if err != nil {
		return domain.User{}, err
	}
	return w.toDomain(), nil
}

func (g *HTTPAdminGateway) Prompts(ctx context.Context) ([]domain.Prompt, error) {
	wires, err := list[promptWire](ctx, g.client, superAdminPrefix+"/prompts", "prompts")
	if err != nil {
		return nil, err
	}
	out := make([]domain.Prompt, 0, len(wires))
	for _, w := range wires {
		out = append(out, w.toDomain())
	}
	return out, nil
}

func (g *HTTPAdminGateway) SavePrompt(ctx context.Context, id, template string) (domain.Prompt, error) {
	path := superAdminPrefix + "/prompts/" + url.PathEscape(id)
	w, err := one[promptWire](ctx, g.client, http.MethodPut, path, map[string]string{"template": template}, "prompt")
	if err != nil {
		return domain.Prompt{}, err
	}
	return w.toDomain(), nil
}

func (g *HTTPAdminGateway) Guidelines(ctx context.Context) ([]domain.Guideline, error) {
	wires, err := list[guidelineWire](ctx, g.client, superAdminPrefix+"/guidelines", "guidelines")
	if err != nil {
		return nil, err
	}
	out := make([]domain.Guideline, 0, len(wires))
	for _, w := range wires {
		out = append(out, w.toDomain())
	}
	return out, nil
}

type guidelineRequest struct {
	Title       string `json:"title"`
	ContentType string `json:"contentType"`
	Body        string `json:"body"`
}

func (g *HTTPAdminGateway) CreateGuideline(ctx context.Context, gl domain.Guideline) (domain.Guideline, error) {
	req := guidelineRequest{Title: gl.Title, ContentType: gl.ContentType, Body: gl.Body}
	w, err := one[guidelineWire](ctx, g.client, http.MethodPost, superAdminPrefix+"/guidelines", req, "guideline")
	if err != nil {
		return domain.Guideline{}, err
	}
	return w.toDomain(), nil
}

func (g *HTTPAdminGateway) UpdateGuideline(ctx context.Context, gl domain.Guideline) (domain.Guideline, error) {
	req := guidelineRequest{Title: gl.Title, ContentType: gl.ContentType, Body: gl.Body}
	path := superAdminPrefix + "/guidelines/" + url.PathEscape(gl.ID)
	w, err := one[guidelineWire](ctx, g.client, http.MethodPut, path, req, "guideline")
	if err != nil {
		return domain.Guideline{}, err
	}
	out := w.toDomain()
	if out.ID == "" {
		out.ID = gl.ID
	}
	return out, nil
}

func list[T any](ctx context.Context, client *apiclient.Client, path, key string) ([]T, error) {
	raw := json.RawMessage{}
	if err := client.Do(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return nil, err
	}
	out, err := decodeList[T](raw, key)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}
	return out, nil
}

func one[T any](ctx context.Context, client *apiclient.Client, method, path string, payload any, key string) (T, error) {
	var zero T
	raw := json.RawMessage{}
	if err := client.Do(ctx, method, path, payload, &raw); err != nil {
		return zero, err
	}
	if len(raw) == 0 {
		return zero, nil
	}
	out, err := decodeOne[T](raw, key)
	if err != nil {
		return zero, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return out, nil
}
