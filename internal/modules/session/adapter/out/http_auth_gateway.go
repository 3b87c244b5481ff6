package out

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"cvp/internal/modules/session/domain"
	sessionout "cvp/internal/modules/session/port/out"
	"cvp/internal/platform/apiclient"
)

type HTTPAuthGateway struct {
	client *apiclient.Client
}

func NewHTTPAuthGateway(client *apiclient.Client) sessionout.AuthGateway {
	return &HTTPAuthGateway{client: client}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

func (g *HTTPAuthGateway) Login(ctx context.Context, email, password string) (string, domain.User, error) {
	resp := loginResponse{}
	if err := g.client.DoWithToken(ctx, http.MethodPost, "/api/auth/login", "", loginRequest{Email: email, Password: password}, &resp); err != nil {
		return "", domain.User{}, err
	}
	return resp.Token, resp.User, nil
}

// Me accepts both a bare user object and one wrapped in {"user": ...}.
func (g *HTTPAuthGateway) Me(ctx context.Context) (domain.User, error) {
	raw := json.RawMessage{}
	if err := g.client.Do(ctx, http.MethodGet, "/api/auth/me", nil, &raw); err != nil {
		return domain.User{}, err
	}
	var wrapped struct {
		User *domain.User `json:"user"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.User != nil {
		return *wrapped.User, nil
	}
	user := domain.User{}
	if err := json.Unmarshal(raw, &user); err != nil {
		return domain.User{}, fmt.Errorf("decode profile: %w", err)
	}
	return user, nil
}

func (g *HTTPAuthGateway) Probe(ctx context.Context, token string) error {
	return g.client.DoWithToken(ctx, http.MethodGet, "/api/content", token, nil, nil)
}

func (g *HTTPAuthGateway) ForgotPassword(ctx context.Context, email string) error {
	return g.client.DoWithToken(ctx, http.MethodPost, "/api/auth/forgot-password", "", map[string]string{"email": email}, nil)
}
