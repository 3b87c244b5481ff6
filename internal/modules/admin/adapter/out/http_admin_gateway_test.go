package out

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"cvp/internal/modules/admin/domain"
	"cvp/internal/platform/apiclient"
)

type recorded struct {
	method string
	path   string
	body   map[string]any
}

func newServer(t *testing.T, routes map[string]string) (*HTTPAdminGateway, func() []recorded) {
	t.Helper()
	var mu sync.Mutex
	var calls []recorded
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recorded{method: r.Method, path: r.URL.Path}
		if raw, _ := io.ReadAll(r.Body); len(raw) > 0 {
			_ = json.Unmarshal(raw, &rec.body)
		}
		mu.Lock()
		calls = append(calls, rec)
		mu.Unlock()
		body, ok := routes[r.Method+" "+r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		if body == "" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	gw := NewHTTPAdminGateway(apiclient.New(apiclient.Options{BaseURL: srv.URL}))
	return gw, func() []recorded {
		mu.Lock()
		defer mu.Unlock()
		return append([]recorded(nil), calls...)
	}
}

func TestAdminSurface(t *testing.T) {
	t.Parallel()
	gw, _ := newServer(t, map[string]string{
		"GET /api/admin/stats":             `{"stats":{"pending":3,"approved":9}}`,
		"GET /api/admin/assigned-creators": `{"creators":[{"_id":"u1","name":"Ada","assignmentCount":4,"pendingReviews":1}]}`,
		"GET /api/super-admin/analytics":   `{"averageScore":7.5,"byProvider":{"openai":12}}`,
	})
	ctx := context.Background()

	stats, err := gw.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, map[string]any{"pending": 3.0, "approved": 9.0}, stats)

	creators, err := gw.AssignedCreators(ctx)
	require.NoError(t, err)
	require.Equal(t, []domain.Creator{{ID: "u1", Name: "Ada", AssignedCount: 4, PendingCount: 1}}, creators)

	analytics, err := gw.Analytics(ctx)
	require.NoError(t, err)
	require.Len(t, analytics, 2)
}

func TestSuperAdminWrites(t *testing.T) {
	t.Parallel()
	gw, calls := newServer(t, map[string]string{
		"GET /api/super-admin/users":         `[{"_id":"u1","fullName":"Ada","email":"ada@example.com","role":"creator","isActive":false}]`,
		"POST /api/super-admin/users":        `{"user":{"_id":"u2","name":"Bob","role":"ADMIN"}}`,
		"PATCH /api/super-admin/users/u2":    `{"_id":"u2","name":"Bob","role":"SUPER_ADMIN"}`,
		"PUT /api/super-admin/prompts/p1":    `{"prompt":{"_id":"p1","key":"round1","content":"Score it"}}`,
		"POST /api/super-admin/guidelines":   `{"guideline":{"_id":"g1","title":"Tone"}}`,
		"PUT /api/super-admin/guidelines/g1": "",
	})
	ctx := context.Background()

	users, err := gw.Users(ctx)
	require.NoError(t, err)
	require.Equal(t, "Ada", users[0].Name)
	require.Equal(t, "CREATOR", users[0].Role)
	require.False(t, users[0].Active)

	created, err := gw.CreateUser(ctx, domain.NewUser{Name: "Bob", Email: "bob@example.com", Password: "hunter22", Role: "ADMIN"})
	require.NoError(t, err)
	require.Equal(t, "u2", created.ID)
	require.True(t, created.Active)

	role := "SUPER_ADMIN"
	updated, err := gw.UpdateUser(ctx, "u2", domain.UserPatch{Role: &role})
	require.NoError(t, err)
	require.Equal(t, "SUPER_ADMIN", updated.Role)

	prompt, err := gw.SavePrompt(ctx, "p1", "Score it")
	require.NoError(t, err)
	require.Equal(t, domain.Prompt{ID: "p1", Name: "round1", Template: "Score it"}, prompt)

	g, err := gw.CreateGuideline(ctx, domain.Guideline{Title: "Tone", ContentType: "ASSIGNMENT", Body: "Be kind"})
	require.NoError(t, err)
	require.Equal(t, "g1", g.ID)

	g, err = gw.UpdateGuideline(ctx, domain.Guideline{ID: "g1", Title: "Tone", Body: "Be kinder"})
	require.NoError(t, err)
	require.Equal(t, "g1", g.ID)

	got := calls()
	require.Equal(t, "POST", got[1].method)
	require.Equal(t, "hunter22", got[1].body["password"])
	require.Equal(t, map[string]any{"role": "SUPER_ADMIN"}, got[2].body)
	require.Equal(t, map[string]any{"template": "Score it"}, got[3].body)
	require.Equal(t, "PUT", got[5].method)
	require.Equal(t, "Be kinder", got[5].body["body"])
}
