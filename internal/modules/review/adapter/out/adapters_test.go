package out

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"cvp/internal/modules/review/domain"
	"cvp/internal/platform/apiclient"
	apperrors "cvp/internal/platform/errors"
)

func TestSQLiteQueueCacheReplacesWholesale(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	cache, err := NewSQLiteQueueCache(filepath.Join(t.TempDir(), "cache", "cvp.db"))
	require.NoError(t, err)
	defer cache.Close()

	_, _, err = cache.Load(ctx)
	require.True(t, errors.Is(err, apperrors.ErrNotFound))

	first := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	require.NoError(t, cache.Replace(ctx, []domain.ContentItem{
		{ID: "a", Title: "Alpha", Status: domain.StatusPending},
		{ID: "b", Title: "Beta", Validation: &domain.ValidationResult{ConsensusScore: 6.5}},
	}, first))

	second := first.Add(30 * time.Second)
	require.NoError(t, cache.Replace(ctx, []domain.ContentItem{
		{ID: "c", Title: "Gamma"},
		{ID: "b", Title: "Beta v2", Validation: &domain.ValidationResult{ConsensusScore: 8}},
	}, second))

	items, fetchedAt, err := cache.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, second, fetchedAt)
	require.Len(t, items, 2)
	require.Equal(t, "c", items[0].ID)
	require.Equal(t, "Beta v2", items[1].Title)
	require.InDelta(t, 8.0, items[1].Validation.ConsensusScore, 0.001)

	require.NoError(t, cache.Replace(ctx, nil, second.Add(time.Minute)))
	items, _, err = cache.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestHTTPReviewGateway(t *testing.T) {
	t.Parallel()
	var submitted map[string]string
	mux := http.NewServeMux()
	mux.HandleFunc("/api/admin/review-queue", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"content":[{"_id":"c1","title":"Loops","type":"ASSIGNMENT","status":"PENDING","creator":{"_id":"u9","name":"Grace"},"createdAt":"2026-02-27T10:00:00Z","validationResult":{"round1Results":[{"provider":"openai","score":7.5}],"round2Results":[],"finalScore":7.8,"recommendation":"APPROVE"}}]}`))
	})
	mux.HandleFunc("/api/content/c1", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"_id":"c1","title":"Loops","content":"# Loops\nbody","creator":"u9"}`))
	})
	mux.HandleFunc("/api/content/c1/review", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&submitted))
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	mux.HandleFunc("/api/validate/c1", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"validationResult":{"consensusScore":9.1,"recommendation":"APPROVE","validatedAt":"2026-03-01T00:00:00Z"}}`))
	})
	mux.HandleFunc("/api/validate/missing", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"Content not found"}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	gw := NewHTTPReviewGateway(apiclient.New(apiclient.Options{BaseURL: server.URL}))
	ctx := context.Background()

	queue, err := gw.Queue(ctx)
	require.NoError(t, err)
	require.Len(t, queue, 1)
	item := queue[0]
	require.Equal(t, "c1", item.ID)
	require.Equal(t, domain.ContentAssignment, item.ContentType)
	require.Equal(t, "u9", item.CreatorID)
	require.Equal(t, "Grace", item.CreatorName)
	require.NotNil(t, item.Validation)
	require.InDelta(t, 7.8, item.Validation.ConsensusScore, 0.001)
	require.Equal(t, "openai", item.Validation.Round1Results[0].Provider)

	full, err := gw.Get(ctx, "c1")
	require.NoError(t, err)
	require.Equal(t, "# Loops\nbody", full.Body)
	require.Equal(t, "u9", full.CreatorID)

	require.NoError(t, gw.Submit(ctx, "c1", domain.ActionReject, "needs examples"))
	require.Equal(t, map[string]string{"action": "reject", "feedback": "needs examples"}, submitted)

	result, err := gw.Revalidate(ctx, "c1")
	require.NoError(t, err)
	require.InDelta(t, 9.1, result.ConsensusScore, 0.001)

	_, err = gw.Revalidate(ctx, "missing")
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	require.Equal(t, "Content not found", apiclient.Message(err))
}

func TestMarkdownExporterKeepsReviewerNotes(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	exporter := NewMarkdownExporter()
	item := domain.ContentItem{ID: "c1", Title: "Loops", Topic: "Control flow", Body: "first draft", Status: domain.StatusPending}
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	path, err := exporter.Export(context.Background(), item, dir, at)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "loops-c1.md"), path)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(raw), "---\nid: c1\ntitle: Loops\n"))
	require.Contains(t, string(raw), "_Validation pending._")

	edited := strings.Replace(string(raw), "# Loops\n", "# Loops\n\nReviewer note: check section 2.\n", 1)
	require.NoError(t, os.WriteFile(path, []byte(edited), 0o644))

	item.Body = "second draft"
	item.Validation = &domain.ValidationResult{ConsensusScore: 8.5, Recommendation: "APPROVE"}
	_, err = exporter.Export(context.Background(), item, dir, at.Add(time.Hour))
	require.NoError(t, err)

	raw, err = os.ReadFile(path)
	require.NoError(t, err)
	doc := string(raw)
	require.Contains(t, doc, "Reviewer note: check section 2.")
	require.Contains(t, doc, "second draft")
	require.NotContains(t, doc, "first draft")
	require.Contains(t, doc, "consensus_score: 8.5")
	require.Equal(t, 1, strings.Count(doc, "<!-- cvp:validation:start -->"))
}
