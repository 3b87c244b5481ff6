package out

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"cvp/internal/modules/content/domain"
	"cvp/internal/platform/apiclient"
)

func TestHTTPContentGatewayCreate(t *testing.T) {
	t.Parallel()
	var got createRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/content", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"content":{"_id":"c9","status":"VALIDATING"}}`))
	}))
	defer srv.Close()

	gw := NewHTTPContentGateway(apiclient.New(apiclient.Options{BaseURL: srv.URL}))
	created, err := gw.Create(context.Background(), domain.Draft{
		Task:        &domain.Task{ID: "t1"},
		Title:       "Intro to graphs",
		ContentType: "ASSIGNMENT",
		Topic:       "Graphs",
		Body:        "# Graphs",
	})
	require.NoError(t, err)
	require.Equal(t, domain.Created{ID: "c9", Status: "VALIDATING"}, created)
	require.Equal(t, "t1", got.AssignmentID)
	require.Equal(t, "# Graphs", got.Content)
}

func TestLocalMarkdownLoader(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "draft.md")
	require.NoError(t, os.WriteFile(path, []byte("# Draft\n"), 0o644))

	body, err := NewLocalMarkdownLoader().Load(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, "# Draft\n", body)

	_, err = NewLocalMarkdownLoader().Load(context.Background(), filepath.Join(t.TempDir(), "missing.md"))
	require.Error(t, err)
}

func TestLocalPDFLoaderRejectsNonPDF(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "fake.pdf")
	require.NoError(t, os.WriteFile(path, []byte("not a pdf"), 0o644))

	_, err := NewLocalPDFLoader().Load(context.Background(), path)
	require.Error(t, err)
}

func TestOSExternalLauncherRunsOpener(t *testing.T) {
	t.Parallel()
	var gotName string
	var gotArgs []string
	launcher := &OSExternalLauncher{command: func(ctx context.Context, name string, args ...string) *exec.Cmd {
		gotName, gotArgs = name, args
		return exec.CommandContext(ctx, os.Args[0], "-test.run=^$")
	}}
	name, _, err := openerFor("linux")
	require.NoError(t, err)
	require.Equal(t, "xdg-open", name)
	_, _, err = openerFor("plan9")
	require.Error(t, err)

	if _, _, err := openerFor(runtime.GOOS); err != nil {
		t.Skip("no opener on this platform")
	}
	require.NoError(t, launcher.Open(context.Background(), "/tmp/report.md"))
	require.NotEmpty(t, gotName)
	require.Equal(t, "/tmp/report.md", gotArgs[len(gotArgs)-1])
}
