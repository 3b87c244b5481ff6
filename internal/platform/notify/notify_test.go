package notify

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"cvp/internal/platform/apiclient"
)

func TestActionFailedUsesServerMessage(t *testing.T) {
	t.Parallel()
	err := &apiclient.Error{Method: "POST", Path: "/api/auth/login", Status: 400, Message: "Invalid credentials"}
	n := ActionFailed("login", err)
	require.Equal(t, Alert, n.Level)
	require.Equal(t, "login failed: Invalid credentials", n.Message)
	require.ErrorIs(t, n.Err, err)
}

func TestWriterNotifierSkipsSilent(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	n := NewWriterNotifier(&buf, nil)
	n.Notify(BackgroundFailed("poll", errors.New("timeout")))
	require.Empty(t, buf.String())

	n.Notify(Info("queue refreshed"))
	n.Notify(ActionFailed("review", errors.New("boom")))
	require.Equal(t, "queue refreshed\nerror: review failed: boom\n", buf.String())
}

func TestRecorderDrain(t *testing.T) {
	t.Parallel()
	var r Recorder
	r.Notify(Info("a"))
	r.Notify(Info("b"))
	require.Len(t, r.Drain(), 2)
	require.Empty(t, r.Drain())
}
