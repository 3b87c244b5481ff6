package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "cvp/internal/platform/errors"
)

type fixedIDs struct{}

func (fixedIDs) New() string { return "req-1" }

func TestDoSendsBearerAndDecodes(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		require.Equal(t, "req-1", r.Header.Get("X-Request-ID"))
		require.Equal(t, "/api/things", r.URL.Path)
		var in map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		require.Equal(t, "x", in["name"])
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "42"})
	}))
	defer server.Close()

	client := New(Options{BaseURL: server.URL + "/", IDs: fixedIDs{}})
	client.Bind(func() string { return "tok" }, nil)

	var out struct {
		ID string `json:"id"`
	}
	require.NoError(t, client.Do(context.Background(), http.MethodPost, "/api/things", map[string]string{"name": "x"}, &out))
	require.Equal(t, "42", out.ID)
}

func TestDoOmitsAuthorizationWithoutToken(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Empty(t, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := New(Options{BaseURL: server.URL})
	require.NoError(t, client.Do(context.Background(), http.MethodGet, "/health", nil, nil))
}

func TestDoMapsErrors(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name    string
		status  int
		body    string
		message string
		is      error
	}{
		{name: "error field", status: http.StatusBadRequest, body: `{"error":"Invalid credentials"}`, message: "Invalid credentials", is: apperrors.ErrInvalidInput},
		{name: "message field", status: http.StatusNotFound, body: `{"message":"Content not found"}`, message: "Content not found", is: apperrors.ErrNotFound},
		{name: "raw body", status: http.StatusInternalServerError, body: "upstream exploded", message: "upstream exploded"},
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"error":"Token expired"}`, message: "Token expired", is: apperrors.ErrUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer server.Close()

			err := New(Options{BaseURL: server.URL}).Do(context.Background(), http.MethodGet, "/x", nil, nil)
			var apiErr *Error
			require.True(t, errors.As(err, &apiErr))
			require.Equal(t, tc.status, apiErr.Status)
			require.Equal(t, tc.message, Message(err))
			if tc.is != nil {
				require.ErrorIs(t, err, tc.is)
			}
		})
	}
}

func TestDoFiresUnauthorizedHook(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	var fired atomic.Int32
	client := New(Options{BaseURL: server.URL})
	client.Bind(func() string { return "stale" }, func() { fired.Add(1) })

	err := client.Do(context.Background(), http.MethodGet, "/api/content", nil, nil)
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)
	require.Equal(t, int32(1), fired.Load())

	err = client.DoWithToken(context.Background(), http.MethodGet, "/api/content", "stale", nil, nil)
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)
	require.Equal(t, int32(1), fired.Load())
}

func TestHealthReportsNetworkFailure(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	url := server.URL
	server.Close()

	require.Error(t, New(Options{BaseURL: url}).Health(context.Background()))
}
