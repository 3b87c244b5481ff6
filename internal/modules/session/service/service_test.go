package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"

	"cvp/internal/modules/session/domain"
)

type memoryStore struct {
	values map[string]string
	failOn string
}

func (m *memoryStore) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memoryStore) Set(_ context.Context, key, value string) error {
	if key == m.failOn {
		return errors.New("disk full")
	}
	m.values[key] = value
	return nil
}

func (m *memoryStore) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}

func TestPersistWritesInLockstep(t *testing.T) {
	t.Parallel()
	state := NewState()
	store := &memoryStore{values: map[string]string{}}
	cancel := Persist(state, store, nil)
	defer cancel()

	state.Set("tok", domain.User{ID: "u1", Role: domain.RoleAdmin})
	require.Equal(t, "tok", store.values[domain.TokenKey])
	require.JSONEq(t, `{"id":"u1","name":"","email":"","role":"ADMIN"}`, store.values[domain.UserKey])

	state.Clear()
	require.Empty(t, store.values)
}

func TestPersistRollsBackUserWhenTokenFails(t *testing.T) {
	t.Parallel()
	state := NewState()
	store := &memoryStore{values: map[string]string{}, failOn: domain.TokenKey}
	defer Persist(state, store, nil)()

	state.Set("tok", domain.User{ID: "u1"})
	_, hasUser := store.values[domain.UserKey]
	require.False(t, hasUser, "user must not be persisted without its token")
}

func TestStateSnapshotIsACopy(t *testing.T) {
	t.Parallel()
	state := NewState()
	state.Set("tok", domain.User{ID: "u1", Name: "Ada"})
	snap := state.Snapshot()
	snap.User.Name = "changed"
	require.Equal(t, "Ada", state.Snapshot().User.Name)
}

func TestStateSubscribeCancel(t *testing.T) {
	t.Parallel()
	state := NewState()
	calls := 0
	cancel := state.Subscribe(func(domain.Session) { calls++ })
	state.Set("a", domain.User{})
	cancel()
	state.Clear()
	require.Equal(t, 1, calls)
}

func signed(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(exp)})
	raw, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return raw
}

func TestTokenExpired(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.True(t, TokenExpired(signed(t, now.Add(-time.Minute)), now))
	require.False(t, TokenExpired(signed(t, now.Add(time.Hour)), now))
	require.False(t, TokenExpired("opaque-session-token", now))

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "u1"}).SignedString([]byte("k"))
	require.NoError(t, err)
	require.False(t, TokenExpired(noExp, now))
}
