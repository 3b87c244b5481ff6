package usecase_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"

	sessionadapter "cvp/internal/modules/session/adapter/out"
	"cvp/internal/modules/session/domain"
	sessiondto "cvp/internal/modules/session/dto"
	sessionin "cvp/internal/modules/session/port/in"
	sessionout "cvp/internal/modules/session/port/out"
	"cvp/internal/modules/session/service"
	"cvp/internal/modules/session/usecase"
	"cvp/internal/platform/apiclient"
	"cvp/internal/platform/clock"
	apperrors "cvp/internal/platform/errors"
)

var now = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

type fakeGateway struct {
	token     string
	user      domain.User
	loginErr  error
	meUser    domain.User
	meErr     error
	probeErr  error
	probes    int
	forgotFor string
}

func (f *fakeGateway) Login(_ context.Context, email, password string) (string, domain.User, error) {
	if f.loginErr != nil {
		return "", domain.User{}, f.loginErr
	}
	return f.token, f.user, nil
}

func (f *fakeGateway) Me(context.Context) (domain.User, error) {
	return f.meUser, f.meErr
}

func (f *fakeGateway) Probe(context.Context, string) error {
	f.probes++
	return f.probeErr
}

func (f *fakeGateway) ForgotPassword(_ context.Context, email string) error {
	f.forgotFor = email
	return nil
}

type harness struct {
	uc      sessionin.Usecase
	store   sessionout.KeyValueStore
	gateway *fakeGateway
	path    string
}

func newHarness(t *testing.T, path string, gateway *fakeGateway) harness {
	t.Helper()
	if path == "" {
		path = filepath.Join(t.TempDir(), "storage.json")
	}
	store := sessionadapter.NewFileKeyValueStore(path)
	state := service.NewState()
	t.Cleanup(service.Persist(state, store, nil))
	return harness{
		uc:      usecase.NewInteractor(state, store, gateway, clock.Fixed{At: now}, nil),
		store:   store,
		gateway: gateway,
		path:    path,
	}
}

func (h harness) persisted(t *testing.T, key string) bool {
	t.Helper()
	_, ok, err := h.store.Get(context.Background(), key)
	if err != nil {
		t.Fatalf("read store: %v", err)
	}
	return ok
}

func jwtExpiring(t *testing.T, exp time.Time) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(exp)}).SignedString([]byte("k"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return raw
}

func TestLoginPersistsBothKeysAndLogoutRemovesThem(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := newHarness(t, "", &fakeGateway{token: "tok", user: domain.User{ID: "u1", Role: domain.RoleCreator}})

	out, err := h.uc.Login(ctx, sessiondto.LoginInput{Email: "ada@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !out.Authenticated || out.User.Role != "CREATOR" {
		t.Fatalf("unexpected output %+v", out)
	}
	if !h.persisted(t, domain.TokenKey) || !h.persisted(t, domain.UserKey) {
		t.Fatalf("both keys must be persisted after login")
	}

	if err := h.uc.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if h.persisted(t, domain.TokenKey) || h.persisted(t, domain.UserKey) {
		t.Fatalf("both keys must be removed after logout")
	}
}

func TestLoginFailureLeavesStateUntouched(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	serverErr := &apiclient.Error{Status: 401, Message: "Invalid credentials"}
	h := newHarness(t, "", &fakeGateway{loginErr: serverErr})

	_, err := h.uc.Login(ctx, sessiondto.LoginInput{Email: "ada@example.com", Password: "bad"})
	if !errors.Is(err, apperrors.ErrUnauthorized) || apiclient.Message(err) != "Invalid credentials" {
		t.Fatalf("expected server message, got %v", err)
	}
	current, _ := h.uc.Current(ctx)
	if current.Authenticated || h.persisted(t, domain.TokenKey) {
		t.Fatalf("failed login must not change state")
	}
}

func TestLoginValidatesInput(t *testing.T) {
	t.Parallel()
	h := newHarness(t, "", &fakeGateway{token: "tok"})
	_, err := h.uc.Login(context.Background(), sessiondto.LoginInput{Email: "not-an-email"})
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestReloadWithValidTokenKeepsSession(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "storage.json")
	first := newHarness(t, path, &fakeGateway{token: jwtExpiring(t, now.Add(time.Hour)), user: domain.User{ID: "u1", Role: domain.RoleAdmin}})
	if _, err := first.uc.Login(ctx, sessiondto.LoginInput{Email: "ada@example.com", Password: "pw"}); err != nil {
		t.Fatalf("login: %v", err)
	}

	reloaded := newHarness(t, path, &fakeGateway{})
	restored, err := reloaded.uc.Restore(ctx)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if !restored.Authenticated || restored.User.Role != "ADMIN" {
		t.Fatalf("expected restored admin session, got %+v", restored)
	}
	startup, err := reloaded.uc.ValidateOnStartup(ctx)
	if err != nil || !startup.Valid {
		t.Fatalf("expected valid startup, got %+v %v", startup, err)
	}
	if reloaded.gateway.probes != 1 {
		t.Fatalf("expected exactly one probe, got %d", reloaded.gateway.probes)
	}
}

func TestStartupProbeUnauthorizedClearsSession(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "storage.json")
	seed := sessionadapter.NewFileKeyValueStore(path)
	_ = seed.Set(ctx, domain.TokenKey, "revoked")
	_ = seed.Set(ctx, domain.UserKey, `{"id":"u1","role":"CREATOR"}`)

	h := newHarness(t, path, &fakeGateway{probeErr: &apiclient.Error{Status: 401, Message: "revoked"}})
	if _, err := h.uc.Restore(ctx); err != nil {
		t.Fatalf("restore: %v", err)
	}
	startup, err := h.uc.ValidateOnStartup(ctx)
	if err != nil || startup.Valid {
		t.Fatalf("expected invalid startup, got %+v %v", startup, err)
	}
	current, _ := h.uc.Current(ctx)
	if current.Authenticated || h.persisted(t, domain.TokenKey) || h.persisted(t, domain.UserKey) {
		t.Fatalf("session must be cleared after failed probe")
	}
}

func TestStartupExpiredJWTSkipsProbe(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "storage.json")
	seed := sessionadapter.NewFileKeyValueStore(path)
	_ = seed.Set(ctx, domain.TokenKey, jwtExpiring(t, now.Add(-time.Minute)))
	_ = seed.Set(ctx, domain.UserKey, `{"id":"u1","role":"CREATOR"}`)

	h := newHarness(t, path, &fakeGateway{})
	_, _ = h.uc.Restore(ctx)
	startup, _ := h.uc.ValidateOnStartup(ctx)
	if startup.Valid || startup.Reason != "token expired" {
		t.Fatalf("unexpected startup %+v", startup)
	}
	if h.gateway.probes != 0 {
		t.Fatalf("expired token must not be probed")
	}
}

func TestRestoreDiscardsPartialSession(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "storage.json")
	_ = sessionadapter.NewFileKeyValueStore(path).Set(ctx, domain.TokenKey, "orphan")

	h := newHarness(t, path, &fakeGateway{})
	out, err := h.uc.Restore(ctx)
	if err != nil || out.Authenticated {
		t.Fatalf("expected no session, got %+v %v", out, err)
	}
	if h.persisted(t, domain.TokenKey) {
		t.Fatalf("orphan token must be removed")
	}
}

func TestHandleUnauthorizedLogsOutAndNotifies(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := newHarness(t, "", &fakeGateway{token: "tok", user: domain.User{ID: "u1"}})
	_, _ = h.uc.Login(ctx, sessiondto.LoginInput{Email: "ada@example.com", Password: "pw"})

	var last sessiondto.SessionOutput
	cancel := h.uc.Subscribe(func(out sessiondto.SessionOutput) { last = out })
	defer cancel()

	h.uc.HandleUnauthorized(ctx)
	if last.Authenticated || h.uc.Token() != "" {
		t.Fatalf("expected logout after 401")
	}
}

func TestRefreshProfile(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := newHarness(t, "", &fakeGateway{token: "tok", user: domain.User{ID: "u1", Name: "Ada"}, meUser: domain.User{ID: "u1", Name: "Ada Lovelace"}})
	if _, err := h.uc.RefreshProfile(ctx); !errors.Is(err, apperrors.ErrNoSession) {
		t.Fatalf("expected no session, got %v", err)
	}
	_, _ = h.uc.Login(ctx, sessiondto.LoginInput{Email: "ada@example.com", Password: "pw"})
	out, err := h.uc.RefreshProfile(ctx)
	if err != nil || out.User.Name != "Ada Lovelace" {
		t.Fatalf("unexpected refresh %+v %v", out, err)
	}

	h.gateway.meErr = &apiclient.Error{Status: 401}
	if _, err := h.uc.RefreshProfile(ctx); err == nil {
		t.Fatalf("expected error")
	}
	if cur, _ := h.uc.Current(ctx); cur.Authenticated {
		t.Fatalf("401 on profile refresh must log out")
	}
}

func TestForgotPassword(t *testing.T) {
	t.Parallel()
	h := newHarness(t, "", &fakeGateway{})
	if err := h.uc.ForgotPassword(context.Background(), "nope"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if err := h.uc.ForgotPassword(context.Background(), "ada@example.com"); err != nil {
		t.Fatalf("forgot password: %v", err)
	}
	if h.gateway.forgotFor != "ada@example.com" {
		t.Fatalf("gateway not called")
	}
}
