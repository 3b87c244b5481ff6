package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"cvp/internal/modules/session/domain"
	sessiondto "cvp/internal/modules/session/dto"
	sessionin "cvp/internal/modules/session/port/in"
	sessionout "cvp/internal/modules/session/port/out"
	"cvp/internal/modules/session/service"
	"cvp/internal/platform/clock"
	apperrors "cvp/internal/platform/errors"
	"cvp/internal/platform/validate"
)

type Interactor struct {
	state   *service.State
	store   sessionout.KeyValueStore
	gateway sessionout.AuthGateway
	clock   clock.Clock
	logger  *slog.Logger
}

// NewInteractor reads from store but never writes it; writes go through the
// persistence subscriber attached with service.Persist.
func NewInteractor(state *service.State, store sessionout.KeyValueStore, gateway sessionout.AuthGateway, clk clock.Clock, logger *slog.Logger) sessionin.Usecase {
	if clk == nil {
		clk = clock.SystemClock{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Interactor{state: state, store: store, gateway: gateway, clock: clk, logger: logger}
}

func (i *Interactor) Login(ctx context.Context, input sessiondto.LoginInput) (sessiondto.SessionOutput, error) {
	if err := validate.Struct(input); err != nil {
		return sessiondto.SessionOutput{}, err
	}
	token, user, err := i.gateway.Login(ctx, input.Email, input.Password)
	if err != nil {
		return sessiondto.SessionOutput{}, fmt.Errorf("login: %w", err)
	}
	if token == "" {
		return sessiondto.SessionOutput{}, fmt.Errorf("login: server returned no token")
	}
	i.state.Set(token, user)
	i.logger.Info("logged in", "user", user.ID, "role", string(user.Role))
	return toOutput(i.state.Snapshot()), nil
}

func (i *Interactor) Logout(_ context.Context) error {
	i.state.Clear()
	i.logger.Info("logged out")
	return nil
}

func (i *Interactor) Current(_ context.Context) (sessiondto.SessionOutput, error) {
	return toOutput(i.state.Snapshot()), nil
}

// Restore hydrates the state from the store. A lone token or user, or a user
// that does not decode, is treated as no session and cleared.
func (i *Interactor) Restore(ctx context.Context) (sessiondto.SessionOutput, error) {
	token, hasToken, err := i.store.Get(ctx, domain.TokenKey)
	if err != nil {
		return sessiondto.SessionOutput{}, fmt.Errorf("read persisted token: %w", err)
	}
	rawUser, hasUser, err := i.store.Get(ctx, domain.UserKey)
	if err != nil {
		return sessiondto.SessionOutput{}, fmt.Errorf("read persisted user: %w", err)
	}
	if !hasToken && !hasUser {
		return toOutput(i.state.Snapshot()), nil
	}
	if !hasToken || !hasUser || token == "" {
		i.logger.Warn("discarding partial persisted session", "has_token", hasToken, "has_user", hasUser)
		i.state.Clear()
		return toOutput(i.state.Snapshot()), nil
	}
	user := domain.User{}
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		i.logger.Warn("discarding unreadable persisted user", "err", err)
		i.state.Clear()
		return toOutput(i.state.Snapshot()), nil
	}
	i.state.Set(token, user)
	return toOutput(i.state.Snapshot()), nil
}

func (i *Interactor) ValidateOnStartup(ctx context.Context) (sessiondto.StartupOutput, error) {
	session := i.state.Snapshot()
	if !session.Authenticated() {
		return sessiondto.StartupOutput{Valid: false, Reason: apperrors.ErrNoSession.Error()}, nil
	}
	if service.TokenExpired(session.Token, i.clock.Now()) {
		i.logger.Info("persisted token expired, clearing session")
		i.state.Clear()
		return sessiondto.StartupOutput{Valid: false, Reason: "token expired"}, nil
	}
	if err := i.gateway.Probe(ctx, session.Token); err != nil {
		i.logger.Warn("startup probe failed, clearing session", "err", err)
		i.state.Clear()
		return sessiondto.StartupOutput{Valid: false, Reason: err.Error()}, nil
	}
	return sessiondto.StartupOutput{Valid: true}, nil
}

func (i *Interactor) RefreshProfile(ctx context.Context) (sessiondto.SessionOutput, error) {
	if !i.state.Snapshot().Authenticated() {
		return sessiondto.SessionOutput{}, apperrors.ErrNoSession
	}
	user, err := i.gateway.Me(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			i.state.Clear()
		}
		return sessiondto.SessionOutput{}, fmt.Errorf("refresh profile: %w", err)
	}
	i.state.SetUser(user)
	return toOutput(i.state.Snapshot()), nil
}

func (i *Interactor) ForgotPassword(ctx context.Context, email string) error {
	if err := validate.Var("email", email, "required,email"); err != nil {
		return err
	}
	if err := i.gateway.ForgotPassword(ctx, email); err != nil {
		return fmt.Errorf("forgot password: %w", err)
	}
	return nil
}

func (i *Interactor) HandleUnauthorized(_ context.Context) {
	if !i.state.Snapshot().Authenticated() {
		return
	}
	i.logger.Warn("token rejected by server, logging out")
	i.state.Clear()
}

func (i *Interactor) Subscribe(fn func(sessiondto.SessionOutput)) (cancel func()) {
	return i.state.Subscribe(func(session domain.Session) {
		fn(toOutput(session))
	})
}

func (i *Interactor) Token() string {
	return i.state.Token()
}

func toOutput(session domain.Session) sessiondto.SessionOutput {
	out := sessiondto.SessionOutput{Authenticated: session.Authenticated(), Token: session.Token}
	if session.User != nil {
		out.User = &sessiondto.UserOutput{
			ID:    session.User.ID,
			Name:  session.User.Name,
			Email: session.User.Email,
			Role:  string(session.User.Role),
		}
	}
	return out
}
