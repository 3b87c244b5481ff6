package in

import (
	"context"

	"cvp/internal/modules/session/dto"
)

type Usecase interface {
	Login(ctx context.Context, input dto.LoginInput) (dto.SessionOutput, error)
	Logout(ctx context.Context) error
	Current(ctx context.Context) (dto.SessionOutput, error)
	Restore(ctx context.Context) (dto.SessionOutput, error)
	ValidateOnStartup(ctx context.Context) (dto.StartupOutput, error)
	RefreshProfile(ctx context.Context) (dto.SessionOutput, error)
	ForgotPassword(ctx context.Context, email string) error
	// HandleUnauthorized is the API client's hook for a 401 mid-session.
	HandleUnauthorized(ctx context.Context)
	// Subscribe reports every session change, including logouts the
	// caller did not start.
	Subscribe(fn func(dto.SessionOutput)) (cancel func())
	Token() string
}
