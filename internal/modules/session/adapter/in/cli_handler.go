package in

import (
	"context"

	sessiondto "cvp/internal/modules/session/dto"
	sessionin "cvp/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Login(ctx context.Context, email, password string) (sessiondto.SessionOutput, error) {
	return h.usecase.Login(ctx, sessiondto.LoginInput{Email: email, Password: password})
}

func (h CLIHandler) Logout(ctx context.Context) error {
	return h.usecase.Logout(ctx)
}

// WhoAmI restores the persisted session, checks it against the server and
// refreshes the profile.
func (h CLIHandler) WhoAmI(ctx context.Context) (sessiondto.SessionOutput, sessiondto.StartupOutput, error) {
	if _, err := h.usecase.Restore(ctx); err != nil {
		return sessiondto.SessionOutput{}, sessiondto.StartupOutput{}, err
	}
	startup, err := h.usecase.ValidateOnStartup(ctx)
	if err != nil || !startup.Valid {
		current, _ := h.usecase.Current(ctx)
		return current, startup, err
	}
	current, err := h.usecase.RefreshProfile(ctx)
	return current, startup, err
}

func (h CLIHandler) ForgotPassword(ctx context.Context, email string) error {
	return h.usecase.ForgotPassword(ctx, email)
}
