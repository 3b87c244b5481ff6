package out

import (
	"context"

	"cvp/internal/modules/session/domain"
)

// KeyValueStore is durable client storage.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

type AuthGateway interface {
	Login(ctx context.Context, email, password string) (token string, user domain.User, err error)
	Me(ctx context.Context) (domain.User, error)
	// Probe issues one authenticated request with token and reports any failure.
	Probe(ctx context.Context, token string) error
	ForgotPassword(ctx context.Context, email string) error
}
