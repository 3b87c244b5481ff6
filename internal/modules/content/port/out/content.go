package out

import (
	"context"

	"cvp/internal/modules/content/domain"
)

type BodyLoader interface {
	Load(ctx context.Context, path string) (string, error)
}

type ContentGateway interface {
	Create(ctx context.Context, draft domain.Draft) (domain.Created, error)
}

type ExternalLauncher interface {
	Open(ctx context.Context, target string) error
}
