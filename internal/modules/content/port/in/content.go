package in

import (
	"context"

	"cvp/internal/modules/content/dto"
	reviewdto "cvp/internal/modules/review/dto"
)

type Usecase interface {
	// Prepare resolves the body and defaults without contacting the server.
	Prepare(ctx context.Context, input dto.SubmitInput) (dto.DraftOutput, error)
	Submit(ctx context.Context, input dto.SubmitInput) (dto.SubmitOutput, error)
	Mine(ctx context.Context) ([]reviewdto.ContentOutput, error)
	Open(ctx context.Context, target string) error
}
