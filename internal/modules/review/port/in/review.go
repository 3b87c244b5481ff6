package in

import (
	"context"

	"cvp/internal/modules/review/dto"
)

type Usecase interface {
	Queue(ctx context.Context) (dto.QueueOutput, error)
	CachedQueue(ctx context.Context) (dto.QueueOutput, error)
	Submissions(ctx context.Context) ([]dto.ContentOutput, error)
	Get(ctx context.Context, id string) (dto.ContentOutput, error)
	// Submit checks the form rule before any request is made.
	Submit(ctx context.Context, input dto.SubmitInput) error
	Revalidate(ctx context.Context, id string) (dto.ValidationOutput, error)
	Export(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error)
}
