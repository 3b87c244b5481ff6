package in

import (
	"context"

	"cvp/internal/modules/review/dto"
	reviewin "cvp/internal/modules/review/port/in"
)

type CLIHandler struct {
	usecase reviewin.Usecase
}

func NewCLIHandler(usecase reviewin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context, cached bool) (dto.QueueOutput, error) {
	if cached {
		return h.usecase.CachedQueue(ctx)
	}
	return h.usecase.Queue(ctx)
}

func (h CLIHandler) Show(ctx context.Context, id string) (dto.ContentOutput, error) {
	return h.usecase.Get(ctx, id)
}

func (h CLIHandler) Decide(ctx context.Context, id, action, feedback string) error {
	return h.usecase.Submit(ctx, dto.SubmitInput{ID: id, Action: action, Feedback: feedback})
}

func (h CLIHandler) Revalidate(ctx context.Context, id string) (dto.ValidationOutput, error) {
	return h.usecase.Revalidate(ctx, id)
}

func (h CLIHandler) Export(ctx context.Context, id, dir string) (dto.ExportOutput, error) {
	return h.usecase.Export(ctx, dto.ExportInput{ID: id, Dir: dir})
}
