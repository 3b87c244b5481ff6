package in

import (
	"context"

	"cvp/internal/modules/assignment/dto"
	assignmentin "cvp/internal/modules/assignment/port/in"
)

type CLIHandler struct {
	usecase assignmentin.Usecase
}

func NewCLIHandler(usecase assignmentin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Tasks(ctx context.Context, filter string) ([]dto.AssignmentOutput, error) {
	return h.usecase.MyTasks(ctx, filter)
}

func (h CLIHandler) All(ctx context.Context, filter string) ([]dto.AssignmentOutput, error) {
	return h.usecase.List(ctx, filter)
}

func (h CLIHandler) Create(ctx context.Context, input dto.CreateInput) (dto.AssignmentOutput, error) {
	return h.usecase.Create(ctx, input)
}

// Find looks a task up by id among the caller's tasks.
func (h CLIHandler) Find(ctx context.Context, id string) (dto.AssignmentOutput, bool, error) {
	items, err := h.usecase.MyTasks(ctx, "")
	if err != nil {
		return dto.AssignmentOutput{}, false, err
	}
	for _, item := range items {
		if item.ID == id {
			return item, true, nil
		}
	}
	return dto.AssignmentOutput{}, false, nil
}
