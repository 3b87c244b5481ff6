package in

import (
	"context"

	"cvp/internal/modules/assignment/dto"
)

type Usecase interface {
	// MyTasks lists the caller's tasks; filter is any navigation filter value.
	MyTasks(ctx context.Context, filter string) ([]dto.AssignmentOutput, error)
	List(ctx context.Context, filter string) ([]dto.AssignmentOutput, error)
	Create(ctx context.Context, input dto.CreateInput) (dto.AssignmentOutput, error)
}
