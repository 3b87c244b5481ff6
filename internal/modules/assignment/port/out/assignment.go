package out

import (
	"context"

	"cvp/internal/modules/assignment/domain"
)

type Gateway interface {
	MyTasks(ctx context.Context) ([]domain.Assignment, error)
	List(ctx context.Context) ([]domain.Assignment, error)
	Create(ctx context.Context, input domain.NewAssignment) (domain.Assignment, error)
}
