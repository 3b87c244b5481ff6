package service

import (
	"context"
	"log/slog"

	"cvp/internal/modules/assignment/domain"
	assignmentout "cvp/internal/modules/assignment/port/out"
	navigation "cvp/internal/modules/navigation/domain"
	"cvp/internal/platform/clock"
)

type AssignmentService struct {
	clock   clock.Clock
	gateway assignmentout.Gateway
	logger  *slog.Logger
}

func NewAssignmentService(clock clock.Clock, gateway assignmentout.Gateway, logger *slog.Logger) *AssignmentService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &AssignmentService{clock: clock, gateway: gateway, logger: logger}
}

func (s *AssignmentService) MyTasks(ctx context.Context, filter navigation.Filter) ([]domain.Assignment, error) {
	items, err := s.gateway.MyTasks(ctx)
	if err != nil {
		return nil, err
	}
	return domain.Filter(items, filter, s.clock.Now()), nil
}

func (s *AssignmentService) List(ctx context.Context, filter navigation.Filter) ([]domain.Assignment, error) {
	items, err := s.gateway.List(ctx)
	if err != nil {
		return nil, err
	}
	return domain.Filter(items, filter, s.clock.Now()), nil
}

func (s *AssignmentService) Create(ctx context.Context, input domain.NewAssignment) (domain.Assignment, error) {
	created, err := s.gateway.Create(ctx, input)
	if err != nil {
		return domain.Assignment{}, err
	}
	s.logger.Info("assignment created", "id", created.ID, "topic", created.Topic)
	return created, nil
}
