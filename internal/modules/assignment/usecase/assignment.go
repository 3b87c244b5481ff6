package usecase

import (
	"context"
	"encoding/json"
	"strings"

	"cvp/internal/modules/assignment/domain"
	"cvp/internal/modules/assignment/dto"
	assignmentin "cvp/internal/modules/assignment/port/in"
	"cvp/internal/modules/assignment/service"
	navigation "cvp/internal/modules/navigation/domain"
	"cvp/internal/platform/validate"
)

type Interactor struct {
	svc *service.AssignmentService
}

func NewInteractor(svc *service.AssignmentService) assignmentin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) MyTasks(ctx context.Context, filter string) ([]dto.AssignmentOutput, error) {
	items, err := i.svc.MyTasks(ctx, navigation.ParseFilter(filter))
	if err != nil {
		return nil, err
	}
	return toOutputs(items), nil
}

func (i *Interactor) List(ctx context.Context, filter string) ([]dto.AssignmentOutput, error) {
	items, err := i.svc.List(ctx, navigation.ParseFilter(filter))
	if err != nil {
		return nil, err
	}
	return toOutputs(items), nil
}

func (i *Interactor) Create(ctx context.Context, input dto.CreateInput) (dto.AssignmentOutput, error) {
	input.Topic = strings.TrimSpace(input.Topic)
	input.ContentType = strings.ToUpper(strings.TrimSpace(input.ContentType))
	if err := validate.Struct(input); err != nil {
		return dto.AssignmentOutput{}, err
	}
	created, err := i.svc.Create(ctx, domain.NewAssignment{
		Topic:              input.Topic,
		ContentType:        input.ContentType,
		CreatorID:          strings.TrimSpace(input.CreatorID),
		DueDate:            input.DueDate,
		Guidelines:         input.Guidelines,
		PrerequisiteTopics: input.PrerequisiteTopics,
	})
	if err != nil {
		return dto.AssignmentOutput{}, err
	}
	return toOutput(created), nil
}

func toOutputs(items []domain.Assignment) []dto.AssignmentOutput {
	out := make([]dto.AssignmentOutput, 0, len(items))
	for _, item := range items {
		out = append(out, toOutput(item))
	}
	return out
}

func toOutput(a domain.Assignment) dto.AssignmentOutput {
	task, _ := json.Marshal(a.ToTask())
	prereqs := a.PrerequisiteTopics
	if prereqs == nil {
		prereqs = []string{}
	}
	return dto.AssignmentOutput{
		ID:                 a.ID,
		Topic:              a.Topic,
		ContentType:        a.ContentType,
		Status:             string(a.Status),
		ContentStatus:      a.ContentStatus,
		DueDate:            a.DueDate,
		Guidelines:         a.Guidelines,
		PrerequisiteTopics: prereqs,
		CreatorName:        a.CreatorName,
		TaskJSON:           string(task),
	}
}
