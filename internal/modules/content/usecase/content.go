package usecase

import (
	"context"
	"strings"

	"cvp/internal/modules/content/domain"
	"cvp/internal/modules/content/dto"
	contentin "cvp/internal/modules/content/port/in"
	"cvp/internal/modules/content/service"
	reviewdto "cvp/internal/modules/review/dto"
	reviewin "cvp/internal/modules/review/port/in"
	"cvp/internal/platform/validate"
)

type Interactor struct {
	svc    *service.ContentService
	review reviewin.Usecase
}

// NewInteractor lists the caller's own submissions through review.
func NewInteractor(svc *service.ContentService, review reviewin.Usecase) contentin.Usecase {
	return &Interactor{svc: svc, review: review}
}

func (i *Interactor) Prepare(ctx context.Context, input dto.SubmitInput) (dto.DraftOutput, error) {
	draft, err := i.resolve(ctx, input)
	if err != nil {
		return dto.DraftOutput{}, err
	}
	out := toDraftOutput(draft)
	if err := validate.Struct(out); err != nil {
		return dto.DraftOutput{}, err
	}
	return out, nil
}

func (i *Interactor) Submit(ctx context.Context, input dto.SubmitInput) (dto.SubmitOutput, error) {
	draft, err := i.resolve(ctx, input)
	if err != nil {
		return dto.SubmitOutput{}, err
	}
	if err := validate.Struct(toDraftOutput(draft)); err != nil {
		return dto.SubmitOutput{}, err
	}
	created, err := i.svc.Submit(ctx, draft)
	if err != nil {
		return dto.SubmitOutput{}, err
	}
	return dto.SubmitOutput{ID: created.ID, Status: created.Status, Title: draft.Title}, nil
}

func (i *Interactor) Mine(ctx context.Context) ([]reviewdto.ContentOutput, error) {
	return i.review.Submissions(ctx)
}

func (i *Interactor) Open(ctx context.Context, target string) error {
	return i.svc.Open(ctx, target)
}

func (i *Interactor) resolve(ctx context.Context, input dto.SubmitInput) (domain.Draft, error) {
	draft := domain.Draft{
		Title:       strings.TrimSpace(input.Title),
		ContentType: strings.TrimSpace(input.ContentType),
		Topic:       strings.TrimSpace(input.Topic),
		Body:        input.Body,
	}
	if t := input.Task; t != nil {
		draft.Task = &domain.Task{
			ID:                 t.TaskID,
			Topic:              t.Topic,
			ContentType:        t.ContentType,
			Guidelines:         t.Guidelines,
			PrerequisiteTopics: t.PrerequisiteTopics,
		}
	}
	return i.svc.Resolve(ctx, draft, input.FilePath)
}

func toDraftOutput(d domain.Draft) dto.DraftOutput {
	out := dto.DraftOutput{
		Title:       d.Title,
		ContentType: d.ContentType,
		Topic:       d.Topic,
		Body:        d.Body,
	}
	if d.Task != nil {
		out.TaskID = d.Task.ID
	}
	return out
}
