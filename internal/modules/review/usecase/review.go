package usecase

import (
	"context"

	"cvp/internal/modules/review/domain"
	"cvp/internal/modules/review/dto"
	reviewin "cvp/internal/modules/review/port/in"
	"cvp/internal/modules/review/service"
)

type Interactor struct {
	svc *service.ReviewService
}

func NewInteractor(svc *service.ReviewService) reviewin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Queue(ctx context.Context) (dto.QueueOutput, error) {
	items, fetchedAt, err := i.svc.Queue(ctx)
	if err != nil {
		return dto.QueueOutput{}, err
	}
	return dto.QueueOutput{Items: toOutputs(items), FetchedAt: fetchedAt}, nil
}

func (i *Interactor) CachedQueue(ctx context.Context) (dto.QueueOutput, error) {
	items, fetchedAt, err := i.svc.CachedQueue(ctx)
	if err != nil {
		return dto.QueueOutput{}, err
	}
	return dto.QueueOutput{Items: toOutputs(items), FetchedAt: fetchedAt, Cached: true}, nil
}

func (i *Interactor) Submissions(ctx context.Context) ([]dto.ContentOutput, error) {
	items, err := i.svc.Submissions(ctx)
	if err != nil {
		return nil, err
	}
	return toOutputs(items), nil
}

func (i *Interactor) Get(ctx context.Context, id string) (dto.ContentOutput, error) {
	item, err := i.svc.Get(ctx, id)
	if err != nil {
		return dto.ContentOutput{}, err
	}
	return toOutput(item), nil
}

func (i *Interactor) Submit(ctx context.Context, input dto.SubmitInput) error {
	action, err := domain.ParseAction(input.Action)
	if err != nil {
		return err
	}
	return i.svc.Submit(ctx, input.ID, domain.Form{Action: action, Feedback: input.Feedback})
}

func (i *Interactor) Revalidate(ctx context.Context, id string) (dto.ValidationOutput, error) {
	result, err := i.svc.Revalidate(ctx, id)
	if err != nil {
		return dto.ValidationOutput{}, err
	}
	return *toValidationOutput(&result), nil
}

func (i *Interactor) Export(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error) {
	path, err := i.svc.Export(ctx, input.ID, input.Dir)
	if err != nil {
		return dto.ExportOutput{}, err
	}
	return dto.ExportOutput{ID: input.ID, Path: path}, nil
}

func toOutputs(items []domain.ContentItem) []dto.ContentOutput {
	out := make([]dto.ContentOutput, 0, len(items))
	for _, item := range items {
		out = append(out, toOutput(item))
	}
	return out
}

func toOutput(item domain.ContentItem) dto.ContentOutput {
	return dto.ContentOutput{
		ID:          item.ID,
		Title:       item.Title,
		ContentType: string(item.ContentType),
		Topic:       item.Topic,
		Status:      string(item.Status),
		CreatorName: item.CreatorName,
		Body:        item.Body,
		CreatedAt:   item.CreatedAt,
		Validation:  toValidationOutput(item.Validation),
	}
}

func toValidationOutput(v *domain.ValidationResult) *dto.ValidationOutput {
	if v == nil {
		return nil
	}
	return &dto.ValidationOutput{
		Round1Results:  toScores(v.Round1Results),
		Round2Results:  toScores(v.Round2Results),
		ConsensusScore: v.ConsensusScore,
		Recommendation: v.Recommendation,
		ValidatedAt:    v.ValidatedAt,
		Report:         v.Report(),
	}
}

func toScores(scores []domain.ProviderScore) []dto.ProviderScoreOutput {
	out := make([]dto.ProviderScoreOutput, 0, len(scores))
	for _, s := range scores {
		out = append(out, dto.ProviderScoreOutput{Provider: s.Provider, Score: s.Score, Feedback: s.Feedback, Criteria: s.Criteria})
	}
	return out
}
