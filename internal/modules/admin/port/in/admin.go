package in

import (
	"context"

	"cvp/internal/modules/admin/dto"
)

type Usecase interface {
	Stats(ctx context.Context) ([]dto.MetricOutput, error)
	AssignedCreators(ctx context.Context) ([]dto.CreatorOutput, error)
	Analytics(ctx context.Context) ([]dto.MetricOutput, error)

	Users(ctx context.Context) ([]dto.UserOutput, error)
	CreateUser(ctx context.Context, input dto.CreateUserInput) (dto.UserOutput, error)
	UpdateUser(ctx context.Context, input dto.UpdateUserInput) (dto.UserOutput, error)

	Prompts(ctx context.Context) ([]dto.PromptOutput, error)
	SavePrompt(ctx context.Context, input dto.SavePromptInput) (dto.PromptOutput, error)

	Guidelines(ctx context.Context) ([]dto.GuidelineOutput, error)
	SaveGuideline(ctx context.Context, input dto.SaveGuidelineInput) (dto.GuidelineOutput, error)
}
