package out

import (
	"context"

	"cvp/internal/modules/admin/domain"
)

type AdminGateway interface {
	Stats(ctx context.Context) (map[string]any, error)
	AssignedCreators(ctx context.Context) ([]domain.Creator, error)
}

type SuperAdminGateway interface {
	Analytics(ctx context.Context) (map[string]any, error)
	Users(ctx context.Context) ([]domain.User, error)
	CreateUser(ctx context.Context, user domain.NewUser) (domain.User, error)
	UpdateUser(ctx context.Context, id string, patch domain.UserPatch) (domain.User, error)
	Prompts(ctx context.Context) ([]domain.Prompt, error)
	SavePrompt(ctx context.Context, id, template string) (domain.Prompt, error)
	Guidelines(ctx context.Context) ([]domain.Guideline, error)
	CreateGuideline(ctx context.Context, g domain.Guideline) (domain.Guideline, error)
	UpdateGuideline(ctx context.Context, g domain.Guideline) (domain.Guideline, error)
}
