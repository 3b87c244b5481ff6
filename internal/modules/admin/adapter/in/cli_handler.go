package in

import (
	"context"

	"cvp/internal/modules/admin/dto"
	adminin "cvp/internal/modules/admin/port/in"
)

type CLIHandler struct {
	usecase adminin.Usecase
}

func NewCLIHandler(usecase adminin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Stats(ctx context.Context) ([]dto.MetricOutput, error) {
	return h.usecase.Stats(ctx)
}

func (h CLIHandler) Creators(ctx context.Context) ([]dto.CreatorOutput, error) {
	return h.usecase.AssignedCreators(ctx)
}

func (h CLIHandler) Analytics(ctx context.Context) ([]dto.MetricOutput, error) {
	return h.usecase.Analytics(ctx)
}

func (h CLIHandler) Users(ctx context.Context) ([]dto.UserOutput, error) {
	return h.usecase.Users(ctx)
}

func (h CLIHandler) CreateUser(ctx context.Context, name, email, password, role string) (dto.UserOutput, error) {
	return h.usecase.CreateUser(ctx, dto.CreateUserInput{Name: name, Email: email, Password: password, Role: role})
}

func (h CLIHandler) SetRole(ctx context.Context, id, role string) (dto.UserOutput, error) {
	return h.usecase.UpdateUser(ctx, dto.UpdateUserInput{ID: id, Role: &role})
}

func (h CLIHandler) SetActive(ctx context.Context, id string, active bool) (dto.UserOutput, error) {
	return h.usecase.UpdateUser(ctx, dto.UpdateUserInput{ID: id, Active: &active})
}

func (h CLIHandler) Prompts(ctx context.Context) ([]dto.PromptOutput, error) {
	return h.usecase.Prompts(ctx)
}

func (h CLIHandler) SetPrompt(ctx context.Context, id, template string) (dto.PromptOutput, error) {
	return h.usecase.SavePrompt(ctx, dto.SavePromptInput{ID: id, Template: template})
}

func (h CLIHandler) Guidelines(ctx context.Context) ([]dto.GuidelineOutput, error) {
	return h.usecase.Guidelines(ctx)
}

func (h CLIHandler) SetGuideline(ctx context.Context, id, title, contentType, body string) (dto.GuidelineOutput, error) {
	return h.usecase.SaveGuideline(ctx, dto.SaveGuidelineInput{ID: id, Title: title, ContentType: contentType, Body: body})
}
