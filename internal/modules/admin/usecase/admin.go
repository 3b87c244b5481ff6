package usecase

import (
	"context"
	"strings"

	"cvp/internal/modules/admin/domain"
	"cvp/internal/modules/admin/dto"
	adminin "cvp/internal/modules/admin/port/in"
	"cvp/internal/modules/admin/service"
	session "cvp/internal/modules/session/domain"
	"cvp/internal/platform/validate"
)

type Interactor struct {
	svc *service.AdminService
}

func NewInteractor(svc *service.AdminService) adminin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Stats(ctx context.Context) ([]dto.MetricOutput, error) {
	metrics, err := i.svc.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return toMetrics(metrics), nil
}

func (i *Interactor) AssignedCreators(ctx context.Context) ([]dto.CreatorOutput, error) {
	creators, err := i.svc.AssignedCreators(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CreatorOutput, 0, len(creators))
	for _, c := range creators {
		out = append(out, dto.CreatorOutput{ID: c.ID, Name: c.Name, Email: c.Email, AssignedCount: c.AssignedCount, PendingCount: c.PendingCount})
	}
	return out, nil
}

func (i *Interactor) Analytics(ctx context.Context) ([]dto.MetricOutput, error) {
	metrics, err := i.svc.Analytics(ctx)
	if err != nil {
		return nil, err
	}
	return toMetrics(metrics), nil
}

func (i *Interactor) Users(ctx context.Context) ([]dto.UserOutput, error) {
	users, err := i.svc.Users(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserOutput, 0, len(users))
	for _, u := range users {
		out = append(out, toUser(u))
	}
	return out, nil
}

func (i *Interactor) CreateUser(ctx context.Context, input dto.CreateUserInput) (dto.UserOutput, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	input.Role = normalizeRole(input.Role)
	if err := validate.Struct(input); err != nil {
		return dto.UserOutput{}, err
	}
	user, err := i.svc.CreateUser(ctx, domain.NewUser{Name: input.Name, Email: input.Email, Password: input.Password, Role: input.Role})
	if err != nil {
		return dto.UserOutput{}, err
	}
	return toUser(user), nil
}

func (i *Interactor) UpdateUser(ctx context.Context, input dto.UpdateUserInput) (dto.UserOutput, error) {
	if input.Role != nil {
		role := normalizeRole(*input.Role)
		input.Role = &role
	}
	if err := validate.Struct(input); err != nil {
		return dto.UserOutput{}, err
	}
	user, err := i.svc.UpdateUser(ctx, strings.TrimSpace(input.ID), domain.UserPatch{Role: input.Role, Active: input.Active})
	if err != nil {
		return dto.UserOutput{}, err
	}
	return toUser(user), nil
}

func (i *Interactor) Prompts(ctx context.Context) ([]dto.PromptOutput, error) {
	prompts, err := i.svc.Prompts(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PromptOutput, 0, len(prompts))
	for _, p := range prompts {
		out = append(out, toPrompt(p))
	}
	return out, nil
}

func (i *Interactor) SavePrompt(ctx context.Context, input dto.SavePromptInput) (dto.PromptOutput, error) {
	if err := validate.Struct(input); err != nil {
		return dto.PromptOutput{}, err
	}
	p, err := i.svc.SavePrompt(ctx, strings.TrimSpace(input.ID), input.Template)
	if err != nil {
		return dto.PromptOutput{}, err
	}
	return toPrompt(p), nil
}

func (i *Interactor) Guidelines(ctx context.Context) ([]dto.GuidelineOutput, error) {
	guidelines, err := i.svc.Guidelines(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.GuidelineOutput, 0, len(guidelines))
	for _, g := range guidelines {
		out = append(out, toGuideline(g))
	}
	return out, nil
}

func (i *Interactor) SaveGuideline(ctx context.Context, input dto.SaveGuidelineInput) (dto.GuidelineOutput, error) {
	input.ID = strings.TrimSpace(input.ID)
	input.Title = strings.TrimSpace(input.Title)
	input.ContentType = strings.ToUpper(strings.TrimSpace(input.ContentType))
	if err := validate.Struct(input); err != nil {
		return dto.GuidelineOutput{}, err
	}
	g, err := i.svc.SaveGuideline(ctx, domain.Guideline{ID: input.ID, Title: input.Title, ContentType: input.ContentType, Body: input.Body})
	if err != nil {
		return dto.GuidelineOutput{}, err
	}
	return toGuideline(g), nil
}

// normalizeRole maps accepted spellings onto the canonical role names and
// leaves anything else for the validator to reject.
func normalizeRole(raw string) string {
	role, err := session.ParseRole(raw)
	if err != nil {
		return strings.TrimSpace(raw)
	}
	return string(role)
}

func toMetrics(metrics []domain.Metric) []dto.MetricOutput {
	out := make([]dto.MetricOutput, 0, len(metrics))
	for _, m := range metrics {
		out = append(out, dto.MetricOutput{Key: m.Key, Value: m.String()})
	}
	return out
}

func toUser(u domain.User) dto.UserOutput {
	return dto.UserOutput{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, Active: u.Active, CreatedAt: u.CreatedAt}
}

func toPrompt(p domain.Prompt) dto.PromptOutput {
	return dto.PromptOutput{ID: p.ID, Name: p.Name, Provider: p.Provider, Template: p.Template, UpdatedAt: p.UpdatedAt}
}

func toGuideline(g domain.Guideline) dto.GuidelineOutput {
	return dto.GuidelineOutput{ID: g.ID, Title: g.Title, ContentType: g.ContentType, Body: g.Body, UpdatedAt: g.UpdatedAt}
}
