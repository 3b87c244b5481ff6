package service

import (
	"context"
	"fmt"
	"log/slog"

	"cvp/internal/modules/admin/domain"
	adminout "cvp/internal/modules/admin/port/out"
	apperrors "cvp/internal/platform/errors"
)

type AdminService struct {
	admin  adminout.AdminGateway
	super  adminout.SuperAdminGateway
	logger *slog.Logger
}

func NewAdminService(admin adminout.AdminGateway, super adminout.SuperAdminGateway, logger *slog.Logger) *AdminService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &AdminService{admin: admin, super: super, logger: logger}
}

func (s *AdminService) Stats(ctx context.Context) ([]domain.Metric, error) {
	doc, err := s.admin.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return domain.Flatten(doc), nil
}

func (s *AdminService) AssignedCreators(ctx context.Context) ([]domain.Creator, error) {
	return s.admin.AssignedCreators(ctx)
}

func (s *AdminService) Analytics(ctx context.Context) ([]domain.Metric, error) {
	doc, err := s.super.Analytics(ctx)
	if err != nil {
		return nil, err
	}
	return domain.Flatten(doc), nil
}

func (s *AdminService) Users(ctx context.Context) ([]domain.User, error) {
	return s.super.Users(ctx)
}

func (s *AdminService) CreateUser(ctx context.Context, user domain.NewUser) (domain.User, error) {
	created, err := s.super.CreateUser(ctx, user)
	if err != nil {
		return domain.User{}, err
	}
	s.logger.Info("user created", "id", created.ID, "role", created.Role)
	return created, nil
}

func (s *AdminService) UpdateUser(ctx context.Context, id string, patch domain.UserPatch) (domain.User, error) {
	if patch.Empty() {
		return domain.User{}, fmt.Errorf("%w: nothing to update for user %s", apperrors.ErrInvalidInput, id)
	}
	updated, err := s.super.UpdateUser(ctx, id, patch)
	if err != nil {
		return domain.User{}, err
	}
	s.logger.Info("user updated", "id", id)
	return updated, nil
}

func (s *AdminService) Prompts(ctx context.Context) ([]domain.Prompt, error) {
	return s.super.Prompts(ctx)
}

func (s *AdminService) SavePrompt(ctx context.Context, id, template string) (domain.Prompt, error) {
	return s.super.SavePrompt(ctx, id, template)
}

func (s *AdminService) Guidelines(ctx context.Context) ([]domain.Guideline, error) {
	return s.super.Guidelines(ctx)
}

// SaveGuideline creates g when it has no id yet and replaces it otherwise.
func (s *AdminService) SaveGuideline(ctx context.Context, g domain.Guideline) (domain.Guideline, error) {
	if g.IsNew() {
		return s.super.CreateGuideline(ctx, g)
	}
	return s.super.UpdateGuideline(ctx, g)
}
