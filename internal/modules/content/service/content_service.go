package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"cvp/internal/modules/content/domain"
	contentout "cvp/internal/modules/content/port/out"
	apperrors "cvp/internal/platform/errors"
	"cvp/internal/platform/markdown"
)

type ContentService struct {
	mdLoader  contentout.BodyLoader
	pdfLoader contentout.BodyLoader
	gateway   contentout.ContentGateway
	launcher  contentout.ExternalLauncher
	logger    *slog.Logger
}

func NewContentService(
	mdLoader contentout.BodyLoader,
	pdfLoader contentout.BodyLoader,
	gateway contentout.ContentGateway,
	launcher contentout.ExternalLauncher,
	logger *slog.Logger,
) *ContentService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ContentService{
		mdLoader:  mdLoader,
		pdfLoader: pdfLoader,
		gateway:   gateway,
		launcher:  launcher,
		logger:    logger,
	}
}

// Resolve loads the body from filePath when given and fills empty fields.
func (s *ContentService) Resolve(ctx context.Context, draft domain.Draft, filePath string) (domain.Draft, error) {
	meta := domain.Meta{}
	if path := strings.TrimSpace(filePath); path != "" {
		switch domain.FormatOf(path) {
		case domain.FormatPDF:
			text, err := s.pdfLoader.Load(ctx, path)
			if err != nil {
				return domain.Draft{}, err
			}
			draft.Body = text
		default:
			raw, err := s.mdLoader.Load(ctx, path)
			if err != nil {
				return domain.Draft{}, err
			}
			body, err := markdown.Split(raw, &meta)
			if err != nil {
				return domain.Draft{}, fmt.Errorf("%w: %s: %v", apperrors.ErrInvalidInput, path, err)
			}
			draft.Body = body
		}
		s.logger.Debug("content body loaded", "path", path, "bytes", len(draft.Body))
	}
	draft.Fill(meta)
	return draft, nil
}

func (s *ContentService) Submit(ctx context.Context, draft domain.Draft) (domain.Created, error) {
	created, err := s.gateway.Create(ctx, draft)
	if err != nil {
		return domain.Created{}, err
	}
	s.logger.Info("content submitted", "id", created.ID, "status", created.Status)
	return created, nil
}

func (s *ContentService) Open(ctx context.Context, target string) error {
	if strings.TrimSpace(target) == "" {
		return fmt.Errorf("%w: nothing to open", apperrors.ErrInvalidInput)
	}
	if s.launcher == nil {
		return fmt.Errorf("external launcher is not configured")
	}
	return s.launcher.Open(ctx, target)
}
