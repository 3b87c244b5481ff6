package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"cvp/internal/modules/review/domain"
	reviewout "cvp/internal/modules/review/port/out"
	"cvp/internal/platform/clock"
	apperrors "cvp/internal/platform/errors"
)

type ReviewService struct {
	clock    clock.Clock
	gateway  reviewout.ReviewGateway
	cache    reviewout.QueueCache
	exporter reviewout.Exporter
	logger   *slog.Logger
}

func NewReviewService(clock clock.Clock, gateway reviewout.ReviewGateway, cache reviewout.QueueCache, exporter reviewout.Exporter, logger *slog.Logger) *ReviewService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ReviewService{clock: clock, gateway: gateway, cache: cache, exporter: exporter, logger: logger}
}

// Queue fetches the queue and replaces the cached snapshot. A cache failure
// is logged; the fetched queue is still returned.
func (s *ReviewService) Queue(ctx context.Context) ([]domain.ContentItem, time.Time, error) {
	items, err := s.gateway.Queue(ctx)
	if err != nil {
		return nil, time.Time{}, err
	}
	fetchedAt := s.clock.Now()
	if s.cache != nil {
		if err := s.cache.Replace(ctx, items, fetchedAt); err != nil {
			s.logger.Warn("cache review queue", "err", err)
		}
	}
	return items, fetchedAt, nil
}

func (s *ReviewService) CachedQueue(ctx context.Context) ([]domain.ContentItem, time.Time, error) {
	if s.cache == nil {
		return nil, time.Time{}, apperrors.ErrNotFound
	}
	return s.cache.Load(ctx)
}

func (s *ReviewService) Submissions(ctx context.Context) ([]domain.ContentItem, error) {
	return s.gateway.Submissions(ctx)
}

func (s *ReviewService) Get(ctx context.Context, id string) (domain.ContentItem, error) {
	if strings.TrimSpace(id) == "" {
		return domain.ContentItem{}, fmt.Errorf("%w: content id is required", apperrors.ErrInvalidInput)
	}
	return s.gateway.Get(ctx, id)
}

func (s *ReviewService) Submit(ctx context.Context, id string, form domain.Form) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: content id is required", apperrors.ErrInvalidInput)
	}
	if err := form.Check(); err != nil {
		return err
	}
	if err := s.gateway.Submit(ctx, id, form.Action, strings.TrimSpace(form.Feedback)); err != nil {
		return err
	}
	s.logger.Info("review submitted", "content", id, "action", string(form.Action))
	return nil
}

func (s *ReviewService) Revalidate(ctx context.Context, id string) (domain.ValidationResult, error) {
	if strings.TrimSpace(id) == "" {
		return domain.ValidationResult{}, fmt.Errorf("%w: content id is required", apperrors.ErrInvalidInput)
	}
	return s.gateway.Revalidate(ctx, id)
}

func (s *ReviewService) Export(ctx context.Context, id, dir string) (string, error) {
	if s.exporter == nil {
		return "", fmt.Errorf("exporter is not configured")
	}
	if strings.TrimSpace(dir) == "" {
		return "", fmt.Errorf("%w: output directory is required", apperrors.ErrInvalidInput)
	}
	item, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return s.exporter.Export(ctx, item, dir, s.clock.Now())
}
