package out

import (
	"context"
	"time"

	"cvp/internal/modules/review/domain"
)

type ReviewGateway interface {
	Queue(ctx context.Context) ([]domain.ContentItem, error)
	// Submissions lists the content visible to the caller.
	Submissions(ctx context.Context) ([]domain.ContentItem, error)
	Get(ctx context.Context, id string) (domain.ContentItem, error)
	Submit(ctx context.Context, id string, action domain.Action, feedback string) error
	Revalidate(ctx context.Context, id string) (domain.ValidationResult, error)
}

// QueueCache keeps the last fetched review queue for offline display.
type QueueCache interface {
	Replace(ctx context.Context, items []domain.ContentItem, fetchedAt time.Time) error
	Load(ctx context.Context) ([]domain.ContentItem, time.Time, error)
}

type Exporter interface {
	Export(ctx context.Context, item domain.ContentItem, dir string, exportedAt time.Time) (string, error)
}
