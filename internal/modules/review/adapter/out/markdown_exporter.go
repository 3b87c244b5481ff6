package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cvp/internal/modules/review/domain"
	reviewout "cvp/internal/modules/review/port/out"
	"cvp/internal/platform/markdown"
	"cvp/internal/platform/slug"
	"cvp/internal/platform/storage"
)

var (
	bodyBlock       = markdown.Block{Name: "content"}
	validationBlock = markdown.Block{Name: "validation"}
)

type exportMeta struct {
	ID             string   `yaml:"id"`
	Title          string   `yaml:"title"`
	Topic          string   `yaml:"topic,omitempty"`
	ContentType    string   `yaml:"content_type,omitempty"`
	Status         string   `yaml:"status,omitempty"`
	Creator        string   `yaml:"creator,omitempty"`
	CreatedAt      string   `yaml:"created_at,omitempty"`
	ConsensusScore *float64 `yaml:"consensus_score,omitempty"`
	Recommendation string   `yaml:"recommendation,omitempty"`
	ExportedAt     string   `yaml:"exported_at"`
}

// MarkdownExporter writes a content item as a markdown file with YAML
// frontmatter. Re-exporting rewrites the generated blocks and keeps any
// notes the reviewer added around them.
type MarkdownExporter struct{}

func NewMarkdownExporter() reviewout.Exporter {
	return MarkdownExporter{}
}

func (MarkdownExporter) Export(_ context.Context, item domain.ContentItem, dir string, exportedAt time.Time) (string, error) {
	path := filepath.Join(dir, slug.Filename(item.Title, item.ID))

	existing := ""
	if raw, err := os.ReadFile(path); err == nil {
		body, splitErr := markdown.Split(string(raw), &exportMeta{})
		if splitErr != nil {
			return "", fmt.Errorf("read previous export: %w", splitErr)
		}
		existing = body
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("read previous export: %w", err)
	}

	body := existing
	if strings.TrimSpace(body) == "" {
		body = "# " + item.Title + "\n"
	}
	body = bodyBlock.Replace(body, item.Body)
	body = validationBlock.Replace(body, "## Validation\n\n"+item.Validation.Report())

	meta := exportMeta{
		ID:          item.ID,
		Title:       item.Title,
		Topic:       item.Topic,
		ContentType: string(item.ContentType),
		Status:      string(item.Status),
		Creator:     item.CreatorName,
		ExportedAt:  exportedAt.UTC().Format(time.RFC3339),
	}
	if !item.CreatedAt.IsZero() {
		meta.CreatedAt = item.CreatedAt.UTC().Format(time.RFC3339)
	}
	if item.Validation != nil {
		score := item.Validation.ConsensusScore
		meta.ConsensusScore = &score
		meta.Recommendation = item.Validation.Recommendation
	}
	doc, err := markdown.Render(meta, body)
	if err != nil {
		return "", err
	}
	if err := storage.AtomicWriteFile(path, []byte(doc), 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}
