package out

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"cvp/internal/modules/review/domain"
	reviewout "cvp/internal/modules/review/port/out"
	apperrors "cvp/internal/platform/errors"

	_ "modernc.org/sqlite"
)

const timeLayout = "2006-01-02T15:04:05Z07:00"

type SQLiteQueueCache struct {
	db *sql.DB
}

func NewSQLiteQueueCache(dbPath string) (*SQLiteQueueCache, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	cache := &SQLiteQueueCache{db: db}
	if err := cache.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return cache, nil
}

var _ reviewout.QueueCache = (*SQLiteQueueCache)(nil)

func (s *SQLiteQueueCache) ensureSchema(ctx context.Context) error {
	const queueDDL = `
CREATE TABLE IF NOT EXISTS review_queue (
  position INTEGER NOT NULL,
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  content_type TEXT,
  status TEXT,
  consensus_score REAL,
  payload TEXT NOT NULL,
  fetched_at TEXT NOT NULL
);
`
	const metaDDL = `
CREATE TABLE IF NOT EXISTS review_queue_meta (
  id INTEGER PRIMARY KEY CHECK (id = 1),
  fetched_at TEXT NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, queueDDL); err != nil {
		return fmt.Errorf("create review_queue table: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, metaDDL); err != nil {
		return fmt.Errorf("create review_queue_meta table: %w", err)
	}
	return nil
}

// Replace swaps the whole snapshot in one transaction.
func (s *SQLiteQueueCache) Replace(ctx context.Context, items []domain.ContentItem, fetchedAt time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM review_queue`); err != nil {
		return fmt.Errorf("reset review_queue: %w", err)
	}
	const insert = `
INSERT INTO review_queue (position, id, title, content_type, status, consensus_score, payload, fetched_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  position=excluded.position,
  title=excluded.title,
  content_type=excluded.content_type,
  status=excluded.status,
  consensus_score=excluded.consensus_score,
  payload=excluded.payload,
  fetched_at=excluded.fetched_at;
`
	stamp := fetchedAt.UTC().Format(timeLayout)
	for pos, item := range items {
		payload, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("encode %s: %w", item.ID, err)
		}
		var score sql.NullFloat64
		if item.Validation != nil {
			score = sql.NullFloat64{Float64: item.Validation.ConsensusScore, Valid: true}
		}
		if _, err := tx.ExecContext(ctx, insert, pos, item.ID, item.Title, string(item.ContentType), string(item.Status), score, string(payload), stamp); err != nil {
			return fmt.Errorf("insert %s: %w", item.ID, err)
		}
	}
	const meta = `
INSERT INTO review_queue_meta (id, fetched_at) VALUES (1, ?)
ON CONFLICT(id) DO UPDATE SET fetched_at=excluded.fetched_at;
`
	if _, err := tx.ExecContext(ctx, meta, stamp); err != nil {
		return fmt.Errorf("stamp review_queue: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace: %w", err)
	}
	return nil
}

// Load returns apperrors.ErrNotFound when no snapshot was ever stored.
func (s *SQLiteQueueCache) Load(ctx context.Context) ([]domain.ContentItem, time.Time, error) {
	var stamp string
	err := s.db.QueryRowContext(ctx, `SELECT fetched_at FROM review_queue_meta WHERE id = 1`).Scan(&stamp)
	if err == sql.ErrNoRows {
		return nil, time.Time{}, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("read review_queue stamp: %w", err)
	}
	fetchedAt, err := time.Parse(timeLayout, stamp)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("parse review_queue stamp: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT payload FROM review_queue ORDER BY position`)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("query review_queue: %w", err)
	}
	defer rows.Close()
	items := []domain.ContentItem{}
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, time.Time{}, fmt.Errorf("scan review_queue: %w", err)
		}
		item := domain.ContentItem{}
		if err := json.Unmarshal([]byte(payload), &item); err != nil {
			return nil, time.Time{}, fmt.Errorf("decode review_queue row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, time.Time{}, fmt.Errorf("iterate review_queue: %w", err)
	}
	return items, fetchedAt, nil
}

func (s *SQLiteQueueCache) Close() error {
	return s.db.Close()
}
