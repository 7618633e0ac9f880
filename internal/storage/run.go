// Package storage persists benchmark runs with sqlx. Queries are written with ? placeholders and rebound for the driver in use.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"

	"github.com/0x0BSoD/featfeed/internal/model"
)

const schema = `CREATE TABLE IF NOT EXISTS runs (
	id          VARCHAR(36) PRIMARY KEY,
	feature     VARCHAR(255) NOT NULL,
	users_count INTEGER NOT NULL,
	items_count INTEGER NOT NULL,
	checksum    BIGINT NOT NULL,
	duration_ns BIGINT NOT NULL,
	created_at  BIGINT NOT NULL
)`

type RunStorage struct {
	db *sqlx.DB
}

func NewRunStorage(db *sqlx.DB) *RunStorage {
	return &RunStorage{db: db}
}

func (s *RunStorage) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create runs table: %w", err)
	}
	return nil
}

func (s *RunStorage) Store(ctx context.Context, run model.Run) error {
	query := s.db.Rebind(`INSERT INTO runs (id, feature, users_count, items_count, checksum, duration_ns, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)

	if _, err := s.db.ExecContext(
		ctx,
		query,
		run.ID,
		run.Feature,
		run.UsersCount,
		run.ItemsCount,
		int64(run.Checksum),
		run.Duration.Nanoseconds(),
		run.CreatedAt.UTC().UnixMilli(),
	); err != nil {
		return fmt.Errorf("insert run %s: %w", run.ID, err)
	}

	return nil
}

// Recent returns up to limit runs of the feature, newest first.
func (s *RunStorage) Recent(ctx context.Context, feature string, limit int) ([]model.Run, error) {
	query := s.db.Rebind(`SELECT id, feature, users_count, items_count, checksum, duration_ns, created_at
		FROM runs WHERE feature = ? ORDER BY created_at DESC, id DESC LIMIT ?`)

	var rows []dbRun
	if err := s.db.SelectContext(ctx, &rows, query, feature, limit); err != nil {
		return nil, fmt.Errorf("select runs of %s: %w", feature, err)
	}

	return lo.Map(rows, func(row dbRun, _ int) model.Run { return row.toModel() }), nil
}

type dbRun struct {
	ID         string `db:"id"`
	Feature    string `db:"feature"`
	UsersCount int    `db:"users_count"`
	ItemsCount int    `db:"items_count"`
	Checksum   int64  `db:"checksum"`
	DurationNS int64  `db:"duration_ns"`
	CreatedAt  int64  `db:"created_at"`
}

func (r dbRun) toModel() model.Run {
	return model.Run{
		ID:         r.ID,
		Feature:    r.Feature,
		UsersCount: r.UsersCount,
		ItemsCount: r.ItemsCount,
		Checksum:   uint32(r.Checksum),
		Duration:   time.Duration(r.DurationNS),
		CreatedAt:  time.UnixMilli(r.CreatedAt).UTC(),
	}
}
