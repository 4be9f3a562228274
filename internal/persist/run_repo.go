package persist

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/l1jgo/cubecollect/internal/core/event"
)

// RunRepo records play sessions and the collections made in them.
type RunRepo struct {
	db    *DB
	runID int64
}

func NewRunRepo(db *DB) *RunRepo {
	return &RunRepo{db: db}
}

// Start opens a new run row. Collections appended afterwards belong to it.
func (r *RunRepo) Start(ctx context.Context, name string) (int64, error) {
	err := r.db.Pool.QueryRow(ctx,
		`INSERT INTO runs (name) VALUES ($1) RETURNING id`, name,
	).Scan(&r.runID)
	if err != nil {
		return 0, fmt.Errorf("start run: %w", err)
	}
	return r.runID, nil
}

// AppendCollections writes a batch of collection records in one transaction.
func (r *RunRepo) AppendCollections(ctx context.Context, entries []event.EntityCollected) error {
	if r.runID == 0 {
		return fmt.Errorf("append collections: run not started")
	}
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("collections begin: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, e := range entries {
		batch.Queue(
			`INSERT INTO collections (run_id, entity_id, score, tick) VALUES ($1, $2, $3, $4)`,
			r.runID, int64(e.Entity), e.Score, int64(e.Tick),
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("collections insert: %w", err)
	}
	return tx.Commit(ctx)
}

// Finish stamps the final score on the current run.
func (r *RunRepo) Finish(ctx context.Context, score int64, ticks uint64) error {
	if r.runID == 0 {
		return nil
	}
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE runs SET finished_at = now(), final_score = $2, ticks = $3 WHERE id = $1`,
		r.runID, score, int64(ticks),
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}
