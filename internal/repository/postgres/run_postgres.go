package postgres

import (
	"context"
	"database/sql"

	"bluecarbon/internal/model"
	"bluecarbon/internal/repository"
)

// RunPostgres is a PostgreSQL implementation of repository.RunRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type RunPostgres struct {
	db *sql.DB
}

// NewRunPostgres creates a new RunPostgres repository.
func NewRunPostgres(db *sql.DB) *RunPostgres {
	return &RunPostgres{db: db}
}

var _ repository.RunRepository = (*RunPostgres)(nil)

const runColumns = `id, filename, storage_path, size, content_type, fingerprint, overall_confidence, source, result, created_at`

func scanRun(row interface{ Scan(...any) error }) (*model.VerificationRun, error) {
	var r model.VerificationRun
	var result []byte
	if err := row.Scan(
		&r.ID,
		&r.Filename,
		&r.StoragePath,
		&r.Size,
		&r.ContentType,
		&r.Fingerprint,
		&r.OverallConfidence,
		&r.Source,
		&result,
		&r.CreatedAt,
	); err != nil {
		return nil, err
	}
	r.Result = result
	return &r, nil
}

// Create inserts a new verification run row and returns the stored record.
func (r *RunPostgres) Create(ctx context.Context, run *model.VerificationRun) (*model.VerificationRun, error) {
	const q = `
		INSERT INTO verification_runs (id, filename, storage_path, size, content_type, fingerprint, overall_confidence, source, result, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + runColumns
	row := r.db.QueryRowContext(ctx, q,
		run.ID,
		run.Filename,
		run.StoragePath,
		run.Size,
		run.ContentType,
		run.Fingerprint,
		run.OverallConfidence,
		run.Source,
		[]byte(run.Result),
		run.CreatedAt,
	)
	return scanRun(row)
}

// FindByID fetches a single verification run by its ID.
func (r *RunPostgres) FindByID(ctx context.Context, id string) (*model.VerificationRun, error) {
	const q = `
		SELECT ` + runColumns + `
		FROM verification_runs
		WHERE id = $1
	`
	return scanRun(r.db.QueryRowContext(ctx, q, id))
}

// List returns runs using LIMIT/OFFSET pagination and a total count.
func (r *RunPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.VerificationRun], error) {
	// Count total rows
	const qCount = `SELECT COUNT(*) FROM verification_runs`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	// Fetch page
	const qList = `
		SELECT ` + runColumns + `
		FROM verification_runs
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.VerificationRun, 0)
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.VerificationRun]{
		Items: items,
		Total: total,
	}, nil
}

// Delete removes a run by ID. It does not return an error if the row does not exist.
func (r *RunPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM verification_runs WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	// Ignore rows affected to keep behavior simple per requirement (no business logic).
	_, _ = res.RowsAffected()
	return nil
}

// CountBySource aggregates stored runs by extraction source.
func (r *RunPostgres) CountBySource(ctx context.Context) (map[model.ExtractionSource]int, error) {
	const q = `SELECT source, COUNT(*) FROM verification_runs GROUP BY source`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[model.ExtractionSource]int)
	for rows.Next() {
		var source model.ExtractionSource
		var n int
		if err := rows.Scan(&source, &n); err != nil {
			return nil, err
		}
		counts[source] = n
	}
	return counts, rows.Err()
}
