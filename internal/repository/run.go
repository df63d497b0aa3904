package repository

import (
	"context"

	"bluecarbon/internal/model"
)

// RunRepository defines data access for verification runs using SQL queries only.
// No business logic here — strictly persistence operations.
type RunRepository interface {
	// Create inserts a new verification run record.
	// The caller should provide required fields (e.g., ID, CreatedAt) according to the database schema defaults.
	// Returns the stored run (may include values set by the DB).
	Create(ctx context.Context, run *model.VerificationRun) (*model.VerificationRun, error)

	// FindByID returns a verification run by its ID.
	FindByID(ctx context.Context, id string) (*model.VerificationRun, error)

	// List returns a paginated list of runs and total rows count for the given filter.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.VerificationRun], error)

	// Delete removes a run by ID. It returns nil if the row was deleted or did not exist.
	Delete(ctx context.Context, id string) error

	// CountBySource returns the number of stored runs per extraction source.
	CountBySource(ctx context.Context) (map[model.ExtractionSource]int, error)
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
