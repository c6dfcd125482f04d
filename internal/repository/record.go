package repository

import (
	"context"

	"saraban/internal/model"
)

// RecordRepository defines category-scoped data access for registry records
// using SQL queries only. No business logic here — strictly persistence.
// Every operation taking an id filters by category AND id together, so a
// cross-category id collision can never leak a record into the wrong view.
type RecordRepository interface {
	// List returns every record of the category, newest first (id
	// descending). No pagination: the registry views always render the
	// full category.
	List(ctx context.Context, category string) ([]model.Record, error)

	// FindByID returns a single record scoped by category and id.
	// Returns sql.ErrNoRows when the pair does not exist.
	FindByID(ctx context.Context, category string, id int64) (*model.Record, error)

	// Create inserts a new record and returns it with the DB-assigned id.
	Create(ctx context.Context, rec *model.Record) (*model.Record, error)

	// Update overwrites the attribute bag and file path of the
	// (category, id) row wholesale. Returns the number of rows affected
	// so the caller can distinguish a missing row.
	Update(ctx context.Context, rec *model.Record) (int64, error)

	// Delete removes the (category, id) row. Returns nil whether or not
	// the row existed.
	Delete(ctx context.Context, category string, id int64) error
}
