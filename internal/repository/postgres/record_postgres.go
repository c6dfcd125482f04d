package postgres

import (
	"context"
	"database/sql"

	"saraban/internal/model"
	"saraban/internal/repository"
)

// RecordPostgres is a PostgreSQL implementation of repository.RecordRepository.
// It uses database/sql with parameterized queries and contains no business
// logic. The attribute bag travels through the model.Attributes
// Valuer/Scanner as a single JSONB column.
type RecordPostgres struct {
	db *sql.DB
}

// NewRecordPostgres creates a new RecordPostgres repository.
func NewRecordPostgres(db *sql.DB) *RecordPostgres {
	return &RecordPostgres{db: db}
}

var _ repository.RecordRepository = (*RecordPostgres)(nil)

// List returns the full category, id descending.
func (r *RecordPostgres) List(ctx context.Context, category string) ([]model.Record, error) {
	const q = `
		SELECT id, category, data, file_path, created_at
		FROM records
		WHERE category = $1
		ORDER BY id DESC
	`
	rows, err := r.db.QueryContext(ctx, q, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Record, 0)
	for rows.Next() {
		var rec model.Record
		if err := rows.Scan(
			&rec.ID,
			&rec.Category,
			&rec.Attributes,
			&rec.FilePath,
			&rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// FindByID fetches a single record scoped by category and id.
func (r *RecordPostgres) FindByID(ctx context.Context, category string, id int64) (*model.Record, error) {
	const q = `
		SELECT id, category, data, file_path, created_at
		FROM records
		WHERE category = $1 AND id = $2
	`
	row := r.db.QueryRowContext(ctx, q, category, id)
	var rec model.Record
	if err := row.Scan(
		&rec.ID,
		&rec.Category,
		&rec.Attributes,
		&rec.FilePath,
		&rec.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Create inserts a new row and returns it with the DB-assigned id.
func (r *RecordPostgres) Create(ctx context.Context, rec *model.Record) (*model.Record, error) {
	const q = `
		INSERT INTO records (category, data, file_path)
		VALUES ($1, $2, $3)
		RETURNING id, category, data, file_path, created_at
	`
	row := r.db.QueryRowContext(ctx, q, rec.Category, rec.Attributes, rec.FilePath)
	var out model.Record
	if err := row.Scan(
		&out.ID,
		&out.Category,
		&out.Attributes,
		&out.FilePath,
		&out.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update overwrites the attribute bag and file path of the (category, id)
// row. The category filter keeps an id from another category untouched.
func (r *RecordPostgres) Update(ctx context.Context, rec *model.Record) (int64, error) {
	const q = `
		UPDATE records
		SET data = $1, file_path = $2
		WHERE category = $3 AND id = $4
	`
	res, err := r.db.ExecContext(ctx, q, rec.Attributes, rec.FilePath, rec.Category, rec.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Delete removes the (category, id) row. A missing row is not an error.
func (r *RecordPostgres) Delete(ctx context.Context, category string, id int64) error {
	const q = `DELETE FROM records WHERE category = $1 AND id = $2`
	res, err := r.db.ExecContext(ctx, q, category, id)
	if err != nil {
		return err
	}
	_, _ = res.RowsAffected()
	return nil
}
