package postgres

import (
	"context"
	"database/sql"

	"saraban/internal/model"
	"saraban/internal/repository"
)

// UserPostgres is a PostgreSQL implementation of repository.UserRepository.
type UserPostgres struct {
	db *sql.DB
}

// NewUserPostgres creates a new UserPostgres repository.
func NewUserPostgres(db *sql.DB) *UserPostgres {
	return &UserPostgres{db: db}
}

var _ repository.UserRepository = (*UserPostgres)(nil)

// FindByCredentials matches username and password in the query, mirroring
// the source system's login lookup. sql.ErrNoRows signals a mismatch.
func (r *UserPostgres) FindByCredentials(ctx context.Context, username, password string) (*model.User, error) {
	const q = `
		SELECT id, username, fullname, department
		FROM users
		WHERE username = $1 AND password = $2
	`
	row := r.db.QueryRowContext(ctx, q, username, password)
	var u model.User
	if err := row.Scan(&u.ID, &u.Username, &u.Fullname, &u.Department); err != nil {
		return nil, err
	}
	return &u, nil
}
