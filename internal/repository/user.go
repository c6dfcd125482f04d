package repository

import (
	"context"

	"saraban/internal/model"
)

// UserRepository defines data access for staff accounts.
type UserRepository interface {
	// FindByCredentials returns the user matching the username/password
	// pair, or sql.ErrNoRows on mismatch. The credential compare happens
	// in the query, as the source system does it.
	FindByCredentials(ctx context.Context, username, password string) (*model.User, error)
}
