package service

import (
	"context"
	"database/sql"
	"errors"

	"saraban/internal/model"
	"saraban/internal/repository"
)

// ErrBadCredentials signals a username/password mismatch, reported
// distinctly (401) from every other failure.
var ErrBadCredentials = errors.New("invalid username or password")

// AuthService checks staff credentials. No sessions or tokens are issued;
// the caller keeps the returned user record as its session context.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*model.User, error)
}

type authService struct {
	users repository.UserRepository
}

// NewAuthService constructs an AuthService.
func NewAuthService(users repository.UserRepository) AuthService {
	return &authService{users: users}
}

func (s *authService) Login(ctx context.Context, username, password string) (*model.User, error) {
	u, err := s.users.FindByCredentials(ctx, username, password)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBadCredentials
		}
		return nil, err
	}
	return u, nil
}
