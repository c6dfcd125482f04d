package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"saraban/internal/model"
	repoMocks "saraban/internal/repository/mocks"
)

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		username   string
		password   string
		setupMocks func(mUsers *repoMocks.MockUserRepository)
		wantErr    error
	}{
		{
			name:     "happy path",
			username: "nok",
			password: "secret",
			setupMocks: func(mUsers *repoMocks.MockUserRepository) {
				mUsers.On("FindByCredentials", ctx, "nok", "secret").
					Return(&model.User{ID: 1, Username: "nok", Fullname: "Nok S."}, nil)
			},
		},
		{
			name:     "mismatch maps to ErrBadCredentials",
			username: "nok",
			password: "wrong",
			setupMocks: func(mUsers *repoMocks.MockUserRepository) {
				mUsers.On("FindByCredentials", ctx, "nok", "wrong").
					Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrBadCredentials,
		},
		{
			name:     "storage failure passes through",
			username: "nok",
			password: "secret",
			setupMocks: func(mUsers *repoMocks.MockUserRepository) {
				mUsers.On("FindByCredentials", ctx, "nok", "secret").
					Return(nil, errors.New("db fail"))
			},
			wantErr: errors.New("db fail"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mUsers := new(repoMocks.MockUserRepository)
			svc := NewAuthService(mUsers)

			tt.setupMocks(mUsers)

			u, err := svc.Login(ctx, tt.username, tt.password)

			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.Nil(t, u)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "Nok S.", u.Fullname)
			}
			mUsers.AssertExpectations(t)
		})
	}
}
