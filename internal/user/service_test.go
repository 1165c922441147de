package user_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecomdemo/shop-service/internal/user"
)

type mockRepository struct {
	createFunc        func(ctx context.Context, username, password string) (*user.User, error)
	getByUsernameFunc func(ctx context.Context, username string) (*user.User, error)
	getByIDFunc       func(ctx context.Context, id int64) (*user.User, error)
}

func (m *mockRepository) Create(ctx context.Context, username, password string) (*user.User, error) {
	return m.createFunc(ctx, username, password)
}

func (m *mockRepository) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	return m.getByUsernameFunc(ctx, username)
}

func (m *mockRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	return m.getByIDFunc(ctx, id)
}

func TestService_Register(t *testing.T) {
	tests := []struct {
		name              string
		username          string
		password          string
		getByUsernameFunc func(ctx context.Context, username string) (*user.User, error)
		createFunc        func(ctx context.Context, username, password string) (*user.User, error)
		wantErrIs         error
		wantID            int64
	}{
		{
			name:     "new_user",
			username: "alice",
			password: "pw1",
			getByUsernameFunc: func(ctx context.Context, username string) (*user.User, error) {
				return nil, user.ErrUserNotFound
			},
			createFunc: func(ctx context.Context, username, password string) (*user.User, error) {
				return &user.User{ID: 1, Username: username, Password: password}, nil
			},
			wantID: 1,
		},
		{
			name:     "duplicate_username",
			username: "alice",
			password: "pw1",
			getByUsernameFunc: func(ctx context.Context, username string) (*user.User, error) {
				return &user.User{ID: 1, Username: username, Password: "other"}, nil
			},
			wantErrIs: user.ErrDuplicateUser,
		},
		{
			name:     "duplicate_detected_by_constraint",
			username: "alice",
			password: "pw1",
			getByUsernameFunc: func(ctx context.Context, username string) (*user.User, error) {
				// the pre-check raced with a concurrent registration
				return nil, user.ErrUserNotFound
			},
			createFunc: func(ctx context.Context, username, password string) (*user.User, error) {
				return nil, user.ErrDuplicateUser
			},
			wantErrIs: user.ErrDuplicateUser,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockRepository{
				getByUsernameFunc: tt.getByUsernameFunc,
				createFunc:        tt.createFunc,
			}

			svc := user.NewService(repo)
			u, err := svc.Register(context.Background(), tt.username, tt.password)
			if tt.wantErrIs != nil {
				assert.True(t, errors.Is(err, tt.wantErrIs))
				assert.Nil(t, u)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantID, u.ID)
			assert.Equal(t, tt.username, u.Username)
		})
	}
}

func TestService_Authenticate(t *testing.T) {
	stored := &user.User{ID: 7, Username: "alice", Password: "pw1"}

	tests := []struct {
		name              string
		username          string
		password          string
		getByUsernameFunc func(ctx context.Context, username string) (*user.User, error)
		wantErrIs         error
	}{
		{
			name:     "correct_credentials",
			username: "alice",
			password: "pw1",
			getByUsernameFunc: func(ctx context.Context, username string) (*user.User, error) {
				return stored, nil
			},
		},
		{
			name:     "wrong_password",
			username: "alice",
			password: "nope",
			getByUsernameFunc: func(ctx context.Context, username string) (*user.User, error) {
				return stored, nil
			},
			wantErrIs: user.ErrInvalidCredentials,
		},
		{
			name:     "unknown_username",
			username: "bob",
			password: "pw1",
			getByUsernameFunc: func(ctx context.Context, username string) (*user.User, error) {
				return nil, user.ErrUserNotFound
			},
			wantErrIs: user.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockRepository{getByUsernameFunc: tt.getByUsernameFunc}

			svc := user.NewService(repo)
			u, err := svc.Authenticate(context.Background(), tt.username, tt.password)
			if tt.wantErrIs != nil {
				assert.True(t, errors.Is(err, tt.wantErrIs))
				assert.Nil(t, u)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, stored.ID, u.ID, "authenticated id must match the stored record")
		})
	}
}
