package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// Service registers and authenticates users.
type Service interface {
	Register(ctx context.Context, username, password string) (*User, error)
	Authenticate(ctx context.Context, username, password string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Register creates a new account. The existence pre-check keeps the common
// case fast, but the real duplicate guard is the unique constraint inside
// Repository.Create — the two calls are not atomic.
func (s *service) Register(ctx context.Context, username, password string) (*User, error) {
	if username == "" || password == "" {
		return nil, errors.New("service: username and password are required")
	}

	_, err := s.repo.GetByUsername(ctx, username)
	if err == nil {
		return nil, ErrDuplicateUser
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("service: failed to check existing user: %w", err)
	}

	u, err := s.repo.Create(ctx, username, password)
	if err != nil {
		if errors.Is(err, ErrDuplicateUser) {
			return nil, ErrDuplicateUser
		}
		return nil, fmt.Errorf("service: failed to register user: %w", err)
	}

	log.Info().Str("username", username).Int64("user_id", u.ID).Msg("User registered")
	return u, nil
}

// Authenticate compares the password verbatim against the stored value.
// Plaintext storage and comparison is a documented weakness of this system,
// kept as specified.
func (s *service) Authenticate(ctx context.Context, username, password string) (*User, error) {
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("service: failed to fetch user for authentication: %w", err)
	}

	if u.Password != password {
		return nil, ErrInvalidCredentials
	}

	log.Info().Str("username", username).Msg("User logged in")
	return u, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("service: failed to fetch user by id: %w", err)
	}

	return u, nil
}
