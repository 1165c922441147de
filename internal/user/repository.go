package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/ecomdemo/shop-service/internal/db"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrDuplicateUser = errors.New("user already exists")
)

type Repository interface {
	Create(ctx context.Context, username, password string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
}

type postgresRepository struct {
	db *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{db: pool}
}

// Create inserts a new user and returns it with the assigned id. The unique
// constraint on username is the authoritative duplicate guard: two concurrent
// registrations for the same name both pass the service-level pre-check, but
// only one insert succeeds here.
func (r *postgresRepository) Create(ctx context.Context, username, password string) (*User, error) {
	query := `
		INSERT INTO users (username, password)
		VALUES ($1, $2)
		RETURNING id
	`

	u := User{Username: username, Password: password}
	err := r.db.QueryRow(ctx, query, username, password).Scan(&u.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, ErrDuplicateUser
		}

		log.Error().Err(err).Str("username", username).Msg("repository: failed to insert user")
		return nil, fmt.Errorf("repository: failed to insert user %q: %w", username, db.ErrStorage)
	}

	return &u, nil
}

func (r *postgresRepository) GetByUsername(ctx context.Context, username string) (*User, error) {
	query := `
		SELECT id, username, password
		FROM users
		WHERE username = $1
	`

	var u User
	err := r.db.QueryRow(ctx, query, username).Scan(&u.ID, &u.Username, &u.Password)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}

		log.Error().Err(err).Str("username", username).Msg("repository: failed to select user by username")
		return nil, fmt.Errorf("repository: failed to select user %q: %w", username, db.ErrStorage)
	}

	return &u, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*User, error) {
	query := `
		SELECT id, username, password
		FROM users
		WHERE id = $1
	`

	var u User
	err := r.db.QueryRow(ctx, query, id).Scan(&u.ID, &u.Username, &u.Password)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}

		log.Error().Err(err).Int64("user_id", id).Msg("repository: failed to select user by id")
		return nil, fmt.Errorf("repository: failed to select user %d: %w", id, db.ErrStorage)
	}

	return &u, nil
}
