package order

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/ecomdemo/shop-service/internal/db"
)

type Repository interface {
	Create(ctx context.Context, rec *Record) error
	ListByUser(ctx context.Context, userID int64) ([]Record, error)
}

type postgresRepository struct {
	db *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{db: pool}
}

func (r *postgresRepository) Create(ctx context.Context, rec *Record) error {
	query := `
		INSERT INTO orders (user_id, total_amount, payment_method, summary)
		VALUES ($1, $2, $3, $4)
		RETURNING order_id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		rec.UserID,
		rec.TotalAmount,
		rec.PaymentMethod,
		rec.Summary,
	).Scan(&rec.OrderID, &rec.CreatedAt)
	if err != nil {
		log.Error().Err(err).Int64("user_id", rec.UserID).Msg("repository: failed to insert order record")
		return fmt.Errorf("repository: failed to insert order record for user %d: %w", rec.UserID, db.ErrStorage)
	}

	return nil
}

// ListByUser returns the user's order records oldest first.
func (r *postgresRepository) ListByUser(ctx context.Context, userID int64) ([]Record, error) {
	query := `
		SELECT order_id, user_id, total_amount, payment_method, summary, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY order_id
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("repository: failed to query order records")
		return nil, fmt.Errorf("repository: failed to query order records for user %d: %w", userID, db.ErrStorage)
	}
	defer rows.Close()

	records := make([]Record, 0)
	for rows.Next() {
		var rec Record
		err := rows.Scan(
			&rec.OrderID,
			&rec.UserID,
			&rec.TotalAmount,
			&rec.PaymentMethod,
			&rec.Summary,
			&rec.CreatedAt,
		)
		if err != nil {
			log.Error().Err(err).Int64("user_id", userID).Msg("repository: failed to scan order record")
			return nil, fmt.Errorf("repository: failed to scan order record for user %d: %w", userID, db.ErrStorage)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("repository: error iterating order records")
		return nil, fmt.Errorf("repository: error iterating order records for user %d: %w", userID, db.ErrStorage)
	}

	return records, nil
}
