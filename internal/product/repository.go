package product

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/ecomdemo/shop-service/internal/db"
)

var ErrProductNotFound = errors.New("product not found")

type Repository interface {
	Insert(ctx context.Context, p Product) error
	GetByName(ctx context.Context, name string) (*Product, error)
	List(ctx context.Context) ([]Product, error)
	Count(ctx context.Context) (int64, error)
}

type postgresRepository struct {
	db *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{db: pool}
}

func (r *postgresRepository) Insert(ctx context.Context, p Product) error {
	query := `
		INSERT INTO products (name, price, category)
		VALUES ($1, $2, $3)
	`
	_, err := r.db.Exec(ctx, query, p.Name, p.Price, p.Category)
	if err != nil {
		log.Error().Err(err).Str("product_name", p.Name).Msg("repository: failed to insert product")
		return fmt.Errorf("repository: failed to insert product %q: %w", p.Name, db.ErrStorage)
	}

	return nil
}

// GetByName returns the first stored row with the given name. The catalog
// does not enforce name uniqueness, so with duplicates the oldest row wins.
func (r *postgresRepository) GetByName(ctx context.Context, name string) (*Product, error) {
	query := `
		SELECT name, price, category
		FROM products
		WHERE name = $1
		ORDER BY id
		LIMIT 1
	`

	var p Product
	err := r.db.QueryRow(ctx, query, name).Scan(&p.Name, &p.Price, &p.Category)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}

		log.Error().Err(err).Str("product_name", name).Msg("repository: failed to select product by name")
		return nil, fmt.Errorf("repository: failed to select product %q: %w", name, db.ErrStorage)
	}

	return &p, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]Product, error) {
	query := `
		SELECT name, price, category
		FROM products
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		log.Error().Err(err).Msg("repository: failed to query products")
		return nil, fmt.Errorf("repository: failed to query products: %w", db.ErrStorage)
	}
	defer rows.Close()

	products := make([]Product, 0)
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.Name, &p.Price, &p.Category); err != nil {
			log.Error().Err(err).Msg("repository: failed to scan product")
			return nil, fmt.Errorf("repository: failed to scan product: %w", db.ErrStorage)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		log.Error().Err(err).Msg("repository: error iterating products")
		return nil, fmt.Errorf("repository: error iterating products: %w", db.ErrStorage)
	}

	return products, nil
}

func (r *postgresRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&count)
	if err != nil {
		log.Error().Err(err).Msg("repository: failed to count products")
		return 0, fmt.Errorf("repository: failed to count products: %w", db.ErrStorage)
	}

	return count, nil
}
