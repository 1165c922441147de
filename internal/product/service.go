package product

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Service is the catalog: a read/write view over stored product rows.
type Service interface {
	Add(ctx context.Context, p Product) error
	GetByName(ctx context.Context, name string) (*Product, error)
	ListAll(ctx context.Context) ([]Product, error)
	Seed(ctx context.Context) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Add inserts the product as a new row. There is deliberately no existence
// check: adding the same name twice creates two rows, and GetByName then
// returns the oldest of them.
func (s *service) Add(ctx context.Context, p Product) error {
	if p.Name == "" {
		return errors.New("service: product name cannot be empty")
	}
	if p.Price < 0 {
		return fmt.Errorf("service: product price cannot be negative, got %f", p.Price)
	}

	if err := s.repo.Insert(ctx, p); err != nil {
		return fmt.Errorf("service: failed to add product: %w", err)
	}

	log.Info().Str("product_name", p.Name).Str("category", p.Category).Msg("Product added to catalog")
	return nil
}

func (s *service) GetByName(ctx context.Context, name string) (*Product, error) {
	p, err := s.repo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("service: failed to get product by name: %w", err)
	}

	return p, nil
}

func (s *service) ListAll(ctx context.Context) ([]Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list products: %w", err)
	}

	return products, nil
}
