package product

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

var defaultCatalog = map[string][]Product{
	"Electronics": {
		{Name: "Laptop", Price: 1200.0},
		{Name: "Smartphone", Price: 800.0},
		{Name: "Tablet", Price: 500.0},
	},
	"Home Appliances": {
		{Name: "Refrigerator", Price: 1500.0},
		{Name: "Microwave", Price: 200.0},
		{Name: "Washing Machine", Price: 1000.0},
	},
	"Books": {
		{Name: "The Hobbit", Price: 40.0},
		{Name: "Train to Pakistan", Price: 35.0},
		{Name: "Harry Potter and the Deathly Hallows", Price: 55.0},
	},
	"Clothing": {
		{Name: "Shirt", Price: 30.0},
		{Name: "Jeans", Price: 50.0},
		{Name: "Jacket", Price: 100.0},
	},
}

// Seed loads the default catalog on first startup. It only writes when the
// products table is empty, so restarting the service never duplicates rows.
func (s *service) Seed(ctx context.Context) error {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("service: failed to check catalog size before seeding: %w", err)
	}
	if count > 0 {
		return nil
	}

	seeded := 0
	for category, products := range defaultCatalog {
		for _, p := range products {
			p.Category = category
			if err := s.repo.Insert(ctx, p); err != nil {
				return fmt.Errorf("service: failed to seed product %q: %w", p.Name, err)
			}
			seeded++
		}
	}

	log.Info().Int("count", seeded).Msg("Catalog seeded with default products")
	return nil
}
