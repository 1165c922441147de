package order_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecomdemo/shop-service/internal/order"
)

// testPool connects to the database named by TEST_DATABASE_URL. The schema
// from migrations/ must already be applied. Without the variable the
// integration tests are skipped.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping integration test")
	}

	pool, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return pool
}

// testUser inserts a throwaway user to satisfy the orders foreign key.
func testUser(t *testing.T, pool *pgxpool.Pool) int64 {
	t.Helper()
	ctx := context.Background()

	username := fmt.Sprintf("order-test-%d", time.Now().UnixNano())

	var userID int64
	err := pool.QueryRow(ctx,
		"INSERT INTO users (username, password) VALUES ($1, $2) RETURNING id",
		username, "pw").Scan(&userID)
	require.NoError(t, err)

	t.Cleanup(func() {
		_, _ = pool.Exec(ctx, "DELETE FROM orders WHERE user_id = $1", userID)
		_, _ = pool.Exec(ctx, "DELETE FROM users WHERE id = $1", userID)
	})

	return userID
}

func TestPostgresRepository_CreateAndListByUser(t *testing.T) {
	pool := testPool(t)
	repo := order.NewRepository(pool)
	ctx := context.Background()

	userID := testUser(t, pool)

	first := &order.Record{
		UserID:        userID,
		TotalAmount:   2430.0,
		PaymentMethod: "card",
		Summary:       "2x Laptop at $1200.0 each\n1x Shirt at $30.0 each\nTotal Amount: $2430.00",
	}
	require.NoError(t, repo.Create(ctx, first))
	assert.Greater(t, first.OrderID, int64(0), "store must assign an order id")

	second := &order.Record{
		UserID:        userID,
		TotalAmount:   30.0,
		PaymentMethod: "cash",
		Summary:       "1x Shirt at $30.0 each\nTotal Amount: $30.00",
	}
	require.NoError(t, repo.Create(ctx, second))

	records, err := repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// oldest first
	assert.Equal(t, first.OrderID, records[0].OrderID)
	assert.Equal(t, second.OrderID, records[1].OrderID)
	assert.Equal(t, 2430.0, records[0].TotalAmount)
	assert.Equal(t, "card", records[0].PaymentMethod)
}

func TestPostgresRepository_ListByUser_Empty(t *testing.T) {
	pool := testPool(t)
	repo := order.NewRepository(pool)

	userID := testUser(t, pool)

	records, err := repo.ListByUser(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, records)
}
