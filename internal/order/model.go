package order

import "time"

// Record is the persisted result of a successful checkout: the order snapshot
// flattened into a total, a payment method and a human-readable summary.
// Records are created exactly once per checkout and never mutated or deleted.
type Record struct {
	OrderID       int64     `json:"order_id" db:"order_id"`
	UserID        int64     `json:"user_id" db:"user_id"`
	TotalAmount   float64   `json:"total_amount" db:"total_amount"`
	PaymentMethod string    `json:"payment_method" db:"payment_method"`
	Summary       string    `json:"summary" db:"summary"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}
