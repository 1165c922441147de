package checkout

import (
	"github.com/gofrs/uuid"

	"github.com/ecomdemo/shop-service/internal/cart"
)

type Status string

const (
	StatusBuilt     Status = "BUILT"
	StatusPaid      Status = "PAID"
	StatusConfirmed Status = "CONFIRMED"
	StatusFailed    Status = "FAILED"
)

func (s Status) String() string {
	return string(s)
}

var allowedTransitions = map[Status]map[Status]bool{
	StatusBuilt: {
		StatusPaid:   true,
		StatusFailed: true,
	},
	StatusPaid: {
		StatusConfirmed: true,
	},
	StatusConfirmed: {},
	StatusFailed:    {},
}

// Order is a point-in-time snapshot of a user's cart taken at checkout start.
// The lines are copied out of the live cart, so mutating the cart after
// CreateOrder cannot change what gets charged.
type Order struct {
	UserID        int64
	Username      string
	Lines         []cart.Line // sorted by product name for deterministic summaries
	Status        Status
	Total         float64
	PaymentMethod string
	TransactionID uuid.UUID
}
