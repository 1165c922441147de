package payment

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"
)

// Authorization is the gateway's answer for a single charge attempt.
type Authorization struct {
	TransactionID uuid.UUID
	Approved      bool
}

// Gateway authorizes a monetary amount. The checkout workflow treats this as
// a pluggable boundary: which implementation runs is decided by configuration
// in cmd, never inside the workflow itself.
type Gateway interface {
	Authorize(ctx context.Context, amount float64) (Authorization, error)
}

// MockGateway approves every charge. This is the reference behavior of the
// demo; a real gateway implementation would go through an external provider.
type MockGateway struct{}

func NewMockGateway() *MockGateway {
	return &MockGateway{}
}

func (g *MockGateway) Authorize(ctx context.Context, amount float64) (Authorization, error) {
	txnID, err := uuid.NewV4()
	if err != nil {
		return Authorization{}, fmt.Errorf("payment: failed to generate transaction id: %w", err)
	}

	log.Info().Float64("amount", amount).Stringer("transaction_id", txnID).Msg("Processing payment")
	return Authorization{TransactionID: txnID, Approved: true}, nil
}

// DecliningGateway refuses every charge. Used in tests to exercise the
// declined-payment path.
type DecliningGateway struct{}

func NewDecliningGateway() *DecliningGateway {
	return &DecliningGateway{}
}

func (g *DecliningGateway) Authorize(ctx context.Context, amount float64) (Authorization, error) {
	txnID, err := uuid.NewV4()
	if err != nil {
		return Authorization{}, fmt.Errorf("payment: failed to generate transaction id: %w", err)
	}

	log.Warn().Float64("amount", amount).Stringer("transaction_id", txnID).Msg("Declining payment")
	return Authorization{TransactionID: txnID, Approved: false}, nil
}
