package checkout

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/ecomdemo/shop-service/internal/cart"
	"github.com/ecomdemo/shop-service/internal/order"
	"github.com/ecomdemo/shop-service/internal/payment"
	"github.com/ecomdemo/shop-service/internal/user"
)

var (
	ErrEmptyCart               = errors.New("cart is empty")
	ErrPaymentDeclined         = errors.New("payment declined")
	ErrInvalidStatusTransition = errors.New("invalid order status transition")
)

// Service runs the checkout workflow: cart snapshot, payment authorization,
// order record persistence, cart reset.
type Service interface {
	CreateOrder(ctx context.Context, u *user.User) (*Order, error)
	ProcessPayment(ctx context.Context, ord *Order, paymentMethod string) (bool, float64, error)
	ConfirmOrder(ctx context.Context, ord *Order) (*order.Record, error)
	Checkout(ctx context.Context, u *user.User, paymentMethod string) (*order.Record, error)
	OrderHistory(ctx context.Context, userID int64) ([]order.Record, error)
}

type service struct {
	carts   *cart.Registry
	gateway payment.Gateway
	orders  order.Repository
}

func NewService(carts *cart.Registry, gateway payment.Gateway, orders order.Repository) Service {
	return &service{
		carts:   carts,
		gateway: gateway,
		orders:  orders,
	}
}

// CreateOrder snapshots the user's current cart into a new order. The cart
// must be non-empty.
func (s *service) CreateOrder(ctx context.Context, u *user.User) (*Order, error) {
	items := s.carts.ForUser(u.ID).Items()
	if len(items) == 0 {
		log.Warn().Str("username", u.Username).Msg("service: attempt to create order with empty cart")
		return nil, ErrEmptyCart
	}

	lines := make([]cart.Line, 0, len(items))
	for _, line := range items {
		lines = append(lines, line)
	}
	sort.Slice(lines, func(i, j int) bool {
		return lines[i].Product.Name < lines[j].Product.Name
	})

	ord := &Order{
		UserID:   u.ID,
		Username: u.Username,
		Lines:    lines,
		Status:   StatusBuilt,
	}

	log.Info().Str("username", u.Username).Int("line_count", len(lines)).Msg("Order created")
	return ord, nil
}

// ProcessPayment computes the order total from the snapshot and asks the
// gateway to authorize it. The live cart is not touched here: a declined
// payment leaves it intact for another attempt.
func (s *service) ProcessPayment(ctx context.Context, ord *Order, paymentMethod string) (bool, float64, error) {
	total := 0.0
	for _, line := range ord.Lines {
		total += line.Product.Price * float64(line.Quantity)
	}

	auth, err := s.gateway.Authorize(ctx, total)
	if err != nil {
		return false, 0, fmt.Errorf("service: failed to authorize payment: %w", err)
	}

	ord.Total = total
	ord.PaymentMethod = paymentMethod
	ord.TransactionID = auth.TransactionID

	if !auth.Approved {
		if err := s.transition(ord, StatusFailed); err != nil {
			return false, 0, err
		}
		log.Warn().Str("username", ord.Username).Float64("total", total).Msg("Payment declined")
		return false, total, nil
	}

	if err := s.transition(ord, StatusPaid); err != nil {
		return false, 0, err
	}

	log.Info().Str("username", ord.Username).Float64("total", total).Stringer("transaction_id", auth.TransactionID).Msg("Payment approved")
	return true, total, nil
}

// ConfirmOrder persists the order record and clears the user's cart. Only
// valid once the order has been paid.
func (s *service) ConfirmOrder(ctx context.Context, ord *Order) (*order.Record, error) {
	if err := s.transition(ord, StatusConfirmed); err != nil {
		return nil, err
	}

	rec := &order.Record{
		UserID:        ord.UserID,
		TotalAmount:   ord.Total,
		PaymentMethod: ord.PaymentMethod,
		Summary:       renderSummary(ord),
	}

	if err := s.orders.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("service: failed to persist order record: %w", err)
	}

	s.carts.ForUser(ord.UserID).Clear()

	log.Info().Str("username", ord.Username).Int64("order_id", rec.OrderID).Float64("total", rec.TotalAmount).Msg("Order confirmed")
	return rec, nil
}

// Checkout runs the whole workflow for one submission: snapshot, payment,
// confirmation. A declined payment abandons the order and surfaces as
// ErrPaymentDeclined; the caller starts over from a fresh CreateOrder.
func (s *service) Checkout(ctx context.Context, u *user.User, paymentMethod string) (*order.Record, error) {
	ord, err := s.CreateOrder(ctx, u)
	if err != nil {
		return nil, err
	}

	approved, _, err := s.ProcessPayment(ctx, ord, paymentMethod)
	if err != nil {
		return nil, err
	}
	if !approved {
		return nil, ErrPaymentDeclined
	}

	return s.ConfirmOrder(ctx, ord)
}

func (s *service) OrderHistory(ctx context.Context, userID int64) ([]order.Record, error) {
	records, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to fetch order history: %w", err)
	}

	return records, nil
}

func (s *service) transition(ord *Order, next Status) error {
	if !allowedTransitions[ord.Status][next] {
		log.Warn().
			Str("username", ord.Username).
			Stringer("current_status", ord.Status).
			Stringer("new_status", next).
			Msg("service: invalid status transition attempt")
		return fmt.Errorf("service: cannot go from %s to %s: %w", ord.Status, next, ErrInvalidStatusTransition)
	}

	ord.Status = next
	return nil
}

// renderSummary produces the human-readable order text, one line per cart
// line plus the total:
//
//	2x Laptop at $1200.0 each
//	1x Shirt at $30.0 each
//	Total Amount: $2430.00
func renderSummary(ord *Order) string {
	var b strings.Builder
	for _, line := range ord.Lines {
		fmt.Fprintf(&b, "%dx %s at $%s each\n", line.Quantity, line.Product.Name, formatPrice(line.Product.Price))
	}
	fmt.Fprintf(&b, "Total Amount: $%.2f", ord.Total)
	return b.String()
}

// formatPrice prints a price with the minimal number of digits but always at
// least one decimal place, so 1200 renders as "1200.0" and 35.5 as "35.5".
func formatPrice(p float64) string {
	s := strconv.FormatFloat(p, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
