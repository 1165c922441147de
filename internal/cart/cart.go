package cart

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/ecomdemo/shop-service/internal/product"
)

// Line is one cart entry: a product and how many of it. A cart holds at most
// one line per product name.
type Line struct {
	Product  product.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Cart holds the line items for one user's session. All methods are safe for
// concurrent use, though a session is expected to have a single writer.
type Cart struct {
	mu    sync.Mutex
	lines map[string]Line
}

func New() *Cart {
	return &Cart{lines: make(map[string]Line)}
}

// AddItem puts quantity units of p into the cart. If the product is already
// present the quantities add up; a line is never duplicated.
func (c *Cart) AddItem(p product.Product, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("cart: quantity must be positive, got %d", quantity)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	line, ok := c.lines[p.Name]
	if ok {
		line.Quantity += quantity
	} else {
		line = Line{Product: p, Quantity: quantity}
	}
	c.lines[p.Name] = line

	log.Info().Str("product_name", p.Name).Int("quantity", quantity).Msg("Added item to cart")
	return nil
}

// RemoveItem drops the whole line for the product. Removing a product that is
// not in the cart is a no-op.
func (c *Cart) RemoveItem(p product.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.lines[p.Name]; ok {
		delete(c.lines, p.Name)
		log.Info().Str("product_name", p.Name).Msg("Removed item from cart")
	}
}

// Items returns a copy of the current lines keyed by product name. Mutating
// the returned map does not affect the cart.
func (c *Cart) Items() map[string]Line {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make(map[string]Line, len(c.lines))
	for name, line := range c.lines {
		items[name] = line
	}
	return items
}

func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}

// Clear empties the cart. Called after a successful checkout.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = make(map[string]Line)
}
