package cart

import "sync"

// Registry maps a user id to that user's cart. It replaces the process-wide
// shared cart: every user gets exactly one cart instance, created lazily, and
// no request can reach another user's lines.
type Registry struct {
	mu    sync.RWMutex
	carts map[int64]*Cart
}

func NewRegistry() *Registry {
	return &Registry{carts: make(map[int64]*Cart)}
}

// ForUser returns the cart owned by the given user, creating it on first use.
func (r *Registry) ForUser(userID int64) *Cart {
	r.mu.RLock()
	c, ok := r.carts[userID]
	r.mu.RUnlock()
	if ok {
		return c
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.carts[userID]; ok {
		return c
	}
	c = New()
	r.carts[userID] = c
	return c
}
