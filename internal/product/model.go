package product

// Product is a catalog entry. Products are immutable once created and are
// identified by name; the surrogate id stays internal to the database.
type Product struct {
	Name     string  `json:"name" db:"name"`
	Price    float64 `json:"price" db:"price"` // float64 for money, as stored
	Category string  `json:"category" db:"category"`
}
