package catalog

// Product represents a storefront product and maps to the `products` table.
// The core treats the catalog as read-only; stock mutation goes through the
// inventory ledger.
type Product struct {
	ID       int     `json:"productId"`
	Name     string  `json:"productName"`
	Price    float64 `json:"price"`
	Stock    int     `json:"stock"`
	Category string  `json:"category"`
}
