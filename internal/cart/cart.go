package cart

// Line is one persisted cart row. Quantity accumulates when the same
// product is added again; prices are never stored here.
type Line struct {
	ID        int `json:"lineId"`
	UserID    int `json:"userId"`
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

// Item is a cart line joined with live catalog data for display. Subtotal
// and the cart total are advisory; the binding price is computed at checkout.
type Item struct {
	LineID      int     `json:"lineId"`
	ProductID   int     `json:"productId"`
	ProductName string  `json:"productName"`
	UnitPrice   float64 `json:"unitPrice"`
	Quantity    int     `json:"quantity"`
	Subtotal    float64 `json:"subtotal"`
}
