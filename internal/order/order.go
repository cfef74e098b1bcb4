package order

import "time"

// Order is an immutable priced snapshot of a checked-out cart. TotalAmount
// equals the sum of line quantity times unit price, computed once at
// placement; later catalog price changes never alter it.
type Order struct {
	ID              int           `json:"orderId"`
	UserID          int           `json:"userId"`
	Lines           []Line        `json:"lines,omitempty"`
	TotalAmount     float64       `json:"totalAmount"`
	PaymentMethod   string        `json:"paymentMethod"`
	PaymentStatus   PaymentStatus `json:"paymentStatus"`
	ShippingAddress string        `json:"shippingAddress"`
	Phone           string        `json:"phone"`
	Status          Status        `json:"status"`
	CreatedAt       time.Time     `json:"createdAt"`
}

// Line is one ordered item with its unit price frozen at order time.
type Line struct {
	OrderID   int     `json:"orderId"`
	ProductID int     `json:"productId"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

// ReturnRequest records a customer's request to return a delivered order.
type ReturnRequest struct {
	ID          int       `json:"returnId"`
	OrderID     int       `json:"orderId"`
	UserID      int       `json:"userId"`
	Reason      string    `json:"reason"`
	Status      string    `json:"status"`
	RequestedAt time.Time `json:"requestedAt"`
}

// Return request row states.
const (
	ReturnPending  = "pending"
	ReturnApproved = "approved"
	ReturnRejected = "rejected"
)
