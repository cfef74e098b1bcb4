package order

import (
	"context"
	"sync"
	"time"

	"github.com/siva790/textile-ecommerce-store/internal/cart"
	"github.com/siva790/textile-ecommerce-store/internal/catalog"
	"github.com/siva790/textile-ecommerce-store/internal/inventory"
	"github.com/siva790/textile-ecommerce-store/internal/pricing"
)

// Repository defines persistence for orders, order lines and return
// requests. Place is the atomic unit of checkout: price read, stock
// decrement, order+line creation and cart clearing commit or roll back
// together.
type Repository interface {
	Place(ctx context.Context, userID int, paymentMethod string, paymentStatus PaymentStatus, shippingAddress, phone string) (int, error)
	GetByID(ctx context.Context, orderID int) (Order, error)
	ListByUser(ctx context.Context, userID int) ([]Order, error)
	ListAll(ctx context.Context) ([]Order, error)
	// UpdateStatus moves orderID from -> to with a compare-and-swap on the
	// current status; a concurrent change surfaces as ErrInvalidTransition.
	UpdateStatus(ctx context.Context, orderID int, from, to Status) error
	// CreateReturn records a pending return request and flips the order to
	// return_requested in one unit.
	CreateReturn(ctx context.Context, orderID, userID int, reason string) error
	// ResolveReturn finalizes a return_requested order to returned or
	// rejected and marks the request row accordingly.
	ResolveReturn(ctx context.Context, orderID int, approve bool) error
	GetReturn(ctx context.Context, orderID int) (ReturnRequest, error)
	// Restock restores the order's line quantities to product stock, at
	// most once per order (ErrAlreadyRestocked afterwards).
	Restock(ctx context.Context, orderID int) error
}

// InMemoryRepository backs service and scenario tests. It wires the
// in-memory cart and catalog so a placement exercises the same read-price /
// decrement / snapshot / clear sequence as the SQL implementation.
type InMemoryRepository struct {
	mu        sync.Mutex
	Catalog   *catalog.InMemoryRepository
	Cart      *cart.InMemoryRepository
	orders    map[int]*Order
	returns   map[int]*ReturnRequest
	restocked map[int]bool
	nextID    int
	nextRetID int
}

func NewInMemoryRepository(cat *catalog.InMemoryRepository, crt *cart.InMemoryRepository) *InMemoryRepository {
	return &InMemoryRepository{
		Catalog:   cat,
		Cart:      crt,
		orders:    make(map[int]*Order),
		returns:   make(map[int]*ReturnRequest),
		restocked: make(map[int]bool),
		nextID:    1,
		nextRetID: 1,
	}
}

func (r *InMemoryRepository) Place(ctx context.Context, userID int, paymentMethod string, paymentStatus PaymentStatus, shippingAddress, phone string) (int, error) {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	lines, err := r.Cart.ListLines(userID)
	if err != nil {
		return 0, err
	}
	if len(lines) == 0 {
		return 0, ErrEmptyCart
	}

	orderLines := make([]Line, 0, len(lines))
	priceLines := make([]pricing.Line, 0, len(lines))
	for _, cl := range lines {
		p, err := r.Catalog.GetByID(cl.ProductID)
		if err != nil {
			return 0, err
		}
		if p.Stock < cl.Quantity {
			return 0, inventory.ErrInsufficientStock
		}
		orderLines = append(orderLines, Line{ProductID: cl.ProductID, Quantity: cl.Quantity, UnitPrice: p.Price})
		priceLines = append(priceLines, pricing.Line{UnitPrice: p.Price, Quantity: cl.Quantity})
	}

	// all lines have stock; apply the decrements and the snapshot together
	for _, ol := range orderLines {
		p, _ := r.Catalog.GetByID(ol.ProductID)
		r.Catalog.SetStock(ol.ProductID, p.Stock-ol.Quantity)
	}

	id := r.nextID
	r.nextID++
	for i := range orderLines {
		orderLines[i].OrderID = id
	}
	r.orders[id] = &Order{
		ID:              id,
		UserID:          userID,
		Lines:           orderLines,
		TotalAmount:     pricing.Total(priceLines),
		PaymentMethod:   paymentMethod,
		PaymentStatus:   paymentStatus,
		ShippingAddress: shippingAddress,
		Phone:           phone,
		Status:          StatusProcessing,
		CreatedAt:       time.Now().UTC(),
	}

	if err := r.Cart.Clear(userID); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, orderID int) (Order, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[orderID]
	if !ok {
		return Order{}, ErrNotFound
	}
	return cloneOrder(o), nil
}

func (r *InMemoryRepository) ListByUser(ctx context.Context, userID int) ([]Order, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Order, 0)
	for id := 1; id < r.nextID; id++ {
		if o, ok := r.orders[id]; ok && o.UserID == userID {
			out = append(out, cloneOrder(o))
		}
	}
	return out, nil
}

func (r *InMemoryRepository) ListAll(ctx context.Context) ([]Order, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Order, 0, len(r.orders))
	for id := 1; id < r.nextID; id++ {
		if o, ok := r.orders[id]; ok {
			out = append(out, cloneOrder(o))
		}
	}
	return out, nil
}

func (r *InMemoryRepository) UpdateStatus(ctx context.Context, orderID int, from, to Status) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[orderID]
	if !ok {
		return ErrNotFound
	}
	if o.Status != from {
		return ErrInvalidTransition
	}
	o.Status = to
	return nil
}

func (r *InMemoryRepository) CreateReturn(ctx context.Context, orderID, userID int, reason string) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[orderID]
	if !ok {
		return ErrNotFound
	}
	if req, ok := r.returns[orderID]; ok && req.Status == ReturnPending {
		return ErrReturnPending
	}
	if o.Status != StatusDelivered {
		return ErrInvalidTransition
	}
	o.Status = StatusReturnRequested
	r.returns[orderID] = &ReturnRequest{
		ID:          r.nextRetID,
		OrderID:     orderID,
		UserID:      userID,
		Reason:      reason,
		Status:      ReturnPending,
		RequestedAt: time.Now().UTC(),
	}
	r.nextRetID++
	return nil
}

func (r *InMemoryRepository) ResolveReturn(ctx context.Context, orderID int, approve bool) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[orderID]
	if !ok {
		return ErrNotFound
	}
	req, ok := r.returns[orderID]
	if !ok || o.Status != StatusReturnRequested {
		return ErrInvalidTransition
	}
	if approve {
		o.Status = StatusReturned
		req.Status = ReturnApproved
	} else {
		o.Status = StatusRejected
		req.Status = ReturnRejected
	}
	return nil
}

func (r *InMemoryRepository) GetReturn(ctx context.Context, orderID int) (ReturnRequest, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	req, ok := r.returns[orderID]
	if !ok {
		return ReturnRequest{}, ErrNotFound
	}
	return *req, nil
}

func (r *InMemoryRepository) Restock(ctx context.Context, orderID int) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[orderID]
	if !ok {
		return ErrNotFound
	}
	if r.restocked[orderID] {
		return ErrAlreadyRestocked
	}
	for _, l := range o.Lines {
		p, err := r.Catalog.GetByID(l.ProductID)
		if err != nil {
			return err
		}
		r.Catalog.SetStock(l.ProductID, p.Stock+l.Quantity)
	}
	r.restocked[orderID] = true
	return nil
}

func cloneOrder(o *Order) Order {
	out := *o
	out.Lines = make([]Line, len(o.Lines))
	copy(out.Lines, o.Lines)
	return out
}
