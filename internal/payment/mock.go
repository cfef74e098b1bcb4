package payment

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Mock is a deterministic stand-in gateway: every authorize/capture succeeds
// unless a failure is explicitly queued with FailNext. No external service
// needed.
type Mock struct {
	mu       sync.Mutex
	pending  map[string]Authorization
	failNext bool
}

func NewMock() *Mock {
	return &Mock{pending: make(map[string]Authorization)}
}

// FailNext makes the next Capture decline, to exercise failure paths.
func (m *Mock) FailNext() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failNext = true
}

func (m *Mock) Authorize(ctx context.Context, amount float64, method string) (Authorization, error) {
	_ = ctx
	if amount <= 0 {
		return Authorization{}, ErrInvalidAmount
	}

	auth := Authorization{
		OrderRef: "order_" + uuid.NewString(),
		Amount:   amount,
		Method:   method,
	}

	m.mu.Lock()
	m.pending[auth.OrderRef] = auth
	m.mu.Unlock()
	return auth, nil
}

func (m *Mock) Capture(ctx context.Context, orderRef string) (Receipt, error) {
	_ = ctx

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failNext {
		m.failNext = false
		delete(m.pending, orderRef)
		return Receipt{}, ErrDeclined
	}
	if _, ok := m.pending[orderRef]; !ok {
		return Receipt{}, ErrDeclined
	}
	delete(m.pending, orderRef)

	return Receipt{
		PaymentID: "pay_" + uuid.NewString(),
		OrderRef:  orderRef,
	}, nil
}
