package order

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// Service owns the order lifecycle. All status movement funnels through the
// transition table in status.go; repositories only persist what the service
// already validated (plus a compare-and-swap against concurrent movement).
type Service struct {
	repo Repository
	log  *zap.Logger
}

func NewService(repo Repository, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, log: log}
}

// PlaceOrder turns the user's cart into an immutable priced order. Payment
// is settled by the caller beforehand; paid reports whether it was.
func (s *Service) PlaceOrder(ctx context.Context, userID int, paymentMethod, shippingAddress, phone string, paid bool) (int, error) {
	if strings.TrimSpace(paymentMethod) == "" {
		return 0, ErrMissingPaymentMethod
	}
	if strings.TrimSpace(shippingAddress) == "" || strings.TrimSpace(phone) == "" {
		return 0, ErrMissingShippingInfo
	}

	payStatus := PaymentPending
	if paid {
		payStatus = PaymentPaid
	}

	orderID, err := s.repo.Place(ctx, userID, paymentMethod, payStatus, shippingAddress, phone)
	if err != nil {
		return 0, err
	}

	s.log.Info("order placed",
		zap.Int("order_id", orderID),
		zap.Int("user_id", userID),
		zap.String("payment_method", paymentMethod))
	return orderID, nil
}

// SetStatus applies an admin-triggered transition. Return disposition goes
// through RequestReturn/ResolveReturn, not here.
func (s *Service) SetStatus(ctx context.Context, orderID int, next Status) error {
	switch next {
	case StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled:
	default:
		return ErrInvalidTransition
	}

	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if !CanTransition(o.Status, next) {
		return ErrInvalidTransition
	}
	return s.repo.UpdateStatus(ctx, orderID, o.Status, next)
}

// Cancel moves a processing or confirmed order to cancelled. Stock is not
// restored here; RestoreOnCancel is a separate, deliberate operation.
func (s *Service) Cancel(ctx context.Context, orderID, userID int) error {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if o.UserID != userID {
		return ErrNotFound
	}
	if o.Status != StatusProcessing && o.Status != StatusConfirmed {
		return ErrNotCancellable
	}
	if err := s.repo.UpdateStatus(ctx, orderID, o.Status, StatusCancelled); err != nil {
		return err
	}
	s.log.Info("order cancelled", zap.Int("order_id", orderID), zap.Int("user_id", userID))
	return nil
}

// RequestReturn records a return request for a delivered order.
func (s *Service) RequestReturn(ctx context.Context, orderID, userID int, reason string) error {
	if strings.TrimSpace(reason) == "" {
		return ErrMissingReason
	}

	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if o.UserID != userID {
		return ErrNotFound
	}
	if o.Status != StatusDelivered {
		return ErrNotReturnable
	}
	if err := s.repo.CreateReturn(ctx, orderID, userID, reason); err != nil {
		return err
	}
	s.log.Info("return requested", zap.Int("order_id", orderID), zap.Int("user_id", userID))
	return nil
}

// ResolveReturn finalizes a pending return request: approval moves the order
// to returned, rejection to rejected. Neither touches stock.
func (s *Service) ResolveReturn(ctx context.Context, orderID int, approve bool) error {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if o.Status != StatusReturnRequested {
		return ErrInvalidTransition
	}
	if err := s.repo.ResolveReturn(ctx, orderID, approve); err != nil {
		return err
	}
	s.log.Info("return resolved", zap.Int("order_id", orderID), zap.Bool("approved", approve))
	return nil
}

// RestoreOnCancel puts a cancelled order's quantities back on stock, once.
func (s *Service) RestoreOnCancel(ctx context.Context, orderID int) error {
	return s.restock(ctx, orderID, StatusCancelled)
}

// RestoreOnReturn does the same for an order whose return was approved.
func (s *Service) RestoreOnReturn(ctx context.Context, orderID int) error {
	return s.restock(ctx, orderID, StatusReturned)
}

func (s *Service) restock(ctx context.Context, orderID int, required Status) error {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if o.Status != required {
		return ErrNotRestockable
	}
	if err := s.repo.Restock(ctx, orderID); err != nil {
		return err
	}
	s.log.Info("order restocked", zap.Int("order_id", orderID), zap.String("status", o.Status.String()))
	return nil
}

// GetOrder returns the caller's order with its line snapshots.
func (s *Service) GetOrder(ctx context.Context, orderID, userID int) (Order, error) {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return Order{}, err
	}
	if o.UserID != userID {
		return Order{}, ErrNotFound
	}
	return o, nil
}

func (s *Service) ListOrders(ctx context.Context, userID int) ([]Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) ListAllOrders(ctx context.Context) ([]Order, error) {
	return s.repo.ListAll(ctx)
}

func (s *Service) GetReturn(ctx context.Context, orderID int) (ReturnRequest, error) {
	return s.repo.GetReturn(ctx, orderID)
}
