package order

import "errors"

var (
	ErrNotFound             = errors.New("order not found")
	ErrEmptyCart            = errors.New("cart is empty, nothing to checkout")
	ErrMissingShippingInfo  = errors.New("shipping address and phone number are required")
	ErrMissingPaymentMethod = errors.New("a payment method is required")
	ErrInvalidTransition    = errors.New("illegal order status transition")
	ErrNotCancellable       = errors.New("this order cannot be cancelled")
	ErrNotReturnable        = errors.New("only delivered orders can be returned")
	ErrMissingReason        = errors.New("return reason is required")
	ErrReturnPending        = errors.New("a return request is already pending for this order")
	ErrNotRestockable       = errors.New("stock can only be restored for cancelled or returned orders")
	ErrAlreadyRestocked     = errors.New("stock was already restored for this order")
	ErrUnknownStatus        = errors.New("unknown order status")
)
