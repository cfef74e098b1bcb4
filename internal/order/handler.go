package order

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/siva790/textile-ecommerce-store/internal/auth"
	"github.com/siva790/textile-ecommerce-store/internal/inventory"
)

// Handler exposes the order lifecycle over HTTP and maps domain errors to
// status codes and human-readable messages.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/checkout", h.checkout)
	app.Get("/api/v1/orders", h.listOrders)
	app.Get("/api/v1/orders/:id", h.getOrder)
	app.Post("/api/v1/orders/:id/cancel", h.cancelOrder)
	app.Post("/api/v1/orders/:id/return", h.requestReturn)
}

func (h *Handler) RegisterAdminRoutes(app *fiber.App) {
	admin := app.Group("/api/v1/admin", auth.RequireAdmin)
	admin.Get("/orders", h.listAllOrders)
	admin.Patch("/orders/:id/status", h.updateStatus)
	admin.Post("/orders/:id/return/resolve", h.resolveReturn)
	admin.Post("/orders/:id/restock", h.restock)
}

type checkoutRequest struct {
	PaymentMethod   string `json:"paymentMethod"`
	ShippingAddress string `json:"shippingAddress"`
	Phone           string `json:"phone"`
	PaymentRef      string `json:"paymentRef"`
}

func (h *Handler) checkout(c *fiber.Ctx) error {
	payload := new(checkoutRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	orderID, err := h.service.PlaceOrder(c.Context(), userID,
		payload.PaymentMethod, payload.ShippingAddress, payload.Phone, payload.PaymentRef != "")
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyCart):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "your cart is empty"})
		case errors.Is(err, ErrMissingPaymentMethod):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "please select a payment method"})
		case errors.Is(err, ErrMissingShippingInfo):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "please provide a shipping address and phone number"})
		case errors.Is(err, inventory.ErrInsufficientStock):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "one or more items are out of stock"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not place your order, please try again"})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"orderId": orderID})
}

func (h *Handler) listOrders(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	orders, err := h.service.ListOrders(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not load orders, please try again"})
	}
	return c.JSON(orders)
}

func (h *Handler) getOrder(c *fiber.Ctx) error {
	orderID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid order id"})
	}
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	o, err := h.service.GetOrder(c.Context(), orderID, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not load order, please try again"})
	}
	return c.JSON(o)
}

func (h *Handler) cancelOrder(c *fiber.Ctx) error {
	orderID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid order id"})
	}
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	if err := h.service.Cancel(c.Context(), orderID, userID); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
		case errors.Is(err, ErrNotCancellable):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "this order cannot be cancelled"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not cancel order, please try again"})
		}
	}
	return c.JSON(fiber.Map{"success": true})
}

type returnRequestBody struct {
	Reason string `json:"reason"`
}

func (h *Handler) requestReturn(c *fiber.Ctx) error {
	orderID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid order id"})
	}
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(returnRequestBody)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if err := h.service.RequestReturn(c.Context(), orderID, userID, payload.Reason); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
		case errors.Is(err, ErrMissingReason):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "return reason is required"})
		case errors.Is(err, ErrNotReturnable):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "only delivered orders can be returned"})
		case errors.Is(err, ErrReturnPending):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "a return request is already pending for this order"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not request return, please try again"})
		}
	}
	return c.JSON(fiber.Map{"success": true})
}

func (h *Handler) listAllOrders(c *fiber.Ctx) error {
	orders, err := h.service.ListAllOrders(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not load orders, please try again"})
	}
	return c.JSON(orders)
}

type statusUpdateRequest struct {
	Status string `json:"status"`
}

func (h *Handler) updateStatus(c *fiber.Ctx) error {
	orderID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid order id"})
	}

	payload := new(statusUpdateRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	next, err := ParseStatus(payload.Status)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "unknown order status"})
	}

	if err := h.service.SetStatus(c.Context(), orderID, next); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
		case errors.Is(err, ErrInvalidTransition):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "illegal order status transition"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not update status, please try again"})
		}
	}
	return c.JSON(fiber.Map{"success": true})
}

type resolveReturnRequest struct {
	Approve bool `json:"approve"`
}

func (h *Handler) resolveReturn(c *fiber.Ctx) error {
	orderID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid order id"})
	}

	payload := new(resolveReturnRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if err := h.service.ResolveReturn(c.Context(), orderID, payload.Approve); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
		case errors.Is(err, ErrInvalidTransition):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "no pending return request for this order"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not resolve return, please try again"})
		}
	}
	return c.JSON(fiber.Map{"success": true})
}

func (h *Handler) restock(c *fiber.Ctx) error {
	orderID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid order id"})
	}

	o, err := h.service.repo.GetByID(c.Context(), orderID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not restock order, please try again"})
	}

	var restockErr error
	switch o.Status {
	case StatusCancelled:
		restockErr = h.service.RestoreOnCancel(c.Context(), orderID)
	case StatusReturned:
		restockErr = h.service.RestoreOnReturn(c.Context(), orderID)
	default:
		restockErr = ErrNotRestockable
	}
	if restockErr != nil {
		switch {
		case errors.Is(restockErr, ErrNotRestockable):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "stock can only be restored for cancelled or returned orders"})
		case errors.Is(restockErr, ErrAlreadyRestocked):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "stock was already restored for this order"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not restock order, please try again"})
		}
	}
	return c.JSON(fiber.Map{"success": true})
}
