package payment

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes the gateway to the storefront. The client settles payment
// here before calling checkout; the order service itself never talks to the
// gateway.
type Handler struct {
	gateway Gateway
}

func NewHandler(g Gateway) *Handler {
	return &Handler{gateway: g}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/payment/authorize", h.authorize)
	app.Post("/api/v1/payment/capture", h.capture)
}

type authorizeRequest struct {
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"paymentMethod"`
}

func (h *Handler) authorize(c *fiber.Ctx) error {
	payload := new(authorizeRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	auth, err := h.gateway.Authorize(c.Context(), payload.Amount, payload.PaymentMethod)
	if err != nil {
		if errors.Is(err, ErrInvalidAmount) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid amount"})
		}
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": "payment authorization failed"})
	}
	return c.JSON(auth)
}

type captureRequest struct {
	OrderRef string `json:"orderRef"`
}

func (h *Handler) capture(c *fiber.Ctx) error {
	payload := new(captureRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	receipt, err := h.gateway.Capture(c.Context(), payload.OrderRef)
	if err != nil {
		if errors.Is(err, ErrDeclined) {
			return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{"message": "payment failed"})
		}
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": "payment capture failed"})
	}
	return c.JSON(receipt)
}
