package otp

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/siva790/textile-ecommerce-store/internal/auth"
	"go.uber.org/zap"
)

// Handler issues and verifies one-time codes for the authentication layer.
// Delivery (email/SMS) is an external concern; issued codes are only logged
// here.
type Handler struct {
	store Store
	log   *zap.Logger
}

func NewHandler(store Store, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{store: store, log: log}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/otp", h.issue)
	app.Post("/api/v1/otp/verify", h.verify)
}

type otpRequest struct {
	Key string `json:"key"`
}

func (h *Handler) issue(c *fiber.Ctx) error {
	payload := new(otpRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Key == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "key is required"})
	}
	if _, err := auth.UserIDFromCtx(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	code := Generate()
	h.store.Put(payload.Key, code)
	h.log.Info("one-time code issued", zap.String("key", payload.Key))
	return c.SendStatus(fiber.StatusNoContent)
}

type otpVerifyRequest struct {
	Key  string `json:"key"`
	Code string `json:"code"`
}

func (h *Handler) verify(c *fiber.Ctx) error {
	payload := new(otpVerifyRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if _, err := auth.UserIDFromCtx(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	if err := h.store.Verify(payload.Key, payload.Code); err != nil {
		switch {
		case errors.Is(err, ErrNotFound), errors.Is(err, ErrExpired), errors.Is(err, ErrMismatch):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not verify code, please try again"})
		}
	}
	return c.JSON(fiber.Map{"verified": true})
}
