package analytics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/siva790/textile-ecommerce-store/internal/auth"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterAdminRoutes(app *fiber.App) {
	admin := app.Group("/api/v1/admin", auth.RequireAdmin)
	admin.Get("/analytics", h.getReport)
}

func (h *Handler) getReport(c *fiber.Ctx) error {
	w := ParseWindow(c.Query("period"))
	report, err := h.service.Report(c.Context(), w)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not build analytics report"})
	}
	return c.JSON(report)
}
