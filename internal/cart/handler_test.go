package cart

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/siva790/textile-ecommerce-store/internal/catalog"
)

func makeAppWithCartHandler(h *Handler) *fiber.App {
	app := fiber.New()
	// stand-in for the JWT middleware: an X-User-ID header becomes claims
	app.Use(func(c *fiber.Ctx) error {
		if v := c.Get("X-User-ID"); v != "" {
			if id, err := strconv.Atoi(v); err == nil {
				claims := jwt.MapClaims{"user_id": id}
				c.Locals("user", &jwt.Token{Claims: claims})
			}
		}
		return c.Next()
	})
	h.RegisterProtectedRoutes(app)
	return app
}

func makeCartApp() (*fiber.App, *Service) {
	catRepo := catalog.NewInMemoryRepository([]catalog.Product{
		{ID: 1, Name: "Silk Scarf", Price: 100, Stock: 10},
	})
	svc := NewService(NewInMemoryRepository(), catalog.NewService(catRepo))
	return makeAppWithCartHandler(NewHandler(svc)), svc
}

func TestCartRoutes_Unauthorized(t *testing.T) {
	app, _ := makeCartApp()

	req := httptest.NewRequest("GET", "/api/v1/cart", nil)
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 for unauthenticated GET, got %d", res.StatusCode)
	}

	req = httptest.NewRequest("POST", "/api/v1/cart", strings.NewReader(`{"productId":1,"quantity":1}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 for unauthenticated POST, got %d", res.StatusCode)
	}
}

func TestCartRoutes_AddAndList(t *testing.T) {
	app, _ := makeCartApp()

	req := httptest.NewRequest("POST", "/api/v1/cart", strings.NewReader(`{"productId":1,"quantity":2}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "7")
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		body, _ := io.ReadAll(res.Body)
		t.Fatalf("expected 200, got %d: %s", res.StatusCode, body)
	}

	req = httptest.NewRequest("GET", "/api/v1/cart", nil)
	req.Header.Set("X-User-ID", "7")
	res, err = app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	var payload struct {
		Items []Item  `json:"items"`
		Total float64 `json:"total"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if len(payload.Items) != 1 || payload.Total != 200 {
		t.Fatalf("unexpected cart payload %+v", payload)
	}
}

func TestCartRoutes_BadQuantity(t *testing.T) {
	app, _ := makeCartApp()

	req := httptest.NewRequest("POST", "/api/v1/cart", strings.NewReader(`{"productId":1,"quantity":0}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "7")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for zero quantity, got %d", res.StatusCode)
	}
}

func TestCartRoutes_RemoveMissingLine(t *testing.T) {
	app, _ := makeCartApp()

	req := httptest.NewRequest("DELETE", "/api/v1/cart/41", nil)
	req.Header.Set("X-User-ID", "7")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 for missing line, got %d", res.StatusCode)
	}
}
