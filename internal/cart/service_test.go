package cart

import (
	"errors"
	"testing"

	"github.com/siva790/textile-ecommerce-store/internal/catalog"
)

func newTestService() (*Service, *InMemoryRepository, *catalog.InMemoryRepository) {
	catRepo := catalog.NewInMemoryRepository([]catalog.Product{
		{ID: 1, Name: "Silk Scarf", Price: 100, Stock: 10, Category: "silk"},
		{ID: 2, Name: "Linen Throw", Price: 50, Stock: 5, Category: "linen"},
	})
	repo := NewInMemoryRepository()
	return NewService(repo, catalog.NewService(catRepo)), repo, catRepo
}

func TestAddLine_Accumulates(t *testing.T) {
	svc, _, _ := newTestService()

	l, err := svc.AddLine(7, 1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", l.Quantity)
	}

	// repeated adds accumulate onto the same line
	l, err = svc.AddLine(7, 1, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", l.Quantity)
	}

	items, _, err := svc.ListItems(7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected a single line, got %d", len(items))
	}
}

func TestAddLine_InvalidQuantity(t *testing.T) {
	svc, _, _ := newTestService()

	for _, qty := range []int{0, -1} {
		if _, err := svc.AddLine(7, 1, qty); !errors.Is(err, ErrInvalidQuantity) {
			t.Fatalf("expected ErrInvalidQuantity for qty %d, got %v", qty, err)
		}
	}
}

func TestAddLine_UnknownProduct(t *testing.T) {
	svc, _, _ := newTestService()

	if _, err := svc.AddLine(7, 99, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAddLine_NoStockCheck(t *testing.T) {
	svc, _, _ := newTestService()

	// optimistic add: quantity above stock is accepted, checkout re-validates
	l, err := svc.AddLine(7, 2, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.Quantity != 50 {
		t.Fatalf("expected quantity 50, got %d", l.Quantity)
	}
}

func TestRemoveLine(t *testing.T) {
	svc, _, _ := newTestService()

	l, _ := svc.AddLine(7, 1, 1)
	if err := svc.RemoveLine(7, l.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// already removed
	if err := svc.RemoveLine(7, l.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRemoveLine_ForeignLine(t *testing.T) {
	svc, _, _ := newTestService()

	l, _ := svc.AddLine(7, 1, 1)
	if err := svc.RemoveLine(8, l.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign line, got %v", err)
	}

	// the owner's line is untouched
	items, _, _ := svc.ListItems(7)
	if len(items) != 1 {
		t.Fatalf("expected line to survive foreign delete, got %d lines", len(items))
	}
}

func TestListItems_LivePricesInsertionOrder(t *testing.T) {
	svc, _, catRepo := newTestService()

	svc.AddLine(7, 2, 1)
	svc.AddLine(7, 1, 2)

	items, total, err := svc.ListItems(7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ProductID != 2 || items[1].ProductID != 1 {
		t.Fatalf("expected insertion order, got %+v", items)
	}
	if total != 250 {
		t.Fatalf("expected advisory total 250, got %v", total)
	}

	// cart prices are live, not snapshots
	catRepo.SetPrice(1, 200)
	_, total, _ = svc.ListItems(7)
	if total != 450 {
		t.Fatalf("expected total 450 after price change, got %v", total)
	}
}

func TestClear(t *testing.T) {
	svc, _, _ := newTestService()

	svc.AddLine(7, 1, 2)
	svc.AddLine(8, 2, 1)

	if err := svc.Clear(7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	items, _, _ := svc.ListItems(7)
	if len(items) != 0 {
		t.Fatalf("expected empty cart, got %d items", len(items))
	}

	// other users' carts are untouched
	items, _, _ = svc.ListItems(8)
	if len(items) != 1 {
		t.Fatalf("expected other cart untouched, got %d items", len(items))
	}
}
