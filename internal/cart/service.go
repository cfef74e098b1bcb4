package cart

import (
	"github.com/siva790/textile-ecommerce-store/internal/catalog"
)

// Service orchestrates cart operations. Adds are optimistic: stock is not
// checked here, only at checkout.
type Service struct {
	repo    Repository
	catalog catalog.ServiceInterface
}

func NewService(repo Repository, cat catalog.ServiceInterface) *Service {
	return &Service{repo: repo, catalog: cat}
}

func (s *Service) AddLine(userID, productID, qty int) (Line, error) {
	if qty < 1 {
		return Line{}, ErrInvalidQuantity
	}
	// the product must exist, but its stock is only re-validated at checkout
	if _, err := s.catalog.GetByID(productID); err != nil {
		return Line{}, ErrNotFound
	}
	return s.repo.AddLine(userID, productID, qty)
}

func (s *Service) RemoveLine(userID, lineID int) error {
	return s.repo.RemoveLine(userID, lineID)
}

// ListItems returns the user's cart joined with live catalog prices, in
// insertion order, plus an advisory total.
func (s *Service) ListItems(userID int) ([]Item, float64, error) {
	lines, err := s.repo.ListLines(userID)
	if err != nil {
		return nil, 0, err
	}
	if len(lines) == 0 {
		return []Item{}, 0, nil
	}

	ids := make([]int, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.ProductID)
	}
	products, err := s.catalog.ListByIDs(ids)
	if err != nil {
		return nil, 0, err
	}
	byID := make(map[int]catalog.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	items := make([]Item, 0, len(lines))
	total := 0.0
	for _, l := range lines {
		p, ok := byID[l.ProductID]
		if !ok {
			// product vanished from the catalog; skip for display
			continue
		}
		sub := p.Price * float64(l.Quantity)
		items = append(items, Item{
			LineID:      l.ID,
			ProductID:   l.ProductID,
			ProductName: p.Name,
			UnitPrice:   p.Price,
			Quantity:    l.Quantity,
			Subtotal:    sub,
		})
		total += sub
	}
	return items, total, nil
}

func (s *Service) Clear(userID int) error {
	return s.repo.Clear(userID)
}
