package cart

import (
	"errors"
	"sync"
)

var (
	ErrNotFound        = errors.New("cart line not found")
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
)

type Repository interface {
	// AddLine accumulates qty onto the existing (user, product) line or
	// creates a new one. Returns the resulting line.
	AddLine(userID, productID, qty int) (Line, error)
	// RemoveLine deletes a line owned by userID; a missing or foreign line
	// is ErrNotFound with no side effect.
	RemoveLine(userID, lineID int) error
	// ListLines returns the user's lines in insertion order.
	ListLines(userID int) ([]Line, error)
	// Clear removes every line for the user.
	Clear(userID int) error
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu     sync.RWMutex
	lines  []Line
	nextID int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{nextID: 1}
}

func (r *InMemoryRepository) AddLine(userID, productID, qty int) (Line, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, l := range r.lines {
		if l.UserID == userID && l.ProductID == productID {
			r.lines[i].Quantity += qty
			return r.lines[i], nil
		}
	}

	line := Line{ID: r.nextID, UserID: userID, ProductID: productID, Quantity: qty}
	r.nextID++
	r.lines = append(r.lines, line)
	return line, nil
}

func (r *InMemoryRepository) RemoveLine(userID, lineID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, l := range r.lines {
		if l.ID == lineID && l.UserID == userID {
			r.lines = append(r.lines[:i], r.lines[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) ListLines(userID int) ([]Line, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Line, 0)
	for _, l := range r.lines {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) Clear(userID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := make([]Line, 0, len(r.lines))
	for _, l := range r.lines {
		if l.UserID != userID {
			kept = append(kept, l)
		}
	}
	r.lines = kept
	return nil
}
