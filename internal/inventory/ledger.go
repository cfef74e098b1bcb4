// Package inventory is the stock-adjustment authority. Decrements happen
// inside the order-placement transaction; restores are explicit follow-on
// operations for cancelled or returned orders.
package inventory

import (
	"context"
	"database/sql"
	"errors"
)

var (
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Line is a (product, quantity) stock adjustment.
type Line struct {
	ProductID int
	Quantity  int
}

// Execer is satisfied by both *sql.DB and *sql.Tx so the ledger can run
// inside the caller's transaction.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type Ledger struct{}

func NewLedger() *Ledger {
	return &Ledger{}
}

const (
	decrementStockQuery = `UPDATE products SET stock = stock - $1 WHERE id = $2 AND stock >= $1`
	restoreStockQuery   = `UPDATE products SET stock = stock + $1 WHERE id = $2`
)

// ReserveAndDecrement decrements stock for every line. The update only
// matches rows with enough stock; a line that matches nothing fails the call
// with ErrInsufficientStock, and the caller is expected to roll back the
// surrounding transaction.
func (l *Ledger) ReserveAndDecrement(ctx context.Context, exec Execer, lines []Line) error {
	for _, line := range lines {
		res, err := exec.ExecContext(ctx, decrementStockQuery, line.Quantity, line.ProductID)
		if err != nil {
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrInsufficientStock
		}
	}
	return nil
}

// Restore puts stock back for every line.
func (l *Ledger) Restore(ctx context.Context, exec Execer, lines []Line) error {
	for _, line := range lines {
		if _, err := exec.ExecContext(ctx, restoreStockQuery, line.Quantity, line.ProductID); err != nil {
			return err
		}
	}
	return nil
}
