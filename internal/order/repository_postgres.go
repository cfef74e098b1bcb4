package order

import (
	"context"
	"database/sql"

	"github.com/siva790/textile-ecommerce-store/internal/inventory"
	"github.com/siva790/textile-ecommerce-store/internal/pricing"
)

type PostgresRepository struct {
	db     *sql.DB
	ledger *inventory.Ledger
}

const (
	// FOR UPDATE OF p serializes concurrent checkouts touching the same
	// products; the conditional decrement is the second line of defense.
	selectCartForCheckoutQuery = `
		SELECT c.product_id, c.quantity, p.price
		FROM cart c
		JOIN products p ON p.id = c.product_id
		WHERE c.user_id = $1
		ORDER BY c.id
		FOR UPDATE OF p
	`
	insertOrderQuery = `
		INSERT INTO orders (user_id, total_amount, payment_method, payment_status, shipping_address, phone, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		RETURNING id
	`
	insertOrderItemQuery = `
		INSERT INTO order_items (order_id, product_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4)
	`
	clearUserCartQuery = `DELETE FROM cart WHERE user_id = $1`

	getOrderQuery = `
		SELECT id, user_id, total_amount, payment_method, payment_status, shipping_address, phone, status, created_at
		FROM orders
		WHERE id = $1
	`
	getOrderLinesQuery = `
		SELECT order_id, product_id, quantity, unit_price
		FROM order_items
		WHERE order_id = $1
		ORDER BY product_id
	`
	listOrdersByUserQuery = `
		SELECT id, user_id, total_amount, payment_method, payment_status, shipping_address, phone, status, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	listAllOrdersQuery = `
		SELECT id, user_id, total_amount, payment_method, payment_status, shipping_address, phone, status, created_at
		FROM orders
		ORDER BY created_at DESC
	`
	updateStatusQuery = `UPDATE orders SET status = $1 WHERE id = $2 AND status = $3`

	pendingReturnExistsQuery = `SELECT EXISTS (SELECT 1 FROM returns WHERE order_id = $1 AND status = 'pending')`
	insertReturnQuery        = `
		INSERT INTO returns (order_id, user_id, reason, status, requested_at)
		VALUES ($1, $2, $3, 'pending', now())
	`
	resolveReturnRowQuery = `UPDATE returns SET status = $1 WHERE order_id = $2 AND status = 'pending'`
	getReturnQuery        = `
		SELECT id, order_id, user_id, reason, status, requested_at
		FROM returns
		WHERE order_id = $1
		ORDER BY requested_at DESC
		LIMIT 1
	`

	markRestockedQuery = `UPDATE orders SET restocked_at = now() WHERE id = $1 AND restocked_at IS NULL`
)

func NewPostgresRepository(db *sql.DB, ledger *inventory.Ledger) *PostgresRepository {
	return &PostgresRepository{db: db, ledger: ledger}
}

// Place runs the whole checkout as one transaction: live prices are read,
// stock is conditionally decremented, the order and its line snapshots are
// written and the cart is cleared. Any failure rolls everything back.
func (r *PostgresRepository) Place(ctx context.Context, userID int, paymentMethod string, paymentStatus PaymentStatus, shippingAddress, phone string) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, selectCartForCheckoutQuery, userID)
	if err != nil {
		return 0, err
	}

	var orderLines []Line
	var priceLines []pricing.Line
	var stockLines []inventory.Line
	for rows.Next() {
		var l Line
		if err := rows.Scan(&l.ProductID, &l.Quantity, &l.UnitPrice); err != nil {
			rows.Close()
			return 0, err
		}
		orderLines = append(orderLines, l)
		priceLines = append(priceLines, pricing.Line{UnitPrice: l.UnitPrice, Quantity: l.Quantity})
		stockLines = append(stockLines, inventory.Line{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return 0, err
	}
	rows.Close()

	if len(orderLines) == 0 {
		return 0, ErrEmptyCart
	}

	if err := r.ledger.ReserveAndDecrement(ctx, tx, stockLines); err != nil {
		return 0, err
	}

	total := pricing.Total(priceLines)

	var orderID int
	err = tx.QueryRowContext(ctx, insertOrderQuery,
		userID, total, paymentMethod, string(paymentStatus), shippingAddress, phone, string(StatusProcessing)).
		Scan(&orderID)
	if err != nil {
		return 0, err
	}

	for _, l := range orderLines {
		if _, err := tx.ExecContext(ctx, insertOrderItemQuery, orderID, l.ProductID, l.Quantity, l.UnitPrice); err != nil {
			return 0, err
		}
	}

	if _, err := tx.ExecContext(ctx, clearUserCartQuery, userID); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return orderID, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, orderID int) (Order, error) {
	o, err := r.scanOrder(r.db.QueryRowContext(ctx, getOrderQuery, orderID))
	if err != nil {
		return Order{}, err
	}

	rows, err := r.db.QueryContext(ctx, getOrderLinesQuery, orderID)
	if err != nil {
		return Order{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var l Line
		if err := rows.Scan(&l.OrderID, &l.ProductID, &l.Quantity, &l.UnitPrice); err != nil {
			return Order{}, err
		}
		o.Lines = append(o.Lines, l)
	}
	return o, rows.Err()
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int) ([]Order, error) {
	rows, err := r.db.QueryContext(ctx, listOrdersByUserQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrders(rows)
}

func (r *PostgresRepository) ListAll(ctx context.Context) ([]Order, error) {
	rows, err := r.db.QueryContext(ctx, listAllOrdersQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrders(rows)
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, orderID int, from, to Status) error {
	res, err := r.db.ExecContext(ctx, updateStatusQuery, string(to), orderID, string(from))
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		// the order moved under us, or it never existed
		var current string
		err := r.db.QueryRowContext(ctx, `SELECT status FROM orders WHERE id = $1`, orderID).Scan(&current)
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return ErrInvalidTransition
	}
	return nil
}

func (r *PostgresRepository) CreateReturn(ctx context.Context, orderID, userID int, reason string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var pending bool
	if err := tx.QueryRowContext(ctx, pendingReturnExistsQuery, orderID).Scan(&pending); err != nil {
		return err
	}
	if pending {
		return ErrReturnPending
	}

	res, err := tx.ExecContext(ctx, updateStatusQuery, string(StatusReturnRequested), orderID, string(StatusDelivered))
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrInvalidTransition
	}

	if _, err := tx.ExecContext(ctx, insertReturnQuery, orderID, userID, reason); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *PostgresRepository) ResolveReturn(ctx context.Context, orderID int, approve bool) error {
	next := StatusReturned
	rowStatus := ReturnApproved
	if !approve {
		next = StatusRejected
		rowStatus = ReturnRejected
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, updateStatusQuery, string(next), orderID, string(StatusReturnRequested))
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrInvalidTransition
	}

	if _, err := tx.ExecContext(ctx, resolveReturnRowQuery, rowStatus, orderID); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *PostgresRepository) GetReturn(ctx context.Context, orderID int) (ReturnRequest, error) {
	var req ReturnRequest
	err := r.db.QueryRowContext(ctx, getReturnQuery, orderID).
		Scan(&req.ID, &req.OrderID, &req.UserID, &req.Reason, &req.Status, &req.RequestedAt)
	if err == sql.ErrNoRows {
		return ReturnRequest{}, ErrNotFound
	}
	if err != nil {
		return ReturnRequest{}, err
	}
	return req, nil
}

// Restock puts the order's quantities back on product stock, at most once.
// The restocked_at guard makes a second call a no-op failure instead of a
// double credit.
func (r *PostgresRepository) Restock(ctx context.Context, orderID int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, markRestockedQuery, orderID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		var exists bool
		if err := tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)`, orderID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}
		return ErrAlreadyRestocked
	}

	rows, err := tx.QueryContext(ctx, getOrderLinesQuery, orderID)
	if err != nil {
		return err
	}
	var stockLines []inventory.Line
	for rows.Next() {
		var l Line
		if err := rows.Scan(&l.OrderID, &l.ProductID, &l.Quantity, &l.UnitPrice); err != nil {
			rows.Close()
			return err
		}
		stockLines = append(stockLines, inventory.Line{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	if err := r.ledger.Restore(ctx, tx, stockLines); err != nil {
		return err
	}
	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *PostgresRepository) scanOrder(row rowScanner) (Order, error) {
	var o Order
	var payStatus, status string
	err := row.Scan(&o.ID, &o.UserID, &o.TotalAmount, &o.PaymentMethod, &payStatus, &o.ShippingAddress, &o.Phone, &status, &o.CreatedAt)
	if err == sql.ErrNoRows {
		return Order{}, ErrNotFound
	}
	if err != nil {
		return Order{}, err
	}
	o.PaymentStatus = PaymentStatus(payStatus)
	o.Status = Status(status)
	return o, nil
}

func scanOrders(rows *sql.Rows) ([]Order, error) {
	out := make([]Order, 0)
	for rows.Next() {
		var o Order
		var payStatus, status string
		if err := rows.Scan(&o.ID, &o.UserID, &o.TotalAmount, &o.PaymentMethod, &payStatus, &o.ShippingAddress, &o.Phone, &status, &o.CreatedAt); err != nil {
			return nil, err
		}
		o.PaymentStatus = PaymentStatus(payStatus)
		o.Status = Status(status)
		out = append(out, o)
	}
	return out, rows.Err()
}
