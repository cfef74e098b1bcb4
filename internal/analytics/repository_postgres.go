package analytics

import (
	"context"
	"database/sql"
	"time"
)

type Repository interface {
	Totals(ctx context.Context, since time.Time) (orders int, revenue float64, err error)
	UnitsSold(ctx context.Context, since time.Time) (int, error)
	StatusCounts(ctx context.Context, since time.Time) ([]StatusCount, error)
	TopProducts(ctx context.Context, since time.Time, limit int) ([]ProductSales, error)
	CategoryRevenue(ctx context.Context, since time.Time) ([]CategorySales, error)
	DailySales(ctx context.Context, since time.Time) ([]DailyPoint, error)
	RecentOrders(ctx context.Context, since time.Time, limit int) ([]RecentOrder, error)
}

type PostgresRepository struct {
	db *sql.DB
}

const (
	totalsQuery = `
		SELECT COUNT(*), COALESCE(SUM(total_amount), 0)
		FROM orders
		WHERE created_at >= $1 AND status != 'cancelled'
	`
	unitsSoldQuery = `
		SELECT COALESCE(SUM(oi.quantity), 0)
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.created_at >= $1 AND o.status != 'cancelled'
	`
	statusCountsQuery = `
		SELECT status, COUNT(*), COALESCE(SUM(total_amount), 0)
		FROM orders
		WHERE created_at >= $1
		GROUP BY status
		ORDER BY status
	`
	topProductsQuery = `
		SELECT p.name, SUM(oi.quantity) AS units, SUM(oi.quantity * oi.unit_price) AS revenue
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		JOIN orders o ON o.id = oi.order_id
		WHERE o.created_at >= $1 AND o.status != 'cancelled'
		GROUP BY p.id, p.name
		ORDER BY units DESC
		LIMIT $2
	`
	categoryRevenueQuery = `
		SELECT p.category, SUM(oi.quantity * oi.unit_price) AS revenue
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		JOIN orders o ON o.id = oi.order_id
		WHERE o.created_at >= $1 AND o.status != 'cancelled'
		GROUP BY p.category
		ORDER BY revenue DESC
	`
	dailySalesQuery = `
		SELECT to_char(created_at::date, 'YYYY-MM-DD') AS day, COUNT(*), COALESCE(SUM(total_amount), 0)
		FROM orders
		WHERE created_at >= $1 AND status != 'cancelled'
		GROUP BY created_at::date
		ORDER BY day
	`
	recentOrdersQuery = `
		SELECT id, user_id, total_amount, status, created_at
		FROM orders
		WHERE created_at >= $1
		ORDER BY created_at DESC
		LIMIT $2
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Totals(ctx context.Context, since time.Time) (int, float64, error) {
	var orders int
	var revenue float64
	err := r.db.QueryRowContext(ctx, totalsQuery, since).Scan(&orders, &revenue)
	return orders, revenue, err
}

func (r *PostgresRepository) UnitsSold(ctx context.Context, since time.Time) (int, error) {
	var units int
	err := r.db.QueryRowContext(ctx, unitsSoldQuery, since).Scan(&units)
	return units, err
}

func (r *PostgresRepository) StatusCounts(ctx context.Context, since time.Time) ([]StatusCount, error) {
	rows, err := r.db.QueryContext(ctx, statusCountsQuery, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]StatusCount, 0)
	for rows.Next() {
		var sc StatusCount
		if err := rows.Scan(&sc.Status, &sc.Orders, &sc.Revenue); err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) TopProducts(ctx context.Context, since time.Time, limit int) ([]ProductSales, error) {
	rows, err := r.db.QueryContext(ctx, topProductsQuery, since, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ProductSales, 0)
	for rows.Next() {
		var ps ProductSales
		if err := rows.Scan(&ps.ProductName, &ps.UnitsSold, &ps.Revenue); err != nil {
			return nil, err
		}
		out = append(out, ps)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) CategoryRevenue(ctx context.Context, since time.Time) ([]CategorySales, error) {
	rows, err := r.db.QueryContext(ctx, categoryRevenueQuery, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]CategorySales, 0)
	for rows.Next() {
		var cs CategorySales
		if err := rows.Scan(&cs.Category, &cs.Revenue); err != nil {
			return nil, err
		}
		out = append(out, cs)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) DailySales(ctx context.Context, since time.Time) ([]DailyPoint, error) {
	rows, err := r.db.QueryContext(ctx, dailySalesQuery, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]DailyPoint, 0)
	for rows.Next() {
		var dp DailyPoint
		if err := rows.Scan(&dp.Date, &dp.Orders, &dp.Revenue); err != nil {
			return nil, err
		}
		out = append(out, dp)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) RecentOrders(ctx context.Context, since time.Time, limit int) ([]RecentOrder, error) {
	rows, err := r.db.QueryContext(ctx, recentOrdersQuery, since, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]RecentOrder, 0)
	for rows.Next() {
		var ro RecentOrder
		if err := rows.Scan(&ro.OrderID, &ro.UserID, &ro.Amount, &ro.Status, &ro.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, ro)
	}
	return out, rows.Err()
}
