package cart

import (
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	upsertLineQuery = `
		INSERT INTO cart (user_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = cart.quantity + EXCLUDED.quantity
		RETURNING id, user_id, product_id, quantity
	`
	removeLineQuery = `DELETE FROM cart WHERE id = $1 AND user_id = $2`
	listLinesQuery  = `
		SELECT id, user_id, product_id, quantity
		FROM cart
		WHERE user_id = $1
		ORDER BY id
	`
	clearCartQuery = `DELETE FROM cart WHERE user_id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) AddLine(userID, productID, qty int) (Line, error) {
	var l Line
	err := r.db.QueryRow(upsertLineQuery, userID, productID, qty).
		Scan(&l.ID, &l.UserID, &l.ProductID, &l.Quantity)
	if err != nil {
		return Line{}, err
	}
	return l, nil
}

func (r *PostgresRepository) RemoveLine(userID, lineID int) error {
	res, err := r.db.Exec(removeLineQuery, lineID, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) ListLines(userID int) ([]Line, error) {
	rows, err := r.db.Query(listLinesQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Line, 0)
	for rows.Next() {
		var l Line
		if err := rows.Scan(&l.ID, &l.UserID, &l.ProductID, &l.Quantity); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Clear(userID int) error {
	_, err := r.db.Exec(clearCartQuery, userID)
	return err
}
