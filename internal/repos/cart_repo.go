package repos

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"foodonline/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

// Increment adds one unit of a food item to the user's cart, creating the line on
// first add. It returns the resulting quantity.
func (r *CartRepo) Increment(userID string, foodID int64) (int, error) {
	var qty int
	err := r.db.Get(&qty, `
		INSERT INTO cart_lines(user_id,food_item_id,quantity,created_at)
		VALUES(?,?,1,?)
		ON CONFLICT(user_id,food_item_id) DO UPDATE
		SET quantity = cart_lines.quantity + 1, updated_at = CURRENT_TIMESTAMP
		RETURNING quantity
	`, userID, foodID, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return 0, fmt.Errorf("increment cart line: %w", err)
	}
	return qty, nil
}

// Decrement removes one unit. A line at quantity 1 is deleted and 0 is returned.
// domain.ErrNotInCart is returned when the user has no line for the item.
func (r *CartRepo) Decrement(userID string, foodID int64) (int, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	var qty int
	err = tx.Get(&qty, `
		UPDATE cart_lines SET quantity = quantity - 1, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = ? AND food_item_id = ? AND quantity > 1
		RETURNING quantity
	`, userID, foodID)
	switch {
	case err == nil:
		return qty, tx.Commit()
	case !errors.Is(err, sql.ErrNoRows):
		return 0, fmt.Errorf("decrement cart line: %w", err)
	}

	res, err := tx.Exec(`DELETE FROM cart_lines WHERE user_id = ? AND food_item_id = ? AND quantity <= 1`, userID, foodID)
	if err != nil {
		return 0, fmt.Errorf("remove cart line: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, domain.ErrNotInCart
	}
	return 0, tx.Commit()
}

// Delete removes a line by id, only if it belongs to userID.
func (r *CartRepo) Delete(userID string, lineID int64) error {
	res, err := r.db.Exec(`DELETE FROM cart_lines WHERE id = ? AND user_id = ?`, lineID, userID)
	if err != nil {
		return fmt.Errorf("delete cart line: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("cart line %d: %w", lineID, domain.ErrNotFound)
	}
	return nil
}

// Lines returns the user's cart ordered by creation.
func (r *CartRepo) Lines(userID string) ([]domain.CartLine, error) {
	out := []domain.CartLine{}
	err := r.db.Select(&out, `
	  SELECT cl.id, cl.user_id, cl.food_item_id, cl.quantity, cl.created_at,
	         f.food_title, f.vendor_id, f.price
	  FROM cart_lines cl JOIN food_items f ON f.id = cl.food_item_id
	  WHERE cl.user_id = ?
	  ORDER BY cl.created_at, cl.id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list cart lines: %w", err)
	}
	return out, nil
}

// Quantity returns the current quantity of a food item in the cart, 0 if absent.
func (r *CartRepo) Quantity(userID string, foodID int64) (int, error) {
	var qty int
	err := r.db.Get(&qty, `SELECT quantity FROM cart_lines WHERE user_id = ? AND food_item_id = ?`, userID, foodID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return qty, err
}
