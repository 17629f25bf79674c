package repos

import (
	"fmt"

	"foodonline/internal/domain"

	"github.com/jmoiron/sqlx"
)

type OpeningHourRepo struct{ db *sqlx.DB }

func NewOpeningHourRepo(db *sqlx.DB) *OpeningHourRepo { return &OpeningHourRepo{db: db} }

func (r *OpeningHourRepo) Add(h domain.OpeningHour) (int64, error) {
	res, err := r.db.Exec(`
	  INSERT INTO opening_hours(vendor_id, day, from_hour, to_hour, is_closed)
	  VALUES(?, ?, ?, ?, ?)
	`, h.VendorID, h.Day, h.FromHour, h.ToHour, h.IsClosed)
	if err != nil {
		return 0, uniqueViolation(err)
	}
	return res.LastInsertId()
}

// Remove deletes a slot owned by vendorID.
func (r *OpeningHourRepo) Remove(vendorID, id int64) error {
	res, err := r.db.Exec(`DELETE FROM opening_hours WHERE id = ? AND vendor_id = ?`, id, vendorID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("opening hour %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ForVendor returns all slots ordered by day, then from-time.
func (r *OpeningHourRepo) ForVendor(vendorID int64) ([]domain.OpeningHour, error) {
	out := []domain.OpeningHour{}
	if err := r.db.Select(&out, `
	  SELECT id, vendor_id, day, from_hour, to_hour, is_closed
	  FROM opening_hours WHERE vendor_id = ?
	`, vendorID); err != nil {
		return nil, fmt.Errorf("list opening hours: %w", err)
	}
	domain.SortHours(out)
	return out, nil
}

// ForDay returns the slots of one ISO weekday.
func (r *OpeningHourRepo) ForDay(vendorID int64, day int) ([]domain.OpeningHour, error) {
	out := []domain.OpeningHour{}
	if err := r.db.Select(&out, `
	  SELECT id, vendor_id, day, from_hour, to_hour, is_closed
	  FROM opening_hours WHERE vendor_id = ? AND day = ?
	`, vendorID, day); err != nil {
		return nil, fmt.Errorf("list opening hours: %w", err)
	}
	domain.SortHours(out)
	return out, nil
}
