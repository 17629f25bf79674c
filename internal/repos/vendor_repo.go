package repos

import (
	"fmt"
	"strings"

	"foodonline/internal/domain"

	"github.com/jmoiron/sqlx"
)

type VendorRepo struct{ db *sqlx.DB }

func NewVendorRepo(db *sqlx.DB) *VendorRepo { return &VendorRepo{db: db} }

const vendorCols = `v.id, v.user_id, v.vendor_name, v.vendor_slug, v.vendor_license, v.is_approved,
    COALESCE(v.created_at,'') AS created_at, COALESCE(v.modified_at,'') AS modified_at`

const listingFrom = `
  FROM vendors v
  JOIN users u ON u.id = v.user_id
  LEFT JOIN user_profiles p ON p.user_id = v.user_id`

// visible is the marketplace gate: approved vendor, active owner.
const visible = `v.is_approved = 1 AND u.is_active = 1`

// Create inserts a vendor and returns its id.
func (r *VendorRepo) Create(v domain.Vendor) (int64, error) {
	res, err := r.db.Exec(`
	  INSERT INTO vendors(user_id, vendor_name, vendor_slug, vendor_license, is_approved, created_at, modified_at)
	  VALUES(?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	`, v.UserID, v.Name, v.Slug, v.License, v.IsApproved)
	if err != nil {
		return 0, uniqueViolation(err)
	}
	return res.LastInsertId()
}

// Update persists a vendor and returns the approval flag it had before the write.
func (r *VendorRepo) Update(v domain.Vendor) (bool, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	var prev bool
	if err := tx.Get(&prev, `SELECT is_approved FROM vendors WHERE id = ?`, v.ID); err != nil {
		return false, notFound(err, "vendor")
	}
	if _, err := tx.Exec(`
	  UPDATE vendors
	  SET vendor_name = ?, vendor_slug = ?, vendor_license = ?, is_approved = ?, modified_at = CURRENT_TIMESTAMP
	  WHERE id = ?
	`, v.Name, v.Slug, v.License, v.IsApproved, v.ID); err != nil {
		return false, uniqueViolation(err)
	}
	return prev, tx.Commit()
}

func (r *VendorRepo) ByID(id int64) (domain.Vendor, error) {
	var v domain.Vendor
	if err := r.db.Get(&v, `SELECT `+vendorCols+` FROM vendors v WHERE v.id = ?`, id); err != nil {
		return domain.Vendor{}, notFound(err, "vendor")
	}
	return v, nil
}

func (r *VendorRepo) ByUser(userID string) (domain.Vendor, error) {
	var v domain.Vendor
	if err := r.db.Get(&v, `SELECT `+vendorCols+` FROM vendors v WHERE v.user_id = ?`, userID); err != nil {
		return domain.Vendor{}, notFound(err, "vendor")
	}
	return v, nil
}

// VisibleBySlug resolves a slug among marketplace-visible vendors only.
func (r *VendorRepo) VisibleBySlug(slug string) (domain.VendorListing, error) {
	var v domain.VendorListing
	err := r.db.Get(&v, `
	  SELECT `+vendorCols+`, COALESCE(p.city,'') AS city, p.latitude, p.longitude
	  `+listingFrom+`
	  WHERE v.vendor_slug = ? AND `+visible, slug)
	if err != nil {
		return domain.VendorListing{}, notFound(err, "vendor "+slug)
	}
	return v, nil
}

// ListVisible returns approved vendors with an active owner.
func (r *VendorRepo) ListVisible() ([]domain.VendorListing, error) {
	out := []domain.VendorListing{}
	err := r.db.Select(&out, `
	  SELECT `+vendorCols+`, COALESCE(p.city,'') AS city, p.latitude, p.longitude
	  `+listingFrom+`
	  WHERE `+visible+`
	  ORDER BY v.created_at DESC, v.id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list vendors: %w", err)
	}
	return out, nil
}

// SearchVisible matches visible vendors by name, or by the title of one of their
// available food items. Both matches are case-insensitive substrings.
func (r *VendorRepo) SearchVisible(q string) ([]domain.VendorListing, error) {
	like := "%" + escapeLike(strings.ToLower(strings.TrimSpace(q))) + "%"
	out := []domain.VendorListing{}
	err := r.db.Select(&out, `
	  SELECT `+vendorCols+`, COALESCE(p.city,'') AS city, p.latitude, p.longitude
	  `+listingFrom+`
	  WHERE `+visible+` AND (
	    LOWER(v.vendor_name) LIKE ? ESCAPE '\'
	    OR v.id IN (
	      SELECT f.vendor_id FROM food_items f
	      WHERE f.is_available = 1 AND LOWER(f.food_title) LIKE ? ESCAPE '\'
	    )
	  )
	  ORDER BY v.vendor_name
	`, like, like)
	if err != nil {
		return nil, fmt.Errorf("search vendors: %w", err)
	}
	return out, nil
}

// ListAll is the admin view: every vendor regardless of approval.
func (r *VendorRepo) ListAll() ([]domain.Vendor, error) {
	out := []domain.Vendor{}
	err := r.db.Select(&out, `SELECT `+vendorCols+` FROM vendors v ORDER BY v.is_approved, v.id`)
	return out, err
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func uniqueViolation(err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed: vendors.vendor_slug"):
		return fmt.Errorf("%w: %v", domain.ErrSlugTaken, err)
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return fmt.Errorf("%w: %v", domain.ErrDuplicate, err)
	}
	return err
}
