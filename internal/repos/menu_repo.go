package repos

import (
	"fmt"

	"foodonline/internal/domain"

	"github.com/jmoiron/sqlx"
)

type MenuRepo struct{ db *sqlx.DB }

func NewMenuRepo(db *sqlx.DB) *MenuRepo { return &MenuRepo{db: db} }

const foodCols = `id, vendor_id, category_id, food_title, slug, description, price, image, is_available`

// FoodItem resolves a food item regardless of availability.
func (r *MenuRepo) FoodItem(id int64) (domain.FoodItem, error) {
	var f domain.FoodItem
	if err := r.db.Get(&f, `SELECT `+foodCols+` FROM food_items WHERE id = ?`, id); err != nil {
		return domain.FoodItem{}, notFound(err, fmt.Sprintf("food item %d", id))
	}
	return f, nil
}

// CategoriesWithAvailable returns a vendor's categories, each carrying only its
// available food items.
func (r *MenuRepo) CategoriesWithAvailable(vendorID int64) ([]domain.Category, error) {
	cats := []domain.Category{}
	if err := r.db.Select(&cats, `
	  SELECT id, vendor_id, category_name, slug, description
	  FROM categories WHERE vendor_id = ?
	  ORDER BY id
	`, vendorID); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	if len(cats) == 0 {
		return cats, nil
	}

	ids := make([]int64, len(cats))
	for i, c := range cats {
		ids[i] = c.ID
	}
	query, args, err := sqlx.In(`
	  SELECT `+foodCols+` FROM food_items
	  WHERE category_id IN (?) AND is_available = 1
	  ORDER BY food_title
	`, ids)
	if err != nil {
		return nil, err
	}
	var items []domain.FoodItem
	if err := r.db.Select(&items, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list food items: %w", err)
	}

	byCat := make(map[int64][]domain.FoodItem, len(cats))
	for _, it := range items {
		byCat[it.CategoryID] = append(byCat[it.CategoryID], it)
	}
	for i := range cats {
		cats[i].FoodItems = byCat[cats[i].ID]
		if cats[i].FoodItems == nil {
			cats[i].FoodItems = []domain.FoodItem{}
		}
	}
	return cats, nil
}
