package domain

import "github.com/shopspring/decimal"

type Vendor struct {
	ID         int64  `db:"id" json:"id"`
	UserID     string `db:"user_id" json:"user_id"`
	Name       string `db:"vendor_name" json:"vendor_name"`
	Slug       string `db:"vendor_slug" json:"vendor_slug"`
	License    string `db:"vendor_license" json:"vendor_license"`
	IsApproved bool   `db:"is_approved" json:"is_approved"`
	CreatedAt  string `db:"created_at" json:"created_at"`
	ModifiedAt string `db:"modified_at" json:"modified_at"`
}

// VendorListing is a vendor row as shown on the marketplace, with the owner's location.
type VendorListing struct {
	Vendor
	City       string   `db:"city" json:"city,omitempty"`
	Latitude   *float64 `db:"latitude" json:"latitude,omitempty"`
	Longitude  *float64 `db:"longitude" json:"longitude,omitempty"`
	DistanceKm *float64 `db:"-" json:"distance_km,omitempty"`
}

type Category struct {
	ID          int64      `db:"id" json:"id"`
	VendorID    int64      `db:"vendor_id" json:"vendor_id"`
	Name        string     `db:"category_name" json:"category_name"`
	Slug        string     `db:"slug" json:"slug"`
	Description string     `db:"description" json:"description"`
	FoodItems   []FoodItem `db:"-" json:"fooditems"`
}

type FoodItem struct {
	ID          int64           `db:"id" json:"id"`
	VendorID    int64           `db:"vendor_id" json:"vendor_id"`
	CategoryID  int64           `db:"category_id" json:"category_id"`
	Title       string          `db:"food_title" json:"food_title"`
	Slug        string          `db:"slug" json:"slug"`
	Description string          `db:"description" json:"description"`
	Price       decimal.Decimal `db:"price" json:"price"`
	Image       string          `db:"image" json:"image,omitempty"`
	IsAvailable bool            `db:"is_available" json:"is_available"`
}

// CartLine is one (user, food item) row joined with the item it points at.
type CartLine struct {
	ID         int64           `db:"id" json:"id"`
	UserID     string          `db:"user_id" json:"-"`
	FoodItemID int64           `db:"food_item_id" json:"food_item_id"`
	Quantity   int             `db:"quantity" json:"quantity"`
	CreatedAt  string          `db:"created_at" json:"created_at"`
	Title      string          `db:"food_title" json:"food_title"`
	VendorID   int64           `db:"vendor_id" json:"vendor_id"`
	Price      decimal.Decimal `db:"price" json:"price"`
}

func (l CartLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// CartSummary holds the aggregates recomputed after every cart mutation.
type CartSummary struct {
	Counter int             `json:"cart_counter"`
	Amount  decimal.Decimal `json:"cart_amount"`
}

func Summarize(lines []CartLine) CartSummary {
	s := CartSummary{Counter: len(lines), Amount: decimal.Zero}
	for _, l := range lines {
		s.Amount = s.Amount.Add(l.Subtotal())
	}
	return s
}
