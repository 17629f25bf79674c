package domain

// OpeningHourInput is what a vendor submits to add a slot.
type OpeningHourInput struct {
	Day      int    `form:"day" json:"day" validate:"min=1,max=7"`
	FromHour string `form:"from_hour" json:"from_hour" validate:"required_unless=IsClosed true,halfhour"`
	ToHour   string `form:"to_hour" json:"to_hour" validate:"required_unless=IsClosed true,halfhour"`
	IsClosed bool   `form:"is_closed" json:"is_closed"`
}

// VendorSignup is the form a user submits to register a restaurant.
type VendorSignup struct {
	Name    string `form:"vendor_name" json:"vendor_name" validate:"required,max=50"`
	License string `form:"vendor_license" json:"vendor_license" validate:"required,max=255"`
}

// CheckoutForm is the order form pre-filled from the user's profile.
type CheckoutForm struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	Country   string `json:"country"`
	State     string `json:"state"`
	City      string `json:"city"`
	PinCode   string `json:"pin_code"`
}
