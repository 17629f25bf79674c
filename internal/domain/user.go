package domain

const (
	RoleCustomer = "CUSTOMER"
	RoleVendor   = "VENDOR"
	RoleAdmin    = "ADMIN"
)

type User struct {
	ID        string `db:"id" json:"id"`
	Email     string `db:"email" json:"email"`
	FirstName string `db:"first_name" json:"first_name"`
	LastName  string `db:"last_name" json:"last_name"`
	Phone     string `db:"phone_number" json:"phone_number"`
	Hash      string `db:"password_hash" json:"-"`
	Role      string `db:"role" json:"role"`
	IsActive  bool   `db:"is_active" json:"is_active"`
}

func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

type UserProfile struct {
	UserID    string   `db:"user_id"`
	Address   string   `db:"address"`
	Country   string   `db:"country"`
	State     string   `db:"state"`
	City      string   `db:"city"`
	PinCode   string   `db:"pin_code"`
	Latitude  *float64 `db:"latitude"`
	Longitude *float64 `db:"longitude"`
}
