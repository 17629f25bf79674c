package services

import (
	"errors"

	"foodonline/internal/domain"
	"foodonline/internal/repos"
)

var ErrEmptyCart = errors.New("cart is empty")

type CheckoutService struct {
	Carts *repos.CartRepo
	Users *repos.UserRepo
}

func NewCheckoutService(carts *repos.CartRepo, users *repos.UserRepo) *CheckoutService {
	return &CheckoutService{Carts: carts, Users: users}
}

type Checkout struct {
	Form  domain.CheckoutForm
	Lines []domain.CartLine
	domain.CartSummary
}

// Prepare pre-fills the order form from the user's account and profile.
func (s *CheckoutService) Prepare(u *domain.User) (Checkout, error) {
	lines, err := s.Carts.Lines(u.ID)
	if err != nil {
		return Checkout{}, err
	}
	if len(lines) == 0 {
		return Checkout{}, ErrEmptyCart
	}
	p, err := s.Users.Profile(u.ID)
	if err != nil {
		return Checkout{}, err
	}
	return Checkout{
		Form: domain.CheckoutForm{
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Phone:     u.Phone,
			Email:     u.Email,
			Address:   p.Address,
			Country:   p.Country,
			State:     p.State,
			City:      p.City,
			PinCode:   p.PinCode,
		},
		Lines:       lines,
		CartSummary: domain.Summarize(lines),
	}, nil
}
