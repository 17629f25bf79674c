package services

import (
	"foodonline/internal/domain"
	"foodonline/internal/repos"
)

type CartService struct {
	Carts *repos.CartRepo
	Menu  *repos.MenuRepo
}

func NewCartService(carts *repos.CartRepo, menu *repos.MenuRepo) *CartService {
	return &CartService{Carts: carts, Menu: menu}
}

// CartResult is the outcome of a cart mutation: the quantity now held for the item
// and freshly recomputed cart aggregates.
type CartResult struct {
	Qty     int
	Created bool
	domain.CartSummary
}

// Add puts one more unit of foodID in the user's cart.
func (s *CartService) Add(userID string, foodID int64) (CartResult, error) {
	if _, err := s.Menu.FoodItem(foodID); err != nil {
		return CartResult{}, err
	}
	qty, err := s.Carts.Increment(userID, foodID)
	if err != nil {
		return CartResult{}, err
	}
	sum, err := s.Summary(userID)
	if err != nil {
		return CartResult{}, err
	}
	return CartResult{Qty: qty, Created: qty == 1, CartSummary: sum}, nil
}

// Decrease takes one unit of foodID out of the cart; the line goes away at zero.
func (s *CartService) Decrease(userID string, foodID int64) (CartResult, error) {
	if _, err := s.Menu.FoodItem(foodID); err != nil {
		return CartResult{}, err
	}
	qty, err := s.Carts.Decrement(userID, foodID)
	if err != nil {
		return CartResult{}, err
	}
	sum, err := s.Summary(userID)
	if err != nil {
		return CartResult{}, err
	}
	return CartResult{Qty: qty, CartSummary: sum}, nil
}

// Delete drops one of the user's own lines whatever its quantity.
func (s *CartService) Delete(userID string, lineID int64) (domain.CartSummary, error) {
	if err := s.Carts.Delete(userID, lineID); err != nil {
		return domain.CartSummary{}, err
	}
	return s.Summary(userID)
}

func (s *CartService) Summary(userID string) (domain.CartSummary, error) {
	lines, err := s.Carts.Lines(userID)
	if err != nil {
		return domain.CartSummary{}, err
	}
	return domain.Summarize(lines), nil
}

type CartView struct {
	Lines []domain.CartLine
	domain.CartSummary
}

func (s *CartService) View(userID string) (CartView, error) {
	lines, err := s.Carts.Lines(userID)
	if err != nil {
		return CartView{}, err
	}
	return CartView{Lines: lines, CartSummary: domain.Summarize(lines)}, nil
}
