package handlers

import (
	"errors"

	"foodonline/internal/services"

	"github.com/gofiber/fiber/v2"
)

type CheckoutHandler struct {
	Checkout *services.CheckoutService
}

// GET /checkout
func (h *CheckoutHandler) Prepare(c *fiber.Ctx) error {
	co, err := h.Checkout.Prepare(currentUser(c))
	if errors.Is(err, services.ErrEmptyCart) {
		return c.Redirect("/marketplace")
	}
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"form":         co.Form,
		"cart_items":   cartItems(co.Lines),
		"cart_counter": co.Counter,
		"cart_amount":  co.Amount.StringFixed(2),
	})
}
