package handlers

import (
	"errors"

	"foodonline/internal/domain"
	applog "foodonline/internal/log"
	"foodonline/internal/services"
	"foodonline/internal/validate"

	"github.com/gofiber/fiber/v2"
)

const (
	msgAdded        = "Added the food to the cart"
	msgIncreased    = "Increased cart quantity"
	msgDecreased    = "Decreased the cart quantity"
	msgDeleted      = "Cart item has been deleted"
	msgNoFood       = "This food does not exist"
	msgNotInCart    = "You do not have this item in your cart"
	msgNoCartItem   = "Cart item does not exist"
	msgInvalid      = "Invalid request"
	msgLogin        = "Please login to continue"
	msgStorageError = "Something went wrong, please try again"
)

type CartHandler struct {
	Cart *services.CartService
}

func failed(c *fiber.Ctx, code int, msg string) error {
	return c.Status(code).JSON(fiber.Map{"status": "Failed", "message": msg})
}

// guard applies the checks shared by the cart mutations: a logged-in caller and an
// XHR request.
func guard(c *fiber.Ctx) (*domain.User, error) {
	u := currentUser(c)
	if u == nil {
		return nil, domain.ErrUnauthenticated
	}
	if !c.XHR() {
		return nil, domain.ErrInvalidRequest
	}
	return u, nil
}

// cartError turns a cart failure into its status envelope. notFound is the message
// for domain.ErrNotFound, which depends on what the route looked up.
func cartError(c *fiber.Ctx, err error, notFound, action string, fields map[string]any) error {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "login_required", "message": msgLogin})
	case errors.Is(err, domain.ErrInvalidRequest):
		return failed(c, fiber.StatusBadRequest, msgInvalid)
	case errors.Is(err, domain.ErrNotInCart):
		return failed(c, fiber.StatusNotFound, msgNotInCart)
	case errors.Is(err, domain.ErrNotFound):
		return failed(c, fiber.StatusNotFound, notFound)
	}
	applog.Error(c, action, err, fields)
	return failed(c, fiber.StatusInternalServerError, msgStorageError)
}

func success(c *fiber.Ctx, msg string, qty *int, sum domain.CartSummary) error {
	body := fiber.Map{
		"status":       "Success",
		"message":      msg,
		"cart_counter": sum.Counter,
		"cart_amount":  sum.Amount.StringFixed(2),
	}
	if qty != nil {
		body["qty"] = *qty
	}
	return c.JSON(body)
}

// POST /cart/add/:food_id
func (h *CartHandler) Add(c *fiber.Ctx) error {
	u, err := guard(c)
	if err != nil {
		return cartError(c, err, msgNoFood, "cart.add.fail", nil)
	}
	foodID, ok := validate.ID(c.Params("food_id"))
	if !ok {
		return cartError(c, domain.ErrNotFound, msgNoFood, "cart.add.fail", nil)
	}
	res, err := h.Cart.Add(u.ID, foodID)
	if err != nil {
		return cartError(c, err, msgNoFood, "cart.add.fail", map[string]any{"food_id": foodID})
	}
	msg := msgIncreased
	if res.Created {
		msg = msgAdded
	}
	applog.Info(c, "cart.add", map[string]any{"food_id": foodID, "qty": res.Qty})
	return success(c, msg, &res.Qty, res.CartSummary)
}

// POST /cart/decrease/:food_id
func (h *CartHandler) Decrease(c *fiber.Ctx) error {
	u, err := guard(c)
	if err != nil {
		return cartError(c, err, msgNoFood, "cart.decrease.fail", nil)
	}
	foodID, ok := validate.ID(c.Params("food_id"))
	if !ok {
		return cartError(c, domain.ErrNotFound, msgNoFood, "cart.decrease.fail", nil)
	}
	res, err := h.Cart.Decrease(u.ID, foodID)
	if err != nil {
		return cartError(c, err, msgNoFood, "cart.decrease.fail", map[string]any{"food_id": foodID})
	}
	applog.Info(c, "cart.decrease", map[string]any{"food_id": foodID, "qty": res.Qty})
	return success(c, msgDecreased, &res.Qty, res.CartSummary)
}

// POST /cart/delete/:cart_id
func (h *CartHandler) Delete(c *fiber.Ctx) error {
	u, err := guard(c)
	if err != nil {
		return cartError(c, err, msgNoCartItem, "cart.delete.fail", nil)
	}
	lineID, ok := validate.ID(c.Params("cart_id"))
	if !ok {
		return cartError(c, domain.ErrNotFound, msgNoCartItem, "cart.delete.fail", nil)
	}
	sum, err := h.Cart.Delete(u.ID, lineID)
	if errors.Is(err, domain.ErrNotFound) {
		applog.Security(c, "cart.delete.denied", map[string]any{"cart_id": lineID})
	}
	if err != nil {
		return cartError(c, err, msgNoCartItem, "cart.delete.fail", map[string]any{"cart_id": lineID})
	}
	applog.Info(c, "cart.delete", map[string]any{"cart_id": lineID})
	return success(c, msgDeleted, nil, sum)
}

// GET /cart
func (h *CartHandler) View(c *fiber.Ctx) error {
	u := currentUser(c)
	cv, err := h.Cart.View(u.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"cart_items":   cartItems(cv.Lines),
		"cart_counter": cv.Counter,
		"cart_amount":  cv.Amount.StringFixed(2),
	})
}

type cartItem struct {
	domain.CartLine
	Subtotal string `json:"subtotal"`
}

func cartItems(lines []domain.CartLine) []cartItem {
	out := make([]cartItem, len(lines))
	for i, l := range lines {
		out[i] = cartItem{CartLine: l, Subtotal: l.Subtotal().StringFixed(2)}
	}
	return out
}
