package handlers

import (
	"errors"

	applog "foodonline/internal/log"

	"github.com/gofiber/fiber/v2"
)

const msgSomethingWrong = "Something went wrong. Please try again."

// ErrorHandler logs the failure and answers with a generic message.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
		code = fe.Code
	}
	applog.Error(c, "server.error", err, map[string]any{"code": code})
	msg := msgSomethingWrong
	if code != fiber.StatusInternalServerError {
		msg = fe.Message
	}
	return c.Status(code).JSON(fiber.Map{"message": msg})
}

// NotFound is the catch-all route.
func NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Page not found"})
}

// CSRFError answers a failed CSRF check with the same status envelope the cart
// endpoints use, so XHR clients can branch on status alone.
func CSRFError(c *fiber.Ctx, err error) error {
	applog.Security(c, "csrf.fail", map[string]any{"header": c.Get("X-CSRF-Token") != ""})
	if currentUser(c) == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "login_required", "message": msgLogin})
	}
	return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
		"status":  "Failed",
		"message": "Security check failed. Please refresh and try again.",
	})
}
