package handlers

import (
	"foodonline/internal/domain"
	applog "foodonline/internal/log"
	"foodonline/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AttachUser puts the session's user into Locals("user") when there is one.
func AttachUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if sid := c.Cookies("sid"); sid != "" {
			if u, err := auth.CurrentUser(sid); err == nil && u != nil {
				c.Locals("user", u)
			}
		}
		return c.Next()
	}
}

func currentUser(c *fiber.Ctx) *domain.User {
	u, _ := c.Locals("user").(*domain.User)
	return u
}

func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return requireRole(auth, domain.RoleAdmin, "access.denied.admin")
}

// RequireVendor admits restaurant owners only.
func RequireVendor(auth *services.AuthService) fiber.Handler {
	return requireRole(auth, domain.RoleVendor, "access.denied.vendor")
}

func requireRole(auth *services.AuthService, role, action string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return c.Redirect("/login")
		}
		u, err := auth.CurrentUser(sid)
		if err != nil || u == nil || u.Role != role {
			applog.Security(c, action, map[string]any{"sid": sid})
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Access denied"})
		}
		c.Locals("user", u)
		return c.Next()
	}
}

// RequireUser enforces that a user is logged in; otherwise redirect to login.
func RequireUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return c.Redirect("/login")
		}
		u, err := auth.CurrentUser(sid)
		if err != nil || u == nil {
			return c.Redirect("/login")
		}
		c.Locals("user", u)
		return c.Next()
	}
}
