package handlers

import (
	"errors"

	"foodonline/internal/domain"
	applog "foodonline/internal/log"
	"foodonline/internal/services"
	"foodonline/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type VendorHandler struct {
	Vendors *services.VendorService
}

// POST /vendor/register
func (h *VendorHandler) Register(c *fiber.Ctx) error {
	var in domain.VendorSignup
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid form"})
	}
	u := currentUser(c)
	v, err := h.Vendors.Register(c.UserContext(), u, in)
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	case errors.Is(err, domain.ErrSlugTaken), errors.Is(err, domain.ErrDuplicate):
		applog.Security(c, "vendor.register.conflict", map[string]any{"vendor_name": in.Name})
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "You already have a restaurant or that name is taken"})
	case err != nil:
		return err
	}
	applog.Audit(c, "vendor.register", map[string]any{"vendor_id": v.ID, "slug": v.Slug})
	return c.Status(fiber.StatusCreated).JSON(v)
}

// GET /vendor/opening-hours
func (h *VendorHandler) OpeningHours(c *fiber.Ctx) error {
	hours, err := h.Vendors.OpeningHours(currentUser(c).ID)
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Restaurant not found"})
	}
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"opening_hours": hours, "hour_choices": domain.HourChoices()})
}

// POST /vendor/opening-hours
func (h *VendorHandler) AddOpeningHour(c *fiber.Ctx) error {
	var in domain.OpeningHourInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "failed", "message": "Invalid form"})
	}
	slot, err := h.Vendors.AddOpeningHour(currentUser(c).ID, in)
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "failed", "message": err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"status":  "failed",
			"message": in.FromHour + "-" + in.ToHour + " already exists for this day!",
		})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "failed", "message": "Restaurant not found"})
	case err != nil:
		return err
	}
	applog.Audit(c, "vendor.hours.add", map[string]any{"hour_id": slot.ID, "day": slot.Day})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":    "success",
		"id":        slot.ID,
		"day":       slot.DayName(),
		"from_hour": slot.FromHour,
		"to_hour":   slot.ToHour,
		"is_closed": slot.IsClosed,
	})
}

// POST /vendor/opening-hours/:id/delete
func (h *VendorHandler) RemoveOpeningHour(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "failed", "message": "Opening hour not found"})
	}
	err := h.Vendors.RemoveOpeningHour(currentUser(c).ID, id)
	if errors.Is(err, domain.ErrNotFound) {
		applog.Security(c, "vendor.hours.remove.denied", map[string]any{"hour_id": id})
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "failed", "message": "Opening hour not found"})
	}
	if err != nil {
		return err
	}
	applog.Audit(c, "vendor.hours.remove", map[string]any{"hour_id": id})
	return c.JSON(fiber.Map{"status": "success", "id": id})
}
