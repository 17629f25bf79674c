package handlers

import (
	"errors"
	"strconv"

	"foodonline/internal/domain"
	applog "foodonline/internal/log"
	"foodonline/internal/services"
	"foodonline/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	Vendors *services.VendorService
}

// GET /admin/vendors
func (h *AdminHandler) VendorsPage(c *fiber.Ctx) error {
	vs, err := h.Vendors.Vendors.ListAll()
	if err != nil {
		applog.Error(c, "admin.vendors.list.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Could not load vendors"})
	}
	return c.JSON(fiber.Map{"vendors": vs, "vendor_count": len(vs)})
}

// POST /admin/vendors/:id/approval
func (h *AdminHandler) SetApproval(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "missing id"})
	}
	approved, err := strconv.ParseBool(c.FormValue("is_approved"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "is_approved must be true or false"})
	}
	v, err := h.Vendors.SetApproval(c.UserContext(), id, approved)
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Vendor not found"})
	}
	if err != nil {
		applog.Error(c, "admin.vendors.approval.fail", err, map[string]any{"vendor_id": id})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Could not update vendor"})
	}
	applog.Audit(c, "admin.vendors.approval", map[string]any{"vendor_id": id, "is_approved": approved})
	return c.JSON(v)
}
