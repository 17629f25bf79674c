package handlers

import (
	"errors"

	"foodonline/internal/domain"
	"foodonline/internal/geo"
	applog "foodonline/internal/log"
	"foodonline/internal/services"
	"foodonline/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type MarketplaceHandler struct {
	Market *services.MarketplaceService
}

// GET /marketplace
func (h *MarketplaceHandler) List(c *fiber.Ctx) error {
	vendors, err := h.Market.ListVendors()
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"vendors": vendors, "vendor_count": len(vendors)})
}

// GET /marketplace/:slug
func (h *MarketplaceHandler) Detail(c *fiber.Ctx) error {
	slug, ok := validate.Slug(c.Params("slug"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Restaurant not found"})
	}
	userID := ""
	if u := currentUser(c); u != nil {
		userID = u.ID
	}
	d, err := h.Market.VendorDetail(slug, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Restaurant not found"})
	}
	if err != nil {
		return err
	}
	body := fiber.Map{
		"vendor":                d.Vendor,
		"categories":            d.Categories,
		"opening_hours":         d.OpeningHours,
		"current_opening_hours": d.TodayHours,
		"is_open":               d.IsOpen,
	}
	if d.Cart != nil {
		body["cart_items"] = cartItems(d.Cart)
	}
	return c.JSON(body)
}

// GET /marketplace/search?rest_name=&address=&lat=&lng=&radius=
func (h *MarketplaceHandler) Search(c *fiber.Ctx) error {
	name, ok := validate.Q(c.Query("rest_name"))
	if !ok {
		applog.Security(c, "search.invalid", map[string]any{"rest_name": c.Query("rest_name")})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid search"})
	}
	p := services.SearchParams{Name: name, Address: c.Query("address")}

	lat, lng, radius := c.Query("lat"), c.Query("lng"), c.Query("radius")
	if lat != "" || lng != "" || radius != "" {
		la, okLat := validate.Coord(lat, 90)
		ln, okLng := validate.Coord(lng, 180)
		r, okR := validate.Radius(radius)
		if !okLat || !okLng || !okR {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Location needs valid lat, lng and radius"})
		}
		p.Near = &geo.Point{Lat: la, Lng: ln}
		p.RadiusKm = r
	}

	vendors, err := h.Market.Search(p)
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid search"})
	}
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"vendors": vendors, "vendor_count": len(vendors), "location": p.Address})
}
