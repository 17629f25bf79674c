package handlers

import (
	"foodonline/internal/config"
	"foodonline/internal/repos"
	"foodonline/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	AuthHandler        *AuthHandler
	MarketplaceHandler *MarketplaceHandler
	CartHandler        *CartHandler
	CheckoutHandler    *CheckoutHandler
	VendorHandler      *VendorHandler
	AdminHandler       *AdminHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, auth *services.AuthService, n services.Notifier) *Deps {
	userRepo := auth.Users
	vendorRepo := repos.NewVendorRepo(db)
	hourRepo := repos.NewOpeningHourRepo(db)
	menuRepo := repos.NewMenuRepo(db)
	cartRepo := repos.NewCartRepo(db)

	cartSvc := services.NewCartService(cartRepo, menuRepo)
	marketSvc := services.NewMarketplaceService(vendorRepo, hourRepo, menuRepo, cartRepo)
	checkoutSvc := services.NewCheckoutService(cartRepo, userRepo)
	vendorSvc := services.NewVendorService(vendorRepo, hourRepo, userRepo, n)

	return &Deps{
		AuthHandler:        &AuthHandler{Auth: auth, SecureCookie: cfg.CookieSecure},
		MarketplaceHandler: &MarketplaceHandler{Market: marketSvc},
		CartHandler:        &CartHandler{Cart: cartSvc},
		CheckoutHandler:    &CheckoutHandler{Checkout: checkoutSvc},
		VendorHandler:      &VendorHandler{Vendors: vendorSvc},
		AdminHandler:       &AdminHandler{Vendors: vendorSvc},
	}
}
