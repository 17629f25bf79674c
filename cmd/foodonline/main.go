package main

import (
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"foodonline/internal/config"
	"foodonline/internal/http/handlers"
	applog "foodonline/internal/log"
	"foodonline/internal/notify"
	"foodonline/internal/repos"
	"foodonline/internal/services"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			log.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	var transport notify.Transport = notify.LogTransport{}
	var amqpT *notify.AMQPTransport
	if cfg.AMQPURL != "" {
		amqpT, err = notify.DialAMQP(cfg.AMQPURL, cfg.NotifyExchange)
		if err != nil {
			log.Fatal(err)
		}
		transport = amqpT
	}
	mailer, err := notify.NewMailer(transport)
	if err != nil {
		log.Fatal(err)
	}

	userRepo := repos.NewUserRepo(db)
	authSvc := &services.AuthService{Users: userRepo}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler,
		BodyLimit:    1 << 20, // 1 MiB
	})

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(handlers.AttachUser(authSvc))
	app.Use(limiter.New(limiter.Config{Max: 60, Expiration: time.Minute}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "header:X-CSRF-Token",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   cfg.CookieSecure,
		ErrorHandler:   handlers.CSRFError,
	}))

	deps := handlers.NewDeps(db, cfg, authSvc, mailer)

	// Marketplace
	app.Get("/marketplace", deps.MarketplaceHandler.List)
	app.Get("/marketplace/search", limiter.New(limiter.Config{Max: 20, Expiration: time.Minute}), deps.MarketplaceHandler.Search)
	app.Get("/marketplace/:slug", deps.MarketplaceHandler.Detail)

	// Cart & checkout
	app.Get("/cart", handlers.RequireUser(authSvc), deps.CartHandler.View)
	app.Post("/cart/add/:food_id", deps.CartHandler.Add)
	app.Post("/cart/decrease/:food_id", deps.CartHandler.Decrease)
	app.Post("/cart/delete/:cart_id", deps.CartHandler.Delete)
	app.Get("/checkout", handlers.RequireUser(authSvc), deps.CheckoutHandler.Prepare)

	// Auth routes (login throttled)
	app.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"message": "Too many attempts. Please try again later."})
		},
	}), deps.AuthHandler.Login)
	app.Post("/logout", deps.AuthHandler.Logout)

	// Vendors
	app.Post("/vendor/register", handlers.RequireUser(authSvc), deps.VendorHandler.Register)
	vendor := app.Group("/vendor/opening-hours", handlers.RequireVendor(authSvc))
	vendor.Get("/", deps.VendorHandler.OpeningHours)
	vendor.Post("/", deps.VendorHandler.AddOpeningHour)
	vendor.Post("/:id/delete", deps.VendorHandler.RemoveOpeningHour)

	// Admin
	admin := app.Group("/admin", handlers.RequireAdmin(authSvc))
	admin.Get("/vendors", deps.AdminHandler.VendorsPage)
	admin.Post("/vendors/:id/approval", deps.AdminHandler.SetApproval)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(handlers.NotFound)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	applog.Info(nil, "server.shutdown", nil)
	if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
		applog.Error(nil, "server.shutdown.fail", err, nil)
	}
	if amqpT != nil {
		amqpT.Close()
	}
	if err := db.Close(); err != nil {
		applog.Error(nil, "db.close.fail", err, nil)
	}
}
