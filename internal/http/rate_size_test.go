package handlers_test

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"foodonline/internal/config"
	"foodonline/internal/http/handlers"
	"foodonline/internal/repos"
	"foodonline/internal/services"
)

// Minimal app with the production guards: limiter, body size and CSRF header lookup.
func newGuardedApp(t *testing.T) *fiber.App {
	t.Helper()
	cfg := config.Config{DBDSN: ":memory:"}
	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	userRepo := repos.NewUserRepo(db)
	authSvc := &services.AuthService{Users: userRepo}
	if err := userRepo.BindSession("sid-alice", "u-alice"); err != nil {
		t.Fatal(err)
	}

	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler, BodyLimit: 1 << 20})
	app.Use(handlers.AttachUser(authSvc))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "header:X-CSRF-Token",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		ErrorHandler:   handlers.CSRFError,
	}))

	deps := handlers.NewDeps(db, cfg, authSvc, &recordingNotifier{})
	app.Get("/marketplace", deps.MarketplaceHandler.List)
	app.Get("/marketplace/search", limiter.New(limiter.Config{Max: 3, Expiration: time.Second}), deps.MarketplaceHandler.Search)
	app.Post("/cart/add/:food_id", deps.CartHandler.Add)
	app.Post("/cart/decrease/:food_id", deps.CartHandler.Decrease)
	app.Post("/cart/delete/:cart_id", deps.CartHandler.Delete)
	return app
}

func TestSearchRateLimit(t *testing.T) {
	app := newGuardedApp(t)
	for i := 0; i < 4; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", "/marketplace/search?rest_name=naan", nil))
		if err != nil {
			t.Fatal(err)
		}
		if i < 3 && resp.StatusCode == http.StatusTooManyRequests {
			t.Fatalf("hit rate limit too early at %d", i)
		}
		if i == 3 && resp.StatusCode != http.StatusTooManyRequests {
			t.Fatalf("expected 429 after limit, got %d", resp.StatusCode)
		}
	}
}

func csrfToken(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", "/marketplace", nil))
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range resp.Cookies() {
		if c.Name == "csrf_" {
			return c.Value
		}
	}
	t.Fatal("csrf token missing")
	return ""
}

func TestCartNeedsCSRFHeader(t *testing.T) {
	app := newGuardedApp(t)
	tok := csrfToken(t, app)

	req := httptest.NewRequest("POST", "/cart/add/1", nil)
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	req.AddCookie(&http.Cookie{Name: "sid", Value: "sid-alice"})
	req.AddCookie(&http.Cookie{Name: "csrf_", Value: tok})
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("missing header: want 403, got %d", resp.StatusCode)
	}
	var env cartEnvelope
	decode(t, resp, &env)
	if env.Status != "Failed" || env.Message == "" {
		t.Fatalf("missing header: want a Failed envelope, got %+v", env)
	}

	req = httptest.NewRequest("POST", "/cart/add/1", nil)
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	req.Header.Set("X-CSRF-Token", tok)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "sid-alice"})
	req.AddCookie(&http.Cookie{Name: "csrf_", Value: tok})
	resp, _ = app.Test(req)
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("with header: want 200, got %d body=%s", resp.StatusCode, body)
	}
}

func TestBodySizeLimit(t *testing.T) {
	app := newGuardedApp(t)
	tok := csrfToken(t, app)

	oversize := bytes.Repeat([]byte("A"), (1<<20)+10)
	req := httptest.NewRequest("POST", "/cart/add/1", bytes.NewReader(oversize))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-CSRF-Token", tok)
	req.AddCookie(&http.Cookie{Name: "csrf_", Value: tok})
	resp, err := app.Test(req)
	// Fiber returns an error instead of a response when body too large; treat that as pass
	if err != nil {
		if strings.Contains(err.Error(), "body size exceeds") || strings.Contains(err.Error(), "too large") {
			return
		}
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusRequestEntityTooLarge {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected 413 for oversize, got %d body=%s", resp.StatusCode, string(body))
	}
}

func TestCSRFRejectionKeepsCartEnvelope(t *testing.T) {
	app := newGuardedApp(t)

	// anonymous XHR without any token
	req := httptest.NewRequest("POST", "/cart/add/1", nil)
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("want 401, got %d", resp.StatusCode)
	}
	var env cartEnvelope
	decode(t, resp, &env)
	if env.Status != "login_required" || env.Message != "Please login to continue" {
		t.Fatalf("want login_required envelope, got %+v", env)
	}

	for _, p := range []string{"/cart/decrease/1", "/cart/delete/1"} {
		req := httptest.NewRequest("POST", p, nil)
		req.Header.Set("X-Requested-With", "XMLHttpRequest")
		resp, _ := app.Test(req)
		var env cartEnvelope
		decode(t, resp, &env)
		if env.Status != "login_required" {
			t.Fatalf("%s: want login_required, got %d %+v", p, resp.StatusCode, env)
		}
	}
}
