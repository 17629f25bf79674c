package handlers_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jmoiron/sqlx"

	"foodonline/internal/config"
	"foodonline/internal/http/handlers"
	"foodonline/internal/repos"
	"foodonline/internal/services"
)

type sentMail struct {
	To, Subject, Template string
	Data                  map[string]any
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentMail
}

func (r *recordingNotifier) Send(_ context.Context, to, subject, template string, data map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, sentMail{To: to, Subject: subject, Template: template, Data: data})
	return nil
}

type testEnv struct {
	app   *fiber.App
	db    *sqlx.DB
	users *repos.UserRepo
	mail  *recordingNotifier
}

// newTestApp wires the real routes over a seeded in-memory database. CSRF and the
// global limiter are left out; they are exercised separately.
func newTestApp(t *testing.T) *testEnv {
	t.Helper()
	cfg := config.Config{DBDSN: ":memory:"}
	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	userRepo := repos.NewUserRepo(db)
	authSvc := &services.AuthService{Users: userRepo}
	mail := &recordingNotifier{}

	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler, BodyLimit: 1 << 20})
	app.Use(requestid.New())
	app.Use(handlers.AttachUser(authSvc))

	deps := handlers.NewDeps(db, cfg, authSvc, mail)
	app.Get("/marketplace", deps.MarketplaceHandler.List)
	app.Get("/marketplace/search", deps.MarketplaceHandler.Search)
	app.Get("/marketplace/:slug", deps.MarketplaceHandler.Detail)
	app.Get("/cart", handlers.RequireUser(authSvc), deps.CartHandler.View)
	app.Post("/cart/add/:food_id", deps.CartHandler.Add)
	app.Post("/cart/decrease/:food_id", deps.CartHandler.Decrease)
	app.Post("/cart/delete/:cart_id", deps.CartHandler.Delete)
	app.Get("/checkout", handlers.RequireUser(authSvc), deps.CheckoutHandler.Prepare)
	app.Post("/login", deps.AuthHandler.Login)
	app.Post("/logout", deps.AuthHandler.Logout)
	app.Post("/vendor/register", handlers.RequireUser(authSvc), deps.VendorHandler.Register)
	vendor := app.Group("/vendor/opening-hours", handlers.RequireVendor(authSvc))
	vendor.Get("/", deps.VendorHandler.OpeningHours)
	vendor.Post("/", deps.VendorHandler.AddOpeningHour)
	vendor.Post("/:id/delete", deps.VendorHandler.RemoveOpeningHour)
	admin := app.Group("/admin", handlers.RequireAdmin(authSvc))
	admin.Get("/vendors", deps.AdminHandler.VendorsPage)
	admin.Post("/vendors/:id/approval", deps.AdminHandler.SetApproval)
	app.Use(handlers.NotFound)

	for sid, uid := range map[string]string{
		"sid-alice": "u-alice",
		"sid-bob":   "u-bob",
		"sid-ravi":  "u-ravi",
		"sid-admin": "u-admin",
	} {
		if err := userRepo.BindSession(sid, uid); err != nil {
			t.Fatalf("bind %s: %v", sid, err)
		}
	}
	return &testEnv{app: app, db: db, users: userRepo, mail: mail}
}

type reqOpt func(*http.Request)

func as(sid string) reqOpt {
	return func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "sid", Value: sid}) }
}

func xhr(r *http.Request) { r.Header.Set("X-Requested-With", "XMLHttpRequest") }

func (e *testEnv) do(t *testing.T, method, target string, form url.Values, opts ...reqOpt) *http.Response {
	t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, o := range opts {
		o(req)
	}
	resp, err := e.app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, target, err)
	}
	return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode body: %v", err)
	}
}

func wantStatus(t *testing.T, resp *http.Response, code int) {
	t.Helper()
	if resp.StatusCode != code {
		b, _ := io.ReadAll(resp.Body)
		t.Fatalf("want %d, got %d body=%s", code, resp.StatusCode, b)
	}
}
