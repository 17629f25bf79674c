package handlers_test

import (
	"net/http"
	"strconv"
	"testing"
)

type cartEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Qty     int    `json:"qty"`
	Counter int    `json:"cart_counter"`
	Amount  string `json:"cart_amount"`
}

func cartCall(t *testing.T, e *testEnv, path string, opts ...reqOpt) (int, cartEnvelope) {
	t.Helper()
	resp := e.do(t, "POST", path, nil, opts...)
	var env cartEnvelope
	decode(t, resp, &env)
	return resp.StatusCode, env
}

func TestCartRequiresLogin(t *testing.T) {
	e := newTestApp(t)
	for _, p := range []string{"/cart/add/1", "/cart/decrease/1", "/cart/delete/1"} {
		code, env := cartCall(t, e, p, xhr)
		if code != http.StatusUnauthorized || env.Status != "login_required" || env.Message != "Please login to continue" {
			t.Fatalf("%s: got %d %+v", p, code, env)
		}
	}
}

func TestCartRejectsNonXHR(t *testing.T) {
	e := newTestApp(t)
	code, env := cartCall(t, e, "/cart/add/1", as("sid-alice"))
	if code != http.StatusBadRequest || env.Status != "Failed" || env.Message != "Invalid request" {
		t.Fatalf("got %d %+v", code, env)
	}
	var view struct {
		Counter int `json:"cart_counter"`
	}
	decode(t, e.do(t, "GET", "/cart", nil, as("sid-alice")), &view)
	if view.Counter != 0 {
		t.Fatalf("rejected call changed the cart: %d lines", view.Counter)
	}
}

func TestCartAddDecreaseFlow(t *testing.T) {
	e := newTestApp(t)
	alice := as("sid-alice")

	_, env := cartCall(t, e, "/cart/add/1", alice, xhr)
	if env.Status != "Success" || env.Message != "Added the food to the cart" || env.Qty != 1 || env.Counter != 1 || env.Amount != "12.50" {
		t.Fatalf("first add: %+v", env)
	}
	_, env = cartCall(t, e, "/cart/add/1", alice, xhr)
	if env.Message != "Increased cart quantity" || env.Qty != 2 || env.Counter != 1 || env.Amount != "25.00" {
		t.Fatalf("second add: %+v", env)
	}
	_, env = cartCall(t, e, "/cart/add/3", alice, xhr)
	if env.Counter != 2 || env.Amount != "28.25" {
		t.Fatalf("other item: %+v", env)
	}

	_, env = cartCall(t, e, "/cart/decrease/1", alice, xhr)
	if env.Status != "Success" || env.Qty != 1 || env.Amount != "15.75" {
		t.Fatalf("decrease: %+v", env)
	}
	_, env = cartCall(t, e, "/cart/decrease/1", alice, xhr)
	if env.Qty != 0 || env.Counter != 1 || env.Amount != "3.25" {
		t.Fatalf("decrease to zero: %+v", env)
	}
	code, env := cartCall(t, e, "/cart/decrease/1", alice, xhr)
	if code != http.StatusNotFound || env.Message != "You do not have this item in your cart" {
		t.Fatalf("decrease missing: %d %+v", code, env)
	}
}

func TestCartUnknownFood(t *testing.T) {
	e := newTestApp(t)
	for _, p := range []string{"/cart/add/999", "/cart/decrease/999", "/cart/add/abc"} {
		code, env := cartCall(t, e, p, as("sid-alice"), xhr)
		if code != http.StatusNotFound || env.Status != "Failed" || env.Message != "This food does not exist" {
			t.Fatalf("%s: %d %+v", p, code, env)
		}
	}
}

func TestCartDeleteScopedToOwner(t *testing.T) {
	e := newTestApp(t)
	cartCall(t, e, "/cart/add/2", as("sid-alice"), xhr)
	cartCall(t, e, "/cart/add/2", as("sid-alice"), xhr)

	var view struct {
		Items []struct {
			ID       int64  `json:"id"`
			Quantity int    `json:"quantity"`
			Subtotal string `json:"subtotal"`
		} `json:"cart_items"`
	}
	decode(t, e.do(t, "GET", "/cart", nil, as("sid-alice")), &view)
	if len(view.Items) != 1 || view.Items[0].Quantity != 2 || view.Items[0].Subtotal != "20.00" {
		t.Fatalf("cart view: %+v", view)
	}
	path := "/cart/delete/" + strconv.FormatInt(view.Items[0].ID, 10)

	code, env := cartCall(t, e, path, as("sid-bob"), xhr)
	if code != http.StatusNotFound || env.Message != "Cart item does not exist" {
		t.Fatalf("foreign delete: %d %+v", code, env)
	}

	_, env = cartCall(t, e, path, as("sid-alice"), xhr)
	if env.Status != "Success" || env.Counter != 0 || env.Amount != "0.00" {
		t.Fatalf("owner delete: %+v", env)
	}
}
