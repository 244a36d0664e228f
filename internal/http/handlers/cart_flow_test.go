package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"isaarte/internal/config"
)

func TestCartAddClampAndDiscountFlow(t *testing.T) {
	app, deps, _ := testApp(t, config.Config{})
	app.Get("/cart", deps.CartHandler.View)
	app.Post("/cart", deps.CartHandler.Add)
	app.Post("/cart/discount", deps.CartHandler.ApplyDiscount)

	// fetch csrf token
	resp, err := app.Test(httptest.NewRequest("GET", "/cart", nil))
	if err != nil {
		t.Fatal(err)
	}
	csrfTok := cookieValue(resp, "csrf_")
	if csrfTok == "" {
		t.Fatal("csrf token missing")
	}
	sid := cookieValue(resp, "sid")
	if sid == "" {
		t.Fatal("sid not minted")
	}

	// seeded p-007 has 3 units; a fourth add must be rejected with a flash
	for i := 0; i < 3; i++ {
		resp, err = app.Test(form("/cart", csrfTok, sid, map[string]string{"productId": "p-007"}))
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusFound {
			t.Fatalf("add %d: want 302, got %d", i, resp.StatusCode)
		}
	}
	resp, err = app.Test(form("/cart", csrfTok, sid, map[string]string{"productId": "p-007"}))
	if err != nil {
		t.Fatal(err)
	}
	flash, _ := url.QueryUnescape(cookieValue(resp, "flash"))
	if flash == "" || !containsInsensitive(flash, "estoque insuficiente") {
		t.Fatalf("want stock flash, got %q", flash)
	}

	// unknown coupon flash
	resp, err = app.Test(form("/cart/discount", csrfTok, sid, map[string]string{"code": "NADA"}))
	if err != nil {
		t.Fatal(err)
	}
	flash, _ = url.QueryUnescape(cookieValue(resp, "flash"))
	if !containsInsensitive(flash, "cupom inválido") {
		t.Fatalf("want invalid coupon flash, got %q", flash)
	}

	// valid coupon
	resp, err = app.Test(form("/cart/discount", csrfTok, sid, map[string]string{"code": "PROMO10"}))
	if err != nil {
		t.Fatal(err)
	}
	flash, _ = url.QueryUnescape(cookieValue(resp, "flash"))
	if !containsInsensitive(flash, "PROMO10 aplicado") {
		t.Fatalf("want applied flash, got %q", flash)
	}
}

func TestCartAddUnknownProduct(t *testing.T) {
	app, deps, _ := testApp(t, config.Config{})
	app.Get("/cart", deps.CartHandler.View)
	app.Post("/cart", deps.CartHandler.Add)

	resp, _ := app.Test(httptest.NewRequest("GET", "/cart", nil))
	csrfTok := cookieValue(resp, "csrf_")
	sid := cookieValue(resp, "sid")

	resp, err := app.Test(form("/cart", csrfTok, sid, map[string]string{"productId": "missing"}))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("want 404 for unknown product, got %d", resp.StatusCode)
	}
}
