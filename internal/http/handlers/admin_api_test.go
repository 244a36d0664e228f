package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"isaarte/internal/config"
	"isaarte/internal/http/handlers"
	"isaarte/internal/repos"
)

func adminAPI(t *testing.T) (*fiber.App, *repos.UserRepo) {
	t.Helper()
	app, deps, db := testApp(t, config.Config{})
	userRepo := repos.NewUserRepo(db)

	admin := app.Group("/api/v1/admin", handlers.RequireAdmin(deps.Auth))
	admin.Get("/products", deps.AdminHandler.ListProducts)
	admin.Post("/products", deps.AdminHandler.CreateProduct)
	admin.Delete("/products/:id", deps.AdminHandler.DeleteProduct)
	admin.Delete("/categories/:id", deps.AdminHandler.DeleteCategory)
	admin.Put("/orders/:id/status", deps.AdminHandler.UpdateOrderStatus)
	admin.Get("/analytics/overview", deps.AdminHandler.AnalyticsOverview)
	return app, userRepo
}

func jsonReq(method, path, sid, body string) *http.Request {
	var rd *strings.Reader
	if body == "" {
		rd = strings.NewReader("")
	} else {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	}
	return req
}

func TestAdminAPIRequiresAdminRole(t *testing.T) {
	app, userRepo := adminAPI(t)

	// anonymous -> 401
	resp, err := app.Test(jsonReq("GET", "/api/v1/admin/products", "", ""))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("anon: want 401, got %d", resp.StatusCode)
	}

	// plain user -> 403
	if err := userRepo.BindSession("sid-user", "u-maria"); err != nil {
		t.Fatal(err)
	}
	resp, err = app.Test(jsonReq("GET", "/api/v1/admin/products", "sid-user", ""))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("user: want 403, got %d", resp.StatusCode)
	}

	// admin -> 200
	if err := userRepo.BindSession("sid-admin", "u-isabela"); err != nil {
		t.Fatal(err)
	}
	resp, err = app.Test(jsonReq("GET", "/api/v1/admin/products", "sid-admin", ""))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("admin: want 200, got %d", resp.StatusCode)
	}
	var list []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 8 {
		t.Fatalf("want 8 seeded products, got %d", len(list))
	}
}

func TestAdminProductCreateAndDelete(t *testing.T) {
	app, userRepo := adminAPI(t)
	if err := userRepo.BindSession("sid-admin", "u-isabela"); err != nil {
		t.Fatal(err)
	}

	body := `{"name":"Vaso Novo","category_id":"vasos","description":"Peça nova","price":99.90,"stock_quantity":7,"images":["products/novo/main.jpg"]}`
	resp, err := app.Test(jsonReq("POST", "/api/v1/admin/products", "sid-admin", body))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: want 201, got %d", resp.StatusCode)
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatal(err)
	}
	if created.ID == "" {
		t.Fatal("no id assigned")
	}

	resp, err = app.Test(jsonReq("DELETE", "/api/v1/admin/products/"+created.ID, "sid-admin", ""))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete: want 204, got %d", resp.StatusCode)
	}
}

func TestAdminCategoryDeleteInUse(t *testing.T) {
	app, userRepo := adminAPI(t)
	if err := userRepo.BindSession("sid-admin", "u-isabela"); err != nil {
		t.Fatal(err)
	}

	resp, err := app.Test(jsonReq("DELETE", "/api/v1/admin/categories/vasos", "sid-admin", ""))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("want 409 for category in use, got %d", resp.StatusCode)
	}
}

func TestAdminOrderStatusValidation(t *testing.T) {
	app, userRepo := adminAPI(t)
	if err := userRepo.BindSession("sid-admin", "u-isabela"); err != nil {
		t.Fatal(err)
	}

	resp, err := app.Test(jsonReq("PUT", "/api/v1/admin/orders/o-missing/status", "sid-admin", `{"status":"LOST"}`))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("want 400 for bad status, got %d", resp.StatusCode)
	}

	resp, err = app.Test(jsonReq("PUT", "/api/v1/admin/orders/o-missing/status", "sid-admin", `{"status":"SHIPPED"}`))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("want 404 for unknown order, got %d", resp.StatusCode)
	}
}

func TestAdminAnalyticsOverviewShape(t *testing.T) {
	app, userRepo := adminAPI(t)
	if err := userRepo.BindSession("sid-admin", "u-isabela"); err != nil {
		t.Fatal(err)
	}

	resp, err := app.Test(jsonReq("GET", "/api/v1/admin/analytics/overview", "sid-admin", ""))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	var ov map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&ov); err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"orders", "revenue", "average_order", "customers"} {
		if _, ok := ov[k]; !ok {
			t.Fatalf("overview missing %q: %v", k, ov)
		}
	}
}
