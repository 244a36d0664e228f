package repos_test

import (
	"math"
	"testing"

	"isaarte/internal/domain"
	"isaarte/internal/repos"
)

func close2(a, b float64) bool { return math.Abs(a-b) < 0.005 }

func memdb(t *testing.T) *repos.ProductRepo {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	return repos.NewProductRepo(db)
}

func TestDecrementStockAtomic(t *testing.T) {
	prods := memdb(t)

	// seeded p-007 has 3 units
	if err := prods.DecrementStock("p-007", 2); err != nil {
		t.Fatal(err)
	}
	p, err := prods.Get("p-007")
	if err != nil {
		t.Fatal(err)
	}
	if p.StockQuantity != 1 {
		t.Fatalf("want 1, got %d", p.StockQuantity)
	}

	if err := prods.DecrementStock("p-007", 2); err != repos.ErrInsufficientStock {
		t.Fatalf("want ErrInsufficientStock, got %v", err)
	}
	// the failed decrement must not touch the row
	p, _ = prods.Get("p-007")
	if p.StockQuantity != 1 {
		t.Fatalf("failed decrement changed stock to %d", p.StockQuantity)
	}
}

func TestCategoryDeleteRefusedWhileInUse(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	cats := repos.NewCategoryRepo(db)

	if err := cats.Delete("vasos"); err != repos.ErrCategoryInUse {
		t.Fatalf("want ErrCategoryInUse, got %v", err)
	}

	if err := cats.Create(domain.Category{ID: "luminarias", Name: "Luminárias", Description: "Luminárias em gesso"}); err != nil {
		t.Fatal(err)
	}
	if err := cats.Delete("luminarias"); err != nil {
		t.Fatalf("empty category should delete: %v", err)
	}
}

func TestOrderAnalyticsExcludeCanceled(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	orders := repos.NewOrderRepo(db)

	place := func(id string, total float64) {
		t.Helper()
		h := repos.Header{
			ID: id, SessionID: "s-" + id, CustomerName: "Maria", CustomerEmail: "m@e.com",
			ShippingOption: "standard", ShippingCost: 15.90,
			PaymentMethod: "pix", Subtotal: total - 15.90, Total: total,
		}
		if err := orders.Create(h); err != nil {
			t.Fatal(err)
		}
		if err := orders.InsertItem(id, "p-001", "Vaso Orgânico Ondulado", 1, total-15.90); err != nil {
			t.Fatal(err)
		}
	}
	place("o-1", 100)
	place("o-2", 200)
	place("o-3", 300)
	if err := orders.UpdateStatus("o-3", "CANCELED"); err != nil {
		t.Fatal(err)
	}

	ov, err := orders.GetOverview()
	if err != nil {
		t.Fatal(err)
	}
	if ov.Orders != 2 || !close2(ov.Revenue, 300) || !close2(ov.AverageOrder, 150) {
		t.Fatalf("bad overview: %+v", ov)
	}

	months, err := orders.MonthlyRevenue(12)
	if err != nil {
		t.Fatal(err)
	}
	if len(months) != 1 || months[0].Orders != 2 || !close2(months[0].Revenue, 300) {
		t.Fatalf("bad monthly revenue: %+v", months)
	}

	top, err := orders.TopProducts(5)
	if err != nil {
		t.Fatal(err)
	}
	if len(top) != 1 || top[0].ProductID != "p-001" || top[0].Units != 2 {
		t.Fatalf("bad top products: %+v", top)
	}
}

func TestDeleteUserCascade(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	users := repos.NewUserRepo(db)
	orders := repos.NewOrderRepo(db)

	sid := "sess-cascade"
	if err := users.BindSession(sid, "u-maria"); err != nil {
		t.Fatal(err)
	}
	if err := orders.Create(repos.Header{ID: "o-c1", SessionID: sid, CustomerName: "Maria", CustomerEmail: "m@e.com", ShippingOption: "standard", PaymentMethod: "pix", Total: 100}); err != nil {
		t.Fatal(err)
	}
	db.MustExec(`INSERT INTO kv(key, value) VALUES('cart:`+sid+`', '{}'), ('profile:u-maria', '{}')`)

	if err := users.DeleteUserCascade("u-maria"); err != nil {
		t.Fatal(err)
	}

	if _, err := users.ByID("u-maria"); err == nil {
		t.Fatal("user row survived")
	}
	if u, _ := users.SessionUser(sid); u != nil {
		t.Fatal("session survived")
	}
	o, _, err := orders.Get("o-c1")
	if err != nil {
		t.Fatal(err)
	}
	if o.Status != "CANCELED" {
		t.Fatalf("order not canceled: %s", o.Status)
	}
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM kv WHERE key IN ('cart:`+sid+`', 'profile:u-maria')`); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("kv state survived: %d rows", n)
	}
}
