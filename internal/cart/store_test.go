package cart_test

import (
	"testing"

	"isaarte/internal/cart"
	"isaarte/internal/kv"
)

func TestStorePersistsAcrossLoads(t *testing.T) {
	s := cart.NewStore(kv.NewMemStore())
	sid := "sess-1"

	if _, err := s.Add(sid, vaso(5)); err != nil {
		t.Fatal(err)
	}
	if _, err := s.ApplyDiscount(sid, "PROMO10"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetShipping(sid, cart.ShippingExpress); err != nil {
		t.Fatal(err)
	}

	c, err := s.Load(sid)
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Items) != 1 || c.Items[0].ID != "p-001" {
		t.Fatalf("items not persisted: %+v", c.Items)
	}
	if c.DiscountCode != "PROMO10" || c.Shipping != cart.ShippingExpress {
		t.Fatalf("state not persisted: %+v", c)
	}
}

func TestStoreLoadMissingReturnsFreshCart(t *testing.T) {
	s := cart.NewStore(kv.NewMemStore())
	c, err := s.Load("never-seen")
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Items) != 0 || c.Shipping != cart.ShippingStandard {
		t.Fatalf("fresh cart expected: %+v", c)
	}
}

func TestStoreSessionsAreIsolated(t *testing.T) {
	s := cart.NewStore(kv.NewMemStore())
	if _, err := s.Add("a", vaso(5)); err != nil {
		t.Fatal(err)
	}
	cb, err := s.Load("b")
	if err != nil {
		t.Fatal(err)
	}
	if len(cb.Items) != 0 {
		t.Fatalf("session b sees session a's cart: %+v", cb.Items)
	}
}

func TestToggleSaveAndUserMirror(t *testing.T) {
	store := kv.NewMemStore()
	s := cart.NewStore(store)

	n, err := s.ToggleSave("sess-1", "", "p-001", false)
	if err != nil {
		t.Fatal(err)
	}
	if n.Message != "Item salvo nos favoritos!" {
		t.Fatalf("unexpected message: %q", n.Message)
	}
	if !s.IsSaved("sess-1", "p-001") {
		t.Fatal("item not saved")
	}

	// toggling again removes and silent suppresses the message
	n, err = s.ToggleSave("sess-1", "", "p-001", true)
	if err != nil {
		t.Fatal(err)
	}
	if n.Message != "" {
		t.Fatalf("silent toggle should carry no message: %q", n.Message)
	}
	if s.IsSaved("sess-1", "p-001") {
		t.Fatal("item still saved after toggle off")
	}

	// logged-in toggles mirror into the user bucket
	if _, err := s.ToggleSave("sess-1", "u-1", "p-002", true); err != nil {
		t.Fatal(err)
	}
	var ids []string
	if err := kv.GetJSON(store, "favorites:user:u-1", &ids); err != nil {
		t.Fatal(err)
	}
	if len(ids) != 1 || ids[0] != "p-002" {
		t.Fatalf("user bucket not mirrored: %v", ids)
	}
}

func TestHandleLoginLoadsUserFavorites(t *testing.T) {
	store := kv.NewMemStore()
	s := cart.NewStore(store)

	// user saved p-009 in an earlier session
	if err := kv.SetJSON(store, "favorites:user:u-1", []string{"p-009"}); err != nil {
		t.Fatal(err)
	}
	// anonymous favorites in the new session are replaced, not merged
	if _, err := s.ToggleSave("sess-2", "", "p-001", true); err != nil {
		t.Fatal(err)
	}

	if err := s.HandleLogin("sess-2", "u-1"); err != nil {
		t.Fatal(err)
	}
	favs := s.Favorites("sess-2")
	if len(favs) != 1 || favs[0] != "p-009" {
		t.Fatalf("want user favorites after login, got %v", favs)
	}
}

func TestHandleLoginWithoutUserBucketKeepsSession(t *testing.T) {
	s := cart.NewStore(kv.NewMemStore())
	if _, err := s.ToggleSave("sess-3", "", "p-001", true); err != nil {
		t.Fatal(err)
	}
	if err := s.HandleLogin("sess-3", "u-new"); err != nil {
		t.Fatal(err)
	}
	if favs := s.Favorites("sess-3"); len(favs) != 1 {
		t.Fatalf("session favorites lost: %v", favs)
	}
}

func TestHandleLogoutDropsSessionAndUserState(t *testing.T) {
	store := kv.NewMemStore()
	s := cart.NewStore(store)
	sid := "sess-4"

	if _, err := s.Add(sid, vaso(5)); err != nil {
		t.Fatal(err)
	}
	if _, err := s.ToggleSave(sid, "u-1", "p-001", true); err != nil {
		t.Fatal(err)
	}

	if err := s.HandleLogout(sid, "u-1"); err != nil {
		t.Fatal(err)
	}
	c, err := s.Load(sid)
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Items) != 0 {
		t.Fatalf("cart survived logout: %+v", c.Items)
	}
	if favs := s.Favorites(sid); len(favs) != 0 {
		t.Fatalf("favorites survived logout: %v", favs)
	}
	if _, err := store.Get("favorites:user:u-1"); err != kv.ErrNotFound {
		t.Fatalf("user bucket survived logout: %v", err)
	}
}
