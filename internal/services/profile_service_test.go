package services_test

import (
	"testing"

	"isaarte/internal/domain"
	"isaarte/internal/kv"
	"isaarte/internal/services"
)

func TestProfileRoundTripAndDefaults(t *testing.T) {
	svc := services.NewProfileService(kv.NewMemStore())
	uid := "u-1"

	p, err := svc.Profile(uid)
	if err != nil {
		t.Fatal(err)
	}
	if p != (domain.Profile{}) {
		t.Fatalf("missing profile should be zero, got %+v", p)
	}

	want := domain.Profile{Name: "Maria Silva", Email: "maria@isaarte.test", Phone: "(11) 98765-4321", BirthDate: "1990-05-12"}
	if err := svc.SaveProfile(uid, want); err != nil {
		t.Fatal(err)
	}
	got, err := svc.Profile(uid)
	if err != nil || got != want {
		t.Fatalf("round trip: %+v %v", got, err)
	}
}

func TestAddressBookDefaultHandling(t *testing.T) {
	svc := services.NewProfileService(kv.NewMemStore())
	uid := "u-1"

	casa, err := svc.SaveAddress(uid, domain.Address{Nickname: "Casa", Street: "Rua A", Number: "10", Neighborhood: "Centro", City: "São Paulo", State: "SP", ZipCode: "01310-100"})
	if err != nil {
		t.Fatal(err)
	}
	if !casa.Default {
		t.Fatal("first address should become default")
	}

	trabalho, err := svc.SaveAddress(uid, domain.Address{Nickname: "Trabalho", Street: "Rua B", Number: "20", Neighborhood: "Pinheiros", City: "São Paulo", State: "SP", ZipCode: "05422-001"})
	if err != nil {
		t.Fatal(err)
	}
	if trabalho.Default {
		t.Fatal("second address should not steal the default")
	}

	// updating keeps the default flag
	casa.Street = "Rua A Nova"
	updated, err := svc.SaveAddress(uid, casa)
	if err != nil {
		t.Fatal(err)
	}
	if !updated.Default || updated.Street != "Rua A Nova" {
		t.Fatalf("update mangled address: %+v", updated)
	}

	if err := svc.SetDefaultAddress(uid, trabalho.ID); err != nil {
		t.Fatal(err)
	}
	addrs, _ := svc.Addresses(uid)
	for _, a := range addrs {
		if a.ID == trabalho.ID && !a.Default {
			t.Fatal("default not moved")
		}
		if a.ID == casa.ID && a.Default {
			t.Fatal("old default not cleared")
		}
	}

	// deleting the default promotes another address
	if err := svc.DeleteAddress(uid, trabalho.ID); err != nil {
		t.Fatal(err)
	}
	addrs, _ = svc.Addresses(uid)
	if len(addrs) != 1 || !addrs[0].Default {
		t.Fatalf("default not reassigned: %+v", addrs)
	}
}

func TestPreferencesDefaults(t *testing.T) {
	svc := services.NewProfileService(kv.NewMemStore())
	uid := "u-1"

	p, err := svc.Preferences(uid)
	if err != nil {
		t.Fatal(err)
	}
	if p != domain.DefaultPreferences() {
		t.Fatalf("want defaults, got %+v", p)
	}
	if p.EmailMarketing || !p.OrderUpdates || !p.PasswordChanges {
		t.Fatalf("unexpected defaults: %+v", p)
	}

	p.EmailMarketing = true
	p.OrderUpdates = false
	if err := svc.SavePreferences(uid, p); err != nil {
		t.Fatal(err)
	}
	got, _ := svc.Preferences(uid)
	if got != p {
		t.Fatalf("round trip: %+v", got)
	}
}
