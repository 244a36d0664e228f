package cep_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"isaarte/internal/cep"
)

func TestLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ws/01310100/json/":
			w.Write([]byte(`{"cep":"01310-100","logradouro":"Avenida Paulista","bairro":"Bela Vista","localidade":"São Paulo","uf":"SP"}`))
		case "/ws/99999999/json/":
			w.Write([]byte(`{"erro":true}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	c := cep.NewClient(srv.URL)

	addr, err := c.Lookup(context.Background(), "01310-100")
	if err != nil {
		t.Fatal(err)
	}
	if addr.Street != "Avenida Paulista" || addr.City != "São Paulo" || addr.State != "SP" {
		t.Fatalf("bad address: %+v", addr)
	}

	if _, err := c.Lookup(context.Background(), "99999999"); !errors.Is(err, cep.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}

	if _, err := c.Lookup(context.Background(), "123"); err == nil {
		t.Fatal("short code accepted")
	}

	// upstream failure is an error, not a zero address
	if _, err := c.Lookup(context.Background(), "00000000"); err == nil {
		t.Fatal("server error swallowed")
	}
}

func TestFormatCEP(t *testing.T) {
	if got := cep.FormatCEP("01310100"); got != "01310-100" {
		t.Fatalf("got %q", got)
	}
	if got := cep.FormatCEP("013"); got != "013" {
		t.Fatalf("partial input mangled: %q", got)
	}
}

func TestFormatPhone(t *testing.T) {
	if got := cep.FormatPhone("11987654321"); got != "(11) 98765-4321" {
		t.Fatalf("got %q", got)
	}
	if got := cep.FormatPhone("119"); got != "(11) 9" {
		t.Fatalf("got %q", got)
	}
	if got := cep.FormatPhone("1"); got != "1" {
		t.Fatalf("got %q", got)
	}
}
