package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"isaarte/internal/config"
)

func TestCepLookupEndpoint(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ws/01310100/json/":
			w.Write([]byte(`{"cep":"01310-100","logradouro":"Avenida Paulista","bairro":"Bela Vista","localidade":"São Paulo","uf":"SP"}`))
		case "/ws/99999999/json/":
			w.Write([]byte(`{"erro":true}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer upstream.Close()

	app, deps, _ := testApp(t, config.Config{CepBaseURL: upstream.URL})
	app.Get("/api/v1/cep/:code", deps.ProfileHandler.CepLookup)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/cep/01310-100", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	var addr struct {
		Street string `json:"street"`
		City   string `json:"city"`
		State  string `json:"state"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&addr); err != nil {
		t.Fatal(err)
	}
	if addr.Street != "Avenida Paulista" || addr.City != "São Paulo" || addr.State != "SP" {
		t.Fatalf("bad payload: %+v", addr)
	}

	// malformed code
	resp, _ = app.Test(httptest.NewRequest("GET", "/api/v1/cep/123", nil))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", resp.StatusCode)
	}

	// unknown code
	resp, _ = app.Test(httptest.NewRequest("GET", "/api/v1/cep/99999999", nil))
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("want 404, got %d", resp.StatusCode)
	}

	// upstream failure
	resp, _ = app.Test(httptest.NewRequest("GET", "/api/v1/cep/00000000", nil))
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("want 502, got %d", resp.StatusCode)
	}
}
