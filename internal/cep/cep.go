// Package cep looks up Brazilian postal codes against the public ViaCEP
// service and carries the input masks the address forms use.
package cep

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrNotFound means the service answered but knows no such postal code.
var ErrNotFound = errors.New("cep: not found")

// Address is the lookup result with field names the profile forms use.
type Address struct {
	CEP          string `json:"cep"`
	Street       string `json:"street"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 5 * time.Second},
	}
}

// viaCEP's wire format; erro=true marks an unknown code.
type wireAddress struct {
	CEP         string `json:"cep"`
	Logradouro  string `json:"logradouro"`
	Complemento string `json:"complemento"`
	Bairro      string `json:"bairro"`
	Localidade  string `json:"localidade"`
	UF          string `json:"uf"`
	Erro        bool   `json:"erro"`
}

// Lookup resolves an 8-digit postal code. The caller validates the format.
func (c *Client) Lookup(ctx context.Context, code string) (Address, error) {
	code = Digits(code)
	if len(code) != 8 {
		return Address{}, fmt.Errorf("cep: want 8 digits, got %q", code)
	}

	url := fmt.Sprintf("%s/ws/%s/json/", c.BaseURL, code)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Address{}, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return Address{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Address{}, fmt.Errorf("cep: lookup returned %d", resp.StatusCode)
	}

	var w wireAddress
	if err := json.NewDecoder(resp.Body).Decode(&w); err != nil {
		return Address{}, err
	}
	if w.Erro {
		return Address{}, ErrNotFound
	}

	return Address{
		CEP:          w.CEP,
		Street:       w.Logradouro,
		Complement:   w.Complemento,
		Neighborhood: w.Bairro,
		City:         w.Localidade,
		State:        w.UF,
	}, nil
}

// Digits strips everything but 0-9.
func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatCEP renders the 00000-000 mask.
func FormatCEP(s string) string {
	d := Digits(s)
	if len(d) > 8 {
		d = d[:8]
	}
	if len(d) > 5 {
		return d[:5] + "-" + d[5:]
	}
	return d
}

// FormatPhone renders the (00) 00000-0000 mask for partial or full input.
func FormatPhone(s string) string {
	d := Digits(s)
	if len(d) > 11 {
		d = d[:11]
	}
	switch {
	case len(d) > 7:
		return "(" + d[:2] + ") " + d[2:7] + "-" + d[7:]
	case len(d) > 2:
		return "(" + d[:2] + ") " + d[2:]
	default:
		return d
	}
}
