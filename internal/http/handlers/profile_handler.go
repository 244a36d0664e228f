package handlers

import (
	"errors"

	"isaarte/internal/cep"
	"isaarte/internal/domain"
	applog "isaarte/internal/log"
	"isaarte/internal/services"
	"isaarte/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ProfileHandler struct {
	Auth    *services.AuthService
	Profile *services.ProfileService
	Cep     *cep.Client
}

func mustUser(c *fiber.Ctx) *domain.User {
	u, _ := c.Locals("user").(*domain.User)
	return u
}

func (h *ProfileHandler) Show(c *fiber.Ctx) error {
	u := mustUser(c)
	if u == nil {
		return c.Redirect("/login")
	}
	p, err := h.Profile.Profile(u.ID)
	if err != nil {
		applog.Error(c, "profile.load", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Não foi possível carregar o perfil"})
	}
	if p.Name == "" {
		p = domain.Profile{Name: u.Name, Email: u.Email}
	}
	addrs, _ := h.Profile.Addresses(u.ID)
	prefs, _ := h.Profile.Preferences(u.ID)
	return render(c, "profile", fiber.Map{"Profile": p, "Addresses": addrs, "Preferences": prefs})
}

func (h *ProfileHandler) SaveProfile(c *fiber.Ctx) error {
	u := mustUser(c)
	name, okName := validate.Name(c.FormValue("name"))
	email, okEmail := validate.Email(c.FormValue("email"))
	if !okName || !okEmail {
		setFlash(c, "Verifique nome e e-mail")
		return c.Redirect("/profile")
	}
	p := domain.Profile{
		Name:      name,
		Email:     email,
		Phone:     cep.FormatPhone(c.FormValue("phone")),
		BirthDate: c.FormValue("birthDate"),
	}
	if err := h.Profile.SaveProfile(u.ID, p); err != nil {
		applog.Error(c, "profile.save", err, nil)
		setFlash(c, "Não foi possível salvar o perfil")
		return c.Redirect("/profile")
	}
	// Keep the account identity in step with the profile card.
	if err := h.Auth.UpdateProfile(u.ID, name, email); err != nil {
		applog.Error(c, "profile.identity", err, nil)
	}
	applog.Audit(c, "profile.save", nil)
	setFlash(c, "Perfil atualizado com sucesso")
	return c.Redirect("/profile")
}

func (h *ProfileHandler) SaveAddress(c *fiber.Ctx) error {
	u := mustUser(c)
	zip, okZip := validate.CEP(c.FormValue("zipCode"))
	nickname := c.FormValue("nickname")
	street := c.FormValue("street")
	number := c.FormValue("number")
	neighborhood := c.FormValue("neighborhood")
	city := c.FormValue("city")
	state := c.FormValue("state")
	if !okZip || nickname == "" || street == "" || number == "" || neighborhood == "" || city == "" || state == "" {
		setFlash(c, "Preencha todos os campos obrigatórios do endereço")
		return c.Redirect("/profile")
	}

	a := domain.Address{
		ID:           c.FormValue("id"),
		Nickname:     nickname,
		Street:       street,
		Number:       number,
		Complement:   c.FormValue("complement"),
		Neighborhood: neighborhood,
		City:         city,
		State:        state,
		ZipCode:      cep.FormatCEP(zip),
	}
	if _, err := h.Profile.SaveAddress(u.ID, a); err != nil {
		applog.Error(c, "address.save", err, nil)
		setFlash(c, "Não foi possível salvar o endereço")
		return c.Redirect("/profile")
	}
	setFlash(c, "Endereço salvo")
	return c.Redirect("/profile")
}

func (h *ProfileHandler) DeleteAddress(c *fiber.Ctx) error {
	u := mustUser(c)
	id, ok := validate.ID(c.FormValue("id"))
	if !ok {
		return c.Status(400).SendString("missing id")
	}
	if err := h.Profile.DeleteAddress(u.ID, id); err != nil {
		applog.Error(c, "address.delete", err, nil)
		setFlash(c, "Não foi possível remover o endereço")
		return c.Redirect("/profile")
	}
	setFlash(c, "Endereço removido")
	return c.Redirect("/profile")
}

func (h *ProfileHandler) SetDefaultAddress(c *fiber.Ctx) error {
	u := mustUser(c)
	id, ok := validate.ID(c.FormValue("id"))
	if !ok {
		return c.Status(400).SendString("missing id")
	}
	if err := h.Profile.SetDefaultAddress(u.ID, id); err != nil {
		applog.Error(c, "address.default", err, nil)
	}
	return c.Redirect("/profile")
}

func (h *ProfileHandler) SavePreferences(c *fiber.Ctx) error {
	u := mustUser(c)
	p := domain.Preferences{
		EmailMarketing:  c.FormValue("emailMarketing") == "on",
		OrderUpdates:    c.FormValue("orderUpdates") == "on",
		PasswordChanges: c.FormValue("passwordChanges") == "on",
	}
	if err := h.Profile.SavePreferences(u.ID, p); err != nil {
		applog.Error(c, "prefs.save", err, nil)
		setFlash(c, "Não foi possível salvar as preferências")
		return c.Redirect("/profile")
	}
	setFlash(c, "Preferências salvas")
	return c.Redirect("/profile")
}

// CepLookup backs the address form's auto-fill: GET /api/v1/cep/:code.
func (h *ProfileHandler) CepLookup(c *fiber.Ctx) error {
	code, ok := validate.CEP(c.Params("code"))
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "CEP deve ter 8 dígitos"})
	}
	addr, err := h.Cep.Lookup(c.Context(), code)
	if err != nil {
		if errors.Is(err, cep.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "CEP não encontrado"})
		}
		applog.Error(c, "cep.lookup", err, map[string]any{"cep": code})
		return c.Status(502).JSON(fiber.Map{"error": "Erro ao buscar endereço"})
	}
	return c.JSON(addr)
}
