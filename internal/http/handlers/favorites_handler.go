package handlers

import (
	"isaarte/internal/cart"
	"isaarte/internal/domain"
	applog "isaarte/internal/log"
	"isaarte/internal/services"
	"isaarte/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type FavoritesHandler struct {
	Cart    *cart.Store
	Catalog *services.CatalogService
}

func (h *FavoritesHandler) currentUserID(c *fiber.Ctx) string {
	if u, ok := c.Locals("user").(*domain.User); ok && u != nil {
		return u.ID
	}
	return ""
}

func (h *FavoritesHandler) List(c *fiber.Ctx) error {
	sid := ensureSID(c)
	var products []domain.Product
	for _, id := range h.Cart.Favorites(sid) {
		if p, err := h.Catalog.GetProduct(id); err == nil {
			products = append(products, p)
		}
	}
	return render(c, "favorites", fiber.Map{"Products": products})
}

func (h *FavoritesHandler) Toggle(c *fiber.Ctx) error {
	sid := ensureSID(c)
	pid, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(400).SendString("missing productId")
	}
	silent := c.FormValue("silent") == "1"

	n, err := h.Cart.ToggleSave(sid, h.currentUserID(c), pid, silent)
	if err != nil {
		applog.Error(c, "favorites.toggle", err, map[string]any{"product": pid})
		return c.Status(500).SendString("Não foi possível salvar o item")
	}
	applog.Audit(c, "favorites.toggle", map[string]any{"product": pid})
	setFlash(c, n.Message)

	back := c.Get("Referer")
	if back == "" {
		back = "/favorites"
	}
	return c.Redirect(back)
}
