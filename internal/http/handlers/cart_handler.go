package handlers

import (
	"encoding/json"

	"isaarte/internal/cart"
	applog "isaarte/internal/log"
	"isaarte/internal/services"
	"isaarte/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CartHandler struct {
	Cart    *cart.Store
	Catalog *services.CatalogService
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	sid := ensureSID(c)
	cv, err := h.Cart.Load(sid)
	if err != nil {
		applog.Error(c, "cart.load", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Não foi possível carregar o carrinho"})
	}
	return render(c, "cart", fiber.Map{
		"Cart":         cv,
		"ItemCount":    cv.ItemCount(),
		"Subtotal":     cv.Subtotal(),
		"ShippingCost": cv.ShippingCost(),
		"Total":        cv.Total(),
	})
}

// Add resolves the product from the catalog so price and stock ceiling come
// from live data, never from the form.
func (h *CartHandler) Add(c *fiber.Ctx) error {
	sid := ensureSID(c)
	pid, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(400).SendString("missing productId")
	}
	p, err := h.Catalog.GetProduct(pid)
	if err != nil {
		return c.Status(404).SendString("unknown product")
	}

	image := ""
	var images []string
	if json.Unmarshal([]byte(p.ImagesJSON), &images) == nil && len(images) > 0 {
		image = images[0]
	}

	n, err := h.Cart.Add(sid, cart.Item{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Image:    image,
		Category: p.CategoryID,
		Stock:    p.StockQuantity,
	})
	if err != nil {
		applog.Error(c, "cart.add", err, map[string]any{"product": pid})
		return c.Status(500).SendString("Não foi possível adicionar o item")
	}
	if !n.OK {
		applog.Info(c, "cart.add.reject", map[string]any{"product": pid})
	}
	setFlash(c, n.Message)
	return c.Redirect("/cart")
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	sid := ensureSID(c)
	pid, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(400).SendString("missing productId")
	}
	n, err := h.Cart.Remove(sid, pid)
	if err != nil {
		applog.Error(c, "cart.remove", err, map[string]any{"product": pid})
		return c.Status(500).SendString("Não foi possível remover o item")
	}
	setFlash(c, n.Message)
	return c.Redirect("/cart")
}

func (h *CartHandler) UpdateQuantity(c *fiber.Ctx) error {
	sid := ensureSID(c)
	pid, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(400).SendString("missing productId")
	}
	qty := validate.Qty(c.FormValue("qty"))
	n, err := h.Cart.UpdateQuantity(sid, pid, qty)
	if err != nil {
		applog.Error(c, "cart.qty", err, map[string]any{"product": pid})
		return c.Status(500).SendString("Não foi possível atualizar a quantidade")
	}
	setFlash(c, n.Message)
	return c.Redirect("/cart")
}

func (h *CartHandler) Clear(c *fiber.Ctx) error {
	sid := ensureSID(c)
	n, err := h.Cart.Clear(sid)
	if err != nil {
		applog.Error(c, "cart.clear", err, nil)
		return c.Status(500).SendString("Não foi possível esvaziar o carrinho")
	}
	setFlash(c, n.Message)
	return c.Redirect("/cart")
}

func (h *CartHandler) ApplyDiscount(c *fiber.Ctx) error {
	sid := ensureSID(c)
	code := c.FormValue("code")
	n, err := h.Cart.ApplyDiscount(sid, code)
	if err != nil {
		applog.Error(c, "cart.discount", err, nil)
		return c.Status(500).SendString("Não foi possível aplicar o cupom")
	}
	if !n.OK {
		applog.Info(c, "cart.discount.reject", map[string]any{"code": code})
	}
	setFlash(c, n.Message)
	return c.Redirect("/cart")
}

func (h *CartHandler) SetShipping(c *fiber.Ctx) error {
	sid := ensureSID(c)
	opt := cart.ShippingOption(c.FormValue("option"))
	switch opt {
	case cart.ShippingExpress, cart.ShippingStandard, cart.ShippingEconomic:
	default:
		return c.Status(400).SendString("invalid shipping option")
	}
	if err := h.Cart.SetShipping(sid, opt); err != nil {
		applog.Error(c, "cart.shipping", err, nil)
		return c.Status(500).SendString("Não foi possível definir o frete")
	}
	return c.Redirect("/cart")
}
