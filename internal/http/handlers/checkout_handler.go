package handlers

import (
	"errors"

	"isaarte/internal/cart"
	"isaarte/internal/domain"
	applog "isaarte/internal/log"
	"isaarte/internal/repos"
	"isaarte/internal/services"
	"isaarte/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CheckoutHandler struct {
	Cart     *cart.Store
	Checkout *services.CheckoutService
	Orders   *repos.OrderRepo
	Auth     *services.AuthService
}

func (h *CheckoutHandler) Page(c *fiber.Ctx) error {
	sid := ensureSID(c)
	cv, err := h.Cart.Load(sid)
	if err != nil {
		applog.Error(c, "checkout.load", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Não foi possível carregar o carrinho"})
	}
	if len(cv.Items) == 0 {
		setFlash(c, "Seu carrinho está vazio")
		return c.Redirect("/cart")
	}
	return render(c, "checkout", fiber.Map{
		"Cart":         cv,
		"Subtotal":     cv.Subtotal(),
		"ShippingCost": cv.ShippingCost(),
		"Total":        cv.Total(),
	})
}

func (h *CheckoutHandler) Place(c *fiber.Ctx) error {
	sid := ensureSID(c)

	email, ok := validate.Email(c.FormValue("email"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "email"})
		return c.Status(fiber.StatusBadRequest).SendString("invalid email")
	}
	name, ok := validate.Name(c.FormValue("name"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "name"})
		return c.Status(fiber.StatusBadRequest).SendString("name must be 3-50 characters")
	}
	method := c.FormValue("payment")
	if method == "" {
		method = "pix"
	}

	orderID, err := h.Checkout.Place(sid, method, services.Contact{Name: name, Email: email})
	if err != nil {
		if errors.Is(err, services.ErrEmptyCart) {
			setFlash(c, "Seu carrinho está vazio")
			return c.Redirect("/cart")
		}
		applog.Security(c, "order.place.fail", map[string]any{"sid": sid, "error": err.Error()})
		return c.Status(fiber.StatusBadRequest).SendString("Não foi possível concluir o pedido. Revise as quantidades e tente novamente.")
	}
	applog.Audit(c, "order.place", map[string]any{"order_id": orderID, "payment": method})

	setFlash(c, "Pagamento aprovado! Pedido confirmado.")
	return c.Redirect("/order/" + orderID)
}

func (h *CheckoutHandler) View(c *fiber.Ctx) error {
	oid := c.Params("id")
	if oid == "" {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Pedido não encontrado"})
	}

	o, items, err := h.Orders.Get(oid)
	if err != nil {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Pedido não encontrado"})
	}

	// Ownership: the creating session, the same user on another session, or
	// an admin.
	sid := c.Cookies("sid")
	var uID, uRole string
	if h.Auth != nil && sid != "" {
		if u, err := h.Auth.CurrentUser(sid); err == nil && u != nil {
			uID = u.ID
			uRole = u.Role
		}
	}
	if !(sid != "" && sid == o.SessionID) && !(uID != "" && uID == o.UserID) && uRole != "ADMIN" {
		applog.Security(c, "access.denied.order", map[string]any{"order_id": oid})
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Pedido não encontrado"})
	}

	return render(c, "order", fiber.Map{"Order": o, "Items": items})
}

// History lists orders for the current logged-in user.
func (h *CheckoutHandler) History(c *fiber.Ctx) error {
	u, _ := c.Locals("user").(*domain.User)
	if u == nil {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Pedidos indisponíveis"})
	}
	orders, err := h.Orders.ListByUser(u.ID)
	if err != nil {
		applog.Error(c, "orders.history.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Não foi possível carregar os pedidos"})
	}
	// Fallback: show session orders placed before login
	if len(orders) == 0 {
		if sid := c.Cookies("sid"); sid != "" {
			if sessOrders, err := h.Orders.ListBySession(sid); err == nil && len(sessOrders) > 0 {
				orders = sessOrders
			}
		}
	}
	return render(c, "order_history", fiber.Map{"Orders": orders})
}
