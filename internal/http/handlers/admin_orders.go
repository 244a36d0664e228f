package handlers

import (
	applog "isaarte/internal/log"
	"isaarte/internal/validate"

	"github.com/gofiber/fiber/v2"
)

// GET /api/v1/admin/orders
func (h *AdminHandler) ListOrders(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 100)
	ords, err := h.Orders.ListLatest(limit)
	if err != nil {
		applog.Error(c, "admin.orders.list", err, nil)
		return c.Status(500).JSON(fiber.Map{"error": "could not load orders"})
	}
	return c.JSON(ords)
}

// GET /api/v1/admin/orders/:id
func (h *AdminHandler) GetOrder(c *fiber.Ctx) error {
	id := c.Params("id")
	o, items, err := h.Orders.Get(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "order not found"})
	}
	return c.JSON(fiber.Map{"order": o, "items": items})
}

// PUT /api/v1/admin/orders/:id/status
func (h *AdminHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	var body struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
	}
	status, ok := validate.OrderStatus(body.Status)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "invalid status"})
	}
	if _, _, err := h.Orders.Get(id); err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "order not found"})
	}
	if err := h.Orders.UpdateStatus(id, status); err != nil {
		applog.Error(c, "admin.orders.status", err, map[string]any{"order_id": id})
		return c.Status(400).JSON(fiber.Map{"error": "could not update status"})
	}
	applog.Audit(c, "admin.orders.status", map[string]any{"order_id": id, "status": status})
	return c.JSON(fiber.Map{"id": id, "status": status})
}
