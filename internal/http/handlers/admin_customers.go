package handlers

import (
	applog "isaarte/internal/log"
	"isaarte/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type customerJSON struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

// GET /api/v1/admin/customers
func (h *AdminHandler) ListCustomers(c *fiber.Ctx) error {
	users, err := h.Users.ListCustomers()
	if err != nil {
		applog.Error(c, "admin.customers.list", err, nil)
		return c.Status(500).JSON(fiber.Map{"error": "could not load customers"})
	}
	out := make([]customerJSON, 0, len(users))
	for _, u := range users {
		out = append(out, customerJSON{ID: u.ID, Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt})
	}
	return c.JSON(out)
}

// GET /api/v1/admin/customers/:id
func (h *AdminHandler) GetCustomer(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "invalid id"})
	}
	u, err := h.Users.ByID(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "customer not found"})
	}
	orders, _ := h.Orders.ListByUser(u.ID)
	return c.JSON(fiber.Map{
		"customer": customerJSON{ID: u.ID, Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt},
		"orders":   orders,
	})
}

// PUT /api/v1/admin/customers/:id
func (h *AdminHandler) UpdateCustomer(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "invalid id"})
	}
	if _, err := h.Users.ByID(id); err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "customer not found"})
	}
	var body struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
	}
	name, okName := validate.Name(body.Name)
	email, okEmail := validate.Email(body.Email)
	if !okName || !okEmail {
		return c.Status(400).JSON(fiber.Map{"error": "invalid name or email"})
	}
	if err := h.Users.UpdateProfile(id, name, email); err != nil {
		applog.Error(c, "admin.customers.update", err, map[string]any{"user_id": id})
		return c.Status(400).JSON(fiber.Map{"error": "could not update customer"})
	}
	applog.Audit(c, "admin.customers.update", map[string]any{"user_id": id})
	return c.JSON(fiber.Map{"id": id, "name": name, "email": email})
}

// DELETE /api/v1/admin/customers/:id — cancels orders, removes sessions and
// all kv state for the account.
func (h *AdminHandler) DeleteCustomer(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "invalid id"})
	}
	if err := h.Users.DeleteUserCascade(id); err != nil {
		applog.Error(c, "admin.customers.delete", err, map[string]any{"user_id": id})
		return c.Status(400).JSON(fiber.Map{"error": "could not delete customer"})
	}
	applog.Audit(c, "admin.customers.delete", map[string]any{"user_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}
