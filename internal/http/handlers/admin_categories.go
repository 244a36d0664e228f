package handlers

import (
	"errors"

	"isaarte/internal/domain"
	applog "isaarte/internal/log"
	"isaarte/internal/repos"
	"isaarte/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type categoryPayload struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// GET /api/v1/admin/categories
func (h *AdminHandler) ListCategories(c *fiber.Ctx) error {
	cats, err := h.Categories.List()
	if err != nil {
		applog.Error(c, "admin.categories.list", err, nil)
		return c.Status(500).JSON(fiber.Map{"error": "could not load categories"})
	}
	return c.JSON(cats)
}

// POST /api/v1/admin/categories
func (h *AdminHandler) CreateCategory(c *fiber.Ctx) error {
	var body categoryPayload
	if err := c.BodyParser(&body); err != nil || body.Name == "" {
		return c.Status(400).JSON(fiber.Map{"error": "name required"})
	}
	id := body.ID
	if id == "" {
		id = uuid.NewString()
	}
	cat := domain.Category{ID: id, Name: body.Name, Description: body.Description}
	if err := h.Categories.Create(cat); err != nil {
		applog.Error(c, "admin.categories.create", err, map[string]any{"category": id})
		return c.Status(400).JSON(fiber.Map{"error": "could not create category"})
	}
	applog.Audit(c, "admin.categories.create", map[string]any{"category": id})
	created, err := h.Categories.Get(id)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "could not load category"})
	}
	return c.Status(201).JSON(created)
}

// PUT /api/v1/admin/categories/:id
func (h *AdminHandler) UpdateCategory(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "invalid id"})
	}
	if _, err := h.Categories.Get(id); err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "category not found"})
	}
	var body categoryPayload
	if err := c.BodyParser(&body); err != nil || body.Name == "" {
		return c.Status(400).JSON(fiber.Map{"error": "name required"})
	}
	cat := domain.Category{ID: id, Name: body.Name, Description: body.Description}
	if err := h.Categories.Update(cat); err != nil {
		applog.Error(c, "admin.categories.update", err, map[string]any{"category": id})
		return c.Status(400).JSON(fiber.Map{"error": "could not update category"})
	}
	applog.Audit(c, "admin.categories.update", map[string]any{"category": id})
	updated, err := h.Categories.Get(id)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "could not load category"})
	}
	return c.JSON(updated)
}

// DELETE /api/v1/admin/categories/:id
func (h *AdminHandler) DeleteCategory(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "invalid id"})
	}
	if err := h.Categories.Delete(id); err != nil {
		if errors.Is(err, repos.ErrCategoryInUse) {
			return c.Status(409).JSON(fiber.Map{"error": "category still has products"})
		}
		applog.Error(c, "admin.categories.delete", err, map[string]any{"category": id})
		return c.Status(400).JSON(fiber.Map{"error": "could not delete category"})
	}
	applog.Audit(c, "admin.categories.delete", map[string]any{"category": id})
	return c.SendStatus(fiber.StatusNoContent)
}
