package handlers

import (
	"encoding/json"

	"isaarte/internal/domain"
	applog "isaarte/internal/log"
	"isaarte/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// productPayload is the admin wire format; images and technical details are
// structured, not raw JSON strings.
type productPayload struct {
	ID               string            `json:"id,omitempty"`
	Name             string            `json:"name"`
	Price            float64           `json:"price"`
	StockQuantity    int               `json:"stock_quantity"`
	CategoryID       string            `json:"category_id"`
	Description      string            `json:"description"`
	Images           []string          `json:"images"`
	TechnicalDetails map[string]string `json:"technical_details"`
	Active           *bool             `json:"active,omitempty"`
}

func (p productPayload) toDomain(id string) (domain.Product, error) {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	details := p.TechnicalDetails
	if details == nil {
		details = map[string]string{}
	}
	imagesJSON, err := json.Marshal(images)
	if err != nil {
		return domain.Product{}, err
	}
	detailsJSON, err := json.Marshal(details)
	if err != nil {
		return domain.Product{}, err
	}
	active := true
	if p.Active != nil {
		active = *p.Active
	}
	return domain.Product{
		ID:            id,
		CategoryID:    p.CategoryID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
		ImagesJSON:    string(imagesJSON),
		DetailsJSON:   string(detailsJSON),
		Active:        active,
	}, nil
}

func productJSON(p domain.Product) fiber.Map {
	var images []string
	var details map[string]string
	_ = json.Unmarshal([]byte(p.ImagesJSON), &images)
	_ = json.Unmarshal([]byte(p.DetailsJSON), &details)
	if images == nil {
		images = []string{}
	}
	if details == nil {
		details = map[string]string{}
	}
	return fiber.Map{
		"id":                p.ID,
		"name":              p.Name,
		"price":             p.Price,
		"stock_quantity":    p.StockQuantity,
		"category_id":       p.CategoryID,
		"description":       p.Description,
		"images":            images,
		"technical_details": details,
		"active":            p.Active,
		"created_at":        p.CreatedAt,
	}
}

// GET /api/v1/admin/products
func (h *AdminHandler) ListProducts(c *fiber.Ctx) error {
	prods, err := h.Products.ListAll()
	if err != nil {
		applog.Error(c, "admin.products.list", err, nil)
		return c.Status(500).JSON(fiber.Map{"error": "could not load products"})
	}
	out := make([]fiber.Map, 0, len(prods))
	for _, p := range prods {
		out = append(out, productJSON(p))
	}
	return c.JSON(out)
}

// GET /api/v1/admin/products/:id
func (h *AdminHandler) GetProduct(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "invalid id"})
	}
	p, err := h.Products.Get(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "product not found"})
	}
	return c.JSON(productJSON(p))
}

// POST /api/v1/admin/products
func (h *AdminHandler) CreateProduct(c *fiber.Ctx) error {
	var body productPayload
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
	}
	if body.Name == "" || body.Price < 0 || body.StockQuantity < 0 {
		return c.Status(400).JSON(fiber.Map{"error": "name required, price and stock must be non-negative"})
	}
	id := body.ID
	if id == "" {
		id = uuid.NewString()
	}
	p, err := body.toDomain(id)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
	}
	if err := h.Products.Create(p); err != nil {
		applog.Error(c, "admin.products.create", err, map[string]any{"product": id})
		return c.Status(400).JSON(fiber.Map{"error": "could not create product"})
	}
	applog.Audit(c, "admin.products.create", map[string]any{"product": id})
	created, err := h.Products.Get(id)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "could not load product"})
	}
	return c.Status(201).JSON(productJSON(created))
}

// PUT /api/v1/admin/products/:id
func (h *AdminHandler) UpdateProduct(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "invalid id"})
	}
	if _, err := h.Products.Get(id); err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "product not found"})
	}
	var body productPayload
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
	}
	if body.Name == "" || body.Price < 0 || body.StockQuantity < 0 {
		return c.Status(400).JSON(fiber.Map{"error": "name required, price and stock must be non-negative"})
	}
	p, err := body.toDomain(id)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
	}
	if err := h.Products.Update(p); err != nil {
		applog.Error(c, "admin.products.update", err, map[string]any{"product": id})
		return c.Status(400).JSON(fiber.Map{"error": "could not update product"})
	}
	applog.Audit(c, "admin.products.update", map[string]any{"product": id})
	updated, err := h.Products.Get(id)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "could not load product"})
	}
	return c.JSON(productJSON(updated))
}

// DELETE /api/v1/admin/products/:id
func (h *AdminHandler) DeleteProduct(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "invalid id"})
	}
	if err := h.Products.Delete(id); err != nil {
		applog.Error(c, "admin.products.delete", err, map[string]any{"product": id})
		return c.Status(400).JSON(fiber.Map{"error": "could not delete product"})
	}
	applog.Audit(c, "admin.products.delete", map[string]any{"product": id})
	return c.SendStatus(fiber.StatusNoContent)
}
