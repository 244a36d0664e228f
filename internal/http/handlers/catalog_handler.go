package handlers

import (
	applog "isaarte/internal/log"
	"isaarte/internal/services"
	"isaarte/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CatalogHandler struct {
	Catalog *services.CatalogService
}

// Home renders the landing page with categories and a featured slice of the
// catalog.
func (h *CatalogHandler) Home(c *fiber.Ctx) error {
	cats, err := h.Catalog.ListCategories()
	if err != nil {
		applog.Error(c, "home.categories", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Algo deu errado. Tente novamente."})
	}
	featured, err := h.Catalog.ListProducts("", "", "", 1, 4)
	if err != nil {
		applog.Error(c, "home.featured", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Algo deu errado. Tente novamente."})
	}
	return render(c, "home", fiber.Map{"Categories": cats, "Featured": featured})
}

// List renders the product grid with category, price-range and search filters.
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	category := c.Query("categoria")
	if category != "" {
		if _, ok := validate.ID(category); !ok {
			category = ""
		}
	}
	priceRange := c.Query("preco")
	q := ""
	if raw := c.Query("q"); raw != "" {
		if cleaned, ok := validate.Q(raw); ok {
			q = cleaned
		}
	}
	page := c.QueryInt("page", 1)

	prods, err := h.Catalog.ListProducts(category, priceRange, q, page, 12)
	if err != nil {
		applog.Error(c, "products.list", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Não foi possível carregar os produtos"})
	}
	cats, _ := h.Catalog.ListCategories()
	return render(c, "products", fiber.Map{
		"Products":   prods,
		"Categories": cats,
		"Category":   category,
		"PriceRange": priceRange,
		"Query":      q,
		"Page":       page,
	})
}

func (h *CatalogHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Produto não encontrado"})
	}
	p, err := h.Catalog.GetProduct(id)
	if err != nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Produto não encontrado"})
	}
	return render(c, "product", fiber.Map{"Product": p})
}
