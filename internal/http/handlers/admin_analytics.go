package handlers

import (
	applog "isaarte/internal/log"

	"github.com/gofiber/fiber/v2"
)

// GET /api/v1/admin/analytics/overview
func (h *AdminHandler) AnalyticsOverview(c *fiber.Ctx) error {
	ov, err := h.Orders.GetOverview()
	if err != nil {
		applog.Error(c, "admin.analytics.overview", err, nil)
		return c.Status(500).JSON(fiber.Map{"error": "could not load overview"})
	}
	customers, err := h.Users.ListCustomers()
	if err != nil {
		applog.Error(c, "admin.analytics.overview", err, nil)
		return c.Status(500).JSON(fiber.Map{"error": "could not load overview"})
	}
	return c.JSON(fiber.Map{
		"orders":        ov.Orders,
		"revenue":       ov.Revenue,
		"average_order": ov.AverageOrder,
		"customers":     len(customers),
	})
}

// GET /api/v1/admin/analytics/revenue?months=N
func (h *AdminHandler) AnalyticsRevenue(c *fiber.Ctx) error {
	months := c.QueryInt("months", 12)
	rows, err := h.Orders.MonthlyRevenue(months)
	if err != nil {
		applog.Error(c, "admin.analytics.revenue", err, nil)
		return c.Status(500).JSON(fiber.Map{"error": "could not load revenue"})
	}
	return c.JSON(rows)
}

// GET /api/v1/admin/analytics/top-products?limit=N
func (h *AdminHandler) AnalyticsTopProducts(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 5)
	rows, err := h.Orders.TopProducts(limit)
	if err != nil {
		applog.Error(c, "admin.analytics.top_products", err, nil)
		return c.Status(500).JSON(fiber.Map{"error": "could not load top products"})
	}
	return c.JSON(rows)
}
