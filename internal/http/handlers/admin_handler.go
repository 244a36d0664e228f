package handlers

import (
	"isaarte/internal/repos"
)

// AdminHandler serves the back-office SPA: row-level JSON CRUD over products,
// categories, orders and customers, plus the analytics aggregates.
type AdminHandler struct {
	Products   *repos.ProductRepo
	Categories *repos.CategoryRepo
	Orders     *repos.OrderRepo
	Users      *repos.UserRepo
}

func NewAdminHandler(db *repos.ProductRepo, cats *repos.CategoryRepo, orders *repos.OrderRepo, users *repos.UserRepo) *AdminHandler {
	return &AdminHandler{Products: db, Categories: cats, Orders: orders, Users: users}
}
