package services

import (
	"isaarte/internal/domain"
	"isaarte/internal/repos"
)

type CatalogService struct {
	Cats  *repos.CategoryRepo
	Prods *repos.ProductRepo
}

func NewCatalogService(cats *repos.CategoryRepo, prods *repos.ProductRepo) *CatalogService {
	return &CatalogService{Cats: cats, Prods: prods}
}

// Price-range labels the storefront filter offers.
const (
	PriceRangeLow  = "ate-150"  // <= 150
	PriceRangeMid  = "150-200"  // 150 < p <= 200
	PriceRangeHigh = "acima-200" // > 200
)

func priceBounds(rangeLabel string) (min, max float64) {
	switch rangeLabel {
	case PriceRangeLow:
		return 0, 150
	case PriceRangeMid:
		return 150, 200
	case PriceRangeHigh:
		return 200, 0
	default:
		return 0, 0
	}
}

func (s *CatalogService) ListCategories() ([]domain.Category, error) {
	return s.Cats.List()
}

func (s *CatalogService) ListProducts(categoryID, priceRange, q string, page, pageSize int) ([]domain.Product, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 12
	}
	min, max := priceBounds(priceRange)
	f := repos.Filter{CategoryID: categoryID, Query: q, MinPrice: min, MaxPrice: max}
	return s.Prods.List(f, pageSize, (page-1)*pageSize)
}

func (s *CatalogService) GetProduct(id string) (domain.Product, error) {
	return s.Prods.Get(id)
}
