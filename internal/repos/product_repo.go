package repos

import (
	"strings"

	"isaarte/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `
  id, category_id, name, description, price, stock_quantity, images_json,
  details_json, active, created_at, COALESCE(updated_at,'') AS updated_at`

// Filter narrows storefront listings. Zero values mean "no constraint".
// MinPrice/MaxPrice bound the price range; MaxPrice <= 0 means unbounded.
type Filter struct {
	CategoryID string
	Query      string
	MinPrice   float64
	MaxPrice   float64
}

func (r *ProductRepo) List(f Filter, limit, offset int) ([]domain.Product, error) {
	where := `active = 1`
	args := []any{}
	if f.CategoryID != "" {
		where += ` AND category_id = ?`
		args = append(args, f.CategoryID)
	}
	if f.Query != "" {
		needle := "%" + strings.ToLower(f.Query) + "%"
		where += ` AND (LOWER(name) LIKE ? OR LOWER(description) LIKE ?)`
		args = append(args, needle, needle)
	}
	if f.MinPrice > 0 {
		where += ` AND price > ?`
		args = append(args, f.MinPrice)
	}
	if f.MaxPrice > 0 {
		where += ` AND price <= ?`
		args = append(args, f.MaxPrice)
	}

	q := `SELECT ` + productCols + ` FROM products WHERE ` + where + `
	  ORDER BY name LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	var out []domain.Product
	err := r.db.Select(&out, q, args...)
	return out, err
}

// ListAll includes inactive products; used by the back-office.
func (r *ProductRepo) ListAll() ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `SELECT `+productCols+` FROM products ORDER BY name`)
	return out, err
}

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT `+productCols+` FROM products WHERE id = ?`, id)
	return p, err
}

func (r *ProductRepo) Create(p domain.Product) error {
	_, err := r.db.Exec(`
	  INSERT INTO products(id, category_id, name, description, price, stock_quantity,
	    images_json, details_json, active, created_at)
	  VALUES(?,?,?,?,?,?,?,?,?,CURRENT_TIMESTAMP)
	`, p.ID, p.CategoryID, p.Name, p.Description, p.Price, p.StockQuantity,
		p.ImagesJSON, p.DetailsJSON, p.Active)
	return err
}

func (r *ProductRepo) Update(p domain.Product) error {
	_, err := r.db.Exec(`
	  UPDATE products SET category_id=?, name=?, description=?, price=?,
	    stock_quantity=?, images_json=?, details_json=?, active=?,
	    updated_at=CURRENT_TIMESTAMP
	  WHERE id=?
	`, p.CategoryID, p.Name, p.Description, p.Price, p.StockQuantity,
		p.ImagesJSON, p.DetailsJSON, p.Active, p.ID)
	return err
}

func (r *ProductRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM products WHERE id=?`, id)
	return err
}

// DecrementStock atomically subtracts qty if enough stock exists.
func (r *ProductRepo) DecrementStock(id string, qty int) error {
	res, err := r.db.Exec(`
	  UPDATE products SET stock_quantity = stock_quantity - ?
	  WHERE id = ? AND stock_quantity >= ?
	`, qty, id, qty)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrInsufficientStock
	}
	return nil
}
