package repos

import (
	"errors"

	"isaarte/internal/domain"

	"github.com/jmoiron/sqlx"
)

// ErrInsufficientStock is returned by stock decrements that would go negative.
var ErrInsufficientStock = errors.New("insufficient stock")

// ErrCategoryInUse is returned when deleting a category that still has products.
var ErrCategoryInUse = errors.New("category has products")

type CategoryRepo struct{ db *sqlx.DB }

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo { return &CategoryRepo{db: db} }

func (r *CategoryRepo) List() ([]domain.Category, error) {
	var out []domain.Category
	err := r.db.Select(&out, `
	  SELECT id, name, description, created_at, COALESCE(updated_at,'') AS updated_at
	  FROM categories
	  ORDER BY name
	`)
	return out, err
}

func (r *CategoryRepo) Get(id string) (domain.Category, error) {
	var c domain.Category
	err := r.db.Get(&c, `
	  SELECT id, name, description, created_at, COALESCE(updated_at,'') AS updated_at
	  FROM categories WHERE id = ?
	`, id)
	return c, err
}

func (r *CategoryRepo) Create(c domain.Category) error {
	_, err := r.db.Exec(`
	  INSERT INTO categories(id, name, description, created_at)
	  VALUES(?,?,?,CURRENT_TIMESTAMP)
	`, c.ID, c.Name, c.Description)
	return err
}

func (r *CategoryRepo) Update(c domain.Category) error {
	_, err := r.db.Exec(`
	  UPDATE categories SET name=?, description=?, updated_at=CURRENT_TIMESTAMP
	  WHERE id=?
	`, c.Name, c.Description, c.ID)
	return err
}

func (r *CategoryRepo) Delete(id string) error {
	var n int
	if err := r.db.Get(&n, `SELECT COUNT(*) FROM products WHERE category_id=?`, id); err != nil {
		return err
	}
	if n > 0 {
		return ErrCategoryInUse
	}
	_, err := r.db.Exec(`DELETE FROM categories WHERE id=?`, id)
	return err
}
