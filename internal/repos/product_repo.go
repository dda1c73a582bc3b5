package repos

import (
	"time"

	"github.com/jmoiron/sqlx"

	"greenbytes/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

func (r *ProductRepo) List() ([]domain.Product, error) {
	out := []domain.Product{}
	err := r.db.Select(&out, `
	  SELECT id, name, price, stock, category, description, image,
	         created_at, COALESCE(updated_at,'') AS updated_at
	  FROM products
	  ORDER BY created_at, id
	`)
	return out, err
}

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `
	  SELECT id, name, price, stock, category, description, image,
	         created_at, COALESCE(updated_at,'') AS updated_at
	  FROM products
	  WHERE id = ?
	`, id)
	return p, err
}

func (r *ProductRepo) Create(p domain.Product) error {
	_, err := r.db.Exec(`
	  INSERT INTO products(id, name, price, stock, category, description, image, created_at)
	  VALUES(?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`, p.ID, p.Name, p.Price, p.Stock, p.Category, p.Description, p.Image)
	return err
}

// Update overwrites the full record. Checkout relies on this being an
// idempotent whole-row write, not a relative decrement.
func (r *ProductRepo) Update(id string, p domain.Product) (int64, error) {
	res, err := r.db.Exec(`
	  UPDATE products
	  SET name = ?, price = ?, stock = ?, category = ?, description = ?, image = ?, updated_at = ?
	  WHERE id = ?
	`, p.Name, p.Price, p.Stock, p.Category, p.Description, p.Image, time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *ProductRepo) Delete(id string) (int64, error) {
	res, err := r.db.Exec(`DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
