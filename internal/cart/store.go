// Package cart holds the customer-local shopping cart: a durable store
// the backend knows nothing about until checkout, plus the controller
// that mutates it.
package cart

import (
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"greenbytes/internal/domain"
)

// Line is one cart entry: a product snapshot taken at add time plus a
// quantity. The snapshot goes stale the moment the server-side product
// changes; that staleness is reconciled only at checkout.
type Line struct {
	Product  domain.Product `json:"product"`
	Quantity int            `json:"quantity"`
	Price    float64        `json:"price"` // unit price at add time
}

// Store persists cart lines in a local SQLite file so the cart survives
// restarts. It is the only shared mutable state on the customer side.
type Store struct{ db *sqlx.DB }

// Open creates or opens the cart file at dsn (":memory:" for tests).
func Open(dsn string) (*Store, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	schema := `
CREATE TABLE IF NOT EXISTS cart_lines(
  pos INTEGER PRIMARY KEY AUTOINCREMENT,
  product_id TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  unit_price NUMERIC NOT NULL,
  stock INTEGER NOT NULL,
  category TEXT NOT NULL DEFAULT '',
  description TEXT NOT NULL DEFAULT '',
  quantity INTEGER NOT NULL CHECK (quantity >= 1)
);`
	if _, err := db.Exec(schema); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

type lineRow struct {
	ProductID   string  `db:"product_id"`
	Name        string  `db:"name"`
	UnitPrice   float64 `db:"unit_price"`
	Stock       int     `db:"stock"`
	Category    string  `db:"category"`
	Description string  `db:"description"`
	Quantity    int     `db:"quantity"`
}

// Get returns the persisted lines in insertion order.
func (s *Store) Get() ([]Line, error) {
	rows := []lineRow{}
	if err := s.db.Select(&rows, `
	  SELECT product_id, name, unit_price, stock, category, description, quantity
	  FROM cart_lines ORDER BY pos
	`); err != nil {
		return nil, err
	}
	out := make([]Line, 0, len(rows))
	for _, r := range rows {
		out = append(out, Line{
			Product: domain.Product{
				ID:          r.ProductID,
				Name:        r.Name,
				Price:       r.UnitPrice,
				Stock:       r.Stock,
				Category:    r.Category,
				Description: r.Description,
			},
			Quantity: r.Quantity,
			Price:    r.UnitPrice,
		})
	}
	return out, nil
}

// Set overwrites the persisted cart with the given lines. Set(nil)
// clears the cart.
func (s *Store) Set(lines []Line) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM cart_lines`); err != nil {
		return err
	}
	for _, l := range lines {
		if _, err := tx.Exec(`
		  INSERT INTO cart_lines(product_id, name, unit_price, stock, category, description, quantity)
		  VALUES(?, ?, ?, ?, ?, ?, ?)
		`, l.Product.ID, l.Product.Name, l.Price, l.Product.Stock, l.Product.Category, l.Product.Description, l.Quantity); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *Store) Close() error { return s.db.Close() }
