package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed baseline catalog/ledger data if DB is empty
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	// Ensure staff users exist (idempotent; safe to run every start)
	if err := seedUsers(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Products
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  price NUMERIC NOT NULL CHECK (price >= 0),
  stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
  category TEXT NOT NULL CHECK (category IN ('Recycled','RAM','Storage','Motherboard')),
  description TEXT NOT NULL DEFAULT '',
  image TEXT NOT NULL DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_products_name     ON products(LOWER(name));
CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);

-- Sales. product_id is a plain reference: products may be deleted while
-- their sales remain for the income statement.
CREATE TABLE IF NOT EXISTS sales(
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL,
  quantity INTEGER NOT NULL CHECK (quantity >= 1),
  total NUMERIC NOT NULL CHECK (total >= 0),
  date TEXT NOT NULL,
  expenses_json TEXT NOT NULL DEFAULT '[]',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_sales_date    ON sales(date);
CREATE INDEX IF NOT EXISTS idx_sales_product ON sales(product_id);

-- Customer queries
CREATE TABLE IF NOT EXISTS queries(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL,
  message TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending','answered')),
  reply TEXT NOT NULL DEFAULT '',
  auto_reply TEXT NOT NULL DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_queries_created_at ON queries(created_at);

-- Non-sale income (donations, investments)
CREATE TABLE IF NOT EXISTS ledger(
  id TEXT PRIMARY KEY,
  date TEXT NOT NULL,
  amount NUMERIC NOT NULL CHECK (amount >= 0),
  source TEXT NOT NULL CHECK (source IN ('Donation','Investment'))
);
CREATE INDEX IF NOT EXISTS idx_ledger_date ON ledger(date);

-- Business-wide expenses
CREATE TABLE IF NOT EXISTS expenses(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  amount NUMERIC NOT NULL CHECK (amount >= 0),
  date TEXT NOT NULL
);

-- Staff users & bearer tokens
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('admin','sales','finance','investor')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

CREATE TABLE IF NOT EXISTS tokens(
  token TEXT PRIMARY KEY,
  user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  expires_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_tokens_user ON tokens(user_id);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM products`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo products/ledger")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO products(id,name,price,stock,category,description) VALUES
	  ('hdd-1tb','1TB HDD',24.99,12,'Storage','Refurbished 1TB 3.5" hard drive, wiped and health-checked'),
	  ('ram-8gb','8GB DDR4 RAM',18.50,20,'RAM','Pulled from decommissioned office desktops, tested'),
	  ('ram-ddr3','4GB DDR3 RAM',7.00,35,'RAM','Older generation memory, ideal for budget rebuilds'),
	  ('ssd-500','500GB SSD',32.00,9,'Storage','Lightly used SATA SSD, >90% health remaining'),
	  ('mobo-atx','ATX Motherboard',45.00,4,'Motherboard','Socket LGA1151 board with IO shield'),
	  ('fan-case','Recycled Case Fan',3.50,60,'Recycled','120mm case fan, cleaned and relubricated'),
	  ('hub-usb','USB Hub',5.25,15,'Recycled','4-port USB 2.0 hub, recovered from returns')`)

	tx.MustExec(`INSERT INTO ledger(id,date,amount,source) VALUES
	  ('led-001','2025-01-12T00:00:00Z',50.00,'Donation'),
	  ('led-002','2025-02-03T00:00:00Z',30.00,'Investment')`)

	return tx.Commit()
}

// seedUsers ensures one staff user per role tier (idempotent).
func seedUsers(db *sqlx.DB) error {
	type u struct {
		ID, Email, Name, Role, Hash string
	}
	mk := func(id, email, name, role, raw string) u {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 12)
		return u{ID: id, Email: email, Name: name, Role: role, Hash: string(h)}
	}

	users := []u{
		mk("u-admin", "admin@greenbytes.test", "Admin", "admin", "Passw0rd!"),
		mk("u-sales", "sales@greenbytes.test", "Sam", "sales", "Passw0rd!"),
		mk("u-finance", "finance@greenbytes.test", "Farai", "finance", "Passw0rd!"),
		mk("u-investor", "investor@greenbytes.test", "Ines", "investor", "Passw0rd!"),
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, x := range users {
		if _, err := tx.Exec(`
			INSERT INTO users(id,email,name,password_hash,role)
			VALUES(?,?,?,?,?)
			ON CONFLICT(email) DO NOTHING
		`, x.ID, x.Email, x.Name, x.Hash, x.Role); err != nil {
			return err
		}
	}

	return tx.Commit()
}
