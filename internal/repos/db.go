package repos

import (
	"log"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

// IsConflict reports whether err is a unique-constraint violation, so
// callers can map lost check-then-insert races to a duplicate error
// instead of a generic write failure.
func IsConflict(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

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
	// Demo marketplace data (idempotent; safe to run every start)
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Users & Sessions
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  phone_number TEXT NOT NULL DEFAULT '',
  address TEXT NOT NULL DEFAULT '',
  role TEXT NOT NULL CHECK (role IN ('BUYER','SELLER','BOTH')),
  profile_image_url TEXT NOT NULL DEFAULT '',
  password_hash TEXT NOT NULL,
  created_at INTEGER NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- same value as the 'sid' cookie
  user_id TEXT NULL REFERENCES users(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen  TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);

CREATE TABLE IF NOT EXISTS password_resets(
  token TEXT PRIMARY KEY,
  email TEXT NOT NULL,
  created_at INTEGER NOT NULL
);

-- Stores (one per owner)
CREATE TABLE IF NOT EXISTS stores(
  id TEXT PRIMARY KEY,
  owner_id TEXT NOT NULL UNIQUE REFERENCES users(id) ON DELETE RESTRICT,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  category TEXT NOT NULL DEFAULT '',
  logo_url TEXT NOT NULL DEFAULT '',
  banner_url TEXT NOT NULL DEFAULT '',
  rating REAL NOT NULL DEFAULT 0,
  total_ratings INTEGER NOT NULL DEFAULT 0,
  active INTEGER NOT NULL DEFAULT 1,
  created_at INTEGER NOT NULL
);

-- Products
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  store_id TEXT NOT NULL REFERENCES stores(id) ON DELETE CASCADE,
  store_name TEXT NOT NULL,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  price NUMERIC NOT NULL CHECK (price >= 0),
  discount_price NUMERIC,
  category TEXT NOT NULL DEFAULT '',
  images_json TEXT NOT NULL DEFAULT '[]',
  stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
  available INTEGER NOT NULL DEFAULT 1,
  rating REAL NOT NULL DEFAULT 0,
  total_ratings INTEGER NOT NULL DEFAULT 0,
  tags_json TEXT NOT NULL DEFAULT '[]',
  created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_products_store     ON products(store_id);
CREATE INDEX IF NOT EXISTS idx_products_available ON products(available, rating);

-- Carts (local cart store; keyed by session)
CREATE TABLE IF NOT EXISTS carts(
  id TEXT PRIMARY KEY,
  session_id TEXT UNIQUE NOT NULL,
  updated_at TEXT
);

CREATE TABLE IF NOT EXISTS cart_items(
  cart_id TEXT NOT NULL REFERENCES carts(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL,
  store_id TEXT NOT NULL,
  store_name TEXT NOT NULL,
  product_name TEXT NOT NULL,
  product_image TEXT NOT NULL DEFAULT '',
  unit_price NUMERIC NOT NULL,
  qty INTEGER NOT NULL CHECK (qty >= 1),
  stock INTEGER NOT NULL,
  created_at TEXT,
  updated_at TEXT,
  PRIMARY KEY (cart_id, product_id)
);

-- Orders (append-only; one store per order)
CREATE TABLE IF NOT EXISTS orders(
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  store_id TEXT NOT NULL,
  store_name TEXT NOT NULL,
  checkout_id TEXT NOT NULL DEFAULT '',
  total_amount NUMERIC NOT NULL,
  status TEXT NOT NULL DEFAULT 'PENDING',
  shipping_address TEXT NOT NULL,
  payment_method TEXT NOT NULL DEFAULT '',
  payment_id TEXT NOT NULL DEFAULT '',
  created_at INTEGER NOT NULL,
  updated_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_orders_user  ON orders(user_id, created_at);
CREATE INDEX IF NOT EXISTS idx_orders_store ON orders(store_id, created_at);

CREATE TABLE IF NOT EXISTS order_items(
  order_id TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL,
  product_name TEXT NOT NULL,
  product_image TEXT NOT NULL DEFAULT '',
  qty INTEGER NOT NULL CHECK (qty >= 1),
  price NUMERIC NOT NULL,
  PRIMARY KEY (order_id, product_id)
);
`
	_, err := db.Exec(schema)
	return err
}

// seedIfEmpty inserts demo users, stores and products on a fresh database.
func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM users`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo users/stores/products")

	now := time.Now().UnixMilli()
	hash := func(raw string) string {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 12)
		return string(h)
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	tx.MustExec(`INSERT INTO users(id,email,name,phone_number,role,password_hash,created_at) VALUES
	  ('u-maria','maria@bazar.test','Maria','555-0101','SELLER',?,?),
	  ('u-carlos','carlos@bazar.test','Carlos','555-0102','BOTH',?,?),
	  ('u-ana','ana@bazar.test','Ana','555-0103','BUYER',?,?)`,
		hash("Passw0rd!"), now, hash("Passw0rd!"), now, hash("Passw0rd!"), now)

	tx.MustExec(`INSERT INTO stores(id,owner_id,name,description,category,rating,total_ratings,created_at) VALUES
	  ('s-frutas','u-maria','Frutas Maria','Fresh fruit and vegetables','Groceries',4.6,31,?),
	  ('s-tech','u-carlos','Tech Carlos','Phones and accessories','Electronics',4.2,12,?)`,
		now, now)

	tx.MustExec(`INSERT INTO products(id,store_id,store_name,name,description,price,discount_price,category,stock,rating,total_ratings,tags_json,created_at) VALUES
	  ('p-mango','s-frutas','Frutas Maria','Mango Kent','Sweet ripe mangoes, per kg',3.50,NULL,'Fruit',40,4.8,20,'["fruta","mango"]',?),
	  ('p-palta','s-frutas','Frutas Maria','Avocado Hass','Creamy avocados, per unit',1.20,0.99,'Fruit',25,4.5,11,'["fruta","palta"]',?),
	  ('p-cable','s-tech','Tech Carlos','USB-C Cable 2m','Braided fast-charge cable',7.90,NULL,'Accessories',60,4.1,8,'["usb","cable"]',?)`,
		now, now, now)

	return tx.Commit()
}
