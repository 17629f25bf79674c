package repos

import (
	"fmt"
	"log"
	"strings"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := Open(dsn)
	if err != nil {
		return nil, err
	}
	// Seed baseline data if DB is empty (users/vendors/menus)
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Open connects and ensures the schema without seeding demo data.
func Open(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// every connection to :memory: is a separate database
	if strings.Contains(dsn, ":memory:") {
		db.SetMaxOpenConns(1)
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Users & Sessions
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  first_name TEXT NOT NULL,
  last_name TEXT NOT NULL DEFAULT '',
  phone_number TEXT NOT NULL DEFAULT '',
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('CUSTOMER','VENDOR','ADMIN')),
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

CREATE TABLE IF NOT EXISTS user_profiles(
  user_id TEXT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
  address TEXT NOT NULL DEFAULT '',
  country TEXT NOT NULL DEFAULT '',
  state TEXT NOT NULL DEFAULT '',
  city TEXT NOT NULL DEFAULT '',
  pin_code TEXT NOT NULL DEFAULT '',
  latitude REAL,
  longitude REAL
);

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- same value as the 'sid' cookie
  user_id TEXT NULL REFERENCES users(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen  TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);

-- Vendors
CREATE TABLE IF NOT EXISTS vendors(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  user_id TEXT NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
  vendor_name TEXT NOT NULL,
  vendor_slug TEXT NOT NULL,
  vendor_license TEXT NOT NULL DEFAULT '',
  is_approved INTEGER NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  modified_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_vendors_slug ON vendors(vendor_slug);
CREATE INDEX IF NOT EXISTS idx_vendors_name ON vendors(LOWER(vendor_name));

CREATE TABLE IF NOT EXISTS opening_hours(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  vendor_id INTEGER NOT NULL REFERENCES vendors(id) ON DELETE CASCADE,
  day INTEGER NOT NULL CHECK (day BETWEEN 1 AND 7),
  from_hour TEXT NOT NULL DEFAULT '',
  to_hour TEXT NOT NULL DEFAULT '',
  is_closed INTEGER NOT NULL DEFAULT 0
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_opening_hours_slot ON opening_hours(vendor_id, day, from_hour, to_hour);

-- Menu
CREATE TABLE IF NOT EXISTS categories(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  vendor_id INTEGER NOT NULL REFERENCES vendors(id) ON DELETE CASCADE,
  category_name TEXT NOT NULL,
  slug TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_vendor_name ON categories(vendor_id, LOWER(category_name));

CREATE TABLE IF NOT EXISTS food_items(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  vendor_id INTEGER NOT NULL REFERENCES vendors(id) ON DELETE CASCADE,
  category_id INTEGER NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
  food_title TEXT NOT NULL,
  slug TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  price TEXT NOT NULL,
  image TEXT NOT NULL DEFAULT '',
  is_available INTEGER NOT NULL DEFAULT 1,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_food_items_category ON food_items(category_id);
CREATE INDEX IF NOT EXISTS idx_food_items_title    ON food_items(LOWER(food_title));

-- Cart
CREATE TABLE IF NOT EXISTS cart_lines(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  food_item_id INTEGER NOT NULL REFERENCES food_items(id) ON DELETE CASCADE,
  quantity INTEGER NOT NULL CHECK (quantity >= 1),
  created_at TEXT NOT NULL,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_cart_lines_user_item ON cart_lines(user_id, food_item_id);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM users`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo users/vendors/menus")

	hash, err := bcrypt.GenerateFromPassword([]byte("Passw0rd!"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	tx.MustExec(`INSERT INTO users(id,email,first_name,last_name,phone_number,password_hash,role,is_active) VALUES
	  ('u-alice','alice@foodonline.test','Alice','Moreau','5550101',?,'CUSTOMER',1),
	  ('u-bob','bob@foodonline.test','Bob','Singh','5550102',?,'CUSTOMER',1),
	  ('u-ravi','ravi@foodonline.test','Ravi','Kumar','5550103',?,'VENDOR',1),
	  ('u-mina','mina@foodonline.test','Mina','Park','5550104',?,'VENDOR',1),
	  ('u-otto','otto@foodonline.test','Otto','Lang','5550105',?,'VENDOR',0),
	  ('u-admin','admin@foodonline.test','Admin','','',?,'ADMIN',1)`,
		hash, hash, hash, hash, hash, hash)

	tx.MustExec(`INSERT INTO user_profiles(user_id,address,country,state,city,pin_code,latitude,longitude) VALUES
	  ('u-alice','12 Rue Cler','France','IDF','Paris','75007',48.8566,2.3522),
	  ('u-bob','',  '', '', '', '', NULL, NULL),
	  ('u-ravi','4 Rue Oberkampf','France','IDF','Paris','75011',48.8647,2.3736),
	  ('u-mina','1 Place Bellecour','France','ARA','Lyon','69002',45.7578,4.8320),
	  ('u-otto','9 Quai des Chartrons','France','NAQ','Bordeaux','33000',44.8378,-0.5792),
	  ('u-admin','','','','','',NULL,NULL)`)

	tx.MustExec(`INSERT INTO vendors(id,user_id,vendor_name,vendor_slug,vendor_license,is_approved) VALUES
	  (1,'u-ravi','Spice Garden','spice-garden-u-ravi','vendor/license/spice.png',1),
	  (2,'u-mina','Noodle Bar','noodle-bar-u-mina','vendor/license/noodle.png',0),
	  (3,'u-otto','Le Comptoir','le-comptoir-u-otto','vendor/license/comptoir.png',1)`)

	tx.MustExec(`INSERT INTO opening_hours(vendor_id,day,from_hour,to_hour,is_closed) VALUES
	  (1,1,'06:00 PM','11:00 PM',0),
	  (1,1,'11:00 AM','02:30 PM',0),
	  (1,2,'11:00 AM','11:00 PM',0),
	  (1,7,'','',1)`)

	tx.MustExec(`INSERT INTO categories(id,vendor_id,category_name,slug,description) VALUES
	  (1,1,'Curries','curries','Slow-cooked'),
	  (2,1,'Breads','breads','From the tandoor'),
	  (3,2,'Ramen','ramen',''),
	  (4,3,'Plats','plats','')`)

	tx.MustExec(`INSERT INTO food_items(id,vendor_id,category_id,food_title,slug,description,price,is_available) VALUES
	  (1,1,1,'Butter Chicken','butter-chicken','','12.50',1),
	  (2,1,1,'Palak Paneer','palak-paneer','','10.00',1),
	  (3,1,2,'Garlic Naan','garlic-naan','','3.25',1),
	  (4,1,2,'Cheese Naan','cheese-naan','','3.75',0),
	  (5,2,3,'Tonkotsu Ramen','tonkotsu-ramen','','14.00',1),
	  (6,3,4,'Boeuf Bourguignon','boeuf-bourguignon','','21.00',1)`)

	return tx.Commit()
}
