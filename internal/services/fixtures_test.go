package services_test

import (
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"foodonline/internal/repos"
)

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	if err := repos.Migrate(db); err != nil {
		t.Fatal(err)
	}
	seedFixtures(t, db)
	return db
}

// filedb is memdb on a real file, for tests that need several connections.
func filedb(t *testing.T) *sqlx.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "foodonline.db") + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(10000)"
	db, err := repos.Open(dsn)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	seedFixtures(t, db)
	return db
}

func seedFixtures(t *testing.T, db *sqlx.DB) {
	t.Helper()
	fixtures := `
	INSERT INTO users(id,email,first_name,last_name,phone_number,password_hash,role,is_active) VALUES
	  ('u-alice','alice@x.test','Alice','Moreau','5550101','-','CUSTOMER',1),
	  ('u-bob','bob@x.test','Bob','Singh','5550102','-','CUSTOMER',1),
	  ('u-ravi','ravi@x.test','Ravi','Kumar','5550103','-','VENDOR',1),
	  ('u-mina','mina@x.test','Mina','Park','5550104','-','VENDOR',1),
	  ('u-otto','otto@x.test','Otto','Lang','5550105','-','VENDOR',0);
	INSERT INTO user_profiles(user_id,address,country,state,city,pin_code,latitude,longitude) VALUES
	  ('u-alice','12 Rue Cler','France','IDF','Paris','75007',48.8566,2.3522),
	  ('u-ravi','4 Rue Oberkampf','France','IDF','Paris','75011',48.8647,2.3736),
	  ('u-mina','1 Place Bellecour','France','ARA','Lyon','69002',45.7578,4.8320),
	  ('u-otto','9 Quai des Chartrons','France','NAQ','Bordeaux','33000',44.8378,-0.5792);
	INSERT INTO vendors(id,user_id,vendor_name,vendor_slug,vendor_license,is_approved) VALUES
	  (1,'u-ravi','Spice Garden','spice-garden','lic',1),
	  (2,'u-mina','Noodle Bar','noodle-bar','lic',0),
	  (3,'u-otto','Le Comptoir','le-comptoir','lic',1);
	INSERT INTO opening_hours(vendor_id,day,from_hour,to_hour,is_closed) VALUES
	  (1,1,'06:00 PM','11:00 PM',0),
	  (1,1,'11:00 AM','02:30 PM',0),
	  (1,2,'11:00 AM','11:00 PM',0);
	INSERT INTO categories(id,vendor_id,category_name,slug) VALUES
	  (1,1,'Curries','curries'),
	  (2,1,'Breads','breads'),
	  (3,2,'Ramen','ramen'),
	  (4,3,'Plats','plats');
	INSERT INTO food_items(id,vendor_id,category_id,food_title,slug,price,is_available) VALUES
	  (7,1,1,'Butter Chicken','butter-chicken','12.50',1),
	  (8,1,2,'Garlic Naan','garlic-naan','3.25',1),
	  (9,1,2,'Cheese Naan','cheese-naan','3.75',0),
	  (10,2,3,'Tonkotsu Ramen','tonkotsu-ramen','14.00',1),
	  (11,3,4,'Boeuf Bourguignon','boeuf-bourguignon','21.00',1);
	`
	if _, err := db.Exec(fixtures); err != nil {
		t.Fatal(err)
	}
}
