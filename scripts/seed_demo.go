package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	fmt.Println("========================================")
	fmt.Println("   Seed Demo ERP Schema")
	fmt.Println("========================================")
	fmt.Println()
	fmt.Println("⚠️  WARNING: This will DROP and recreate the item tables!")
	fmt.Println()
	fmt.Println("This will:")
	fmt.Println("  - Drop items, barcodes, bins and price tables")
	fmt.Println("  - Drop the stock ledger and invoice tables")
	fmt.Println("  - Recreate everything with demo data")
	fmt.Println()
	fmt.Println("Point it at a scratch database, never at a live ERP.")
	fmt.Println()
	fmt.Print("Type 'yes' to confirm: ")

	var confirm string
	fmt.Scanln(&confirm)

	if confirm != "yes" {
		fmt.Println("Seed cancelled.")
		return
	}

	// Load environment variables
	godotenv.Load()

	// Database connection
	dbHost := getEnv("DB_HOST", "localhost")
	dbPort := getEnv("DB_PORT", "5432")
	dbUser := getEnv("DB_USER", "postgres")
	dbPassword := getEnv("DB_PASSWORD", "postgres")
	dbName := getEnv("DB_NAME", "erp_db")

	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		dbUser, dbPassword, dbHost, dbPort, dbName)

	pool, err := pgxpool.New(context.Background(), connStr)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v\n", err)
	}
	defer pool.Close()

	fmt.Println()
	fmt.Println("🔄 Seeding demo schema...")

	ctx := context.Background()

	// Start transaction
	tx, err := pool.Begin(ctx)
	if err != nil {
		log.Fatalf("Failed to begin transaction: %v\n", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		DROP TABLE IF EXISTS items, item_barcodes, bins, stock_ledger_entries, item_prices,
			sales_invoices, sales_invoice_items, purchase_invoices, purchase_invoice_items,
			stock_settings, selling_settings CASCADE`)
	if err != nil {
		log.Fatalf("Failed to drop tables: %v\n", err)
	}
	fmt.Println("  ✓ Dropped old tables")

	_, err = tx.Exec(ctx, `
		CREATE TABLE items (
			item_code TEXT PRIMARY KEY,
			item_name TEXT,
			item_group TEXT,
			brand TEXT,
			stock_uom TEXT,
			description TEXT,
			image TEXT,
			disabled BOOLEAN NOT NULL DEFAULT FALSE,
			is_stock_item BOOLEAN NOT NULL DEFAULT TRUE,
			barcode TEXT,
			standard_rate NUMERIC,
			last_purchase_rate NUMERIC,
			reorder_level NUMERIC
		);

		CREATE TABLE item_barcodes (
			item_code TEXT NOT NULL REFERENCES items(item_code),
			barcode TEXT,
			idx INT NOT NULL DEFAULT 0
		);

		CREATE TABLE bins (
			item_code TEXT NOT NULL REFERENCES items(item_code),
			warehouse TEXT,
			actual_qty NUMERIC,
			projected_qty NUMERIC,
			reserved_qty NUMERIC,
			ordered_qty NUMERIC,
			indented_qty NUMERIC,
			planned_qty NUMERIC
		);

		CREATE TABLE stock_ledger_entries (
			id SERIAL PRIMARY KEY,
			item_code TEXT NOT NULL,
			warehouse TEXT,
			posting_date DATE,
			posting_time TIME,
			creation TIMESTAMPTZ DEFAULT NOW(),
			valuation_rate NUMERIC,
			is_cancelled BOOLEAN NOT NULL DEFAULT FALSE
		);

		CREATE TABLE item_prices (
			id SERIAL PRIMARY KEY,
			item_code TEXT NOT NULL,
			price_list TEXT,
			price_list_rate NUMERIC,
			currency TEXT,
			selling BOOLEAN NOT NULL DEFAULT FALSE,
			valid_from DATE,
			valid_upto DATE,
			modified TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			creation TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE sales_invoices (
			invoice_no TEXT PRIMARY KEY,
			posting_date DATE NOT NULL,
			customer TEXT,
			currency TEXT,
			conversion_rate NUMERIC,
			docstatus SMALLINT NOT NULL DEFAULT 0,
			modified TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE sales_invoice_items (
			invoice_no TEXT NOT NULL REFERENCES sales_invoices(invoice_no),
			item_code TEXT NOT NULL,
			qty NUMERIC,
			stock_qty NUMERIC,
			rate NUMERIC,
			amount NUMERIC,
			base_net_amount NUMERIC
		);

		CREATE TABLE purchase_invoices (
			invoice_no TEXT PRIMARY KEY,
			posting_date DATE NOT NULL,
			supplier TEXT,
			currency TEXT,
			conversion_rate NUMERIC,
			docstatus SMALLINT NOT NULL DEFAULT 0,
			modified TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE purchase_invoice_items (
			invoice_no TEXT NOT NULL REFERENCES purchase_invoices(invoice_no),
			item_code TEXT NOT NULL,
			qty NUMERIC,
			stock_qty NUMERIC,
			stock_uom_rate NUMERIC,
			base_net_amount NUMERIC
		);

		CREATE TABLE stock_settings (default_selling_price_list TEXT);
		CREATE TABLE selling_settings (selling_price_list TEXT)`)
	if err != nil {
		log.Fatalf("Failed to create tables: %v\n", err)
	}
	fmt.Println("  ✓ Created item, stock and invoice tables")

	_, err = tx.Exec(ctx, `
		INSERT INTO items (item_code, item_name, item_group, brand, stock_uom, description, image, disabled, is_stock_item, barcode, standard_rate, last_purchase_rate, reorder_level) VALUES
		('RICE-5KG',  'Basmati Rice 5kg',     'Grains',    'Annapurna', 'Bag',  'Long grain basmati rice', '/files/rice-5kg.png', FALSE, TRUE, NULL, 520, 455, 20),
		('OIL-1L',    'Sunflower Oil 1L',     'Oils',      'SunGold',   'Nos',  'Refined sunflower oil',   '/files/oil-1l.png',   FALSE, TRUE, '8901030801693', 165, 142, 48),
		('OIL-1L-OLD','Sunflower Oil 1L (old pack)', 'Oils', 'SunGold', 'Nos', 'Discontinued pack design', NULL, TRUE, TRUE, NULL, 160, 138, 0),
		('SOAP-75G',  'Bath Soap 75g',        'Personal Care', 'Fresco', 'Nos', NULL, NULL, FALSE, TRUE, '8901030555111', 38, 29.5, 144),
		('SALT-1KG',  'Iodised Salt 1kg',     'Grains',    'Annapurna', 'Nos',  NULL, NULL, FALSE, TRUE, NULL, 24, 18, 60);

		INSERT INTO item_barcodes (item_code, barcode, idx) VALUES
		('RICE-5KG',   '8901030777001', 1),
		('OIL-1L',     '8901030801693', 1),
		('OIL-1L-OLD', '8901030801693', 1),
		('SOAP-75G',   '8901030555111', 1),
		('SOAP-75G',   '8901030555128', 2)`)
	if err != nil {
		log.Fatalf("Failed to seed items: %v\n", err)
	}
	fmt.Println("  ✓ Seeded items and barcodes")

	_, err = tx.Exec(ctx, `
		INSERT INTO bins (item_code, warehouse, actual_qty, projected_qty, reserved_qty, ordered_qty, indented_qty, planned_qty) VALUES
		('RICE-5KG', 'Main Store',  34,  28, 6, 0, 0, 0),
		('RICE-5KG', 'Back Godown', 120, 120, 0, 40, 0, 0),
		('OIL-1L',   'Main Store',  61,  55, 6, 0, 0, 0),
		('SOAP-75G', 'Main Store',  240, 240, 0, 0, 0, 0),
		('SALT-1KG', 'Main Store',  18,  18, 0, 0, 0, 0);

		INSERT INTO stock_ledger_entries (item_code, warehouse, posting_date, posting_time, valuation_rate) VALUES
		('RICE-5KG', 'Main Store',  CURRENT_DATE - 40, '10:15:00', 448),
		('RICE-5KG', 'Main Store',  CURRENT_DATE - 12, '16:40:00', 455),
		('RICE-5KG', 'Back Godown', CURRENT_DATE - 12, '16:40:00', 455),
		('OIL-1L',   'Main Store',  CURRENT_DATE - 22, '11:05:00', 139),
		('OIL-1L',   'Main Store',  CURRENT_DATE - 5,  '09:30:00', 142),
		('SOAP-75G', 'Main Store',  CURRENT_DATE - 30, '14:00:00', 29.5),
		('SALT-1KG', 'Main Store',  CURRENT_DATE - 60, '12:00:00', 18)`)
	if err != nil {
		log.Fatalf("Failed to seed stock: %v\n", err)
	}
	fmt.Println("  ✓ Seeded bins and stock ledger")

	_, err = tx.Exec(ctx, `
		INSERT INTO item_prices (item_code, price_list, price_list_rate, currency, selling, valid_from, modified, creation) VALUES
		('RICE-5KG', 'Standard Buying',  455, 'INR', FALSE, CURRENT_DATE - 90, NOW() - INTERVAL '12 days', NOW() - INTERVAL '90 days'),
		('RICE-5KG', 'Standard Selling', 499, 'INR', TRUE,  CURRENT_DATE - 90, NOW() - INTERVAL '45 days', NOW() - INTERVAL '90 days'),
		('RICE-5KG', 'Standard Selling', 520, 'INR', TRUE,  CURRENT_DATE - 10, NOW() - INTERVAL '10 days', NOW() - INTERVAL '10 days'),
		('OIL-1L',   'Standard Selling', 165, 'INR', TRUE,  CURRENT_DATE - 30, NOW() - INTERVAL '30 days', NOW() - INTERVAL '30 days'),
		('SOAP-75G', 'Standard Selling', 38,  'INR', TRUE,  CURRENT_DATE - 120, NOW() - INTERVAL '120 days', NOW() - INTERVAL '120 days'),
		('SALT-1KG', 'Standard Selling', 24,  'INR', TRUE,  CURRENT_DATE - 200, NOW() - INTERVAL '200 days', NOW() - INTERVAL '200 days');

		INSERT INTO stock_settings (default_selling_price_list) VALUES ('Standard Selling');
		INSERT INTO selling_settings (selling_price_list) VALUES ('Standard Selling')`)
	if err != nil {
		log.Fatalf("Failed to seed prices: %v\n", err)
	}
	fmt.Println("  ✓ Seeded prices and settings")

	_, err = tx.Exec(ctx, `
		INSERT INTO sales_invoices (invoice_no, posting_date, customer, currency, conversion_rate, docstatus) VALUES
		('SINV-2025-00041', CURRENT_DATE - 2,  'Walk-in Customer', 'INR', 1, 1),
		('SINV-2025-00038', CURRENT_DATE - 9,  'Hotel Blue Bird',  'INR', 1, 1),
		('SINV-2025-00029', CURRENT_DATE - 25, 'Walk-in Customer', 'INR', 1, 1),
		('SINV-2025-00012', CURRENT_DATE - 70, 'Hotel Blue Bird',  'INR', 1, 1);

		INSERT INTO sales_invoice_items (invoice_no, item_code, qty, stock_qty, rate, amount, base_net_amount) VALUES
		('SINV-2025-00041', 'RICE-5KG', 2,  2,  520, 1040, 1040),
		('SINV-2025-00041', 'OIL-1L',   3,  3,  165, 495,  495),
		('SINV-2025-00038', 'RICE-5KG', 10, 10, 499, 4990, 4990),
		('SINV-2025-00029', 'SOAP-75G', 12, 12, 38,  456,  456),
		('SINV-2025-00012', 'RICE-5KG', 6,  6,  480, 2880, 2880);

		INSERT INTO purchase_invoices (invoice_no, posting_date, supplier, currency, conversion_rate, docstatus) VALUES
		('PINV-2025-00017', CURRENT_DATE - 12, 'Annapurna Mills',   'INR', 1, 1),
		('PINV-2025-00016', CURRENT_DATE - 22, 'SunGold Refineries','INR', 1, 1);

		INSERT INTO purchase_invoice_items (invoice_no, item_code, qty, stock_qty, stock_uom_rate, base_net_amount) VALUES
		('PINV-2025-00017', 'RICE-5KG', 50, 50,  455, 22750),
		('PINV-2025-00016', 'OIL-1L',   12, 144, 142, 20448)`)
	if err != nil {
		log.Fatalf("Failed to seed invoices: %v\n", err)
	}
	fmt.Println("  ✓ Seeded sales and purchase invoices")

	// Commit transaction
	err = tx.Commit(ctx)
	if err != nil {
		log.Fatalf("Failed to commit transaction: %v\n", err)
	}

	fmt.Println()
	fmt.Println("✅ Demo schema seeded!")
	fmt.Println()
	fmt.Println("Try it:")
	fmt.Println("  curl 'http://localhost:8080/api/items/resolve-barcode?barcode=8901030777001'")
	fmt.Println("  curl 'http://localhost:8080/api/items/resolve-barcode?barcode=8901030801693'   # two matches")
	fmt.Println("  curl 'http://localhost:8080/api/items/RICE-5KG/snapshot'")
	fmt.Println()
	fmt.Println("Database is now ready for the inspector backend!")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
