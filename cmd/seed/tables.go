// backend-go/cmd/seed/tables.go
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/sopcenter/backend-go/internal/dataset"
)

func createSchema(ctx context.Context, db *sql.DB) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS promotions (
			id SERIAL PRIMARY KEY,
			week_date TEXT NOT NULL,
			sku TEXT NOT NULL,
			product_focus TEXT,
			brand TEXT,
			campaign_theme TEXT,
			target_audience TEXT,
			current_price DOUBLE PRECISION NOT NULL DEFAULT 0,
			promo_price DOUBLE PRECISION NOT NULL DEFAULT 0,
			uplift_percent DOUBLE PRECISION NOT NULL DEFAULT 0,
			current_margin DOUBLE PRECISION NOT NULL DEFAULT 0,
			new_margin DOUBLE PRECISION NOT NULL DEFAULT 0,
			UNIQUE (week_date, sku)
		)`,
		`CREATE TABLE IF NOT EXISTS stores (
			id SERIAL PRIMARY KEY,
			store_id TEXT NOT NULL UNIQUE,
			store_name TEXT,
			lat DOUBLE PRECISION NOT NULL DEFAULT 0,
			lng DOUBLE PRECISION NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS demand (
			id SERIAL PRIMARY KEY,
			store_id TEXT NOT NULL,
			sku TEXT NOT NULL,
			week_ending TEXT NOT NULL,
			units DOUBLE PRECISION NOT NULL DEFAULT 0,
			UNIQUE (store_id, sku, week_ending)
		)`,
		`CREATE TABLE IF NOT EXISTS inventory (
			id SERIAL PRIMARY KEY,
			store_id TEXT NOT NULL,
			sku TEXT NOT NULL,
			on_hand DOUBLE PRECISION NOT NULL DEFAULT 0,
			UNIQUE (store_id, sku)
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			id SERIAL PRIMARY KEY,
			sku TEXT NOT NULL UNIQUE,
			name TEXT,
			brand TEXT,
			category TEXT,
			price DOUBLE PRECISION NOT NULL DEFAULT 0
		)`,
	}

	for _, stmt := range ddl {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func seedPromotions(ctx context.Context, db *sql.DB, loader *dataset.Loader) error {
	promos, err := loader.Promotions()
	if err != nil {
		return fmt.Errorf("loading promotions: %w", err)
	}

	for _, p := range promos {
		_, err := db.ExecContext(ctx, `
			INSERT INTO promotions (week_date, sku, product_focus, brand, campaign_theme, target_audience,
			                        current_price, promo_price, uplift_percent, current_margin, new_margin)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			ON CONFLICT (week_date, sku) DO UPDATE SET
				product_focus = EXCLUDED.product_focus,
				brand = EXCLUDED.brand,
				campaign_theme = EXCLUDED.campaign_theme,
				target_audience = EXCLUDED.target_audience,
				current_price = EXCLUDED.current_price,
				promo_price = EXCLUDED.promo_price,
				uplift_percent = EXCLUDED.uplift_percent,
				current_margin = EXCLUDED.current_margin,
				new_margin = EXCLUDED.new_margin
		`, p.WeekDate, p.SKU, p.ProductFocus, p.Brand, p.CampaignTheme, p.TargetAudience,
			p.CurrentPrice, p.PromoPrice, p.UpliftPercent, p.CurrentMargin, p.NewMargin)
		if err != nil {
			return fmt.Errorf("inserting promotion %s_%s: %w", p.WeekDate, p.SKU, err)
		}
	}

	log.Printf("seeded %d promotions", len(promos))
	return nil
}

func seedStores(ctx context.Context, db *sql.DB, loader *dataset.Loader) error {
	stores, err := loader.Stores()
	if err != nil {
		return fmt.Errorf("loading stores: %w", err)
	}

	for _, s := range stores {
		_, err := db.ExecContext(ctx, `
			INSERT INTO stores (store_id, store_name, lat, lng)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (store_id) DO UPDATE SET
				store_name = EXCLUDED.store_name,
				lat = EXCLUDED.lat,
				lng = EXCLUDED.lng
		`, s.ID, s.Name, s.Lat, s.Lng)
		if err != nil {
			return fmt.Errorf("inserting store %s: %w", s.ID, err)
		}
	}

	log.Printf("seeded %d stores", len(stores))
	return nil
}

func seedDemand(ctx context.Context, db *sql.DB, loader *dataset.Loader) error {
	records, err := loader.Demand()
	if err != nil {
		return fmt.Errorf("loading demand: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO demand (store_id, sku, week_ending, units)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (store_id, sku, week_ending) DO UPDATE SET units = EXCLUDED.units
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, d := range records {
		if _, err := stmt.ExecContext(ctx, d.StoreID, d.SKU, d.WeekEnding, d.Units); err != nil {
			return fmt.Errorf("inserting demand %s/%s/%s: %w", d.StoreID, d.SKU, d.WeekEnding, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	log.Printf("seeded %d demand records", len(records))
	return nil
}

func seedInventory(ctx context.Context, db *sql.DB, loader *dataset.Loader) error {
	records, err := loader.Inventory()
	if err != nil {
		return fmt.Errorf("loading inventory: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO inventory (store_id, sku, on_hand)
		VALUES ($1, $2, $3)
		ON CONFLICT (store_id, sku) DO UPDATE SET on_hand = EXCLUDED.on_hand
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, inv := range records {
		if _, err := stmt.ExecContext(ctx, inv.StoreID, inv.SKU, inv.OnHand); err != nil {
			return fmt.Errorf("inserting inventory %s/%s: %w", inv.StoreID, inv.SKU, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	log.Printf("seeded %d inventory records", len(records))
	return nil
}

func seedProducts(ctx context.Context, db *sql.DB, loader *dataset.Loader) error {
	products, err := loader.Products()
	if err != nil {
		return fmt.Errorf("loading products: %w", err)
	}
	if len(products) == 0 {
		log.Printf("no product catalog found, skipping")
		return nil
	}

	for _, p := range products {
		_, err := db.ExecContext(ctx, `
			INSERT INTO products (sku, name, brand, category, price)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (sku) DO UPDATE SET
				name = EXCLUDED.name,
				brand = EXCLUDED.brand,
				category = EXCLUDED.category,
				price = EXCLUDED.price
		`, p.SKU, p.Name, p.Brand, p.Category, p.Price)
		if err != nil {
			return fmt.Errorf("inserting product %s: %w", p.SKU, err)
		}
	}

	log.Printf("seeded %d products", len(products))
	return nil
}
