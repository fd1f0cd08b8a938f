// backend-go/internal/repository/postgres/dataset_repository.go
package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/sopcenter/backend-go/internal/domain"
	"github.com/sopcenter/backend-go/internal/repository"
)

// DatasetRepository serves reference tables from Postgres. Tables are
// maintained by cmd/seed; reads are plain snapshots with no locking since
// nothing mutates them during a simulation.
type DatasetRepository struct {
	db *sqlx.DB
}

func NewDatasetRepository(db *sqlx.DB) *DatasetRepository {
	return &DatasetRepository{db: db}
}

func (r *DatasetRepository) Snapshot(ctx context.Context) (*domain.Snapshot, error) {
	snap := &domain.Snapshot{}

	if err := r.db.SelectContext(ctx, &snap.Promotions, `
		SELECT week_date, sku, product_focus, brand, campaign_theme, target_audience,
		       current_price, promo_price, uplift_percent, current_margin, new_margin
		FROM promotions
		ORDER BY week_date, sku
	`); err != nil {
		return nil, fmt.Errorf("%w: loading promotions: %v", domain.ErrDataUnavailable, err)
	}

	if err := r.db.SelectContext(ctx, &snap.Stores, `
		SELECT store_id, store_name, lat, lng
		FROM stores
		ORDER BY id
	`); err != nil {
		return nil, fmt.Errorf("%w: loading stores: %v", domain.ErrDataUnavailable, err)
	}

	if err := r.db.SelectContext(ctx, &snap.Demand, `
		SELECT store_id, sku, week_ending, units
		FROM demand
	`); err != nil {
		return nil, fmt.Errorf("%w: loading demand: %v", domain.ErrDataUnavailable, err)
	}

	if err := r.db.SelectContext(ctx, &snap.Inventory, `
		SELECT store_id, sku, on_hand
		FROM inventory
	`); err != nil {
		return nil, fmt.Errorf("%w: loading inventory: %v", domain.ErrDataUnavailable, err)
	}

	return snap, nil
}

func (r *DatasetRepository) Products(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := r.db.SelectContext(ctx, &products, `
		SELECT sku, name, brand, category, price
		FROM products
		ORDER BY sku
	`); err != nil {
		return nil, fmt.Errorf("%w: loading products: %v", domain.ErrDataUnavailable, err)
	}
	return products, nil
}

var _ repository.DatasetRepository = (*DatasetRepository)(nil)
