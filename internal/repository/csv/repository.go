// backend-go/internal/repository/csv/repository.go
package csv

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/sopcenter/backend-go/internal/dataset"
	"github.com/sopcenter/backend-go/internal/domain"
	"github.com/sopcenter/backend-go/internal/repository"
)

// Repository re-reads the dataset directory on every call. There is no cache
// and no invalidation; file edits are visible on the next snapshot.
type Repository struct {
	loader *dataset.Loader
}

func NewRepository(dir string) *Repository {
	return &Repository{loader: dataset.NewLoader(dir)}
}

// Snapshot loads the four reference tables. The tables are independent, so
// they are read concurrently; row order within each table is preserved.
func (r *Repository) Snapshot(ctx context.Context) (*domain.Snapshot, error) {
	snap := &domain.Snapshot{}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snap.Promotions, err = r.loader.Promotions()
		return err
	})
	g.Go(func() error {
		var err error
		snap.Stores, err = r.loader.Stores()
		return err
	})
	g.Go(func() error {
		var err error
		snap.Demand, err = r.loader.Demand()
		return err
	})
	g.Go(func() error {
		var err error
		snap.Inventory, err = r.loader.Inventory()
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}

func (r *Repository) Products(ctx context.Context) ([]domain.Product, error) {
	return r.loader.Products()
}

var _ repository.DatasetRepository = (*Repository)(nil)
