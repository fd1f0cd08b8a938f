// backend-go/internal/repository/repository.go
package repository

import (
	"context"

	"github.com/sopcenter/backend-go/internal/domain"
)

// DatasetRepository provides read-only snapshots of the reference tables.
// Implementations must return fresh data on every call; the simulator treats
// a snapshot as immutable for the duration of one run.
type DatasetRepository interface {
	Snapshot(ctx context.Context) (*domain.Snapshot, error)
	Products(ctx context.Context) ([]domain.Product, error)
}
