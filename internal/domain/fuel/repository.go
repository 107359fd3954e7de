// internal/domain/fuel/repository.go
package fuel

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, r *Record) error
	FindByID(ctx context.Context, id string) (*Record, error)
	Update(ctx context.Context, id string, r *Record) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filters *ListFilters) ([]Record, int64, error)
	ListByVehicle(ctx context.Context, vehicleID string) ([]Record, error)

	// FindPreviousByDate returns the most recent record for the vehicle with
	// a fuel date strictly before the given one, excluding excludeID when
	// non-empty. Returns xerrors.ErrNotFound when no predecessor exists.
	FindPreviousByDate(ctx context.Context, vehicleID string, before time.Time, excludeID string) (*Record, error)

	// ListSince returns all records with fuel date >= since, across vehicles.
	ListSince(ctx context.Context, since time.Time) ([]Record, error)
}
