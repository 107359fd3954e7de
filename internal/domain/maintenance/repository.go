// internal/domain/maintenance/repository.go
package maintenance

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, r *Record) error
	FindByID(ctx context.Context, id string) (*Record, error)
	Update(ctx context.Context, id string, r *Record) error
	UpdateStatus(ctx context.Context, id string, status Status) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filters *ListFilters) ([]Record, int64, error)
	ListByVehicle(ctx context.Context, vehicleID string) ([]Record, error)

	// ListOverdue returns records whose next service date has passed and that
	// are not completed.
	ListOverdue(ctx context.Context, now time.Time) ([]Record, error)

	// ListUpcoming returns non-completed records due within the given number
	// of days from now.
	ListUpcoming(ctx context.Context, now time.Time, days int) ([]Record, error)

	// ListSince returns all records with a service date at or after since,
	// for cost aggregation.
	ListSince(ctx context.Context, since time.Time) ([]Record, error)
}
