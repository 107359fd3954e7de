// internal/domain/vehicle/repository.go
package vehicle

import "context"

type Repository interface {
	// Vehicle CRUD
	Create(ctx context.Context, v *Vehicle) error
	FindByID(ctx context.Context, id string) (*Vehicle, error)
	Update(ctx context.Context, id string, v *Vehicle) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filters *ListFilters) ([]Info, int64, error)
	ListAll(ctx context.Context) ([]Vehicle, error)

	// Uniqueness checks; excludeID skips the record being edited.
	ExistsByVIN(ctx context.Context, vin, excludeID string) (bool, error)
	ExistsByLicensePlate(ctx context.Context, plate, excludeID string) (bool, error)

	// Status and mileage
	UpdateStatus(ctx context.Context, id string, status Status) error
	AdvanceMileage(ctx context.Context, id string, mileage int) error

	// Owner assignment (weak reference)
	SetOwner(ctx context.Context, id string, ownerID *string) error
	ListByOwner(ctx context.Context, ownerID string) ([]Vehicle, error)
}
