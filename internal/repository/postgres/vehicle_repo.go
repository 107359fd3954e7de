// internal/repository/postgres/vehicle_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"vms-service/internal/domain/vehicle"
	xerrors "vms-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type VehicleRepository struct {
	db *pgxpool.Pool
}

func NewVehicleRepository(db *pgxpool.Pool) *VehicleRepository {
	return &VehicleRepository{db: db}
}

const vehicleColumns = `id, vin, make, model, year, color, license_plate, mileage, status, owner_id, created_at, updated_at`

func scanVehicle(row pgx.Row, v *vehicle.Vehicle) error {
	return row.Scan(
		&v.ID, &v.VIN, &v.Make, &v.Model, &v.Year, &v.Color,
		&v.LicensePlate, &v.Mileage, &v.Status, &v.OwnerID,
		&v.CreatedAt, &v.UpdatedAt,
	)
}

// Create inserts a new vehicle
func (r *VehicleRepository) Create(ctx context.Context, v *vehicle.Vehicle) error {
	query := `
		INSERT INTO vehicles (
			id, vin, make, model, year, color, license_plate, mileage, status, owner_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		v.ID, v.VIN, v.Make, v.Model, v.Year, v.Color,
		v.LicensePlate, v.Mileage, v.Status, v.OwnerID,
	).Scan(&v.CreatedAt, &v.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create vehicle: %w", err)
	}

	return nil
}

// FindByID retrieves a vehicle by ID
func (r *VehicleRepository) FindByID(ctx context.Context, id string) (*vehicle.Vehicle, error) {
	query := fmt.Sprintf(`SELECT %s FROM vehicles WHERE id = $1`, vehicleColumns)

	var v vehicle.Vehicle
	err := scanVehicle(r.db.QueryRow(ctx, query, id), &v)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find vehicle: %w", err)
	}

	return &v, nil
}

// Update replaces all mutable vehicle fields
func (r *VehicleRepository) Update(ctx context.Context, id string, v *vehicle.Vehicle) error {
	query := `
		UPDATE vehicles
		SET vin = $1, make = $2, model = $3, year = $4, color = $5,
		    license_plate = $6, mileage = $7, status = $8, updated_at = $9
		WHERE id = $10
	`

	result, err := r.db.Exec(
		ctx, query,
		v.VIN, v.Make, v.Model, v.Year, v.Color,
		v.LicensePlate, v.Mileage, v.Status, time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update vehicle: %w", err)
	}

	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}

// UpdateStatus updates only the vehicle status
func (r *VehicleRepository) UpdateStatus(ctx context.Context, id string, status vehicle.Status) error {
	query := `UPDATE vehicles SET status = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.Exec(ctx, query, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update vehicle status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}

// AdvanceMileage raises the stored mileage to reading if it is higher.
// The reading never lowers the odometer.
func (r *VehicleRepository) AdvanceMileage(ctx context.Context, id string, reading int) error {
	query := `
		UPDATE vehicles
		SET mileage = GREATEST(mileage, $1), updated_at = $2
		WHERE id = $3
	`

	result, err := r.db.Exec(ctx, query, reading, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to advance mileage: %w", err)
	}

	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}

// SetOwner assigns or clears the vehicle owner. A nil ownerID unassigns.
func (r *VehicleRepository) SetOwner(ctx context.Context, id string, ownerID *string) error {
	query := `UPDATE vehicles SET owner_id = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.Exec(ctx, query, ownerID, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to set vehicle owner: %w", err)
	}

	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}

// Delete removes a vehicle
func (r *VehicleRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM vehicles WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}

	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}

// List retrieves vehicles with filters and pagination, owner name joined in
func (r *VehicleRepository) List(ctx context.Context, filters *vehicle.ListFilters) ([]vehicle.Info, int64, error) {
	conditions := []string{}
	args := []interface{}{}
	argPos := 1

	if filters.Make != "" {
		conditions = append(conditions, fmt.Sprintf("v.make ILIKE $%d", argPos))
		args = append(args, filters.Make)
		argPos++
	}

	if filters.Model != "" {
		conditions = append(conditions, fmt.Sprintf("v.model ILIKE $%d", argPos))
		args = append(args, filters.Model)
		argPos++
	}

	if filters.Year != nil {
		conditions = append(conditions, fmt.Sprintf("v.year = $%d", argPos))
		args = append(args, *filters.Year)
		argPos++
	}

	if filters.Status != nil {
		conditions = append(conditions, fmt.Sprintf("v.status = $%d", argPos))
		args = append(args, *filters.Status)
		argPos++
	}

	if filters.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(v.vin ILIKE $%d OR v.make ILIKE $%d OR v.model ILIKE $%d OR v.license_plate ILIKE $%d)", argPos, argPos, argPos, argPos))
		args = append(args, "%"+filters.Search+"%")
		argPos++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM vehicles v %s", whereClause)
	var total int64
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count vehicles: %w", err)
	}

	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.PageSize < 1 {
		filters.PageSize = 20
	}

	offset := (filters.Page - 1) * filters.PageSize

	query := fmt.Sprintf(`
		SELECT v.id, v.vin, v.make, v.model, v.year, v.color, v.license_plate,
		       v.mileage, v.status, v.owner_id, u.full_name, v.created_at, v.updated_at
		FROM vehicles v
		LEFT JOIN users u ON u.id = v.owner_id
		%s
		ORDER BY v.created_at DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argPos, argPos+1)

	args = append(args, filters.PageSize, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list vehicles: %w", err)
	}
	defer rows.Close()

	infos := []vehicle.Info{}
	for rows.Next() {
		var info vehicle.Info
		err := rows.Scan(
			&info.ID, &info.VIN, &info.Make, &info.Model, &info.Year, &info.Color,
			&info.LicensePlate, &info.Mileage, &info.Status, &info.OwnerID,
			&info.OwnerName, &info.CreatedAt, &info.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan vehicle: %w", err)
		}
		infos = append(infos, info)
	}

	return infos, total, nil
}

// ListAll retrieves every vehicle, for dashboard aggregation
func (r *VehicleRepository) ListAll(ctx context.Context) ([]vehicle.Vehicle, error) {
	query := fmt.Sprintf(`SELECT %s FROM vehicles ORDER BY created_at DESC`, vehicleColumns)

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	defer rows.Close()

	vehicles := []vehicle.Vehicle{}
	for rows.Next() {
		var v vehicle.Vehicle
		if err := scanVehicle(rows, &v); err != nil {
			return nil, fmt.Errorf("failed to scan vehicle: %w", err)
		}
		vehicles = append(vehicles, v)
	}

	return vehicles, nil
}

// ListByOwner retrieves vehicles assigned to a user
func (r *VehicleRepository) ListByOwner(ctx context.Context, ownerID string) ([]vehicle.Vehicle, error) {
	query := fmt.Sprintf(`SELECT %s FROM vehicles WHERE owner_id = $1 ORDER BY created_at DESC`, vehicleColumns)

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles by owner: %w", err)
	}
	defer rows.Close()

	vehicles := []vehicle.Vehicle{}
	for rows.Next() {
		var v vehicle.Vehicle
		if err := scanVehicle(rows, &v); err != nil {
			return nil, fmt.Errorf("failed to scan vehicle: %w", err)
		}
		vehicles = append(vehicles, v)
	}

	return vehicles, nil
}

// ExistsByVIN checks for a different vehicle with the same VIN
func (r *VehicleRepository) ExistsByVIN(ctx context.Context, vin, excludeID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM vehicles WHERE vin = $1 AND id <> $2)`
	var exists bool
	err := r.db.QueryRow(ctx, query, vin, excludeID).Scan(&exists)
	return exists, err
}

// ExistsByLicensePlate checks for a different vehicle with the same plate
func (r *VehicleRepository) ExistsByLicensePlate(ctx context.Context, plate, excludeID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM vehicles WHERE license_plate = $1 AND id <> $2)`
	var exists bool
	err := r.db.QueryRow(ctx, query, plate, excludeID).Scan(&exists)
	return exists, err
}
