// internal/repository/postgres/fuel_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"vms-service/internal/domain/fuel"
	xerrors "vms-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FuelRepository struct {
	db *pgxpool.Pool
}

func NewFuelRepository(db *pgxpool.Pool) *FuelRepository {
	return &FuelRepository{db: db}
}

const fuelColumns = `id, vehicle_id, fuel_amount, cost, price_per_unit, odometer, efficiency, fuel_date, station, recorded_by, created_at`

func scanFuelRecord(row pgx.Row, rec *fuel.Record) error {
	return row.Scan(
		&rec.ID, &rec.VehicleID, &rec.FuelAmount, &rec.Cost, &rec.PricePerUnit,
		&rec.Odometer, &rec.Efficiency, &rec.FuelDate, &rec.Station,
		&rec.RecordedBy, &rec.CreatedAt,
	)
}

// Create inserts a new fuel record
func (r *FuelRepository) Create(ctx context.Context, rec *fuel.Record) error {
	query := `
		INSERT INTO fuel_records (
			id, vehicle_id, fuel_amount, cost, price_per_unit, odometer,
			efficiency, fuel_date, station, recorded_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at
	`

	err := r.db.QueryRow(
		ctx, query,
		rec.ID, rec.VehicleID, rec.FuelAmount, rec.Cost, rec.PricePerUnit,
		rec.Odometer, rec.Efficiency, rec.FuelDate, rec.Station, rec.RecordedBy,
	).Scan(&rec.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create fuel record: %w", err)
	}

	return nil
}

// FindByID retrieves a fuel record by ID
func (r *FuelRepository) FindByID(ctx context.Context, id string) (*fuel.Record, error) {
	query := fmt.Sprintf(`SELECT %s FROM fuel_records WHERE id = $1`, fuelColumns)

	var rec fuel.Record
	err := scanFuelRecord(r.db.QueryRow(ctx, query, id), &rec)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find fuel record: %w", err)
	}

	return &rec, nil
}

// FindPreviousByDate returns the most recent record for a vehicle dated
// strictly before the given time, skipping excludeID. Returns ErrNotFound
// when the vehicle has no earlier record.
func (r *FuelRepository) FindPreviousByDate(ctx context.Context, vehicleID string, before time.Time, excludeID string) (*fuel.Record, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM fuel_records
		WHERE vehicle_id = $1 AND fuel_date < $2 AND id <> $3
		ORDER BY fuel_date DESC, created_at DESC
		LIMIT 1
	`, fuelColumns)

	var rec fuel.Record
	err := scanFuelRecord(r.db.QueryRow(ctx, query, vehicleID, before, excludeID), &rec)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find previous fuel record: %w", err)
	}

	return &rec, nil
}

// Update replaces all mutable fields of a fuel record
func (r *FuelRepository) Update(ctx context.Context, id string, rec *fuel.Record) error {
	query := `
		UPDATE fuel_records
		SET fuel_amount = $1, cost = $2, price_per_unit = $3, odometer = $4,
		    efficiency = $5, fuel_date = $6, station = $7
		WHERE id = $8
	`

	result, err := r.db.Exec(
		ctx, query,
		rec.FuelAmount, rec.Cost, rec.PricePerUnit, rec.Odometer,
		rec.Efficiency, rec.FuelDate, rec.Station, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update fuel record: %w", err)
	}

	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}

// Delete removes a fuel record
func (r *FuelRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM fuel_records WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete fuel record: %w", err)
	}

	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}

// List retrieves fuel records with filters and pagination
func (r *FuelRepository) List(ctx context.Context, filters *fuel.ListFilters) ([]fuel.Record, int64, error) {
	conditions := []string{}
	args := []interface{}{}
	argPos := 1

	if filters.VehicleID != "" {
		conditions = append(conditions, fmt.Sprintf("vehicle_id = $%d", argPos))
		args = append(args, filters.VehicleID)
		argPos++
	}

	if filters.FromDate != nil {
		conditions = append(conditions, fmt.Sprintf("fuel_date >= $%d", argPos))
		args = append(args, *filters.FromDate)
		argPos++
	}

	if filters.ToDate != nil {
		conditions = append(conditions, fmt.Sprintf("fuel_date <= $%d", argPos))
		args = append(args, *filters.ToDate)
		argPos++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM fuel_records %s", whereClause)
	var total int64
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count fuel records: %w", err)
	}

	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.PageSize < 1 {
		filters.PageSize = 20
	}

	offset := (filters.Page - 1) * filters.PageSize

	query := fmt.Sprintf(`
		SELECT %s
		FROM fuel_records
		%s
		ORDER BY fuel_date DESC, created_at DESC
		LIMIT $%d OFFSET $%d
	`, fuelColumns, whereClause, argPos, argPos+1)

	args = append(args, filters.PageSize, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list fuel records: %w", err)
	}
	defer rows.Close()

	records := []fuel.Record{}
	for rows.Next() {
		var rec fuel.Record
		if err := scanFuelRecord(rows, &rec); err != nil {
			return nil, 0, fmt.Errorf("failed to scan fuel record: %w", err)
		}
		records = append(records, rec)
	}

	return records, total, nil
}

// ListByVehicle retrieves all fuel records for one vehicle, newest first
func (r *FuelRepository) ListByVehicle(ctx context.Context, vehicleID string) ([]fuel.Record, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM fuel_records
		WHERE vehicle_id = $1
		ORDER BY fuel_date DESC, created_at DESC
	`, fuelColumns)

	rows, err := r.db.Query(ctx, query, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list fuel records: %w", err)
	}
	defer rows.Close()

	records := []fuel.Record{}
	for rows.Next() {
		var rec fuel.Record
		if err := scanFuelRecord(rows, &rec); err != nil {
			return nil, fmt.Errorf("failed to scan fuel record: %w", err)
		}
		records = append(records, rec)
	}

	return records, nil
}

// ListSince retrieves all fuel records dated at or after since
func (r *FuelRepository) ListSince(ctx context.Context, since time.Time) ([]fuel.Record, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM fuel_records
		WHERE fuel_date >= $1
		ORDER BY fuel_date ASC
	`, fuelColumns)

	rows, err := r.db.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list fuel records: %w", err)
	}
	defer rows.Close()

	records := []fuel.Record{}
	for rows.Next() {
		var rec fuel.Record
		if err := scanFuelRecord(rows, &rec); err != nil {
			return nil, fmt.Errorf("failed to scan fuel record: %w", err)
		}
		records = append(records, rec)
	}

	return records, nil
}
