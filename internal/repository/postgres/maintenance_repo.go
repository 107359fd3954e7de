// internal/repository/postgres/maintenance_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"vms-service/internal/domain/maintenance"
	xerrors "vms-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MaintenanceRepository struct {
	db *pgxpool.Pool
}

func NewMaintenanceRepository(db *pgxpool.Pool) *MaintenanceRepository {
	return &MaintenanceRepository{db: db}
}

const maintenanceColumns = `id, vehicle_id, service_type, description, cost, service_provider, service_date, next_service_due, status, performed_by, created_at, updated_at`

func scanMaintenanceRecord(row pgx.Row, rec *maintenance.Record) error {
	return row.Scan(
		&rec.ID, &rec.VehicleID, &rec.ServiceType, &rec.Description, &rec.Cost,
		&rec.ServiceProvider, &rec.ServiceDate, &rec.NextServiceDue,
		&rec.Status, &rec.PerformedBy, &rec.CreatedAt, &rec.UpdatedAt,
	)
}

// Create inserts a new maintenance record
func (r *MaintenanceRepository) Create(ctx context.Context, rec *maintenance.Record) error {
	query := `
		INSERT INTO maintenance_records (
			id, vehicle_id, service_type, description, cost,
			service_provider, service_date, next_service_due, status, performed_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		rec.ID, rec.VehicleID, rec.ServiceType, rec.Description, rec.Cost,
		rec.ServiceProvider, rec.ServiceDate, rec.NextServiceDue, rec.Status, rec.PerformedBy,
	).Scan(&rec.CreatedAt, &rec.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create maintenance record: %w", err)
	}

	return nil
}

// FindByID retrieves a maintenance record by ID
func (r *MaintenanceRepository) FindByID(ctx context.Context, id string) (*maintenance.Record, error) {
	query := fmt.Sprintf(`SELECT %s FROM maintenance_records WHERE id = $1`, maintenanceColumns)

	var rec maintenance.Record
	err := scanMaintenanceRecord(r.db.QueryRow(ctx, query, id), &rec)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find maintenance record: %w", err)
	}

	return &rec, nil
}

// Update replaces all mutable fields of a maintenance record
func (r *MaintenanceRepository) Update(ctx context.Context, id string, rec *maintenance.Record) error {
	query := `
		UPDATE maintenance_records
		SET service_type = $1, description = $2, cost = $3, service_provider = $4,
		    service_date = $5, next_service_due = $6, status = $7, updated_at = $8
		WHERE id = $9
	`

	result, err := r.db.Exec(
		ctx, query,
		rec.ServiceType, rec.Description, rec.Cost, rec.ServiceProvider,
		rec.ServiceDate, rec.NextServiceDue, rec.Status, time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update maintenance record: %w", err)
	}

	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}

// UpdateStatus updates only the record status
func (r *MaintenanceRepository) UpdateStatus(ctx context.Context, id string, status maintenance.Status) error {
	query := `UPDATE maintenance_records SET status = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.Exec(ctx, query, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update maintenance status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}

// Delete removes a maintenance record
func (r *MaintenanceRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM maintenance_records WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete maintenance record: %w", err)
	}

	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}

// List retrieves maintenance records with filters and pagination
func (r *MaintenanceRepository) List(ctx context.Context, filters *maintenance.ListFilters) ([]maintenance.Record, int64, error) {
	conditions := []string{}
	args := []interface{}{}
	argPos := 1

	if filters.VehicleID != "" {
		conditions = append(conditions, fmt.Sprintf("vehicle_id = $%d", argPos))
		args = append(args, filters.VehicleID)
		argPos++
	}

	if filters.ServiceType != "" {
		conditions = append(conditions, fmt.Sprintf("service_type = $%d", argPos))
		args = append(args, filters.ServiceType)
		argPos++
	}

	if filters.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argPos))
		args = append(args, *filters.Status)
		argPos++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM maintenance_records %s", whereClause)
	var total int64
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count maintenance records: %w", err)
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
		FROM maintenance_records
		%s
		ORDER BY service_date DESC, created_at DESC
		LIMIT $%d OFFSET $%d
	`, maintenanceColumns, whereClause, argPos, argPos+1)

	args = append(args, filters.PageSize, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list maintenance records: %w", err)
	}
	defer rows.Close()

	records := []maintenance.Record{}
	for rows.Next() {
		var rec maintenance.Record
		if err := scanMaintenanceRecord(rows, &rec); err != nil {
			return nil, 0, fmt.Errorf("failed to scan maintenance record: %w", err)
		}
		records = append(records, rec)
	}

	return records, total, nil
}

// ListByVehicle retrieves all maintenance records for one vehicle
func (r *MaintenanceRepository) ListByVehicle(ctx context.Context, vehicleID string) ([]maintenance.Record, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM maintenance_records
		WHERE vehicle_id = $1
		ORDER BY service_date DESC, created_at DESC
	`, maintenanceColumns)

	return r.queryRecords(ctx, query, vehicleID)
}

// ListOverdue retrieves non-completed records due before now
func (r *MaintenanceRepository) ListOverdue(ctx context.Context, now time.Time) ([]maintenance.Record, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM maintenance_records
		WHERE next_service_due IS NOT NULL
		  AND next_service_due < $1
		  AND status <> 'completed'
		ORDER BY next_service_due ASC
	`, maintenanceColumns)

	return r.queryRecords(ctx, query, now)
}

// ListUpcoming retrieves non-completed records due within days of now
func (r *MaintenanceRepository) ListUpcoming(ctx context.Context, now time.Time, days int) ([]maintenance.Record, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM maintenance_records
		WHERE next_service_due IS NOT NULL
		  AND next_service_due >= $1
		  AND next_service_due <= $2
		  AND status <> 'completed'
		ORDER BY next_service_due ASC
	`, maintenanceColumns)

	return r.queryRecords(ctx, query, now, now.AddDate(0, 0, days))
}

// ListSince retrieves records with a service date at or after since
func (r *MaintenanceRepository) ListSince(ctx context.Context, since time.Time) ([]maintenance.Record, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM maintenance_records
		WHERE service_date >= $1
		ORDER BY service_date ASC
	`, maintenanceColumns)

	return r.queryRecords(ctx, query, since)
}

func (r *MaintenanceRepository) queryRecords(ctx context.Context, query string, args ...interface{}) ([]maintenance.Record, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query maintenance records: %w", err)
	}
	defer rows.Close()

	records := []maintenance.Record{}
	for rows.Next() {
		var rec maintenance.Record
		if err := scanMaintenanceRecord(rows, &rec); err != nil {
			return nil, fmt.Errorf("failed to scan maintenance record: %w", err)
		}
		records = append(records, rec)
	}

	return records, nil
}
