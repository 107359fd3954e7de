// internal/domain/maintenance/entity.go
package maintenance

import (
	"database/sql"
	"time"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// Record represents a maintenance/service entry for a vehicle.
type Record struct {
	ID              string         `json:"id" db:"id"`
	VehicleID       string         `json:"vehicle_id" db:"vehicle_id"`
	ServiceType     string         `json:"service_type" db:"service_type"` // routine, repair, inspection
	Description     string         `json:"description" db:"description"`
	Cost            float64        `json:"cost" db:"cost"`
	ServiceProvider string         `json:"service_provider" db:"service_provider"`
	ServiceDate     time.Time      `json:"service_date" db:"service_date"`
	NextServiceDue  sql.NullTime   `json:"-" db:"next_service_due"`
	Status          Status         `json:"status" db:"status"`
	PerformedBy     sql.NullString `json:"-" db:"performed_by"`
	CreatedAt       time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at" db:"updated_at"`
}

// Overdue reports whether the record's next service is due before now and
// the work has not been completed.
func (r *Record) Overdue(now time.Time) bool {
	return r.NextServiceDue.Valid &&
		r.NextServiceDue.Time.Before(now) &&
		r.Status != StatusCompleted
}
