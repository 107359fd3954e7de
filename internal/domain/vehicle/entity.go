// internal/domain/vehicle/entity.go
package vehicle

import (
	"database/sql"
	"time"
)

type Status string

const (
	StatusAvailable    Status = "available"
	StatusInUse        Status = "in_use"
	StatusMaintenance  Status = "maintenance"
	StatusOutOfService Status = "out_of_service"
)

// AllStatuses lists every vehicle status, in dashboard display order.
var AllStatuses = []Status{StatusAvailable, StatusInUse, StatusMaintenance, StatusOutOfService}

// ValidStatus reports whether s is a known vehicle status.
func ValidStatus(s Status) bool {
	for _, v := range AllStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Vehicle represents a fleet vehicle.
type Vehicle struct {
	ID           string         `json:"id" db:"id"`
	VIN          string         `json:"vin" db:"vin"`
	Make         string         `json:"make" db:"make"`
	Model        string         `json:"model" db:"model"`
	Year         int            `json:"year" db:"year"`
	Color        string         `json:"color" db:"color"`
	LicensePlate string         `json:"license_plate" db:"license_plate"`
	Mileage      int            `json:"mileage" db:"mileage"`
	Status       Status         `json:"status" db:"status"`
	OwnerID      sql.NullString `json:"owner_id,omitempty" db:"owner_id"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at" db:"updated_at"`
}

// Label renders the human-readable vehicle description used across list
// views and exports, e.g. "Toyota Hilux (KDA 123A)".
func (v *Vehicle) Label() string {
	return v.Make + " " + v.Model + " (" + v.LicensePlate + ")"
}
