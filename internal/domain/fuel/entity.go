// internal/domain/fuel/entity.go
package fuel

import (
	"database/sql"
	"time"
)

// Record represents a single fill-up for a vehicle. Efficiency is the
// distance covered per unit of fuel since the previous fill, nil when no
// valid predecessor exists.
type Record struct {
	ID           string          `json:"id" db:"id"`
	VehicleID    string          `json:"vehicle_id" db:"vehicle_id"`
	FuelAmount   float64         `json:"fuel_amount" db:"fuel_amount"`
	Cost         float64         `json:"cost" db:"cost"`
	PricePerUnit float64         `json:"price_per_unit" db:"price_per_unit"`
	Odometer     int             `json:"odometer" db:"odometer"`
	Efficiency   sql.NullFloat64 `json:"-" db:"efficiency"`
	FuelDate     time.Time       `json:"fuel_date" db:"fuel_date"`
	Station      sql.NullString  `json:"-" db:"station"`
	RecordedBy   sql.NullString  `json:"-" db:"recorded_by"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
}
