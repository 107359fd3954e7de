// internal/domain/report/dto.go
package report

import "time"

// StatusCount is the number of vehicles in one fleet status.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// MonthlyExpense is one month of combined fuel and maintenance spend.
type MonthlyExpense struct {
	Month           string  `json:"month"` // 2006-01
	FuelCost        float64 `json:"fuel_cost"`
	MaintenanceCost float64 `json:"maintenance_cost"`
	TotalCost       float64 `json:"total_cost"`
}

// DashboardStats is the aggregate snapshot behind the admin dashboard.
type DashboardStats struct {
	TotalVehicles           int              `json:"total_vehicles"`
	ActiveVehicles          int              `json:"active_vehicles"`
	VehiclesInMaintenance   int              `json:"vehicles_in_maintenance"`
	OverdueMaintenanceCount int              `json:"overdue_maintenance_count"`
	MonthlyFuelCost         float64          `json:"monthly_fuel_cost"`
	MonthlyMaintenanceCost  float64          `json:"monthly_maintenance_cost"`
	AverageVehicleAge       float64          `json:"average_vehicle_age"`
	VehiclesByStatus        []StatusCount    `json:"vehicles_by_status"`
	MonthlyExpenses         []MonthlyExpense `json:"monthly_expenses"`
}

// VehicleUtilization is the share of the fleet one status holds.
type VehicleUtilization struct {
	Status     string  `json:"status"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// TopMaintenanceVehicle ranks vehicles by maintenance spend.
type TopMaintenanceVehicle struct {
	VehicleID   string  `json:"vehicle_id"`
	VehicleInfo string  `json:"vehicle_info"`
	RecordCount int     `json:"record_count"`
	TotalCost   float64 `json:"total_cost"`
}

// FuelEfficiencyEntry is one vehicle's efficiency summary.
type FuelEfficiencyEntry struct {
	VehicleID         string   `json:"vehicle_id"`
	VehicleInfo       string   `json:"vehicle_info"`
	RecordCount       int      `json:"record_count"`
	TotalFuelAmount   float64  `json:"total_fuel_amount"`
	TotalFuelCost     float64  `json:"total_fuel_cost"`
	AverageEfficiency *float64 `json:"average_efficiency,omitempty"`
}

// FuelEfficiencyReport covers all vehicles over a date range.
type FuelEfficiencyReport struct {
	From    time.Time             `json:"from"`
	To      time.Time             `json:"to"`
	Entries []FuelEfficiencyEntry `json:"entries"`
}

// ExportRequest selects which dataset to render as CSV.
type ExportRequest struct {
	Dataset string     `form:"dataset" binding:"required,oneof=vehicles fuel maintenance"`
	From    *time.Time `form:"from" time_format:"2006-01-02"`
	To      *time.Time `form:"to" time_format:"2006-01-02"`
}
