package fuel

import "time"

// CreateRequest creates a new fuel record.
type CreateRequest struct {
	VehicleID    string    `json:"vehicle_id" binding:"required"`
	FuelAmount   float64   `json:"fuel_amount" binding:"required,gt=0"`
	Cost         float64   `json:"cost" binding:"required,gt=0"`
	PricePerUnit float64   `json:"price_per_unit" binding:"required,gt=0"`
	Odometer     int       `json:"odometer" binding:"required,min=0"`
	FuelDate     time.Time `json:"fuel_date" binding:"required"`
	Station      string    `json:"station"`
}

// UpdateRequest replaces a fuel record's fields.
type UpdateRequest struct {
	FuelAmount   float64   `json:"fuel_amount" binding:"required,gt=0"`
	Cost         float64   `json:"cost" binding:"required,gt=0"`
	PricePerUnit float64   `json:"price_per_unit" binding:"required,gt=0"`
	Odometer     int       `json:"odometer" binding:"required,min=0"`
	FuelDate     time.Time `json:"fuel_date" binding:"required"`
	Station      string    `json:"station"`
}

// ListFilters for listing fuel records.
type ListFilters struct {
	VehicleID string     `form:"vehicle_id"`
	FromDate  *time.Time `form:"from_date" time_format:"2006-01-02"`
	ToDate    *time.Time `form:"to_date" time_format:"2006-01-02"`
	Page      int        `form:"page"`
	PageSize  int        `form:"page_size"`
}

// Info is the fuel record representation returned to clients.
type Info struct {
	ID             string    `json:"id"`
	VehicleID      string    `json:"vehicle_id"`
	VehicleInfo    string    `json:"vehicle_info"`
	FuelAmount     float64   `json:"fuel_amount"`
	Cost           float64   `json:"cost"`
	PricePerUnit   float64   `json:"price_per_unit"`
	Odometer       int       `json:"odometer"`
	Efficiency     *float64  `json:"efficiency,omitempty"`
	FuelDate       time.Time `json:"fuel_date"`
	Station        string    `json:"station,omitempty"`
	RecordedBy     *string   `json:"recorded_by,omitempty"`
	RecordedByName *string   `json:"recorded_by_name,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// ListResponse is a paginated list of fuel records.
type ListResponse struct {
	Records    []Info `json:"records"`
	Total      int64  `json:"total"`
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
	TotalPages int    `json:"total_pages"`
}

// Analytics summarizes fuel spend over an optional vehicle/date window.
type Analytics struct {
	TotalCost         float64 `json:"total_cost"`
	TotalFuelAmount   float64 `json:"total_fuel_amount"`
	AveragePrice      float64 `json:"average_price_per_unit"`
	AverageEfficiency float64 `json:"average_efficiency"`
	TotalRecords      int     `json:"total_records"`
}
