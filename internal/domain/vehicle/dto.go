package vehicle

import "time"

// VehicleRequest is the full-record payload used for both create and
// replace-update.
type VehicleRequest struct {
	VIN          string `json:"vin" binding:"required"`
	Make         string `json:"make" binding:"required"`
	Model        string `json:"model" binding:"required"`
	Year         int    `json:"year" binding:"required,min=1900,max=2100"`
	Color        string `json:"color"`
	LicensePlate string `json:"license_plate" binding:"required"`
	Mileage      int    `json:"mileage" binding:"min=0"`
	Status       Status `json:"status"`
	OwnerID      string `json:"owner_id"`
}

// ListFilters for listing/searching vehicles
type ListFilters struct {
	Make     string  `form:"make"`
	Model    string  `form:"model"`
	Year     *int    `form:"year"`
	Status   *Status `form:"status"`
	Search   string  `form:"search"` // matches make, model, VIN, plate
	Page     int     `form:"page"`
	PageSize int     `form:"page_size"`
}

// Info represents vehicle information with related data for list views.
type Info struct {
	ID           string    `json:"id"`
	VIN          string    `json:"vin"`
	Make         string    `json:"make"`
	Model        string    `json:"model"`
	Year         int       `json:"year"`
	Color        string    `json:"color"`
	LicensePlate string    `json:"license_plate"`
	Mileage      int       `json:"mileage"`
	Status       Status    `json:"status"`
	OwnerID      *string   `json:"owner_id,omitempty"`
	OwnerName    *string   `json:"owner_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ListResponse is a paginated list response.
type ListResponse struct {
	Vehicles   []Info `json:"vehicles"`
	Total      int64  `json:"total"`
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
	TotalPages int    `json:"total_pages"`
}

// AssignRequest assigns a vehicle to a user.
type AssignRequest struct {
	UserID string `json:"user_id" binding:"required"`
}
