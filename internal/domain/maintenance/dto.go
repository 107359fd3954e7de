// internal/domain/maintenance/dto.go
package maintenance

import "time"

type CreateRequest struct {
	VehicleID       string     `json:"vehicle_id" binding:"required"`
	ServiceType     string     `json:"service_type" binding:"required,oneof=routine repair inspection"`
	Description     string     `json:"description" binding:"required"`
	Cost            float64    `json:"cost" binding:"required,gte=0"`
	ServiceProvider string     `json:"service_provider" binding:"required"`
	ServiceDate     time.Time  `json:"service_date" binding:"required" time_format:"2006-01-02"`
	NextServiceDue  *time.Time `json:"next_service_due,omitempty" time_format:"2006-01-02"`
}

type UpdateRequest struct {
	ServiceType     string     `json:"service_type" binding:"required,oneof=routine repair inspection"`
	Description     string     `json:"description" binding:"required"`
	Cost            float64    `json:"cost" binding:"required,gte=0"`
	ServiceProvider string     `json:"service_provider" binding:"required"`
	ServiceDate     time.Time  `json:"service_date" binding:"required" time_format:"2006-01-02"`
	NextServiceDue  *time.Time `json:"next_service_due,omitempty" time_format:"2006-01-02"`
}

type StatusRequest struct {
	Status Status `json:"status" binding:"required"`
}

type ListFilters struct {
	VehicleID   string  `form:"vehicle_id"`
	ServiceType string  `form:"service_type"`
	Status      *Status `form:"status"`
	Page        int     `form:"page"`
	PageSize    int     `form:"page_size"`
}

// Info is a maintenance record shaped for API responses.
type Info struct {
	ID              string     `json:"id"`
	VehicleID       string     `json:"vehicle_id"`
	VehicleInfo     string     `json:"vehicle_info,omitempty"`
	ServiceType     string     `json:"service_type"`
	Description     string     `json:"description"`
	Cost            float64    `json:"cost"`
	ServiceProvider string     `json:"service_provider"`
	ServiceDate     time.Time  `json:"service_date"`
	NextServiceDue  *time.Time `json:"next_service_due,omitempty"`
	Status          Status     `json:"status"`
	Overdue         bool       `json:"overdue"`
	PerformedByName *string    `json:"performed_by_name,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

type ListResponse struct {
	Records  []Info `json:"records"`
	Total    int    `json:"total"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
}
