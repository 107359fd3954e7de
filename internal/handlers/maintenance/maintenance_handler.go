// internal/handlers/maintenance/maintenance_handler.go
package maintenance

import (
	"net/http"
	"strconv"

	"vms-service/internal/domain/maintenance"
	"vms-service/internal/middleware"
	"vms-service/internal/pkg/response"
	service "vms-service/internal/service/maintenance"

	"github.com/gin-gonic/gin"
)

type MaintenanceHandler struct {
	maintenanceService *service.Service
}

func NewMaintenanceHandler(maintenanceService *service.Service) *MaintenanceHandler {
	return &MaintenanceHandler{
		maintenanceService: maintenanceService,
	}
}

// CreateMaintenanceRecord schedules a service for a vehicle
func (h *MaintenanceHandler) CreateMaintenanceRecord(c *gin.Context) {
	var req maintenance.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid maintenance payload", err)
		return
	}

	rec, err := h.maintenanceService.Create(c.Request.Context(), &req, middleware.MustGetUserID(c))
	if err != nil {
		response.FromError(c, err, "failed to create maintenance record")
		return
	}

	response.Success(c, http.StatusCreated, "maintenance record created", rec)
}

// GetMaintenanceRecord retrieves one record by ID
func (h *MaintenanceHandler) GetMaintenanceRecord(c *gin.Context) {
	rec, err := h.maintenanceService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err, "maintenance record not found")
		return
	}

	response.Success(c, http.StatusOK, "maintenance record retrieved", rec)
}

// ListMaintenanceRecords retrieves records with filters
func (h *MaintenanceHandler) ListMaintenanceRecords(c *gin.Context) {
	var filters maintenance.ListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.ValidationError(c, "invalid query parameters", err)
		return
	}

	result, err := h.maintenanceService.List(c.Request.Context(), &filters)
	if err != nil {
		response.FromError(c, err, "failed to list maintenance records")
		return
	}

	response.Success(c, http.StatusOK, "maintenance records retrieved", result)
}

// ListVehicleMaintenance retrieves one vehicle's service history
func (h *MaintenanceHandler) ListVehicleMaintenance(c *gin.Context) {
	records, err := h.maintenanceService.ListByVehicle(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err, "failed to list maintenance records")
		return
	}

	response.Success(c, http.StatusOK, "maintenance records retrieved", records)
}

// UpdateMaintenanceRecord replaces a record's fields
func (h *MaintenanceHandler) UpdateMaintenanceRecord(c *gin.Context) {
	var req maintenance.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid maintenance payload", err)
		return
	}

	rec, err := h.maintenanceService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		response.FromError(c, err, "failed to update maintenance record")
		return
	}

	response.Success(c, http.StatusOK, "maintenance record updated", rec)
}

// ChangeMaintenanceStatus moves a record through its lifecycle
func (h *MaintenanceHandler) ChangeMaintenanceStatus(c *gin.Context) {
	var req maintenance.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid status payload", err)
		return
	}

	rec, err := h.maintenanceService.ChangeStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		response.FromError(c, err, "failed to change maintenance status")
		return
	}

	response.Success(c, http.StatusOK, "maintenance status changed", rec)
}

// DeleteMaintenanceRecord removes a record
func (h *MaintenanceHandler) DeleteMaintenanceRecord(c *gin.Context) {
	if err := h.maintenanceService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.FromError(c, err, "failed to delete maintenance record")
		return
	}

	response.Success(c, http.StatusOK, "maintenance record deleted", nil)
}

// ListOverdueMaintenance retrieves records past their next service date
func (h *MaintenanceHandler) ListOverdueMaintenance(c *gin.Context) {
	records, err := h.maintenanceService.ListOverdue(c.Request.Context())
	if err != nil {
		response.FromError(c, err, "failed to list overdue maintenance")
		return
	}

	response.Success(c, http.StatusOK, "overdue maintenance retrieved", records)
}

// ListUpcomingMaintenance retrieves records due soon
func (h *MaintenanceHandler) ListUpcomingMaintenance(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "30"))
	if err != nil || days < 1 {
		days = 30
	}

	records, err := h.maintenanceService.ListUpcoming(c.Request.Context(), days)
	if err != nil {
		response.FromError(c, err, "failed to list upcoming maintenance")
		return
	}

	response.Success(c, http.StatusOK, "upcoming maintenance retrieved", records)
}
