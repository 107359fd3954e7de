// internal/handlers/vehicle/vehicle_handler.go
package vehicle

import (
	"net/http"

	"vms-service/internal/domain/vehicle"
	"vms-service/internal/middleware"
	"vms-service/internal/pkg/response"
	service "vms-service/internal/service/vehicle"

	"github.com/gin-gonic/gin"
)

type VehicleHandler struct {
	vehicleService *service.Service
}

func NewVehicleHandler(vehicleService *service.Service) *VehicleHandler {
	return &VehicleHandler{
		vehicleService: vehicleService,
	}
}

// CreateVehicle registers a new fleet vehicle
func (h *VehicleHandler) CreateVehicle(c *gin.Context) {
	var req vehicle.VehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid vehicle payload", err)
		return
	}

	v, err := h.vehicleService.Create(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err, "failed to create vehicle")
		return
	}

	response.Success(c, http.StatusCreated, "vehicle created", v)
}

// GetVehicle retrieves one vehicle by ID
func (h *VehicleHandler) GetVehicle(c *gin.Context) {
	info, err := h.vehicleService.GetInfo(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err, "vehicle not found")
		return
	}

	response.Success(c, http.StatusOK, "vehicle retrieved", info)
}

// ListVehicles retrieves vehicles with filters
func (h *VehicleHandler) ListVehicles(c *gin.Context) {
	var filters vehicle.ListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.ValidationError(c, "invalid query parameters", err)
		return
	}

	result, err := h.vehicleService.List(c.Request.Context(), &filters)
	if err != nil {
		response.FromError(c, err, "failed to list vehicles")
		return
	}

	response.Success(c, http.StatusOK, "vehicles retrieved", result)
}

// UpdateVehicle fully replaces a vehicle's details
func (h *VehicleHandler) UpdateVehicle(c *gin.Context) {
	var req vehicle.VehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid vehicle payload", err)
		return
	}

	v, err := h.vehicleService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		response.FromError(c, err, "failed to update vehicle")
		return
	}

	response.Success(c, http.StatusOK, "vehicle updated", v)
}

// UpdateVehicleStatus moves a vehicle to a new fleet status
func (h *VehicleHandler) UpdateVehicleStatus(c *gin.Context) {
	var req struct {
		Status vehicle.Status `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid status payload", err)
		return
	}

	if err := h.vehicleService.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
		response.FromError(c, err, "failed to update vehicle status")
		return
	}

	response.Success(c, http.StatusOK, "vehicle status updated", nil)
}

// DeleteVehicle removes a vehicle from the fleet
func (h *VehicleHandler) DeleteVehicle(c *gin.Context) {
	if err := h.vehicleService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.FromError(c, err, "failed to delete vehicle")
		return
	}

	response.Success(c, http.StatusOK, "vehicle deleted", nil)
}

// AssignVehicle gives a vehicle to a user
func (h *VehicleHandler) AssignVehicle(c *gin.Context) {
	var req vehicle.AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid assignment payload", err)
		return
	}

	if err := h.vehicleService.Assign(c.Request.Context(), c.Param("id"), req.UserID); err != nil {
		response.FromError(c, err, "failed to assign vehicle")
		return
	}

	response.Success(c, http.StatusOK, "vehicle assigned", nil)
}

// UnassignVehicle clears the vehicle owner
func (h *VehicleHandler) UnassignVehicle(c *gin.Context) {
	if err := h.vehicleService.Unassign(c.Request.Context(), c.Param("id")); err != nil {
		response.FromError(c, err, "failed to unassign vehicle")
		return
	}

	response.Success(c, http.StatusOK, "vehicle unassigned", nil)
}

// MyVehicles lists vehicles assigned to the caller
func (h *VehicleHandler) MyVehicles(c *gin.Context) {
	vehicles, err := h.vehicleService.ListByOwner(c.Request.Context(), middleware.MustGetUserID(c))
	if err != nil {
		response.FromError(c, err, "failed to list vehicles")
		return
	}

	response.Success(c, http.StatusOK, "vehicles retrieved", vehicles)
}
