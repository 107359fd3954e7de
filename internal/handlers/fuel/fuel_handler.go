// internal/handlers/fuel/fuel_handler.go
package fuel

import (
	"net/http"
	"time"

	"vms-service/internal/domain/fuel"
	"vms-service/internal/middleware"
	"vms-service/internal/pkg/response"
	service "vms-service/internal/service/fuel"

	"github.com/gin-gonic/gin"
)

type FuelHandler struct {
	fuelService *service.Service
}

func NewFuelHandler(fuelService *service.Service) *FuelHandler {
	return &FuelHandler{
		fuelService: fuelService,
	}
}

// CreateFuelRecord logs a fill-up for a vehicle
func (h *FuelHandler) CreateFuelRecord(c *gin.Context) {
	var req fuel.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid fuel record payload", err)
		return
	}

	rec, err := h.fuelService.Create(c.Request.Context(), &req, middleware.MustGetUserID(c))
	if err != nil {
		response.FromError(c, err, "failed to create fuel record")
		return
	}

	response.Success(c, http.StatusCreated, "fuel record created", rec)
}

// GetFuelRecord retrieves one fuel record by ID
func (h *FuelHandler) GetFuelRecord(c *gin.Context) {
	rec, err := h.fuelService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err, "fuel record not found")
		return
	}

	response.Success(c, http.StatusOK, "fuel record retrieved", rec)
}

// ListFuelRecords retrieves fuel records with filters
func (h *FuelHandler) ListFuelRecords(c *gin.Context) {
	var filters fuel.ListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.ValidationError(c, "invalid query parameters", err)
		return
	}

	result, err := h.fuelService.List(c.Request.Context(), &filters)
	if err != nil {
		response.FromError(c, err, "failed to list fuel records")
		return
	}

	response.Success(c, http.StatusOK, "fuel records retrieved", result)
}

// ListVehicleFuelRecords retrieves the fill-up history of one vehicle
func (h *FuelHandler) ListVehicleFuelRecords(c *gin.Context) {
	records, err := h.fuelService.ListByVehicle(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err, "failed to list fuel records")
		return
	}

	response.Success(c, http.StatusOK, "fuel records retrieved", records)
}

// UpdateFuelRecord replaces a fuel record's fields
func (h *FuelHandler) UpdateFuelRecord(c *gin.Context) {
	var req fuel.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid fuel record payload", err)
		return
	}

	rec, err := h.fuelService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		response.FromError(c, err, "failed to update fuel record")
		return
	}

	response.Success(c, http.StatusOK, "fuel record updated", rec)
}

// DeleteFuelRecord removes a fuel record
func (h *FuelHandler) DeleteFuelRecord(c *gin.Context) {
	if err := h.fuelService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.FromError(c, err, "failed to delete fuel record")
		return
	}

	response.Success(c, http.StatusOK, "fuel record deleted", nil)
}

// FuelAnalytics summarizes fuel spend for a vehicle or the whole fleet
func (h *FuelHandler) FuelAnalytics(c *gin.Context) {
	vehicleID := c.Query("vehicle_id")

	var from, to *time.Time
	if s := c.Query("from_date"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			response.ValidationError(c, "invalid from_date", err)
			return
		}
		from = &t
	}
	if s := c.Query("to_date"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			response.ValidationError(c, "invalid to_date", err)
			return
		}
		to = &t
	}

	analytics, err := h.fuelService.Analytics(c.Request.Context(), vehicleID, from, to)
	if err != nil {
		response.FromError(c, err, "failed to compute fuel analytics")
		return
	}

	response.Success(c, http.StatusOK, "fuel analytics computed", analytics)
}
