// internal/handlers/dashboard/dashboard_handler.go
package dashboard

import (
	"net/http"
	"strconv"

	"vms-service/internal/pkg/response"
	service "vms-service/internal/service/report"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	reportService *service.Service
}

func NewDashboardHandler(reportService *service.Service) *DashboardHandler {
	return &DashboardHandler{
		reportService: reportService,
	}
}

// Stats returns the fleet-wide dashboard snapshot
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.reportService.DashboardStats(c.Request.Context())
	if err != nil {
		response.FromError(c, err, "failed to build dashboard stats")
		return
	}

	response.Success(c, http.StatusOK, "dashboard stats computed", stats)
}

// CostTrends returns a trailing window of monthly spend
func (h *DashboardHandler) CostTrends(c *gin.Context) {
	months, err := strconv.Atoi(c.DefaultQuery("months", "12"))
	if err != nil || months < 1 || months > 36 {
		months = 12
	}

	trends, err := h.reportService.CostTrends(c.Request.Context(), months)
	if err != nil {
		response.FromError(c, err, "failed to compute cost trends")
		return
	}

	response.Success(c, http.StatusOK, "cost trends computed", trends)
}

// Utilization returns per-vehicle utilization
func (h *DashboardHandler) Utilization(c *gin.Context) {
	utilization, err := h.reportService.Utilization(c.Request.Context())
	if err != nil {
		response.FromError(c, err, "failed to compute utilization")
		return
	}

	response.Success(c, http.StatusOK, "utilization computed", utilization)
}

// TopMaintenanceVehicles ranks vehicles by maintenance spend
func (h *DashboardHandler) TopMaintenanceVehicles(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "5"))
	if err != nil || limit < 1 || limit > 50 {
		limit = 5
	}

	top, err := h.reportService.TopMaintenanceVehicles(c.Request.Context(), limit)
	if err != nil {
		response.FromError(c, err, "failed to rank vehicles")
		return
	}

	response.Success(c, http.StatusOK, "top maintenance vehicles computed", top)
}
