// internal/handlers/report/report_handler.go
package report

import (
	"fmt"
	"net/http"
	"time"

	"vms-service/internal/domain/report"
	"vms-service/internal/pkg/response"
	service "vms-service/internal/service/report"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportService *service.Service
}

func NewReportHandler(reportService *service.Service) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// ExportCSV streams one dataset as a CSV attachment
func (h *ReportHandler) ExportCSV(c *gin.Context) {
	var req report.ExportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ValidationError(c, "invalid export parameters", err)
		return
	}

	csv, err := h.reportService.Export(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err, "export failed")
		return
	}

	filename := fmt.Sprintf("%s-%s.csv", req.Dataset, time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv", []byte(csv))
}

// FuelEfficiencyReport summarizes per-vehicle fuel use over a date range
func (h *ReportHandler) FuelEfficiencyReport(c *gin.Context) {
	to := time.Now()
	from := to.AddDate(-1, 0, 0)

	if s := c.Query("from"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			response.ValidationError(c, "invalid from date", err)
			return
		}
		from = t
	}
	if s := c.Query("to"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			response.ValidationError(c, "invalid to date", err)
			return
		}
		to = t
	}

	out, err := h.reportService.FuelEfficiency(c.Request.Context(), from, to)
	if err != nil {
		response.FromError(c, err, "failed to build fuel efficiency report")
		return
	}

	response.Success(c, http.StatusOK, "fuel efficiency report computed", out)
}
