// internal/service/report/export.go
package report

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"vms-service/internal/domain/report"
	xerrors "vms-service/internal/pkg/errors"
)

const exportDateLayout = "2006-01-02"

var exportColumns = map[string][]string{
	"vehicles":    {"id", "vin", "make", "model", "year", "license_plate", "mileage", "status"},
	"fuel":        {"id", "vehicle_id", "fuel_date", "fuel_amount", "cost", "price_per_unit", "odometer", "efficiency"},
	"maintenance": {"id", "vehicle_id", "service_date", "service_type", "description", "cost", "service_provider", "status", "next_service_due"},
}

// Export renders one dataset as CSV text.
func (s *Service) Export(ctx context.Context, req *report.ExportRequest) (string, error) {
	columns, ok := exportColumns[req.Dataset]
	if !ok {
		return "", fmt.Errorf("unknown dataset %q: %w", req.Dataset, xerrors.ErrInvalidInput)
	}

	rows, err := s.exportRows(ctx, req)
	if err != nil {
		return "", err
	}

	return FormatReport(rows, columns), nil
}

// FormatReport renders rows as CSV: a header line then one line per row,
// fields joined by commas. Missing values render as empty cells and dates
// use the 2006-01-02 layout. Field values are written as-is, so values
// containing commas shift the columns after them.
func FormatReport(rows []map[string]interface{}, columns []string) string {
	var b strings.Builder
	b.WriteString(strings.Join(columns, ","))
	b.WriteString("\n")

	for _, row := range rows {
		cells := make([]string, 0, len(columns))
		for _, col := range columns {
			cells = append(cells, formatCell(row[col]))
		}
		b.WriteString(strings.Join(cells, ","))
		b.WriteString("\n")
	}

	return b.String()
}

func formatCell(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case time.Time:
		return val.Format(exportDateLayout)
	case *time.Time:
		if val == nil {
			return ""
		}
		return val.Format(exportDateLayout)
	case float64:
		return strconv.FormatFloat(val, 'f', 2, 64)
	case *float64:
		if val == nil {
			return ""
		}
		return strconv.FormatFloat(*val, 'f', 2, 64)
	case int:
		return strconv.Itoa(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

func (s *Service) exportRows(ctx context.Context, req *report.ExportRequest) ([]map[string]interface{}, error) {
	var since time.Time
	if req.From != nil {
		since = *req.From
	}
	inRange := func(t time.Time) bool {
		if req.From != nil && t.Before(*req.From) {
			return false
		}
		if req.To != nil && t.After(*req.To) {
			return false
		}
		return true
	}

	switch req.Dataset {
	case "vehicles":
		vehicles, err := s.vehicles.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		rows := make([]map[string]interface{}, 0, len(vehicles))
		for i := range vehicles {
			v := &vehicles[i]
			rows = append(rows, map[string]interface{}{
				"id":            v.ID,
				"vin":           v.VIN,
				"make":          v.Make,
				"model":         v.Model,
				"year":          v.Year,
				"license_plate": v.LicensePlate,
				"mileage":       v.Mileage,
				"status":        string(v.Status),
			})
		}
		return rows, nil

	case "fuel":
		records, err := s.fuelRecords.ListSince(ctx, since)
		if err != nil {
			return nil, err
		}
		rows := []map[string]interface{}{}
		for i := range records {
			r := &records[i]
			if !inRange(r.FuelDate) {
				continue
			}
			row := map[string]interface{}{
				"id":             r.ID,
				"vehicle_id":     r.VehicleID,
				"fuel_date":      r.FuelDate,
				"fuel_amount":    r.FuelAmount,
				"cost":           r.Cost,
				"price_per_unit": r.PricePerUnit,
				"odometer":       r.Odometer,
			}
			if r.Efficiency.Valid {
				row["efficiency"] = r.Efficiency.Float64
			}
			rows = append(rows, row)
		}
		return rows, nil

	case "maintenance":
		records, err := s.maintRecords.ListSince(ctx, since)
		if err != nil {
			return nil, err
		}
		rows := []map[string]interface{}{}
		for i := range records {
			r := &records[i]
			if !inRange(r.ServiceDate) {
				continue
			}
			row := map[string]interface{}{
				"id":               r.ID,
				"vehicle_id":       r.VehicleID,
				"service_date":     r.ServiceDate,
				"service_type":     r.ServiceType,
				"description":      r.Description,
				"cost":             r.Cost,
				"service_provider": r.ServiceProvider,
				"status":           string(r.Status),
			}
			if r.NextServiceDue.Valid {
				row["next_service_due"] = r.NextServiceDue.Time
			}
			rows = append(rows, row)
		}
		return rows, nil
	}

	return nil, fmt.Errorf("unknown dataset %q: %w", req.Dataset, xerrors.ErrInvalidInput)
}
