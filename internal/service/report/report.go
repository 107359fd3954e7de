// internal/service/report/report.go
package report

import (
	"context"
	"sort"
	"time"

	"vms-service/internal/domain/fuel"
	"vms-service/internal/domain/maintenance"
	"vms-service/internal/domain/report"
	"vms-service/internal/domain/vehicle"

	"go.uber.org/zap"
)

const expenseMonths = 6

type Service struct {
	vehicles     vehicle.Repository
	fuelRecords  fuel.Repository
	maintRecords maintenance.Repository
	logger       *zap.Logger

	// now is swappable so aggregation windows are deterministic under test.
	now func() time.Time
}

func NewService(vehicles vehicle.Repository, fuelRecords fuel.Repository, maintRecords maintenance.Repository, logger *zap.Logger) *Service {
	return &Service{
		vehicles:     vehicles,
		fuelRecords:  fuelRecords,
		maintRecords: maintRecords,
		logger:       logger,
		now:          time.Now,
	}
}

// DashboardStats builds the fleet-wide snapshot for the admin dashboard.
func (s *Service) DashboardStats(ctx context.Context) (*report.DashboardStats, error) {
	now := s.now()

	vehicles, err := s.vehicles.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	stats := &report.DashboardStats{
		TotalVehicles: len(vehicles),
	}

	statusCounts := map[vehicle.Status]int{}
	var ageSum int
	for i := range vehicles {
		statusCounts[vehicles[i].Status]++
		ageSum += now.Year() - vehicles[i].Year
	}
	stats.ActiveVehicles = statusCounts[vehicle.StatusAvailable] + statusCounts[vehicle.StatusInUse]
	stats.VehiclesInMaintenance = statusCounts[vehicle.StatusMaintenance]
	if len(vehicles) > 0 {
		stats.AverageVehicleAge = float64(ageSum) / float64(len(vehicles))
	}

	// Every known status appears in the breakdown, zero counts included.
	for _, st := range vehicle.AllStatuses {
		stats.VehiclesByStatus = append(stats.VehiclesByStatus, report.StatusCount{
			Status: string(st),
			Count:  statusCounts[st],
		})
	}

	overdue, err := s.maintRecords.ListOverdue(ctx, now)
	if err != nil {
		return nil, err
	}
	stats.OverdueMaintenanceCount = len(overdue)

	windowStart := monthStart(now).AddDate(0, -(expenseMonths - 1), 0)

	fuelRecords, err := s.fuelRecords.ListSince(ctx, windowStart)
	if err != nil {
		return nil, err
	}
	maintRecords, err := s.maintRecords.ListSince(ctx, windowStart)
	if err != nil {
		return nil, err
	}

	currentMonth := monthKey(now)
	expenses := map[string]*report.MonthlyExpense{}
	for i := 0; i < expenseMonths; i++ {
		m := windowStart.AddDate(0, i, 0)
		key := monthKey(m)
		expenses[key] = &report.MonthlyExpense{Month: key}
	}

	for i := range fuelRecords {
		key := monthKey(fuelRecords[i].FuelDate)
		if e, ok := expenses[key]; ok {
			e.FuelCost += fuelRecords[i].Cost
		}
		if key == currentMonth {
			stats.MonthlyFuelCost += fuelRecords[i].Cost
		}
	}
	for i := range maintRecords {
		key := monthKey(maintRecords[i].ServiceDate)
		if e, ok := expenses[key]; ok {
			e.MaintenanceCost += maintRecords[i].Cost
		}
		if key == currentMonth {
			stats.MonthlyMaintenanceCost += maintRecords[i].Cost
		}
	}

	// Oldest first, exactly expenseMonths entries.
	for i := 0; i < expenseMonths; i++ {
		key := monthKey(windowStart.AddDate(0, i, 0))
		e := expenses[key]
		e.TotalCost = e.FuelCost + e.MaintenanceCost
		stats.MonthlyExpenses = append(stats.MonthlyExpenses, *e)
	}

	return stats, nil
}

// CostTrends returns a trailing window of monthly spend, oldest first.
func (s *Service) CostTrends(ctx context.Context, months int) ([]report.MonthlyExpense, error) {
	if months <= 0 {
		months = 12
	}

	now := s.now()
	windowStart := monthStart(now).AddDate(0, -(months - 1), 0)

	fuelRecords, err := s.fuelRecords.ListSince(ctx, windowStart)
	if err != nil {
		return nil, err
	}
	maintRecords, err := s.maintRecords.ListSince(ctx, windowStart)
	if err != nil {
		return nil, err
	}

	expenses := map[string]*report.MonthlyExpense{}
	for i := 0; i < months; i++ {
		key := monthKey(windowStart.AddDate(0, i, 0))
		expenses[key] = &report.MonthlyExpense{Month: key}
	}
	for i := range fuelRecords {
		if e, ok := expenses[monthKey(fuelRecords[i].FuelDate)]; ok {
			e.FuelCost += fuelRecords[i].Cost
		}
	}
	for i := range maintRecords {
		if e, ok := expenses[monthKey(maintRecords[i].ServiceDate)]; ok {
			e.MaintenanceCost += maintRecords[i].Cost
		}
	}

	out := make([]report.MonthlyExpense, 0, months)
	for i := 0; i < months; i++ {
		e := expenses[monthKey(windowStart.AddDate(0, i, 0))]
		e.TotalCost = e.FuelCost + e.MaintenanceCost
		out = append(out, *e)
	}
	return out, nil
}

// Utilization groups the fleet by status and reports each status's share of
// the whole fleet.
func (s *Service) Utilization(ctx context.Context) ([]report.VehicleUtilization, error) {
	vehicles, err := s.vehicles.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	counts := map[vehicle.Status]int{}
	for i := range vehicles {
		counts[vehicles[i].Status]++
	}

	out := make([]report.VehicleUtilization, 0, len(counts))
	for _, status := range vehicle.AllStatuses {
		count, ok := counts[status]
		if !ok {
			continue
		}
		out = append(out, report.VehicleUtilization{
			Status:     string(status),
			Count:      count,
			Percentage: float64(count) * 100 / float64(len(vehicles)),
		})
	}
	return out, nil
}

// TopMaintenanceVehicles ranks vehicles by total maintenance spend over the
// trailing twelve months.
func (s *Service) TopMaintenanceVehicles(ctx context.Context, limit int) ([]report.TopMaintenanceVehicle, error) {
	if limit <= 0 {
		limit = 5
	}

	windowStart := monthStart(s.now()).AddDate(-1, 0, 0)
	records, err := s.maintRecords.ListSince(ctx, windowStart)
	if err != nil {
		return nil, err
	}

	byVehicle := map[string]*report.TopMaintenanceVehicle{}
	for i := range records {
		entry, ok := byVehicle[records[i].VehicleID]
		if !ok {
			entry = &report.TopMaintenanceVehicle{VehicleID: records[i].VehicleID}
			byVehicle[records[i].VehicleID] = entry
		}
		entry.RecordCount++
		entry.TotalCost += records[i].Cost
	}

	out := make([]report.TopMaintenanceVehicle, 0, len(byVehicle))
	for id, entry := range byVehicle {
		if v, err := s.vehicles.FindByID(ctx, id); err == nil {
			entry.VehicleInfo = v.Label()
		}
		out = append(out, *entry)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalCost != out[j].TotalCost {
			return out[i].TotalCost > out[j].TotalCost
		}
		return out[i].VehicleID < out[j].VehicleID
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// FuelEfficiency summarizes per-vehicle fuel use over a date range.
func (s *Service) FuelEfficiency(ctx context.Context, from, to time.Time) (*report.FuelEfficiencyReport, error) {
	records, err := s.fuelRecords.ListSince(ctx, from)
	if err != nil {
		return nil, err
	}

	// Only records with a computed efficiency participate, so every entry
	// carries an average and the totals cover the same record set.
	type acc struct {
		entry  report.FuelEfficiencyEntry
		effSum float64
	}
	byVehicle := map[string]*acc{}
	for i := range records {
		if records[i].FuelDate.After(to) || !records[i].Efficiency.Valid {
			continue
		}
		a, ok := byVehicle[records[i].VehicleID]
		if !ok {
			a = &acc{entry: report.FuelEfficiencyEntry{VehicleID: records[i].VehicleID}}
			byVehicle[records[i].VehicleID] = a
		}
		a.entry.RecordCount++
		a.entry.TotalFuelAmount += records[i].FuelAmount
		a.entry.TotalFuelCost += records[i].Cost
		a.effSum += records[i].Efficiency.Float64
	}

	out := &report.FuelEfficiencyReport{From: from, To: to}
	for id, a := range byVehicle {
		if v, err := s.vehicles.FindByID(ctx, id); err == nil {
			a.entry.VehicleInfo = v.Label()
		}
		avg := a.effSum / float64(a.entry.RecordCount)
		a.entry.AverageEfficiency = &avg
		out.Entries = append(out.Entries, a.entry)
	}
	sort.Slice(out.Entries, func(i, j int) bool {
		return *out.Entries[i].AverageEfficiency > *out.Entries[j].AverageEfficiency
	})

	return out, nil
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func monthKey(t time.Time) string {
	return t.Format("2006-01")
}
