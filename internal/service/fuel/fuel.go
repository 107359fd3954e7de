// internal/service/fuel/fuel.go
package fuel

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"vms-service/internal/domain/auth"
	"vms-service/internal/domain/fuel"
	"vms-service/internal/domain/vehicle"
	xerrors "vms-service/internal/pkg/errors"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

type Service struct {
	records  fuel.Repository
	vehicles vehicle.Repository
	users    auth.Repository
	logger   *zap.Logger
}

func NewService(records fuel.Repository, vehicles vehicle.Repository, users auth.Repository, logger *zap.Logger) *Service {
	return &Service{records: records, vehicles: vehicles, users: users, logger: logger}
}

// Create stores a fill-up, computes its efficiency against the previous
// record, and advances the vehicle odometer. recordedBy is the acting user.
func (s *Service) Create(ctx context.Context, req *fuel.CreateRequest, recordedBy string) (*fuel.Record, error) {
	if _, err := s.vehicles.FindByID(ctx, req.VehicleID); err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			return nil, fmt.Errorf("vehicle %s: %w", req.VehicleID, xerrors.ErrNotFound)
		}
		return nil, err
	}

	rec := &fuel.Record{
		ID:           ulid.Make().String(),
		VehicleID:    req.VehicleID,
		FuelAmount:   req.FuelAmount,
		Cost:         req.Cost,
		PricePerUnit: req.PricePerUnit,
		Odometer:     req.Odometer,
		FuelDate:     req.FuelDate,
	}
	if req.Station != "" {
		rec.Station = sql.NullString{String: req.Station, Valid: true}
	}
	if recordedBy != "" {
		rec.RecordedBy = sql.NullString{String: recordedBy, Valid: true}
	}

	eff, err := s.computeEfficiency(ctx, req.VehicleID, req.FuelDate, req.Odometer, req.FuelAmount, "")
	if err != nil {
		return nil, err
	}
	rec.Efficiency = eff

	if err := s.records.Create(ctx, rec); err != nil {
		return nil, err
	}

	// The odometer reading only ever raises the stored mileage.
	if err := s.vehicles.AdvanceMileage(ctx, req.VehicleID, req.Odometer); err != nil {
		s.logger.Warn("mileage advance failed",
			zap.String("vehicle_id", req.VehicleID), zap.Error(err))
	}

	s.logger.Info("fuel record created",
		zap.String("record_id", rec.ID),
		zap.String("vehicle_id", rec.VehicleID),
		zap.Float64("amount", rec.FuelAmount))

	return rec, nil
}

// Update replaces a fuel record and recomputes its efficiency. The record
// being edited is excluded from the previous-record scan so it never pairs
// with itself. The vehicle odometer is not touched on edits.
func (s *Service) Update(ctx context.Context, id string, req *fuel.UpdateRequest) (*fuel.Record, error) {
	rec, err := s.records.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	rec.FuelAmount = req.FuelAmount
	rec.Cost = req.Cost
	rec.PricePerUnit = req.PricePerUnit
	rec.Odometer = req.Odometer
	rec.FuelDate = req.FuelDate
	if req.Station != "" {
		rec.Station = sql.NullString{String: req.Station, Valid: true}
	} else {
		rec.Station = sql.NullString{}
	}

	eff, err := s.computeEfficiency(ctx, rec.VehicleID, req.FuelDate, req.Odometer, req.FuelAmount, id)
	if err != nil {
		return nil, err
	}
	rec.Efficiency = eff

	if err := s.records.Update(ctx, id, rec); err != nil {
		return nil, err
	}

	return rec, nil
}

// Get returns one fuel record by ID
func (s *Service) Get(ctx context.Context, id string) (*fuel.Record, error) {
	return s.records.FindByID(ctx, id)
}

// Delete removes a fuel record
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.records.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("fuel record deleted", zap.String("record_id", id))
	return nil
}

// List returns fuel records matching the filters, paginated
func (s *Service) List(ctx context.Context, filters *fuel.ListFilters) (*fuel.ListResponse, error) {
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.PageSize < 1 {
		filters.PageSize = 20
	}

	records, total, err := s.records.List(ctx, filters)
	if err != nil {
		return nil, err
	}

	infos := make([]fuel.Info, 0, len(records))
	labels := map[string]string{}
	names := map[string]string{}
	for i := range records {
		infos = append(infos, s.toInfo(ctx, &records[i], labels, names))
	}

	totalPages := int((total + int64(filters.PageSize) - 1) / int64(filters.PageSize))

	return &fuel.ListResponse{
		Records:    infos,
		Total:      total,
		Page:       filters.Page,
		PageSize:   filters.PageSize,
		TotalPages: totalPages,
	}, nil
}

// ListByVehicle returns all fuel records for one vehicle, newest first
func (s *Service) ListByVehicle(ctx context.Context, vehicleID string) ([]fuel.Info, error) {
	if _, err := s.vehicles.FindByID(ctx, vehicleID); err != nil {
		return nil, err
	}

	records, err := s.records.ListByVehicle(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	infos := make([]fuel.Info, 0, len(records))
	labels := map[string]string{}
	names := map[string]string{}
	for i := range records {
		infos = append(infos, s.toInfo(ctx, &records[i], labels, names))
	}
	return infos, nil
}

// Analytics summarizes fuel spend for a vehicle, or fleet-wide when
// vehicleID is empty.
func (s *Service) Analytics(ctx context.Context, vehicleID string, from, to *time.Time) (*fuel.Analytics, error) {
	filters := &fuel.ListFilters{
		VehicleID: vehicleID,
		FromDate:  from,
		ToDate:    to,
		Page:      1,
		PageSize:  10000,
	}

	records, _, err := s.records.List(ctx, filters)
	if err != nil {
		return nil, err
	}

	out := &fuel.Analytics{TotalRecords: len(records)}
	var priceSum, effSum float64
	var effCount int
	for i := range records {
		out.TotalCost += records[i].Cost
		out.TotalFuelAmount += records[i].FuelAmount
		priceSum += records[i].PricePerUnit
		if records[i].Efficiency.Valid {
			effSum += records[i].Efficiency.Float64
			effCount++
		}
	}
	// Unweighted mean over records, not total cost over total fuel.
	if len(records) > 0 {
		out.AveragePrice = priceSum / float64(len(records))
	}
	if effCount > 0 {
		out.AverageEfficiency = effSum / float64(effCount)
	}

	return out, nil
}

// computeEfficiency derives distance per unit of fuel from the previous
// fill-up. It returns an invalid NullFloat64 when the vehicle has no earlier
// record or the odometer did not advance.
func (s *Service) computeEfficiency(ctx context.Context, vehicleID string, fuelDate time.Time, odometer int, amount float64, excludeID string) (sql.NullFloat64, error) {
	prev, err := s.records.FindPreviousByDate(ctx, vehicleID, fuelDate, excludeID)
	if errors.Is(err, xerrors.ErrNotFound) {
		return sql.NullFloat64{}, nil
	}
	if err != nil {
		return sql.NullFloat64{}, err
	}

	if prev.Odometer >= odometer || amount <= 0 {
		return sql.NullFloat64{}, nil
	}

	distance := float64(odometer - prev.Odometer)
	return sql.NullFloat64{Float64: distance / amount, Valid: true}, nil
}

func (s *Service) toInfo(ctx context.Context, rec *fuel.Record, labels, names map[string]string) fuel.Info {
	info := fuel.Info{
		ID:           rec.ID,
		VehicleID:    rec.VehicleID,
		FuelAmount:   rec.FuelAmount,
		Cost:         rec.Cost,
		PricePerUnit: rec.PricePerUnit,
		Odometer:     rec.Odometer,
		FuelDate:     rec.FuelDate,
		CreatedAt:    rec.CreatedAt,
	}

	if rec.Efficiency.Valid {
		eff := rec.Efficiency.Float64
		info.Efficiency = &eff
	}
	if rec.Station.Valid {
		info.Station = rec.Station.String
	}
	if rec.RecordedBy.Valid {
		recordedBy := rec.RecordedBy.String
		info.RecordedBy = &recordedBy

		name, ok := names[recordedBy]
		if !ok {
			if u, err := s.users.FindByID(ctx, recordedBy); err == nil {
				name = u.FullName
			}
			names[recordedBy] = name
		}
		if name != "" {
			info.RecordedByName = &name
		}
	}

	label, ok := labels[rec.VehicleID]
	if !ok {
		if v, err := s.vehicles.FindByID(ctx, rec.VehicleID); err == nil {
			label = v.Label()
		}
		labels[rec.VehicleID] = label
	}
	info.VehicleInfo = label

	return info
}
