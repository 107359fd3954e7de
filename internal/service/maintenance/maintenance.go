// internal/service/maintenance/maintenance.go
package maintenance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"vms-service/internal/domain/maintenance"
	"vms-service/internal/domain/vehicle"
	xerrors "vms-service/internal/pkg/errors"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// Notifier pushes fleet events to connected dashboard clients.
type Notifier interface {
	Publish(event string, payload interface{})
}

type Service struct {
	records  maintenance.Repository
	vehicles vehicle.Repository
	notifier Notifier
	logger   *zap.Logger
}

func NewService(records maintenance.Repository, vehicles vehicle.Repository, notifier Notifier, logger *zap.Logger) *Service {
	return &Service{records: records, vehicles: vehicles, notifier: notifier, logger: logger}
}

// Create schedules a maintenance record in pending state. performedBy is the
// acting user.
func (s *Service) Create(ctx context.Context, req *maintenance.CreateRequest, performedBy string) (*maintenance.Record, error) {
	if _, err := s.vehicles.FindByID(ctx, req.VehicleID); err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			return nil, fmt.Errorf("vehicle %s: %w", req.VehicleID, xerrors.ErrNotFound)
		}
		return nil, err
	}

	rec := &maintenance.Record{
		ID:              ulid.Make().String(),
		VehicleID:       req.VehicleID,
		ServiceType:     req.ServiceType,
		Description:     req.Description,
		Cost:            req.Cost,
		ServiceProvider: req.ServiceProvider,
		ServiceDate:     req.ServiceDate,
		Status:          maintenance.StatusPending,
	}
	if req.NextServiceDue != nil {
		rec.NextServiceDue = sql.NullTime{Time: *req.NextServiceDue, Valid: true}
	}
	if performedBy != "" {
		rec.PerformedBy = sql.NullString{String: performedBy, Valid: true}
	}

	if err := s.records.Create(ctx, rec); err != nil {
		return nil, err
	}

	s.logger.Info("maintenance record created",
		zap.String("record_id", rec.ID),
		zap.String("vehicle_id", rec.VehicleID),
		zap.String("service_type", rec.ServiceType))

	return rec, nil
}

// Get returns one maintenance record by ID
func (s *Service) Get(ctx context.Context, id string) (*maintenance.Record, error) {
	return s.records.FindByID(ctx, id)
}

// Update replaces a maintenance record's fields. Status changes go through
// ChangeStatus, not here.
func (s *Service) Update(ctx context.Context, id string, req *maintenance.UpdateRequest) (*maintenance.Record, error) {
	rec, err := s.records.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	rec.ServiceType = req.ServiceType
	rec.Description = req.Description
	rec.Cost = req.Cost
	rec.ServiceProvider = req.ServiceProvider
	rec.ServiceDate = req.ServiceDate
	if req.NextServiceDue != nil {
		rec.NextServiceDue = sql.NullTime{Time: *req.NextServiceDue, Valid: true}
	} else {
		rec.NextServiceDue = sql.NullTime{}
	}

	if err := s.records.Update(ctx, id, rec); err != nil {
		return nil, err
	}

	return rec, nil
}

// ChangeStatus moves a record through its lifecycle. Entering in_progress
// also parks the vehicle in maintenance status.
func (s *Service) ChangeStatus(ctx context.Context, id string, to maintenance.Status) (*maintenance.Record, error) {
	rec, err := s.records.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := rec.ApplyTransition(to); err != nil {
		return nil, err
	}

	if err := s.records.UpdateStatus(ctx, id, to); err != nil {
		return nil, err
	}

	if to == maintenance.StatusInProgress {
		if err := s.vehicles.UpdateStatus(ctx, rec.VehicleID, vehicle.StatusMaintenance); err != nil {
			s.logger.Warn("vehicle status update failed",
				zap.String("vehicle_id", rec.VehicleID), zap.Error(err))
		}
	}

	if s.notifier != nil {
		s.notifier.Publish("maintenance.status_changed", map[string]interface{}{
			"record_id":  rec.ID,
			"vehicle_id": rec.VehicleID,
			"status":     to,
		})
	}

	s.logger.Info("maintenance status changed",
		zap.String("record_id", rec.ID),
		zap.String("status", string(to)))

	return rec, nil
}

// Delete removes a maintenance record
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.records.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("maintenance record deleted", zap.String("record_id", id))
	return nil
}

// List returns maintenance records matching the filters, paginated
func (s *Service) List(ctx context.Context, filters *maintenance.ListFilters) (*maintenance.ListResponse, error) {
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

	now := time.Now()
	infos := make([]maintenance.Info, 0, len(records))
	labels := map[string]string{}
	for i := range records {
		infos = append(infos, s.toInfo(ctx, &records[i], now, labels))
	}

	return &maintenance.ListResponse{
		Records:  infos,
		Total:    int(total),
		Page:     filters.Page,
		PageSize: filters.PageSize,
	}, nil
}

// ListByVehicle returns the service history of one vehicle
func (s *Service) ListByVehicle(ctx context.Context, vehicleID string) ([]maintenance.Info, error) {
	if _, err := s.vehicles.FindByID(ctx, vehicleID); err != nil {
		return nil, err
	}

	records, err := s.records.ListByVehicle(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	return s.toInfos(ctx, records), nil
}

// ListOverdue returns records whose next service date has passed
func (s *Service) ListOverdue(ctx context.Context) ([]maintenance.Info, error) {
	records, err := s.records.ListOverdue(ctx, time.Now())
	if err != nil {
		return nil, err
	}
	return s.toInfos(ctx, records), nil
}

// BroadcastOverdueAlerts publishes a maintenance.overdue event when any
// records are past due. Called periodically from the server.
func (s *Service) BroadcastOverdueAlerts(ctx context.Context) {
	overdue, err := s.ListOverdue(ctx)
	if err != nil {
		s.logger.Warn("overdue alert sweep failed", zap.Error(err))
		return
	}
	if len(overdue) == 0 || s.notifier == nil {
		return
	}

	s.notifier.Publish("maintenance.overdue", map[string]interface{}{
		"count":   len(overdue),
		"records": overdue,
	})
}

// ListUpcoming returns records due within the next days days
func (s *Service) ListUpcoming(ctx context.Context, days int) ([]maintenance.Info, error) {
	if days <= 0 {
		days = 30
	}
	records, err := s.records.ListUpcoming(ctx, time.Now(), days)
	if err != nil {
		return nil, err
	}
	return s.toInfos(ctx, records), nil
}

func (s *Service) toInfos(ctx context.Context, records []maintenance.Record) []maintenance.Info {
	now := time.Now()
	infos := make([]maintenance.Info, 0, len(records))
	labels := map[string]string{}
	for i := range records {
		infos = append(infos, s.toInfo(ctx, &records[i], now, labels))
	}
	return infos
}

func (s *Service) toInfo(ctx context.Context, rec *maintenance.Record, now time.Time, labels map[string]string) maintenance.Info {
	info := maintenance.Info{
		ID:              rec.ID,
		VehicleID:       rec.VehicleID,
		ServiceType:     rec.ServiceType,
		Description:     rec.Description,
		Cost:            rec.Cost,
		ServiceProvider: rec.ServiceProvider,
		ServiceDate:     rec.ServiceDate,
		Status:          rec.Status,
		Overdue:         rec.Overdue(now),
		CreatedAt:       rec.CreatedAt,
	}

	if rec.NextServiceDue.Valid {
		due := rec.NextServiceDue.Time
		info.NextServiceDue = &due
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
