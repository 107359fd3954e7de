// internal/service/vehicle/vehicle.go
package vehicle

import (
	"context"
	"fmt"
	"strings"

	"vms-service/internal/domain/auth"
	"vms-service/internal/domain/vehicle"
	xerrors "vms-service/internal/pkg/errors"
	"vms-service/internal/pkg/vin"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

type Service struct {
	vehicles vehicle.Repository
	users    auth.Repository
	logger   *zap.Logger
}

func NewService(vehicles vehicle.Repository, users auth.Repository, logger *zap.Logger) *Service {
	return &Service{vehicles: vehicles, users: users, logger: logger}
}

// Create registers a new vehicle. The VIN and license plate must be unique
// across the fleet.
func (s *Service) Create(ctx context.Context, req *vehicle.VehicleRequest) (*vehicle.Vehicle, error) {
	normalized := strings.ToUpper(strings.TrimSpace(req.VIN))
	if !vin.Valid(normalized) {
		return nil, fmt.Errorf("invalid vin %q: %w", req.VIN, xerrors.ErrInvalidInput)
	}

	plate := strings.ToUpper(strings.TrimSpace(req.LicensePlate))
	if err := s.checkUnique(ctx, normalized, plate, ""); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = vehicle.StatusAvailable
	}
	if !vehicle.ValidStatus(status) {
		return nil, fmt.Errorf("unknown status %q: %w", status, xerrors.ErrInvalidInput)
	}

	v := &vehicle.Vehicle{
		ID:           ulid.Make().String(),
		VIN:          normalized,
		Make:         req.Make,
		Model:        req.Model,
		Year:         req.Year,
		Color:        req.Color,
		LicensePlate: plate,
		Mileage:      req.Mileage,
		Status:       status,
	}

	if err := s.vehicles.Create(ctx, v); err != nil {
		return nil, err
	}

	s.logger.Info("vehicle created",
		zap.String("vehicle_id", v.ID),
		zap.String("vin", v.VIN))

	return v, nil
}

// Get returns one vehicle by ID
func (s *Service) Get(ctx context.Context, id string) (*vehicle.Vehicle, error) {
	return s.vehicles.FindByID(ctx, id)
}

// GetInfo returns a vehicle shaped for API responses, with the owner name
// resolved when assigned.
func (s *Service) GetInfo(ctx context.Context, id string) (*vehicle.Info, error) {
	v, err := s.vehicles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	info := s.toInfo(ctx, v)
	return &info, nil
}

// Update fully replaces the mutable fields of a vehicle
func (s *Service) Update(ctx context.Context, id string, req *vehicle.VehicleRequest) (*vehicle.Vehicle, error) {
	v, err := s.vehicles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	normalized := strings.ToUpper(strings.TrimSpace(req.VIN))
	if !vin.Valid(normalized) {
		return nil, fmt.Errorf("invalid vin %q: %w", req.VIN, xerrors.ErrInvalidInput)
	}

	plate := strings.ToUpper(strings.TrimSpace(req.LicensePlate))
	if err := s.checkUnique(ctx, normalized, plate, id); err != nil {
		return nil, err
	}

	if req.Status != "" && !vehicle.ValidStatus(req.Status) {
		return nil, fmt.Errorf("unknown status %q: %w", req.Status, xerrors.ErrInvalidInput)
	}

	v.VIN = normalized
	v.Make = req.Make
	v.Model = req.Model
	v.Year = req.Year
	v.Color = req.Color
	v.LicensePlate = plate
	v.Mileage = req.Mileage
	if req.Status != "" {
		v.Status = req.Status
	}

	if err := s.vehicles.Update(ctx, id, v); err != nil {
		return nil, err
	}

	return v, nil
}

// UpdateStatus moves a vehicle to a new fleet status
func (s *Service) UpdateStatus(ctx context.Context, id string, status vehicle.Status) error {
	if !vehicle.ValidStatus(status) {
		return fmt.Errorf("unknown status %q: %w", status, xerrors.ErrInvalidInput)
	}
	return s.vehicles.UpdateStatus(ctx, id, status)
}

// Delete removes a vehicle from the fleet
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.vehicles.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("vehicle deleted", zap.String("vehicle_id", id))
	return nil
}

// List returns vehicles matching the filters, paginated
func (s *Service) List(ctx context.Context, filters *vehicle.ListFilters) (*vehicle.ListResponse, error) {
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.PageSize < 1 {
		filters.PageSize = 20
	}

	infos, total, err := s.vehicles.List(ctx, filters)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(filters.PageSize) - 1) / int64(filters.PageSize))

	return &vehicle.ListResponse{
		Vehicles:   infos,
		Total:      total,
		Page:       filters.Page,
		PageSize:   filters.PageSize,
		TotalPages: totalPages,
	}, nil
}

// ListByOwner returns the vehicles assigned to one user
func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]vehicle.Info, error) {
	vehicles, err := s.vehicles.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	infos := make([]vehicle.Info, 0, len(vehicles))
	for i := range vehicles {
		infos = append(infos, s.toInfo(ctx, &vehicles[i]))
	}
	return infos, nil
}

// Assign gives a vehicle to a user. The user must exist and be active.
func (s *Service) Assign(ctx context.Context, vehicleID, userID string) error {
	if _, err := s.vehicles.FindByID(ctx, vehicleID); err != nil {
		return err
	}

	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if !u.IsActive {
		return fmt.Errorf("user %s is deactivated: %w", userID, xerrors.ErrInvalidInput)
	}

	if err := s.vehicles.SetOwner(ctx, vehicleID, &userID); err != nil {
		return err
	}

	s.logger.Info("vehicle assigned",
		zap.String("vehicle_id", vehicleID),
		zap.String("user_id", userID))

	return nil
}

// Unassign clears the vehicle owner
func (s *Service) Unassign(ctx context.Context, vehicleID string) error {
	if err := s.vehicles.SetOwner(ctx, vehicleID, nil); err != nil {
		return err
	}
	s.logger.Info("vehicle unassigned", zap.String("vehicle_id", vehicleID))
	return nil
}

func (s *Service) checkUnique(ctx context.Context, vinCode, plate, excludeID string) error {
	if taken, err := s.vehicles.ExistsByVIN(ctx, vinCode, excludeID); err != nil {
		return fmt.Errorf("vin uniqueness check: %w", err)
	} else if taken {
		return fmt.Errorf("vin %s already registered: %w", vinCode, xerrors.ErrDuplicateEntry)
	}

	if taken, err := s.vehicles.ExistsByLicensePlate(ctx, plate, excludeID); err != nil {
		return fmt.Errorf("license plate uniqueness check: %w", err)
	} else if taken {
		return fmt.Errorf("license plate %s already registered: %w", plate, xerrors.ErrDuplicateEntry)
	}

	return nil
}

func (s *Service) toInfo(ctx context.Context, v *vehicle.Vehicle) vehicle.Info {
	info := vehicle.Info{
		ID:           v.ID,
		VIN:          v.VIN,
		Make:         v.Make,
		Model:        v.Model,
		Year:         v.Year,
		Color:        v.Color,
		LicensePlate: v.LicensePlate,
		Mileage:      v.Mileage,
		Status:       v.Status,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}

	if v.OwnerID.Valid {
		ownerID := v.OwnerID.String
		info.OwnerID = &ownerID
		if u, err := s.users.FindByID(ctx, ownerID); err == nil {
			info.OwnerName = &u.FullName
		} else {
			// A dangling owner reference should not fail the whole response.
			s.logger.Warn("owner lookup failed", zap.String("user_id", ownerID), zap.Error(err))
		}
	}

	return info
}
