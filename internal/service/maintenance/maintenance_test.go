package maintenance

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"vms-service/internal/domain/maintenance"
	"vms-service/internal/domain/vehicle"
	xerrors "vms-service/internal/pkg/errors"

	"go.uber.org/zap"
)

type fakeMaintenanceRepo struct {
	byID map[string]*maintenance.Record
}

func newFakeMaintenanceRepo() *fakeMaintenanceRepo {
	return &fakeMaintenanceRepo{byID: map[string]*maintenance.Record{}}
}

func (f *fakeMaintenanceRepo) Create(_ context.Context, r *maintenance.Record) error {
	cp := *r
	f.byID[r.ID] = &cp
	return nil
}

func (f *fakeMaintenanceRepo) FindByID(_ context.Context, id string) (*maintenance.Record, error) {
	r, ok := f.byID[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeMaintenanceRepo) Update(_ context.Context, id string, r *maintenance.Record) error {
	if _, ok := f.byID[id]; !ok {
		return xerrors.ErrNotFound
	}
	cp := *r
	f.byID[id] = &cp
	return nil
}

func (f *fakeMaintenanceRepo) UpdateStatus(_ context.Context, id string, status maintenance.Status) error {
	r, ok := f.byID[id]
	if !ok {
		return xerrors.ErrNotFound
	}
	r.Status = status
	return nil
}

func (f *fakeMaintenanceRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return xerrors.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeMaintenanceRepo) List(_ context.Context, _ *maintenance.ListFilters) ([]maintenance.Record, int64, error) {
	out := []maintenance.Record{}
	for _, r := range f.byID {
		out = append(out, *r)
	}
	return out, int64(len(out)), nil
}

func (f *fakeMaintenanceRepo) ListByVehicle(_ context.Context, vehicleID string) ([]maintenance.Record, error) {
	out := []maintenance.Record{}
	for _, r := range f.byID {
		if r.VehicleID == vehicleID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeMaintenanceRepo) ListOverdue(_ context.Context, now time.Time) ([]maintenance.Record, error) {
	out := []maintenance.Record{}
	for _, r := range f.byID {
		if r.Overdue(now) {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeMaintenanceRepo) ListUpcoming(_ context.Context, now time.Time, days int) ([]maintenance.Record, error) {
	limit := now.AddDate(0, 0, days)
	out := []maintenance.Record{}
	for _, r := range f.byID {
		if r.Status == maintenance.StatusCompleted || !r.NextServiceDue.Valid {
			continue
		}
		due := r.NextServiceDue.Time
		if !due.Before(now) && !due.After(limit) {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeMaintenanceRepo) ListSince(_ context.Context, since time.Time) ([]maintenance.Record, error) {
	out := []maintenance.Record{}
	for _, r := range f.byID {
		if !r.ServiceDate.Before(since) {
			out = append(out, *r)
		}
	}
	return out, nil
}

type fakeVehicleRepo struct {
	byID map[string]*vehicle.Vehicle
}

func (f *fakeVehicleRepo) Create(_ context.Context, v *vehicle.Vehicle) error {
	f.byID[v.ID] = v
	return nil
}
func (f *fakeVehicleRepo) FindByID(_ context.Context, id string) (*vehicle.Vehicle, error) {
	v, ok := f.byID[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	return v, nil
}
func (f *fakeVehicleRepo) Update(_ context.Context, _ string, _ *vehicle.Vehicle) error { return nil }
func (f *fakeVehicleRepo) Delete(_ context.Context, _ string) error                     { return nil }
func (f *fakeVehicleRepo) List(_ context.Context, _ *vehicle.ListFilters) ([]vehicle.Info, int64, error) {
	return nil, 0, nil
}
func (f *fakeVehicleRepo) ListAll(_ context.Context) ([]vehicle.Vehicle, error) { return nil, nil }
func (f *fakeVehicleRepo) ExistsByVIN(_ context.Context, _, _ string) (bool, error) {
	return false, nil
}
func (f *fakeVehicleRepo) ExistsByLicensePlate(_ context.Context, _, _ string) (bool, error) {
	return false, nil
}
func (f *fakeVehicleRepo) UpdateStatus(_ context.Context, id string, status vehicle.Status) error {
	v, ok := f.byID[id]
	if !ok {
		return xerrors.ErrNotFound
	}
	v.Status = status
	return nil
}
func (f *fakeVehicleRepo) AdvanceMileage(_ context.Context, _ string, _ int) error { return nil }
func (f *fakeVehicleRepo) SetOwner(_ context.Context, _ string, _ *string) error   { return nil }
func (f *fakeVehicleRepo) ListByOwner(_ context.Context, _ string) ([]vehicle.Vehicle, error) {
	return nil, nil
}

type fakeNotifier struct {
	events []string
}

func (f *fakeNotifier) Publish(event string, _ interface{}) {
	f.events = append(f.events, event)
}

func newTestService() (*Service, *fakeMaintenanceRepo, *fakeVehicleRepo, *fakeNotifier) {
	mr := newFakeMaintenanceRepo()
	vr := &fakeVehicleRepo{byID: map[string]*vehicle.Vehicle{
		"v1": {ID: "v1", Make: "Ford", Model: "Ranger", LicensePlate: "KDB 002B", Status: vehicle.StatusAvailable},
	}}
	n := &fakeNotifier{}
	return NewService(mr, vr, n, zap.NewNop()), mr, vr, n
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: true}
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func validRequest() *maintenance.CreateRequest {
	return &maintenance.CreateRequest{
		VehicleID:       "v1",
		ServiceType:     "routine",
		Description:     "oil change",
		Cost:            45,
		ServiceProvider: "QuickFit Garage",
		ServiceDate:     date("2024-03-10"),
	}
}

func TestCreateStartsPending(t *testing.T) {
	svc, _, _, _ := newTestService()

	rec, err := svc.Create(context.Background(), validRequest(), "u1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.Status != maintenance.StatusPending {
		t.Errorf("status = %s, want %s", rec.Status, maintenance.StatusPending)
	}
}

func TestCreateUnknownVehicle(t *testing.T) {
	svc, _, _, _ := newTestService()

	req := validRequest()
	req.VehicleID = "missing"
	if _, err := svc.Create(context.Background(), req, ""); !errors.Is(err, xerrors.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestChangeStatusParksVehicle(t *testing.T) {
	svc, _, vr, n := newTestService()
	ctx := context.Background()

	rec, err := svc.Create(ctx, validRequest(), "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.ChangeStatus(ctx, rec.ID, maintenance.StatusInProgress); err != nil {
		t.Fatalf("change status: %v", err)
	}
	if vr.byID["v1"].Status != vehicle.StatusMaintenance {
		t.Errorf("vehicle status = %s, want %s", vr.byID["v1"].Status, vehicle.StatusMaintenance)
	}
	if len(n.events) != 1 || n.events[0] != "maintenance.status_changed" {
		t.Errorf("events = %v, want one status_changed", n.events)
	}
}

func TestChangeStatusRejectsIllegalTransition(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	rec, err := svc.Create(ctx, validRequest(), "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.ChangeStatus(ctx, rec.ID, maintenance.StatusCompleted); !errors.Is(err, xerrors.ErrInvalidInput) {
		t.Fatalf("error = %v, want ErrInvalidInput for pending -> completed", err)
	}
}

func TestListOverdue(t *testing.T) {
	svc, mr, _, _ := newTestService()
	ctx := context.Background()

	past := date("2024-01-01")
	future := time.Now().AddDate(0, 1, 0)

	mr.byID["a"] = &maintenance.Record{
		ID: "a", VehicleID: "v1", Status: maintenance.StatusPending,
		ServiceDate:    date("2023-12-01"),
		NextServiceDue: nullTime(past),
	}
	mr.byID["b"] = &maintenance.Record{
		ID: "b", VehicleID: "v1", Status: maintenance.StatusCompleted,
		ServiceDate:    date("2023-12-01"),
		NextServiceDue: nullTime(past),
	}
	mr.byID["c"] = &maintenance.Record{
		ID: "c", VehicleID: "v1", Status: maintenance.StatusPending,
		ServiceDate:    date("2023-12-01"),
		NextServiceDue: nullTime(future),
	}

	got, err := svc.ListOverdue(ctx)
	if err != nil {
		t.Fatalf("list overdue: %v", err)
	}
	if len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("overdue = %+v, want only record a", got)
	}
	if !got[0].Overdue {
		t.Error("expected overdue flag set")
	}
}

func TestBroadcastOverdueAlerts(t *testing.T) {
	svc, mr, _, n := newTestService()
	ctx := context.Background()

	svc.BroadcastOverdueAlerts(ctx)
	if len(n.events) != 0 {
		t.Fatalf("events = %v, want none with no overdue records", n.events)
	}

	mr.byID["a"] = &maintenance.Record{
		ID: "a", VehicleID: "v1", Status: maintenance.StatusPending,
		ServiceDate:    date("2023-12-01"),
		NextServiceDue: nullTime(date("2024-01-01")),
	}

	svc.BroadcastOverdueAlerts(ctx)
	if len(n.events) != 1 || n.events[0] != "maintenance.overdue" {
		t.Fatalf("events = %v, want [maintenance.overdue]", n.events)
	}
}

func TestBroadcastOverdueAlertsNilNotifier(t *testing.T) {
	mr := newFakeMaintenanceRepo()
	vr := &fakeVehicleRepo{byID: map[string]*vehicle.Vehicle{}}
	svc := NewService(mr, vr, nil, zap.NewNop())

	mr.byID["a"] = &maintenance.Record{
		ID: "a", VehicleID: "v1", Status: maintenance.StatusPending,
		ServiceDate:    date("2023-12-01"),
		NextServiceDue: nullTime(date("2024-01-01")),
	}

	// Must not panic without a notifier wired.
	svc.BroadcastOverdueAlerts(context.Background())
}
