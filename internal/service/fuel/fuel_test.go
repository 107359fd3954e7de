package fuel

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"testing"
	"time"

	"vms-service/internal/domain/auth"
	"vms-service/internal/domain/fuel"
	"vms-service/internal/domain/vehicle"
	xerrors "vms-service/internal/pkg/errors"

	"go.uber.org/zap"
)

type fakeFuelRepo struct {
	byID map[string]*fuel.Record
}

func newFakeFuelRepo() *fakeFuelRepo {
	return &fakeFuelRepo{byID: map[string]*fuel.Record{}}
}

func (f *fakeFuelRepo) Create(_ context.Context, r *fuel.Record) error {
	cp := *r
	f.byID[r.ID] = &cp
	return nil
}

func (f *fakeFuelRepo) FindByID(_ context.Context, id string) (*fuel.Record, error) {
	r, ok := f.byID[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeFuelRepo) Update(_ context.Context, id string, r *fuel.Record) error {
	if _, ok := f.byID[id]; !ok {
		return xerrors.ErrNotFound
	}
	cp := *r
	f.byID[id] = &cp
	return nil
}

func (f *fakeFuelRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return xerrors.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeFuelRepo) List(_ context.Context, filters *fuel.ListFilters) ([]fuel.Record, int64, error) {
	out := []fuel.Record{}
	for _, r := range f.byID {
		if filters.VehicleID != "" && r.VehicleID != filters.VehicleID {
			continue
		}
		if filters.FromDate != nil && r.FuelDate.Before(*filters.FromDate) {
			continue
		}
		if filters.ToDate != nil && r.FuelDate.After(*filters.ToDate) {
			continue
		}
		out = append(out, *r)
	}
	return out, int64(len(out)), nil
}

func (f *fakeFuelRepo) ListByVehicle(_ context.Context, vehicleID string) ([]fuel.Record, error) {
	out := []fuel.Record{}
	for _, r := range f.byID {
		if r.VehicleID == vehicleID {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FuelDate.After(out[j].FuelDate) })
	return out, nil
}

func (f *fakeFuelRepo) FindPreviousByDate(_ context.Context, vehicleID string, before time.Time, excludeID string) (*fuel.Record, error) {
	var best *fuel.Record
	for _, r := range f.byID {
		if r.VehicleID != vehicleID || r.ID == excludeID {
			continue
		}
		if !r.FuelDate.Before(before) {
			continue
		}
		if best == nil || r.FuelDate.After(best.FuelDate) {
			best = r
		}
	}
	if best == nil {
		return nil, xerrors.ErrNotFound
	}
	cp := *best
	return &cp, nil
}

func (f *fakeFuelRepo) ListSince(_ context.Context, since time.Time) ([]fuel.Record, error) {
	out := []fuel.Record{}
	for _, r := range f.byID {
		if !r.FuelDate.Before(since) {
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
	f.byID[id].Status = status
	return nil
}
func (f *fakeVehicleRepo) AdvanceMileage(_ context.Context, id string, mileage int) error {
	v, ok := f.byID[id]
	if !ok {
		return xerrors.ErrNotFound
	}
	if mileage > v.Mileage {
		v.Mileage = mileage
	}
	return nil
}
func (f *fakeVehicleRepo) SetOwner(_ context.Context, _ string, _ *string) error { return nil }
func (f *fakeVehicleRepo) ListByOwner(_ context.Context, _ string) ([]vehicle.Vehicle, error) {
	return nil, nil
}

type fakeUserRepo struct {
	byID map[string]*auth.User
}

func (f *fakeUserRepo) Create(_ context.Context, u *auth.User) error { f.byID[u.ID] = u; return nil }
func (f *fakeUserRepo) FindByID(_ context.Context, id string) (*auth.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	return u, nil
}
func (f *fakeUserRepo) FindByEmail(_ context.Context, _ string) (*auth.User, error) {
	return nil, xerrors.ErrNotFound
}
func (f *fakeUserRepo) ExistsByEmail(_ context.Context, _ string) (bool, error) { return false, nil }
func (f *fakeUserRepo) List(_ context.Context, _, _ int) ([]auth.User, int64, error) {
	return nil, 0, nil
}
func (f *fakeUserRepo) UpdateProfile(_ context.Context, _, _, _ string) error     { return nil }
func (f *fakeUserRepo) UpdatePassword(_ context.Context, _, _ string) error       { return nil }
func (f *fakeUserRepo) UpdateRoles(_ context.Context, _ string, _ []string) error { return nil }
func (f *fakeUserRepo) SetActive(_ context.Context, _ string, _ bool) error       { return nil }
func (f *fakeUserRepo) TouchLastLogin(_ context.Context, _ string) error          { return nil }

func newTestService() (*Service, *fakeFuelRepo, *fakeVehicleRepo) {
	fr := newFakeFuelRepo()
	vr := &fakeVehicleRepo{byID: map[string]*vehicle.Vehicle{
		"v1": {ID: "v1", Make: "Toyota", Model: "Hilux", LicensePlate: "KDA 001A", Mileage: 4500},
	}}
	ur := &fakeUserRepo{byID: map[string]*auth.User{
		"u1": {ID: "u1", Email: "jane@fleet.test", FullName: "Jane Doe", IsActive: true},
	}}
	return NewService(fr, vr, ur, zap.NewNop()), fr, vr
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestCreateComputesEfficiency(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	first, err := svc.Create(ctx, &fuel.CreateRequest{
		VehicleID: "v1", FuelAmount: 5, Cost: 20, PricePerUnit: 4,
		Odometer: 10000, FuelDate: date("2024-01-01"),
	}, "u1")
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	if first.Efficiency.Valid {
		t.Errorf("first record efficiency = %v, want none", first.Efficiency.Float64)
	}

	second, err := svc.Create(ctx, &fuel.CreateRequest{
		VehicleID: "v1", FuelAmount: 10, Cost: 40, PricePerUnit: 4,
		Odometer: 10300, FuelDate: date("2024-02-01"),
	}, "u1")
	if err != nil {
		t.Fatalf("second create: %v", err)
	}
	if !second.Efficiency.Valid {
		t.Fatal("expected efficiency on second record")
	}
	if second.Efficiency.Float64 != 30.0 {
		t.Errorf("efficiency = %v, want 30.0", second.Efficiency.Float64)
	}
}

func TestCreateSkipsEfficiencyWhenOdometerDidNotAdvance(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, &fuel.CreateRequest{
		VehicleID: "v1", FuelAmount: 5, Cost: 20, PricePerUnit: 4,
		Odometer: 10000, FuelDate: date("2024-01-01"),
	}, ""); err != nil {
		t.Fatalf("create: %v", err)
	}

	rec, err := svc.Create(ctx, &fuel.CreateRequest{
		VehicleID: "v1", FuelAmount: 8, Cost: 32, PricePerUnit: 4,
		Odometer: 9900, FuelDate: date("2024-02-01"),
	}, "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.Efficiency.Valid {
		t.Errorf("efficiency = %v, want none for lower odometer", rec.Efficiency.Float64)
	}
}

func TestCreateAdvancesVehicleMileage(t *testing.T) {
	svc, _, vr := newTestService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, &fuel.CreateRequest{
		VehicleID: "v1", FuelAmount: 5, Cost: 20, PricePerUnit: 4,
		Odometer: 5000, FuelDate: date("2024-01-01"),
	}, ""); err != nil {
		t.Fatalf("create: %v", err)
	}
	if vr.byID["v1"].Mileage != 5000 {
		t.Errorf("mileage = %d, want 5000", vr.byID["v1"].Mileage)
	}

	// A backdated lower reading never lowers the stored mileage.
	if _, err := svc.Create(ctx, &fuel.CreateRequest{
		VehicleID: "v1", FuelAmount: 5, Cost: 20, PricePerUnit: 4,
		Odometer: 4200, FuelDate: date("2023-12-01"),
	}, ""); err != nil {
		t.Fatalf("create: %v", err)
	}
	if vr.byID["v1"].Mileage != 5000 {
		t.Errorf("mileage = %d, want 5000 after backdated record", vr.byID["v1"].Mileage)
	}
}

func TestCreateUnknownVehicle(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Create(context.Background(), &fuel.CreateRequest{
		VehicleID: "missing", FuelAmount: 5, Cost: 20, PricePerUnit: 4,
		Odometer: 100, FuelDate: date("2024-01-01"),
	}, "")
	if !errors.Is(err, xerrors.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestUpdateExcludesSelfFromPreviousScan(t *testing.T) {
	svc, fr, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, &fuel.CreateRequest{
		VehicleID: "v1", FuelAmount: 5, Cost: 20, PricePerUnit: 4,
		Odometer: 10000, FuelDate: date("2024-01-01"),
	}, ""); err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := svc.Create(ctx, &fuel.CreateRequest{
		VehicleID: "v1", FuelAmount: 10, Cost: 40, PricePerUnit: 4,
		Odometer: 10300, FuelDate: date("2024-02-01"),
	}, "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(ctx, second.ID, &fuel.UpdateRequest{
		FuelAmount: 6, Cost: 24, PricePerUnit: 4,
		Odometer: 10150, FuelDate: date("2024-02-01"),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.Efficiency.Valid || updated.Efficiency.Float64 != 25.0 {
		t.Errorf("efficiency = %+v, want 25.0", updated.Efficiency)
	}

	stored := fr.byID[second.ID]
	if stored.Odometer != 10150 {
		t.Errorf("stored odometer = %d, want 10150", stored.Odometer)
	}
}

func TestAnalytics(t *testing.T) {
	svc, fr, _ := newTestService()
	ctx := context.Background()

	// Unit prices chosen so the per-record mean (5) differs from total cost
	// over total fuel (46/11).
	fr.byID["a"] = &fuel.Record{
		ID: "a", VehicleID: "v1", FuelAmount: 10, Cost: 40, PricePerUnit: 4,
		FuelDate: date("2024-01-01"),
	}
	fr.byID["b"] = &fuel.Record{
		ID: "b", VehicleID: "v1", FuelAmount: 1, Cost: 6, PricePerUnit: 6,
		FuelDate:   date("2024-02-01"),
		Efficiency: sql.NullFloat64{Float64: 30, Valid: true},
	}

	got, err := svc.Analytics(ctx, "v1", nil, nil)
	if err != nil {
		t.Fatalf("analytics: %v", err)
	}
	if got.TotalRecords != 2 {
		t.Errorf("total records = %d, want 2", got.TotalRecords)
	}
	if got.TotalCost != 46 {
		t.Errorf("total cost = %v, want 46", got.TotalCost)
	}
	if got.TotalFuelAmount != 11 {
		t.Errorf("total amount = %v, want 11", got.TotalFuelAmount)
	}
	if got.AveragePrice != 5 {
		t.Errorf("average price = %v, want unweighted mean 5", got.AveragePrice)
	}
	if got.AverageEfficiency != 30 {
		t.Errorf("average efficiency = %v, want 30", got.AverageEfficiency)
	}
}

func TestComputeEfficiencySkipsZeroFuelAmount(t *testing.T) {
	svc, fr, _ := newTestService()
	ctx := context.Background()

	fr.byID["prev"] = &fuel.Record{
		ID: "prev", VehicleID: "v1", FuelAmount: 5, Cost: 20, PricePerUnit: 4,
		Odometer: 10000, FuelDate: date("2024-01-01"),
	}

	eff, err := svc.computeEfficiency(ctx, "v1", date("2024-02-01"), 10300, 0, "")
	if err != nil {
		t.Fatalf("computeEfficiency: %v", err)
	}
	if eff.Valid {
		t.Errorf("efficiency = %v, want none for zero fuel amount", eff.Float64)
	}
}

func TestListByVehicleResolvesRecorderName(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, &fuel.CreateRequest{
		VehicleID: "v1", FuelAmount: 5, Cost: 20, PricePerUnit: 4,
		Odometer: 10000, FuelDate: date("2024-01-01"),
	}, "u1"); err != nil {
		t.Fatalf("create: %v", err)
	}

	infos, err := svc.ListByVehicle(ctx, "v1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(infos) != 1 {
		t.Fatalf("got %d records, want 1", len(infos))
	}
	if infos[0].RecordedBy == nil || *infos[0].RecordedBy != "u1" {
		t.Errorf("recorded_by = %v, want u1", infos[0].RecordedBy)
	}
	if infos[0].RecordedByName == nil || *infos[0].RecordedByName != "Jane Doe" {
		t.Errorf("recorded_by_name = %v, want Jane Doe", infos[0].RecordedByName)
	}
}
