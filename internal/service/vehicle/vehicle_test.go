package vehicle

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"vms-service/internal/domain/auth"
	"vms-service/internal/domain/vehicle"
	xerrors "vms-service/internal/pkg/errors"

	"go.uber.org/zap"
)

type fakeVehicleRepo struct {
	byID map[string]*vehicle.Vehicle
}

func newFakeVehicleRepo() *fakeVehicleRepo {
	return &fakeVehicleRepo{byID: map[string]*vehicle.Vehicle{}}
}

func (f *fakeVehicleRepo) Create(_ context.Context, v *vehicle.Vehicle) error {
	cp := *v
	f.byID[v.ID] = &cp
	return nil
}

func (f *fakeVehicleRepo) FindByID(_ context.Context, id string) (*vehicle.Vehicle, error) {
	v, ok := f.byID[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	cp := *v
	return &cp, nil
}

func (f *fakeVehicleRepo) Update(_ context.Context, id string, v *vehicle.Vehicle) error {
	if _, ok := f.byID[id]; !ok {
		return xerrors.ErrNotFound
	}
	cp := *v
	f.byID[id] = &cp
	return nil
}

func (f *fakeVehicleRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return xerrors.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeVehicleRepo) List(_ context.Context, _ *vehicle.ListFilters) ([]vehicle.Info, int64, error) {
	return nil, 0, nil
}

func (f *fakeVehicleRepo) ListAll(_ context.Context) ([]vehicle.Vehicle, error) {
	out := []vehicle.Vehicle{}
	for _, v := range f.byID {
		out = append(out, *v)
	}
	return out, nil
}

func (f *fakeVehicleRepo) ExistsByVIN(_ context.Context, vin, excludeID string) (bool, error) {
	for id, v := range f.byID {
		if v.VIN == vin && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeVehicleRepo) ExistsByLicensePlate(_ context.Context, plate, excludeID string) (bool, error) {
	for id, v := range f.byID {
		if v.LicensePlate == plate && id != excludeID {
			return true, nil
		}
	}
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

func (f *fakeVehicleRepo) SetOwner(_ context.Context, id string, ownerID *string) error {
	v, ok := f.byID[id]
	if !ok {
		return xerrors.ErrNotFound
	}
	if ownerID == nil {
		v.OwnerID = sql.NullString{}
	} else {
		v.OwnerID = sql.NullString{String: *ownerID, Valid: true}
	}
	return nil
}

func (f *fakeVehicleRepo) ListByOwner(_ context.Context, ownerID string) ([]vehicle.Vehicle, error) {
	out := []vehicle.Vehicle{}
	for _, v := range f.byID {
		if v.OwnerID.Valid && v.OwnerID.String == ownerID {
			out = append(out, *v)
		}
	}
	return out, nil
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
func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, xerrors.ErrNotFound
}
func (f *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, err := f.FindByEmail(context.Background(), email)
	return err == nil, nil
}
func (f *fakeUserRepo) List(_ context.Context, _, _ int) ([]auth.User, int64, error) {
	return nil, 0, nil
}
func (f *fakeUserRepo) UpdateProfile(_ context.Context, _, _, _ string) error     { return nil }
func (f *fakeUserRepo) UpdatePassword(_ context.Context, _, _ string) error       { return nil }
func (f *fakeUserRepo) UpdateRoles(_ context.Context, _ string, _ []string) error { return nil }
func (f *fakeUserRepo) SetActive(_ context.Context, _ string, _ bool) error       { return nil }
func (f *fakeUserRepo) TouchLastLogin(_ context.Context, _ string) error          { return nil }

func newTestService() (*Service, *fakeVehicleRepo, *fakeUserRepo) {
	vr := newFakeVehicleRepo()
	ur := &fakeUserRepo{byID: map[string]*auth.User{}}
	return NewService(vr, ur, zap.NewNop()), vr, ur
}

func validRequest() *vehicle.VehicleRequest {
	return &vehicle.VehicleRequest{
		VIN:          "1HGBH41JXMN109186",
		Make:         "Honda",
		Model:        "Civic",
		Year:         2021,
		Color:        "blue",
		LicensePlate: "KAA 123X",
		Mileage:      12000,
	}
}

func TestCreateDefaultsStatus(t *testing.T) {
	svc, _, _ := newTestService()

	v, err := svc.Create(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if v.Status != vehicle.StatusAvailable {
		t.Errorf("status = %s, want %s", v.Status, vehicle.StatusAvailable)
	}
	if v.ID == "" {
		t.Error("expected generated id")
	}
}

func TestCreateRejectsBadVIN(t *testing.T) {
	svc, _, _ := newTestService()

	req := validRequest()
	req.VIN = "1HGBH41JXMN10918O" // letter O not allowed
	_, err := svc.Create(context.Background(), req)
	if !errors.Is(err, xerrors.ErrInvalidInput) {
		t.Fatalf("error = %v, want ErrInvalidInput", err)
	}
}

func TestCreateRejectsDuplicateVIN(t *testing.T) {
	svc, _, _ := newTestService()

	if _, err := svc.Create(context.Background(), validRequest()); err != nil {
		t.Fatalf("first create: %v", err)
	}

	dup := validRequest()
	dup.LicensePlate = "KBB 456Y"
	_, err := svc.Create(context.Background(), dup)
	if !errors.Is(err, xerrors.ErrDuplicateEntry) {
		t.Fatalf("error = %v, want ErrDuplicateEntry", err)
	}
}

func TestUpdateAllowsSameVINOnSelf(t *testing.T) {
	svc, _, _ := newTestService()

	v, err := svc.Create(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	req := validRequest()
	req.Color = "red"
	updated, err := svc.Update(context.Background(), v.ID, req)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Color != "red" {
		t.Errorf("color = %s, want red", updated.Color)
	}
}

func TestAssignRequiresActiveUser(t *testing.T) {
	svc, _, ur := newTestService()

	v, err := svc.Create(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	ur.byID["u1"] = &auth.User{ID: "u1", FullName: "Jane Doe", IsActive: false}
	if err := svc.Assign(context.Background(), v.ID, "u1"); !errors.Is(err, xerrors.ErrInvalidInput) {
		t.Fatalf("error = %v, want ErrInvalidInput", err)
	}

	ur.byID["u1"].IsActive = true
	if err := svc.Assign(context.Background(), v.ID, "u1"); err != nil {
		t.Fatalf("assign: %v", err)
	}

	info, err := svc.GetInfo(context.Background(), v.ID)
	if err != nil {
		t.Fatalf("get info: %v", err)
	}
	if info.OwnerName == nil || *info.OwnerName != "Jane Doe" {
		t.Errorf("owner name = %v, want Jane Doe", info.OwnerName)
	}
}

func TestAssignUnknownUser(t *testing.T) {
	svc, _, _ := newTestService()

	v, err := svc.Create(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Assign(context.Background(), v.ID, "missing"); !errors.Is(err, xerrors.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}
