package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you-humble/dealership/internal/facility"
	"github.com/you-humble/dealership/internal/logger"
	"github.com/you-humble/dealership/internal/model"
	"github.com/you-humble/dealership/internal/repository/vehicle/csvrepo"
)

func TestMain(m *testing.M) {
	logger.SetNopLogger()
	os.Exit(m.Run())
}

type fixture struct {
	repo     *csvrepo.Repository
	showroom *facility.Facility
	garage   *facility.Facility
	svc      *service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	repo, err := csvrepo.Open(filepath.Join(t.TempDir(), "vehicles.csv"))
	require.NoError(t, err)

	showroom := facility.NewShowroom("floor", map[model.Category]int{
		model.CategoryCar:  2,
		model.CategoryBike: 1,
	})
	garage := facility.NewGarage("garage", map[model.Category]int{
		model.CategoryCar:  1,
		model.CategoryBike: 1,
	})

	return &fixture{
		repo:     repo,
		showroom: showroom,
		garage:   garage,
		svc:      NewInventoryService(repo, showroom, garage),
	}
}

func (f *fixture) addCar(t *testing.T) *model.Vehicle {
	t.Helper()
	v, err := model.NewCar(model.CarParams{
		Brand: "Renault", Model: "Clio", Year: 2018, Price: 7500,
		Mileage: 42000, FuelType: "LPG", Transmission: "Manual", OwnerType: "First",
	})
	require.NoError(t, err)
	require.NoError(t, f.repo.Add(context.Background(), v))
	return v
}

func TestMoveToShowroomKeepsVehicleSellable(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	v := f.addCar(t)

	require.NoError(t, f.svc.MoveToShowroom(ctx, v.ID))

	assert.True(t, f.showroom.Contains(v.ID))

	stored, err := f.repo.GetRequired(ctx, v.ID)
	require.NoError(t, err)
	assert.True(t, stored.Available, "showroom vehicles stay for sale")
}

func TestMoveToGarageMakesVehicleUnavailable(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	v := f.addCar(t)

	require.NoError(t, f.svc.MoveToGarage(ctx, v.ID))

	assert.True(t, f.garage.Contains(v.ID))

	stored, err := f.repo.GetRequired(ctx, v.ID)
	require.NoError(t, err)
	assert.False(t, stored.Available)
}

func TestReleaseFromGarageRestoresAvailability(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	v := f.addCar(t)

	require.NoError(t, f.svc.MoveToGarage(ctx, v.ID))
	require.NoError(t, f.svc.ReleaseFromGarage(ctx, v.ID))

	assert.False(t, f.garage.Contains(v.ID))

	stored, err := f.repo.GetRequired(ctx, v.ID)
	require.NoError(t, err)
	assert.True(t, stored.Available)
}

func TestMoveToShowroomFullFloor(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)

	v1 := f.addCar(t)
	v2 := f.addCar(t)
	v3 := f.addCar(t)

	require.NoError(t, f.svc.MoveToShowroom(ctx, v1.ID))
	require.NoError(t, f.svc.MoveToShowroom(ctx, v2.ID))

	err := f.svc.MoveToShowroom(ctx, v3.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrFacilityFull)
	assert.False(t, f.showroom.Contains(v3.ID))
}

func TestMoveUnknownVehicle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)

	err := f.svc.MoveToShowroom(ctx, "no-such-id")
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrVehicleNotFound)
}

func TestReleaseFromShowroomLeavesRepositoryAlone(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	v := f.addCar(t)

	require.NoError(t, f.svc.MoveToShowroom(ctx, v.ID))
	require.NoError(t, f.svc.ReleaseFromShowroom(ctx, v.ID))

	assert.False(t, f.showroom.Contains(v.ID))

	// The final repository state belongs to the caller (e.g. the sale flow);
	// the release itself changes nothing.
	stored, err := f.repo.GetRequired(ctx, v.ID)
	require.NoError(t, err)
	assert.True(t, stored.Available)
}

func TestAllCompanyVehicles(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	v1 := f.addCar(t)
	v2 := f.addCar(t)

	require.NoError(t, f.svc.MoveToGarage(ctx, v1.ID))

	all, err := f.svc.AllCompanyVehicles(ctx)
	require.NoError(t, err)

	ids := make([]string, 0, len(all))
	for _, v := range all {
		ids = append(ids, v.ID)
	}
	assert.ElementsMatch(t, []string{v1.ID, v2.ID}, ids)
}
