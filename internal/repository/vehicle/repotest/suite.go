// Package repotest is a storage-engine contract suite: every vehicle
// repository implementation must pass it, so the CSV and Postgres engines
// stay behaviorally interchangeable.
package repotest

import (
	"context"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you-humble/dealership/internal/model"
	"github.com/you-humble/dealership/internal/repository/vehicle"
)

// Factory returns a fresh, empty repository for one subtest.
type Factory func(t *testing.T) vehicle.Repository

// Run exercises the full repository contract against the given factory.
func Run(t *testing.T, newRepo Factory) {
	t.Run("round trip per category", testRoundTrip(newRepo))
	t.Run("duplicate identity rejected", testDuplicate(newRepo))
	t.Run("get missing", testGetMissing(newRepo))
	t.Run("update missing", testUpdateMissing(newRepo))
	t.Run("delete", testDelete(newRepo))
	t.Run("list all", testListAll(newRepo))
	t.Run("search", testSearch(newRepo))
	t.Run("search treats pattern characters literally", testSearchLiteralSubstring(newRepo))
}

func newCar(t *testing.T, brand, modelName string, year int, price float64, fuel string) *model.Vehicle {
	t.Helper()
	v, err := model.NewCar(model.CarParams{
		Brand:        brand,
		Model:        modelName,
		Year:         year,
		Price:        price,
		Mileage:      gofakeit.Number(1000, 150000),
		FuelType:     fuel,
		Transmission: "Manual",
		OwnerType:    "First",
	})
	require.NoError(t, err)
	return v
}

// stripDerivationState drops the in-memory eco-bonus pin marker, which is
// intentionally not persisted: engines return the derived flag value only.
func stripDerivationState(v *model.Vehicle) *model.Vehicle {
	if v.Car != nil {
		v.Car.EcoBonusPinned = false
	}
	return v
}

func testRoundTrip(newRepo Factory) func(t *testing.T) {
	return func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)

		car := newCar(t, "Renault", "Clio", 2018, 7500, "LPG")
		bike, err := model.NewBike(model.BikeParams{
			Brand: "Yamaha", Model: "MT-07", Year: 2021, Price: 6200, Style: "Naked",
		})
		require.NoError(t, err)
		scooter, err := model.NewScooter(model.ScooterParams{
			Brand: "Vespa", Model: "Primavera", Year: 2020, Price: 3100, Color: "Mint", EngineCC: 125,
		})
		require.NoError(t, err)

		for _, v := range []*model.Vehicle{car, bike, scooter} {
			require.NoError(t, repo.Add(ctx, v))
		}

		for _, want := range []*model.Vehicle{car, bike, scooter} {
			got, ok, err := repo.Get(ctx, want.ID)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, stripDerivationState(want.Clone()), stripDerivationState(got))
		}

		// The car carried the derived eco-bonus flag; it must survive storage.
		got, err := repo.GetRequired(ctx, car.ID)
		require.NoError(t, err)
		require.NotNil(t, got.Car)
		assert.True(t, got.Car.EcoBonus)
	}
}

func testDuplicate(newRepo Factory) func(t *testing.T) {
	return func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)

		v := newCar(t, "Peugeot", "208", 2019, 8900, "Petrol")
		require.NoError(t, repo.Add(ctx, v))

		err := repo.Add(ctx, v)
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrDuplicate)

		all, err := repo.ListAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	}
}

func testGetMissing(newRepo Factory) func(t *testing.T) {
	return func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)

		_, ok, err := repo.Get(ctx, gofakeit.UUID())
		require.NoError(t, err)
		assert.False(t, ok)

		_, err = repo.GetRequired(ctx, gofakeit.UUID())
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrVehicleNotFound)
	}
}

func testUpdateMissing(newRepo Factory) func(t *testing.T) {
	return func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)

		v := newCar(t, "Fiat", "Panda", 2015, 4200, "Petrol")
		err := repo.Update(ctx, v)
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrVehicleNotFound)
	}
}

func testDelete(newRepo Factory) func(t *testing.T) {
	return func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)

		v := newCar(t, "Dacia", "Sandero", 2020, 7100, "Petrol")
		require.NoError(t, repo.Add(ctx, v))
		require.NoError(t, repo.Delete(ctx, v.ID))

		_, ok, err := repo.Get(ctx, v.ID)
		require.NoError(t, err)
		assert.False(t, ok)

		err = repo.Delete(ctx, v.ID)
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrVehicleNotFound)
	}
}

func testListAll(newRepo Factory) func(t *testing.T) {
	return func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)

		want := map[string]struct{}{}
		for i := 0; i < 5; i++ {
			v := newCar(t, gofakeit.CarMaker(), gofakeit.CarModel(), 2010+i, float64(3000+i*500), "Diesel")
			require.NoError(t, repo.Add(ctx, v))
			want[v.ID] = struct{}{}
		}

		all, err := repo.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, len(want))
		for _, v := range all {
			_, ok := want[v.ID]
			assert.True(t, ok, "unexpected vehicle %s", v.ID)
		}
	}
}

func testSearch(newRepo Factory) func(t *testing.T) {
	return func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)

		cheapLPG := newCar(t, "Renault", "Clio Estate", 2012, 4500, "LPG")
		midPetrol := newCar(t, "Renault", "Megane", 2017, 9000, "Petrol")
		newDiesel := newCar(t, "BMW", "320d", 2021, 24500, "Diesel")
		for _, v := range []*model.Vehicle{cheapLPG, midPetrol, newDiesel} {
			require.NoError(t, repo.Add(ctx, v))
		}

		ids := func(vs []*model.Vehicle) []string {
			out := make([]string, 0, len(vs))
			for _, v := range vs {
				out = append(out, v.ID)
			}
			return out
		}

		t.Run("max_price", func(t *testing.T) {
			got, err := repo.Search(ctx, model.SearchCriteria{"max_price": 5000})
			require.NoError(t, err)
			assert.ElementsMatch(t, []string{cheapLPG.ID}, ids(got))
		})

		t.Run("min_year", func(t *testing.T) {
			got, err := repo.Search(ctx, model.SearchCriteria{"min_year": 2017})
			require.NoError(t, err)
			assert.ElementsMatch(t, []string{midPetrol.ID, newDiesel.ID}, ids(got))
		})

		t.Run("brand substring is case-insensitive", func(t *testing.T) {
			got, err := repo.Search(ctx, model.SearchCriteria{"brand": "renAU"})
			require.NoError(t, err)
			assert.ElementsMatch(t, []string{cheapLPG.ID, midPetrol.ID}, ids(got))
		})

		t.Run("numeric range", func(t *testing.T) {
			got, err := repo.Search(ctx, model.SearchCriteria{"year": []int{2015, 2020}})
			require.NoError(t, err)
			assert.ElementsMatch(t, []string{midPetrol.ID}, ids(got))
		})

		t.Run("numeric equality", func(t *testing.T) {
			got, err := repo.Search(ctx, model.SearchCriteria{"year": 2021})
			require.NoError(t, err)
			assert.ElementsMatch(t, []string{newDiesel.ID}, ids(got))
		})

		t.Run("boolean field", func(t *testing.T) {
			got, err := repo.Search(ctx, model.SearchCriteria{"ecological_bonus_eligible": true})
			require.NoError(t, err)
			assert.ElementsMatch(t, []string{cheapLPG.ID}, ids(got))
		})

		t.Run("unknown key is ignored", func(t *testing.T) {
			got, err := repo.Search(ctx, model.SearchCriteria{"warp_drive": true, "brand": "BMW"})
			require.NoError(t, err)
			assert.ElementsMatch(t, []string{newDiesel.ID}, ids(got))
		})

		t.Run("criteria combine conjunctively", func(t *testing.T) {
			got, err := repo.Search(ctx, model.SearchCriteria{
				"brand":     "Renault",
				"max_price": 5000,
			})
			require.NoError(t, err)
			assert.ElementsMatch(t, []string{cheapLPG.ID}, ids(got))
		})

		t.Run("empty criteria match everything", func(t *testing.T) {
			got, err := repo.Search(ctx, model.SearchCriteria{})
			require.NoError(t, err)
			assert.Len(t, got, 3)
		})
	}
}

// A substring criterion is a literal, never a pattern: "%"/"_" in the value
// must only match themselves, on every engine.
func testSearchLiteralSubstring(newRepo Factory) func(t *testing.T) {
	return func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)

		percent := newCar(t, "Peugeot", "208 50% edition", 2018, 7000, "Petrol")
		lookalike := newCar(t, "Peugeot", "504i", 2018, 7000, "Petrol")
		underscore := newCar(t, "Kia", "GT_Line", 2019, 9000, "Petrol")
		wildcardBait := newCar(t, "Kia", "GTSLine", 2019, 9000, "Petrol")
		for _, v := range []*model.Vehicle{percent, lookalike, underscore, wildcardBait} {
			require.NoError(t, repo.Add(ctx, v))
		}

		ids := func(vs []*model.Vehicle) []string {
			out := make([]string, 0, len(vs))
			for _, v := range vs {
				out = append(out, v.ID)
			}
			return out
		}

		got, err := repo.Search(ctx, model.SearchCriteria{"model": "50%"})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{percent.ID}, ids(got))

		got, err = repo.Search(ctx, model.SearchCriteria{"model": "GT_Line"})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{underscore.ID}, ids(got))
	}
}
