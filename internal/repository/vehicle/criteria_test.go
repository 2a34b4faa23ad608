package vehicle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you-humble/dealership/internal/model"
)

func testCar(t *testing.T) *model.Vehicle {
	t.Helper()
	v, err := model.NewCar(model.CarParams{
		Brand: "Renault", Model: "Clio Estate", Year: 2016, Price: 6200,
		Mileage: 78000, FuelType: "LPG", Transmission: "Manual", OwnerType: "Second",
	})
	require.NoError(t, err)
	return v
}

func TestParseCriteria(t *testing.T) {
	t.Parallel()

	t.Run("synthetic keys map to price and year", func(t *testing.T) {
		t.Parallel()

		got := ParseCriteria(model.SearchCriteria{"max_price": 5000, "min_year": 2015})
		require.Len(t, got, 2)
		assert.Equal(t, Criterion{Field: "price", Op: OpMaxPrice, Lo: 5000}, got[0])
		assert.Equal(t, Criterion{Field: "year", Op: OpMinYear, Lo: 2015}, got[1])
	})

	t.Run("unknown keys and wrong shapes dropped", func(t *testing.T) {
		t.Parallel()

		got := ParseCriteria(model.SearchCriteria{
			"warp_drive": true,       // unknown key
			"brand":      42,         // string field, non-string value
			"year":       "newish",   // numeric field, non-numeric value
			"is_sold":    "yes",      // bool field, non-bool value
			"price":      []int{1},   // range needs exactly two elements
			"model":      "Clio",     // valid
		})
		require.Len(t, got, 1)
		assert.Equal(t, Criterion{Field: "model", Op: OpSubstring, Str: "Clio"}, got[0])
	})

	t.Run("range value shapes", func(t *testing.T) {
		t.Parallel()

		for _, raw := range []any{
			[2]int{2010, 2020},
			[]int{2010, 2020},
			[]float64{2010, 2020},
			[]any{2010, 2020.0},
		} {
			got := ParseCriteria(model.SearchCriteria{"year": raw})
			require.Len(t, got, 1, "shape %T", raw)
			assert.Equal(t, Criterion{Field: "year", Op: OpNumRange, Lo: 2010, Hi: 2020}, got[0])
		}
	})

	t.Run("output is sorted by field", func(t *testing.T) {
		t.Parallel()

		got := ParseCriteria(model.SearchCriteria{
			"year":  2016,
			"brand": "Renault",
			"price": 6200,
		})
		require.Len(t, got, 3)
		assert.Equal(t, "brand", got[0].Field)
		assert.Equal(t, "price", got[1].Field)
		assert.Equal(t, "year", got[2].Field)
	})
}

func TestMatches(t *testing.T) {
	t.Parallel()

	v := testCar(t)

	tests := []struct {
		name     string
		criteria model.SearchCriteria
		want     bool
	}{
		{name: "empty criteria match", criteria: model.SearchCriteria{}, want: true},
		{name: "substring is case-insensitive", criteria: model.SearchCriteria{"brand": "renAULT"}, want: true},
		{name: "substring may be partial", criteria: model.SearchCriteria{"model": "Estate"}, want: true},
		{name: "substring mismatch", criteria: model.SearchCriteria{"brand": "Peugeot"}, want: false},
		{name: "numeric equality", criteria: model.SearchCriteria{"year": 2016}, want: true},
		{name: "numeric range inclusive at bounds", criteria: model.SearchCriteria{"year": []int{2016, 2016}}, want: true},
		{name: "numeric range miss", criteria: model.SearchCriteria{"year": []int{2017, 2020}}, want: false},
		{name: "max_price at boundary", criteria: model.SearchCriteria{"max_price": 6200}, want: true},
		{name: "max_price below", criteria: model.SearchCriteria{"max_price": 6199.99}, want: false},
		{name: "min_year at boundary", criteria: model.SearchCriteria{"min_year": 2016}, want: true},
		{name: "eco bonus derived from lpg", criteria: model.SearchCriteria{"ecological_bonus_eligible": true}, want: true},
		{name: "conjunction fails on one miss", criteria: model.SearchCriteria{"brand": "Renault", "max_price": 5000}, want: false},
		{name: "category matches name", criteria: model.SearchCriteria{"category": "CAR"}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Matches(v, ParseCriteria(tt.criteria)))
		})
	}
}

func TestMatchesNonCarFields(t *testing.T) {
	t.Parallel()

	bike, err := model.NewBike(model.BikeParams{Brand: "Yamaha", Model: "MT-07", Year: 2021, Price: 6200})
	require.NoError(t, err)

	// Car-only fields read as zero values on other categories.
	assert.False(t, Matches(bike, ParseCriteria(model.SearchCriteria{"fuel_type": "LPG"})))
	assert.False(t, Matches(bike, ParseCriteria(model.SearchCriteria{"ecological_bonus_eligible": true})))
	assert.True(t, Matches(bike, ParseCriteria(model.SearchCriteria{"km_driven": 0})))
}
