package csvrepo

import (
	"fmt"
	"strconv"

	"github.com/you-humble/dealership/internal/model"
)

// Column layout of the table file. Shared with the relational engine
// semantically: same fields, same meaning.
var header = []string{
	"id",
	"category",
	"brand",
	"model",
	"year",
	"price",
	"km_driven",
	"fuel_type",
	"transmission",
	"owner_type",
	"ecological_bonus_eligible",
	"is_sold",
	"is_available",
	"bike_style",
	"color",
	"engine_cc",
}

func encode(v *model.Vehicle) []string {
	rec := make([]string, len(header))
	rec[0] = v.ID
	rec[1] = v.Category.String()
	rec[2] = v.Brand
	rec[3] = v.Model
	rec[4] = strconv.Itoa(v.Year)
	rec[5] = strconv.FormatFloat(v.Price, 'f', -1, 64)
	rec[11] = strconv.FormatBool(v.Sold)
	rec[12] = strconv.FormatBool(v.Available)

	switch {
	case v.Car != nil:
		rec[6] = strconv.Itoa(v.Car.Mileage)
		rec[7] = v.Car.FuelType
		rec[8] = v.Car.Transmission
		rec[9] = v.Car.OwnerType
		rec[10] = strconv.FormatBool(v.Car.EcoBonus)
	case v.Bike != nil:
		rec[13] = v.Bike.Style
	case v.Scooter != nil:
		rec[14] = v.Scooter.Color
		rec[15] = strconv.Itoa(v.Scooter.EngineCC)
	}
	return rec
}

func decode(rec []string) (*model.Vehicle, error) {
	const op = "csvrepo.decode"

	if len(rec) != len(header) {
		return nil, fmt.Errorf("%s: got %d columns, want %d", op, len(rec), len(header))
	}

	cat, err := model.ParseCategory(rec[1])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	year, err := strconv.Atoi(rec[4])
	if err != nil {
		return nil, fmt.Errorf("%s: year: %w", op, err)
	}
	price, err := strconv.ParseFloat(rec[5], 64)
	if err != nil {
		return nil, fmt.Errorf("%s: price: %w", op, err)
	}
	sold, err := strconv.ParseBool(rec[11])
	if err != nil {
		return nil, fmt.Errorf("%s: is_sold: %w", op, err)
	}
	available, err := strconv.ParseBool(rec[12])
	if err != nil {
		return nil, fmt.Errorf("%s: is_available: %w", op, err)
	}

	v := &model.Vehicle{
		ID:        rec[0],
		Brand:     rec[2],
		Model:     rec[3],
		Year:      year,
		Price:     price,
		Category:  cat,
		Sold:      sold,
		Available: available,
	}

	switch cat {
	case model.CategoryCar:
		km, err := strconv.Atoi(rec[6])
		if err != nil {
			return nil, fmt.Errorf("%s: km_driven: %w", op, err)
		}
		eco, err := strconv.ParseBool(rec[10])
		if err != nil {
			return nil, fmt.Errorf("%s: ecological_bonus_eligible: %w", op, err)
		}
		v.Car = &model.CarSpec{
			Mileage:      km,
			FuelType:     rec[7],
			Transmission: rec[8],
			OwnerType:    rec[9],
			EcoBonus:     eco,
		}
	case model.CategoryBike:
		v.Bike = &model.BikeSpec{Style: rec[13]}
	case model.CategoryScooter:
		cc, err := strconv.Atoi(rec[15])
		if err != nil {
			return nil, fmt.Errorf("%s: engine_cc: %w", op, err)
		}
		v.Scooter = &model.ScooterSpec{Color: rec[14], EngineCC: cc}
	}
	return v, nil
}
