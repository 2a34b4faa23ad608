package pgrepo

import (
	"fmt"

	"github.com/you-humble/dealership/internal/model"
)

func rowFromModel(v *model.Vehicle) vehicleRow {
	row := vehicleRow{
		ID:          v.ID,
		Category:    v.Category.String(),
		Brand:       v.Brand,
		Model:       v.Model,
		Year:        v.Year,
		Price:       v.Price,
		IsSold:      v.Sold,
		IsAvailable: v.Available,
	}
	switch {
	case v.Car != nil:
		row.KMDriven = v.Car.Mileage
		row.FuelType = v.Car.FuelType
		row.Transmission = v.Car.Transmission
		row.OwnerType = v.Car.OwnerType
		row.EcoBonus = v.Car.EcoBonus
	case v.Bike != nil:
		row.BikeStyle = v.Bike.Style
	case v.Scooter != nil:
		row.Color = v.Scooter.Color
		row.EngineCC = v.Scooter.EngineCC
	}
	return row
}

func (r vehicleRow) values() []any {
	return []any{
		r.ID,
		r.Category,
		r.Brand,
		r.Model,
		r.Year,
		r.Price,
		r.KMDriven,
		r.FuelType,
		r.Transmission,
		r.OwnerType,
		r.EcoBonus,
		r.IsSold,
		r.IsAvailable,
		r.BikeStyle,
		r.Color,
		r.EngineCC,
	}
}

func (r *vehicleRow) scanTargets() []any {
	return []any{
		&r.ID,
		&r.Category,
		&r.Brand,
		&r.Model,
		&r.Year,
		&r.Price,
		&r.KMDriven,
		&r.FuelType,
		&r.Transmission,
		&r.OwnerType,
		&r.EcoBonus,
		&r.IsSold,
		&r.IsAvailable,
		&r.BikeStyle,
		&r.Color,
		&r.EngineCC,
	}
}

func rowToModel(r vehicleRow) (*model.Vehicle, error) {
	cat, err := model.ParseCategory(r.Category)
	if err != nil {
		return nil, fmt.Errorf("pgrepo.rowToModel: %w", err)
	}

	v := &model.Vehicle{
		ID:        r.ID,
		Brand:     r.Brand,
		Model:     r.Model,
		Year:      r.Year,
		Price:     r.Price,
		Category:  cat,
		Sold:      r.IsSold,
		Available: r.IsAvailable,
	}
	switch cat {
	case model.CategoryCar:
		v.Car = &model.CarSpec{
			Mileage:      r.KMDriven,
			FuelType:     r.FuelType,
			Transmission: r.Transmission,
			OwnerType:    r.OwnerType,
			EcoBonus:     r.EcoBonus,
		}
	case model.CategoryBike:
		v.Bike = &model.BikeSpec{Style: r.BikeStyle}
	case model.CategoryScooter:
		v.Scooter = &model.ScooterSpec{Color: r.Color, EngineCC: r.EngineCC}
	}
	return v, nil
}
