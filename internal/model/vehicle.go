package model

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type Category int32

const (
	CategoryUnknown Category = iota
	CategoryCar
	CategoryBike
	CategoryScooter
)

func (c Category) String() string {
	switch c {
	case CategoryCar:
		return "CAR"
	case CategoryBike:
		return "BIKE"
	case CategoryScooter:
		return "SCOOTER"
	default:
		return "UNKNOWN"
	}
}

func ParseCategory(s string) (Category, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "CAR":
		return CategoryCar, nil
	case "BIKE":
		return CategoryBike, nil
	case "SCOOTER":
		return CategoryScooter, nil
	default:
		return CategoryUnknown, fmt.Errorf("%w: unknown category %q", ErrValidation, s)
	}
}

// Fuel types that qualify a car for the ecological bonus.
var ecoEligibleFuels = map[string]struct{}{
	"CNG":      {},
	"LPG":      {},
	"ELECTRIC": {},
}

func EcoBonusForFuel(fuelType string) bool {
	_, ok := ecoEligibleFuels[strings.ToUpper(fuelType)]
	return ok
}

// Vehicle is a dealership vehicle. The Category is fixed at creation and
// selects which of the variant payloads (Car, Bike, Scooter) is set.
type Vehicle struct {
	ID       string
	Brand    string
	Model    string
	Year     int
	Price    float64
	Category Category

	Sold      bool
	Available bool

	Car     *CarSpec
	Bike    *BikeSpec
	Scooter *ScooterSpec
}

type CarSpec struct {
	Mileage      int
	FuelType     string
	Transmission string
	OwnerType    string
	EcoBonus     bool
	// EcoBonusPinned marks the flag as explicitly set; SetFuelType stops
	// re-deriving it once pinned.
	EcoBonusPinned bool
}

type BikeSpec struct {
	Style string
}

type ScooterSpec struct {
	Color    string
	EngineCC int
}

type CarParams struct {
	Brand        string
	Model        string
	Year         int
	Price        float64
	Mileage      int
	FuelType     string
	Transmission string
	OwnerType    string
	// EcoBonus overrides the fuel-type derivation when non-nil.
	EcoBonus *bool
}

func NewCar(p CarParams) (*Vehicle, error) {
	v := &Vehicle{
		ID:        uuid.NewString(),
		Brand:     p.Brand,
		Model:     p.Model,
		Year:      p.Year,
		Price:     p.Price,
		Category:  CategoryCar,
		Available: true,
		Car: &CarSpec{
			Mileage:      p.Mileage,
			FuelType:     p.FuelType,
			Transmission: p.Transmission,
			OwnerType:    p.OwnerType,
		},
	}
	if p.EcoBonus != nil {
		v.Car.EcoBonus = *p.EcoBonus
		v.Car.EcoBonusPinned = true
	} else {
		v.Car.EcoBonus = EcoBonusForFuel(p.FuelType)
	}
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return v, nil
}

type BikeParams struct {
	Brand string
	Model string
	Year  int
	Price float64
	Style string
}

func NewBike(p BikeParams) (*Vehicle, error) {
	style := p.Style
	if style == "" {
		style = "Standard"
	}
	v := &Vehicle{
		ID:        uuid.NewString(),
		Brand:     p.Brand,
		Model:     p.Model,
		Year:      p.Year,
		Price:     p.Price,
		Category:  CategoryBike,
		Available: true,
		Bike:      &BikeSpec{Style: style},
	}
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return v, nil
}

type ScooterParams struct {
	Brand    string
	Model    string
	Year     int
	Price    float64
	Color    string
	EngineCC int
}

func NewScooter(p ScooterParams) (*Vehicle, error) {
	cc := p.EngineCC
	if cc == 0 {
		cc = 50
	}
	v := &Vehicle{
		ID:        uuid.NewString(),
		Brand:     p.Brand,
		Model:     p.Model,
		Year:      p.Year,
		Price:     p.Price,
		Category:  CategoryScooter,
		Available: true,
		Scooter:   &ScooterSpec{Color: p.Color, EngineCC: cc},
	}
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return v, nil
}

// Validate checks the invariants that hold for every stored vehicle. Engines
// call it before persisting so a bad value never reaches storage.
func (v *Vehicle) Validate() error {
	if v.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrValidation)
	}
	if v.Car != nil && v.Car.Mileage < 0 {
		return fmt.Errorf("%w: mileage must not be negative", ErrValidation)
	}
	if v.Scooter != nil && v.Scooter.EngineCC <= 0 {
		return fmt.Errorf("%w: engine displacement must be positive", ErrValidation)
	}
	if v.Sold && v.Available {
		return fmt.Errorf("%w: a sold vehicle cannot be available", ErrValidation)
	}
	return nil
}

func (v *Vehicle) SetPrice(price float64) error {
	if price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrValidation)
	}
	v.Price = price
	return nil
}

func (v *Vehicle) SetMileage(km int) error {
	if v.Car == nil {
		return fmt.Errorf("%w: %s has no mileage", ErrValidation, v.Category)
	}
	if km < 0 {
		return fmt.Errorf("%w: mileage must not be negative", ErrValidation)
	}
	v.Car.Mileage = km
	return nil
}

// SetFuelType changes the fuel type and re-derives the ecological bonus
// eligibility, unless the flag was explicitly pinned via SetEcoBonus.
func (v *Vehicle) SetFuelType(fuelType string) error {
	if v.Car == nil {
		return fmt.Errorf("%w: %s has no fuel type", ErrValidation, v.Category)
	}
	v.Car.FuelType = fuelType
	if !v.Car.EcoBonusPinned {
		v.Car.EcoBonus = EcoBonusForFuel(fuelType)
	}
	return nil
}

// SetEcoBonus pins the eligibility flag, overriding the fuel-type derivation
// from here on.
func (v *Vehicle) SetEcoBonus(eligible bool) error {
	if v.Car == nil {
		return fmt.Errorf("%w: %s has no ecological bonus", ErrValidation, v.Category)
	}
	v.Car.EcoBonus = eligible
	v.Car.EcoBonusPinned = true
	return nil
}

func (v *Vehicle) SetEngineCC(cc int) error {
	if v.Scooter == nil {
		return fmt.Errorf("%w: %s has no engine displacement", ErrValidation, v.Category)
	}
	if cc <= 0 {
		return fmt.Errorf("%w: engine displacement must be positive", ErrValidation)
	}
	v.Scooter.EngineCC = cc
	return nil
}

// MarkSold records the sale on the vehicle. A sold vehicle is never available.
func (v *Vehicle) MarkSold() {
	v.Sold = true
	v.Available = false
}

func (v *Vehicle) WheelCount() int {
	switch v.Category {
	case CategoryCar:
		return 4
	case CategoryBike, CategoryScooter:
		return 2
	default:
		return 0
	}
}

func (v *Vehicle) Description() string {
	switch v.Category {
	case CategoryCar:
		return fmt.Sprintf("%s %s %s", v.Brand, v.Model, v.Car.FuelType)
	case CategoryBike:
		return fmt.Sprintf("%s %s (%s)", v.Brand, v.Model, v.Bike.Style)
	case CategoryScooter:
		return fmt.Sprintf("%s %s %dcc", v.Brand, v.Model, v.Scooter.EngineCC)
	default:
		return fmt.Sprintf("%s %s", v.Brand, v.Model)
	}
}

// Clone returns a deep copy. Repositories and services hand out clones so
// callers never share mutable state with stored records.
func (v *Vehicle) Clone() *Vehicle {
	if v == nil {
		return nil
	}
	out := *v
	if v.Car != nil {
		spec := *v.Car
		out.Car = &spec
	}
	if v.Bike != nil {
		spec := *v.Bike
		out.Bike = &spec
	}
	if v.Scooter != nil {
		spec := *v.Scooter
		out.Scooter = &spec
	}
	return &out
}
