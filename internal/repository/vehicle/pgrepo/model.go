package pgrepo

// vehicleRow mirrors the vehicles table. Variant columns not applicable to a
// row's category hold zero values.
type vehicleRow struct {
	ID           string
	Category     string
	Brand        string
	Model        string
	Year         int
	Price        float64
	KMDriven     int
	FuelType     string
	Transmission string
	OwnerType    string
	EcoBonus     bool
	IsSold       bool
	IsAvailable  bool
	BikeStyle    string
	Color        string
	EngineCC     int
}

var vehicleColumns = []string{
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
