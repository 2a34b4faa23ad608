// Package importer parses raw dealership listing rows (the legacy CSV
// export: name/year/selling_price/km_driven/fuel/seller_type/transmission/
// owner) into vehicles. It is used once, to seed an empty repository.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/you-humble/dealership/internal/model"
)

// SplitName splits a combined listing name into brand and model. The first
// word is the brand.
func SplitName(name string) (brand, modelName string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Unknown", "Unknown"
	}
	parts := strings.SplitN(name, " ", 2)
	if len(parts) == 1 {
		return parts[0], "Unknown"
	}
	return parts[0], parts[1]
}

// RawRow is one record of a bulk-import source, keyed by column name.
type RawRow map[string]string

// Report is the outcome of a bulk import run.
type Report struct {
	Vehicles []*model.Vehicle
	Skipped  int
}

// ParseCar turns a raw row into a car with a freshly generated identity.
func ParseCar(row RawRow) (*model.Vehicle, error) {
	const op = "importer.ParseCar"

	brand, modelName := SplitName(row["name"])
	if brand == "Unknown" && modelName == "Unknown" {
		return nil, fmt.Errorf("%s: unparsable name %q", op, row["name"])
	}

	year, err := strconv.Atoi(strings.TrimSpace(row["year"]))
	if err != nil {
		return nil, fmt.Errorf("%s: year: %w", op, err)
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(row["selling_price"]), 64)
	if err != nil {
		return nil, fmt.Errorf("%s: selling_price: %w", op, err)
	}
	km, err := strconv.Atoi(strings.TrimSpace(row["km_driven"]))
	if err != nil {
		return nil, fmt.Errorf("%s: km_driven: %w", op, err)
	}

	return model.NewCar(model.CarParams{
		Brand:        brand,
		Model:        modelName,
		Year:         year,
		Price:        price,
		Mileage:      km,
		FuelType:     row["fuel"],
		Transmission: row["transmission"],
		OwnerType:    row["owner"],
	})
}

// ReadCars parses a whole legacy CSV stream. Rows that fail to parse are
// skipped and counted, not fatal.
func ReadCars(r io.Reader) (*Report, error) {
	const op = "importer.ReadCars"

	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return &Report{}, nil
		}
		return nil, fmt.Errorf("%s: header: %w", op, err)
	}

	rep := &Report{}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		row := make(RawRow, len(header))
		for i, col := range header {
			if i < len(rec) {
				row[strings.TrimSpace(col)] = rec[i]
			}
		}

		v, err := ParseCar(row)
		if err != nil {
			rep.Skipped++
			continue
		}
		rep.Vehicles = append(rep.Vehicles, v)
	}
	return rep, nil
}

// ReadCarsFile is ReadCars over a file on disk.
func ReadCarsFile(path string) (*Report, error) {
	const op = "importer.ReadCarsFile"

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer f.Close()

	return ReadCars(f)
}
