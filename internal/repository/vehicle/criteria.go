package vehicle

import (
	"sort"
	"strings"

	"github.com/you-humble/dealership/internal/model"
)

// Op is one predicate shape a criterion can take. Both engines evaluate the
// same parsed criteria: csvrepo in memory via Matches, pgrepo compiled to SQL.
type Op int

const (
	OpSubstring Op = iota // case-insensitive substring on a string field
	OpNumEq               // exact match on a numeric field
	OpNumRange            // inclusive range on a numeric field
	OpBoolEq              // exact match on a boolean field
	OpMaxPrice            // price <= value
	OpMinYear             // year >= value
)

type Criterion struct {
	Field string
	Op    Op
	Str   string
	Lo    float64
	Hi    float64
	Bool  bool
}

var stringFields = map[string]struct{}{
	"brand":        {},
	"model":        {},
	"fuel_type":    {},
	"transmission": {},
	"owner_type":   {},
	"category":     {},
}

var numericFields = map[string]struct{}{
	"year":      {},
	"price":     {},
	"km_driven": {},
}

var boolFields = map[string]struct{}{
	"ecological_bonus_eligible": {},
	"is_sold":                   {},
	"is_available":              {},
}

// ParseCriteria normalizes the raw criteria mapping into typed predicates.
// Unknown keys and values of the wrong shape are dropped, not rejected.
// The result is sorted by field so compiled SQL is deterministic.
func ParseCriteria(criteria model.SearchCriteria) []Criterion {
	out := make([]Criterion, 0, len(criteria))
	for key, raw := range criteria {
		switch {
		case key == "max_price":
			if f, ok := asFloat(raw); ok {
				out = append(out, Criterion{Field: "price", Op: OpMaxPrice, Lo: f})
			}
		case key == "min_year":
			if f, ok := asFloat(raw); ok {
				out = append(out, Criterion{Field: "year", Op: OpMinYear, Lo: f})
			}
		default:
			if c, ok := parseField(key, raw); ok {
				out = append(out, c)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Field != out[j].Field {
			return out[i].Field < out[j].Field
		}
		return out[i].Op < out[j].Op
	})
	return out
}

func parseField(key string, raw any) (Criterion, bool) {
	if _, ok := stringFields[key]; ok {
		s, ok := raw.(string)
		if !ok {
			return Criterion{}, false
		}
		return Criterion{Field: key, Op: OpSubstring, Str: s}, true
	}
	if _, ok := numericFields[key]; ok {
		if lo, hi, ok := asRange(raw); ok {
			return Criterion{Field: key, Op: OpNumRange, Lo: lo, Hi: hi}, true
		}
		if f, ok := asFloat(raw); ok {
			return Criterion{Field: key, Op: OpNumEq, Lo: f}, true
		}
		return Criterion{}, false
	}
	if _, ok := boolFields[key]; ok {
		b, ok := raw.(bool)
		if !ok {
			return Criterion{}, false
		}
		return Criterion{Field: key, Op: OpBoolEq, Bool: b}, true
	}
	return Criterion{}, false
}

func asFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}

func asRange(raw any) (lo, hi float64, ok bool) {
	switch v := raw.(type) {
	case [2]int:
		return float64(v[0]), float64(v[1]), true
	case [2]float64:
		return v[0], v[1], true
	case []int:
		if len(v) == 2 {
			return float64(v[0]), float64(v[1]), true
		}
	case []float64:
		if len(v) == 2 {
			return v[0], v[1], true
		}
	case []any:
		if len(v) == 2 {
			l, okL := asFloat(v[0])
			h, okH := asFloat(v[1])
			if okL && okH {
				return l, h, true
			}
		}
	}
	return 0, 0, false
}

// Matches reports whether the vehicle satisfies every criterion. This is the
// reference predicate the engines must agree with on membership.
func Matches(v *model.Vehicle, criteria []Criterion) bool {
	for _, c := range criteria {
		if !matchOne(v, c) {
			return false
		}
	}
	return true
}

func matchOne(v *model.Vehicle, c Criterion) bool {
	switch c.Op {
	case OpSubstring:
		return strings.Contains(
			strings.ToLower(stringField(v, c.Field)),
			strings.ToLower(c.Str),
		)
	case OpNumEq:
		return numericField(v, c.Field) == c.Lo
	case OpNumRange:
		f := numericField(v, c.Field)
		return f >= c.Lo && f <= c.Hi
	case OpBoolEq:
		return boolField(v, c.Field) == c.Bool
	case OpMaxPrice:
		return v.Price <= c.Lo
	case OpMinYear:
		return float64(v.Year) >= c.Lo
	default:
		return false
	}
}

func stringField(v *model.Vehicle, field string) string {
	switch field {
	case "brand":
		return v.Brand
	case "model":
		return v.Model
	case "category":
		return v.Category.String()
	case "fuel_type":
		if v.Car != nil {
			return v.Car.FuelType
		}
	case "transmission":
		if v.Car != nil {
			return v.Car.Transmission
		}
	case "owner_type":
		if v.Car != nil {
			return v.Car.OwnerType
		}
	}
	return ""
}

func numericField(v *model.Vehicle, field string) float64 {
	switch field {
	case "year":
		return float64(v.Year)
	case "price":
		return v.Price
	case "km_driven":
		if v.Car != nil {
			return float64(v.Car.Mileage)
		}
	}
	return 0
}

func boolField(v *model.Vehicle, field string) bool {
	switch field {
	case "ecological_bonus_eligible":
		return v.Car != nil && v.Car.EcoBonus
	case "is_sold":
		return v.Sold
	case "is_available":
		return v.Available
	}
	return false
}
