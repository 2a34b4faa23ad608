// Package facility implements capacity-bounded physical storage for
// vehicles. A facility stores vehicle identities grouped by category; the
// full records live in the repository.
package facility

import (
	"fmt"
	"sync"

	"github.com/you-humble/dealership/internal/model"
)

// Default service-bay limits for a garage, per category.
var garageDefaultCapacities = map[model.Category]int{
	model.CategoryCar:     50,
	model.CategoryBike:    7,
	model.CategoryScooter: 10,
}

type Facility struct {
	mu         sync.Mutex
	name       string
	capacities map[model.Category]int
	stored     map[model.Category][]string
	// members indexes stored IDs for O(1) duplicate checks.
	members map[string]model.Category
}

// New creates a facility supporting exactly the categories present in
// capacities. A vehicle of any other category is rejected on Add.
func New(name string, capacities map[model.Category]int) *Facility {
	caps := make(map[model.Category]int, len(capacities))
	for cat, limit := range capacities {
		caps[cat] = limit
	}
	return &Facility{
		name:       name,
		capacities: caps,
		stored:     make(map[model.Category][]string),
		members:    make(map[string]model.Category),
	}
}

// NewShowroom creates the sale-floor facility. It carries no built-in
// limits: the caller decides the capacities.
func NewShowroom(name string, capacities map[model.Category]int) *Facility {
	return New(name, capacities)
}

// NewGarage creates the repair facility with its default per-category
// service-bay limits. Explicit capacities override the defaults.
func NewGarage(name string, capacities map[model.Category]int) *Facility {
	if capacities == nil {
		capacities = garageDefaultCapacities
	}
	return New(name, capacities)
}

func (f *Facility) Name() string { return f.name }

// Add stores the vehicle's identity under its category and marks the vehicle
// unavailable (in-facility, not generally for sale). The capacity and
// uniqueness checks and the append are one atomic unit.
func (f *Facility) Add(v *model.Vehicle) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	capacity, ok := f.capacities[v.Category]
	if !ok {
		return fmt.Errorf("%w: %s does not store %s", model.ErrUnsupportedCategory, f.name, v.Category)
	}
	if _, ok := f.members[v.ID]; ok {
		return fmt.Errorf("%w: vehicle %s already in %s", model.ErrDuplicate, v.ID, f.name)
	}
	if len(f.stored[v.Category]) >= capacity {
		return fmt.Errorf("%w: %s is full for %s", model.ErrFacilityFull, f.name, v.Category)
	}

	f.stored[v.Category] = append(f.stored[v.Category], v.ID)
	f.members[v.ID] = v.Category
	v.Available = false
	return nil
}

// Remove takes the vehicle out of the facility and marks it available again.
// Stronger semantics (a sold vehicle stays unavailable) are the caller's
// responsibility: Sold is never touched here.
func (f *Facility) Remove(v *model.Vehicle) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	cat, ok := f.members[v.ID]
	if !ok || cat != v.Category {
		return fmt.Errorf("%w: vehicle %s not in %s under %s", model.ErrVehicleNotFound, v.ID, f.name, v.Category)
	}

	ids := f.stored[cat]
	for i, id := range ids {
		if id == v.ID {
			f.stored[cat] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	delete(f.members, v.ID)
	v.Available = true
	return nil
}

func (f *Facility) Occupancy(cat model.Category) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.stored[cat])
}

func (f *Facility) Capacity(cat model.Category) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.capacities[cat]
}

// Contains reports whether the vehicle identity is stored here.
func (f *Facility) Contains(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.members[id]
	return ok
}

// ListAll returns the stored vehicle identities across all categories.
func (f *Facility) ListAll() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]string, 0, len(f.members))
	for _, ids := range f.stored {
		out = append(out, ids...)
	}
	return out
}
