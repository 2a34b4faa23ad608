// Package vehicle defines the persistence contract for dealership vehicles.
// Two engines implement it: the CSV-backed table in csvrepo and the postgres
// engine in pgrepo. For identical stored content the engines return
// identical result sets; result ordering is not part of the contract.
package vehicle

import (
	"context"

	"github.com/you-humble/dealership/internal/model"
)

type Repository interface {
	// Add stores a new vehicle. model.ErrDuplicate if the ID already exists.
	Add(ctx context.Context, v *model.Vehicle) error
	// Get returns the vehicle and whether it exists. Absence is not an error.
	Get(ctx context.Context, id string) (*model.Vehicle, bool, error)
	// GetRequired returns the vehicle or model.ErrVehicleNotFound.
	GetRequired(ctx context.Context, id string) (*model.Vehicle, error)
	ListAll(ctx context.Context) ([]*model.Vehicle, error)
	// Update fully replaces the stored record. model.ErrVehicleNotFound if absent.
	Update(ctx context.Context, v *model.Vehicle) error
	// Delete removes the record. model.ErrVehicleNotFound if absent.
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, criteria model.SearchCriteria) ([]*model.Vehicle, error)
}
