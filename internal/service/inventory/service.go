// Package service moves vehicles between the showroom and the garage and
// keeps their availability in the repository consistent with where they sit.
package service

import (
	"context"
	"fmt"

	"github.com/you-humble/dealership/internal/facility"
	"github.com/you-humble/dealership/internal/logger"
	"github.com/you-humble/dealership/internal/model"
	"github.com/you-humble/dealership/internal/repository/vehicle"
)

type service struct {
	repo     vehicle.Repository
	showroom *facility.Facility
	garage   *facility.Facility
}

func NewInventoryService(repo vehicle.Repository, showroom, garage *facility.Facility) *service {
	return &service{repo: repo, showroom: showroom, garage: garage}
}

// MoveToShowroom places a stored vehicle on the showroom floor. A vehicle in
// the showroom is available for sale, so availability is flipped back on
// after the slot is taken.
func (s *service) MoveToShowroom(ctx context.Context, id string) error {
	const op = "inventory.service.MoveToShowroom"
	log := logger.With(logger.String("vehicle_id", id))

	v, err := s.repo.GetRequired(ctx, id)
	if err != nil {
		log.Error(ctx, "get vehicle", logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.showroom.Add(v); err != nil {
		log.Error(ctx, "add to showroom", logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	v.Available = true
	if err := s.repo.Update(ctx, v); err != nil {
		log.Error(ctx, "update vehicle", logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info(ctx, "vehicle moved to showroom", logger.String("category", v.Category.String()))
	return nil
}

// MoveToGarage parks a stored vehicle in the garage. Garaged vehicles are not
// available for sale.
func (s *service) MoveToGarage(ctx context.Context, id string) error {
	const op = "inventory.service.MoveToGarage"
	log := logger.With(logger.String("vehicle_id", id))

	v, err := s.repo.GetRequired(ctx, id)
	if err != nil {
		log.Error(ctx, "get vehicle", logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.garage.Add(v); err != nil {
		log.Error(ctx, "add to garage", logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.Update(ctx, v); err != nil {
		log.Error(ctx, "update vehicle", logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info(ctx, "vehicle moved to garage", logger.String("category", v.Category.String()))
	return nil
}

// ReleaseFromShowroom frees a showroom slot. The vehicle's repository record
// is left to whoever asked for the release, typically the sale flow.
func (s *service) ReleaseFromShowroom(ctx context.Context, id string) error {
	const op = "inventory.service.ReleaseFromShowroom"

	v, err := s.repo.GetRequired(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.showroom.Remove(v); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	logger.Info(ctx, "vehicle released from showroom", logger.String("vehicle_id", id))
	return nil
}

// ReleaseFromGarage takes a vehicle out of the garage and makes it available
// again in the repository.
func (s *service) ReleaseFromGarage(ctx context.Context, id string) error {
	const op = "inventory.service.ReleaseFromGarage"
	log := logger.With(logger.String("vehicle_id", id))

	v, err := s.repo.GetRequired(ctx, id)
	if err != nil {
		log.Error(ctx, "get vehicle", logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.garage.Remove(v); err != nil {
		log.Error(ctx, "remove from garage", logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.Update(ctx, v); err != nil {
		log.Error(ctx, "update vehicle", logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info(ctx, "vehicle released from garage")
	return nil
}

// AllCompanyVehicles lists every vehicle the company owns, sold or not.
func (s *service) AllCompanyVehicles(ctx context.Context) ([]*model.Vehicle, error) {
	const op = "inventory.service.AllCompanyVehicles"

	vehicles, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return vehicles, nil
}
