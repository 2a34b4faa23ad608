// Package service records the dealership's financial transactions: sales,
// repairs and purchases. It owns the append-only ledger and the in-memory
// spare-part stock.
package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/you-humble/dealership/internal/logger"
	"github.com/you-humble/dealership/internal/model"
)

type VehicleRepository interface {
	Add(ctx context.Context, v *model.Vehicle) error
	GetRequired(ctx context.Context, id string) (*model.Vehicle, error)
	Update(ctx context.Context, v *model.Vehicle) error
}

type service struct {
	repo VehicleRepository

	mu     sync.Mutex
	ledger []model.Transaction
	stock  map[string]*model.SparePart
}

func NewFinancialService(repo VehicleRepository) *service {
	return &service{
		repo:  repo,
		stock: make(map[string]*model.SparePart),
	}
}

// RecordSale sells a vehicle to a customer. The vehicle must exist in the
// repository and must not be sold already. The ledger entry is appended only
// after the repository update succeeds, so a failed sale changes nothing.
func (s *service) RecordSale(ctx context.Context, v *model.Vehicle, customer *model.Customer, price float64) (*model.Transaction, error) {
	const op = "financial.service.RecordSale"
	log := logger.With(
		logger.String("vehicle_id", v.ID),
		logger.String("customer_id", customer.ID),
		logger.Float64("price", price),
	)

	if v.Sold {
		log.Error(ctx, "vehicle already sold")
		return nil, fmt.Errorf("%s: %w: vehicle %s is already sold", op, model.ErrValidation, v.ID)
	}

	stored, err := s.repo.GetRequired(ctx, v.ID)
	if err != nil {
		log.Error(ctx, "repository get vehicle", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if stored.Sold {
		log.Error(ctx, "vehicle already sold in repository")
		return nil, fmt.Errorf("%s: %w: vehicle %s is already sold", op, model.ErrValidation, v.ID)
	}

	stored.MarkSold()
	if err := s.repo.Update(ctx, stored); err != nil {
		log.Error(ctx, "repository update vehicle", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	v.MarkSold()

	t := model.NewSaleTransaction(stored, customer, price)
	s.append(t)

	log.Info(ctx, "sale recorded", logger.String("transaction_id", t.ID))
	return ptr(t.Clone()), nil
}

// RecordRepair consumes one stock unit per requested part reference and
// appends a repair entry for labor plus parts. Availability of the whole
// reference list is checked before any stock is touched: a repair either
// consumes everything it asked for or nothing.
func (s *service) RecordRepair(ctx context.Context, v *model.Vehicle, customer *model.Customer, description string, laborCost float64, partRefs []string) (*model.Transaction, error) {
	const op = "financial.service.RecordRepair"
	log := logger.With(
		logger.String("vehicle_id", v.ID),
		logger.String("customer_id", customer.ID),
		logger.Int("part_refs", len(partRefs)),
	)

	s.mu.Lock()
	defer s.mu.Unlock()

	demand := make(map[string]int, len(partRefs))
	for _, ref := range partRefs {
		demand[ref]++
	}
	for ref, n := range demand {
		p, ok := s.stock[ref]
		if !ok || p.Quantity < n {
			log.Error(ctx, "spare part unavailable", logger.String("reference", ref))
			return nil, fmt.Errorf("%s: %w: reference %s", op, model.ErrInsufficientStock, ref)
		}
	}

	partsUsed := make([]model.SparePart, 0, len(partRefs))
	var partsCost float64
	for _, ref := range partRefs {
		p := s.stock[ref]
		p.Quantity--
		partsCost += p.SellingPrice
		partsUsed = append(partsUsed, *p.Clone())
	}

	t := model.NewRepairTransaction(v, customer, description, laborCost+partsCost, partsUsed)
	s.ledger = append(s.ledger, t)

	log.Info(ctx, "repair recorded",
		logger.String("transaction_id", t.ID),
		logger.Float64("total", t.Amount),
	)
	return ptr(t.Clone()), nil
}

// RecordVehiclePurchase adds a newly bought vehicle to the repository and
// appends the purchase. A duplicate identity surfaces as model.ErrDuplicate
// and nothing is appended.
func (s *service) RecordVehiclePurchase(ctx context.Context, v *model.Vehicle, price float64, supplier string) (*model.Transaction, error) {
	const op = "financial.service.RecordVehiclePurchase"
	log := logger.With(
		logger.String("vehicle_id", v.ID),
		logger.String("supplier", supplier),
	)

	if err := s.repo.Add(ctx, v); err != nil {
		log.Error(ctx, "repository add vehicle", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	t := model.NewVehiclePurchaseTransaction(v, price, supplier)
	s.append(t)

	log.Info(ctx, "vehicle purchase recorded", logger.String("transaction_id", t.ID))
	return ptr(t.Clone()), nil
}

// RecordSparePartPurchase restocks a part. An existing entry with the same
// reference has its quantity incremented; otherwise a new stock entry is
// created. The ledger entry amounts to unit price times quantity.
func (s *service) RecordSparePartPurchase(ctx context.Context, name, reference string, purchasePrice float64, quantity int, supplier string) (*model.Transaction, error) {
	const op = "financial.service.RecordSparePartPurchase"
	log := logger.With(
		logger.String("reference", reference),
		logger.Int("quantity", quantity),
	)

	if quantity < 0 {
		log.Error(ctx, "negative quantity")
		return nil, fmt.Errorf("%s: %w: quantity must not be negative", op, model.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	part, ok := s.stock[reference]
	if ok {
		part.Quantity += quantity
	} else {
		var err error
		part, err = model.NewSparePart(name, reference, purchasePrice, quantity)
		if err != nil {
			log.Error(ctx, "new spare part", logger.ErrorF(err))
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		s.stock[reference] = part
	}

	t := model.NewPartPurchaseTransaction(part, purchasePrice, quantity, supplier)
	s.ledger = append(s.ledger, t)

	log.Info(ctx, "spare part purchase recorded",
		logger.String("transaction_id", t.ID),
		logger.Int("stock_quantity", part.Quantity),
	)
	return ptr(t.Clone()), nil
}

// AllTransactions returns a snapshot of the ledger in append order.
func (s *service) AllTransactions() []model.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Transaction, 0, len(s.ledger))
	for _, t := range s.ledger {
		out = append(out, t.Clone())
	}
	return out
}

// SparePartsStock returns a snapshot of the stock, ordered by reference.
func (s *service) SparePartsStock() []model.SparePart {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.SparePart, 0, len(s.stock))
	for _, p := range s.stock {
		out = append(out, *p.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Reference < out[j].Reference })
	return out
}

func (s *service) append(t model.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledger = append(s.ledger, t)
}

func ptr(t model.Transaction) *model.Transaction { return &t }
