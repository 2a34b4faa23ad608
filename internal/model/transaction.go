package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

type TransactionKind string

const (
	KindSale              TransactionKind = "SALE"
	KindRepair            TransactionKind = "REPAIR"
	KindVehiclePurchase   TransactionKind = "VEHICLE_PURCHASE"
	KindSparePartPurchase TransactionKind = "SPARE_PART_PURCHASE"
)

// Transaction is one immutable ledger entry. Kind selects which of the
// variant payloads is set.
type Transaction struct {
	ID        string
	Timestamp time.Time
	Kind      TransactionKind
	Amount    float64

	Sale            *SaleDetails
	Repair          *RepairDetails
	VehiclePurchase *VehiclePurchaseDetails
	PartPurchase    *PartPurchaseDetails
}

type SaleDetails struct {
	VehicleID    string
	VehicleDesc  string
	CustomerID   string
	CustomerName string
}

type RepairDetails struct {
	VehicleID    string
	VehicleDesc  string
	CustomerID   string
	CustomerName string
	Description  string
	// PartsUsed holds snapshots of the consumed parts, one entry per unit.
	PartsUsed []SparePart
}

type VehiclePurchaseDetails struct {
	VehicleID   string
	VehicleDesc string
	Supplier    string
}

type PartPurchaseDetails struct {
	PartID    string
	Reference string
	Name      string
	Quantity  int
	UnitPrice float64
	Supplier  string
}

func newTransaction(kind TransactionKind, amount float64) Transaction {
	return Transaction{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Kind:      kind,
		Amount:    amount,
	}
}

func NewSaleTransaction(vehicle *Vehicle, customer *Customer, price float64) Transaction {
	t := newTransaction(KindSale, price)
	t.Sale = &SaleDetails{
		VehicleID:    vehicle.ID,
		VehicleDesc:  vehicle.Description(),
		CustomerID:   customer.ID,
		CustomerName: customer.FullName(),
	}
	return t
}

func NewRepairTransaction(vehicle *Vehicle, customer *Customer, description string, total float64, partsUsed []SparePart) Transaction {
	t := newTransaction(KindRepair, total)
	t.Repair = &RepairDetails{
		VehicleID:    vehicle.ID,
		VehicleDesc:  vehicle.Description(),
		CustomerID:   customer.ID,
		CustomerName: customer.FullName(),
		Description:  description,
		PartsUsed:    partsUsed,
	}
	return t
}

func NewVehiclePurchaseTransaction(vehicle *Vehicle, price float64, supplier string) Transaction {
	t := newTransaction(KindVehiclePurchase, price)
	t.VehiclePurchase = &VehiclePurchaseDetails{
		VehicleID:   vehicle.ID,
		VehicleDesc: vehicle.Description(),
		Supplier:    supplier,
	}
	return t
}

func NewPartPurchaseTransaction(part *SparePart, unitPrice float64, quantity int, supplier string) Transaction {
	t := newTransaction(KindSparePartPurchase, unitPrice*float64(quantity))
	t.PartPurchase = &PartPurchaseDetails{
		PartID:    part.ID,
		Reference: part.Reference,
		Name:      part.Name,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Supplier:  supplier,
	}
	return t
}

// Clone deep-copies the entry so ledger snapshots stay immutable.
func (t Transaction) Clone() Transaction {
	out := t
	if t.Sale != nil {
		d := *t.Sale
		out.Sale = &d
	}
	if t.Repair != nil {
		d := *t.Repair
		d.PartsUsed = lo.Map(t.Repair.PartsUsed, func(p SparePart, _ int) SparePart { return p })
		out.Repair = &d
	}
	if t.VehiclePurchase != nil {
		d := *t.VehiclePurchase
		out.VehiclePurchase = &d
	}
	if t.PartPurchase != nil {
		d := *t.PartPurchase
		out.PartPurchase = &d
	}
	return out
}
