package model

import (
	"fmt"

	"github.com/google/uuid"
)

// Default markup applied to the purchase price when no selling price is set.
const sparePartMarkup = 1.2

// SparePart is a stocked part, keyed by its manufacturer reference.
type SparePart struct {
	ID            string
	Name          string
	Reference     string
	PurchasePrice float64
	SellingPrice  float64
	Quantity      int
}

func NewSparePart(name, reference string, purchasePrice float64, quantity int) (*SparePart, error) {
	if purchasePrice < 0 {
		return nil, fmt.Errorf("%w: purchase price must not be negative", ErrValidation)
	}
	if quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must not be negative", ErrValidation)
	}
	return &SparePart{
		ID:            uuid.NewString(),
		Name:          name,
		Reference:     reference,
		PurchasePrice: purchasePrice,
		SellingPrice:  purchasePrice * sparePartMarkup,
		Quantity:      quantity,
	}, nil
}

func (p *SparePart) SetPurchasePrice(price float64) error {
	if price < 0 {
		return fmt.Errorf("%w: purchase price must not be negative", ErrValidation)
	}
	p.PurchasePrice = price
	return nil
}

func (p *SparePart) SetSellingPrice(price float64) error {
	if price < 0 {
		return fmt.Errorf("%w: selling price must not be negative", ErrValidation)
	}
	p.SellingPrice = price
	return nil
}

func (p *SparePart) SetQuantity(quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("%w: quantity must not be negative", ErrValidation)
	}
	p.Quantity = quantity
	return nil
}

func (p *SparePart) Clone() *SparePart {
	if p == nil {
		return nil
	}
	out := *p
	return &out
}
