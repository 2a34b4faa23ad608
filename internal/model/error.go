package model

import "errors"

var (
	ErrValidation          = errors.New("validation error")
	ErrDuplicate           = errors.New("duplicate identity")
	ErrVehicleNotFound     = errors.New("vehicle not found")
	ErrFacilityFull        = errors.New("facility full")
	ErrUnsupportedCategory = errors.New("unsupported vehicle category")
	ErrInsufficientStock   = errors.New("insufficient spare part stock")
)
