package domain

import "errors"

var (
	ErrMissingDestination    = errors.New("please enter a delivery address")
	ErrNoRouteFound          = errors.New("no route found, try a different address")
	ErrQuoteFailed           = errors.New("quote failed")
	ErrRegistryRefreshFailed = errors.New("could not load from server, showing cached values")
	ErrRegistrySaveFailed    = errors.New("save failed")
	ErrPinMismatch           = errors.New("incorrect PIN")
	ErrUnknownWarehouse      = errors.New("unknown warehouse")
	ErrInvalidPricing        = errors.New("pricing values must be non-negative")
)
