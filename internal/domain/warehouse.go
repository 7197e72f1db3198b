package domain

import (
	"context"
	"fmt"
)

// Known warehouse IDs. The set is fixed; warehouses are never created or deleted.
const (
	WarehouseSeaford      = "seaford"
	WarehouseAuckland     = "auckland"
	WarehouseChristchurch = "christchurch"
)

// WarehouseIDs lists the known warehouses in display order.
var WarehouseIDs = []string{
	WarehouseSeaford,
	WarehouseAuckland,
	WarehouseChristchurch,
}

// Warehouse is a fixed-origin location with its own pricing schedule.
type Warehouse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Address    string  `json:"address"`
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
	FlatFee    float64 `json:"flatFee"`
	FlatRateKm float64 `json:"flatRateKm"`
	PerKmRate  float64 `json:"perKmRate"`
}

func (w Warehouse) Coordinate() Coordinate {
	return Coordinate{Lat: w.Lat, Lng: w.Lng}
}

var defaultWarehouses = map[string]Warehouse{
	WarehouseSeaford:      {ID: WarehouseSeaford, Name: "Seaford", Lat: -38.1077, Lng: 145.1694, FlatFee: 80, FlatRateKm: 10, PerKmRate: 3.0},
	WarehouseAuckland:     {ID: WarehouseAuckland, Name: "Auckland", Lat: -36.8485, Lng: 174.7633, FlatFee: 60, FlatRateKm: 10, PerKmRate: 3.0},
	WarehouseChristchurch: {ID: WarehouseChristchurch, Name: "Christchurch", Lat: -43.5321, Lng: 172.6362, FlatFee: 55, FlatRateKm: 10, PerKmRate: 2.8},
}

// DefaultWarehouse returns the compiled-in coordinates and pricing for id.
func DefaultWarehouse(id string) (Warehouse, bool) {
	w, ok := defaultWarehouses[id]
	return w, ok
}

// DefaultWarehouses returns the compiled-in defaults for every known id, in order.
func DefaultWarehouses() []Warehouse {
	out := make([]Warehouse, 0, len(WarehouseIDs))
	for _, id := range WarehouseIDs {
		out = append(out, defaultWarehouses[id])
	}
	return out
}

func IsKnownWarehouse(id string) bool {
	_, ok := defaultWarehouses[id]
	return ok
}

// WarehouseDocument is the stored shape of a warehouse, both remotely and in the
// local cache. Absent fields fall back to the compiled-in defaults.
type WarehouseDocument struct {
	Name       *string  `json:"name,omitempty"`
	Address    *string  `json:"address,omitempty"`
	Lat        *float64 `json:"lat,omitempty"`
	Lng        *float64 `json:"lng,omitempty"`
	FlatFee    *float64 `json:"flatFee,omitempty"`
	FlatRateKm *float64 `json:"flatRateKm,omitempty"`
	PerKmRate  *float64 `json:"perKmRate,omitempty"`
}

// DocumentFromWarehouse builds a complete document, every field set.
func DocumentFromWarehouse(w Warehouse) WarehouseDocument {
	return WarehouseDocument{
		Name:       &w.Name,
		Address:    &w.Address,
		Lat:        &w.Lat,
		Lng:        &w.Lng,
		FlatFee:    &w.FlatFee,
		FlatRateKm: &w.FlatRateKm,
		PerKmRate:  &w.PerKmRate,
	}
}

func (d WarehouseDocument) applyTo(w *Warehouse) {
	if d.Name != nil {
		w.Name = *d.Name
	}
	if d.Address != nil {
		w.Address = *d.Address
	}
	if d.Lat != nil {
		w.Lat = *d.Lat
	}
	if d.Lng != nil {
		w.Lng = *d.Lng
	}
	if d.FlatFee != nil {
		w.FlatFee = *d.FlatFee
	}
	if d.FlatRateKm != nil {
		w.FlatRateKm = *d.FlatRateKm
	}
	if d.PerKmRate != nil {
		w.PerKmRate = *d.PerKmRate
	}
}

// WarehouseInput is one warehouse as edited on the settings screen. Pricing fields
// arrive as free text and are coerced on save; nil fields keep the current value.
type WarehouseInput struct {
	ID         string        `json:"id"`
	Address    *string       `json:"address,omitempty"`
	Lat        *float64      `json:"lat,omitempty"`
	Lng        *float64      `json:"lng,omitempty"`
	FlatFee    *NumericInput `json:"flatFee,omitempty"`
	FlatRateKm *NumericInput `json:"flatRateKm,omitempty"`
	PerKmRate  *NumericInput `json:"perKmRate,omitempty"`
}

// Apply overlays the input on w, coercing the pricing fields.
func (in WarehouseInput) Apply(w Warehouse) (Warehouse, error) {
	if in.Address != nil {
		w.Address = *in.Address
	}
	if in.Lat != nil {
		w.Lat = *in.Lat
	}
	if in.Lng != nil {
		w.Lng = *in.Lng
	}
	if in.FlatFee != nil {
		w.FlatFee = in.FlatFee.Float64()
	}
	if in.FlatRateKm != nil {
		w.FlatRateKm = in.FlatRateKm.Float64()
	}
	if in.PerKmRate != nil {
		w.PerKmRate = in.PerKmRate.Float64()
	}
	if w.FlatFee < 0 || w.FlatRateKm < 0 || w.PerKmRate < 0 {
		return w, fmt.Errorf("%w: %s", ErrInvalidPricing, w.ID)
	}
	return w, nil
}

// WarehouseStore is the remote document store, keyed by warehouse id within the
// "warehouses" collection. Put replaces the document wholesale.
type WarehouseStore interface {
	GetWarehouse(ctx context.Context, id string) (doc WarehouseDocument, found bool, err error)
	PutWarehouse(ctx context.Context, id string, doc WarehouseDocument) error
}

// SettingsCache is the single local slot holding the JSON-serialized mapping from
// warehouse id to its stored document.
type SettingsCache interface {
	Load() (string, bool)
	Store(payload string) error
}
