package domain

import "context"

// Coordinate is a WGS84 point.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Destination is a resolved delivery address, produced by address search.
type Destination struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
}

func (d Destination) Coordinate() Coordinate {
	return Coordinate{Lat: d.Lat, Lng: d.Lng}
}

// Quote is the price breakdown for one destination from one warehouse.
type Quote struct {
	WarehouseID string  `json:"warehouseId"`
	DistanceKm  float64 `json:"distanceKm"`
	IsFlat      bool    `json:"isFlat"`
	ExtraKm     float64 `json:"extraKm"`
	ExtraFee    float64 `json:"extraFee"`
	FlatFee     float64 `json:"flatFee"`
	FlatRateKm  float64 `json:"flatRateKm"`
	PerKmRate   float64 `json:"perKmRate"`
	Total       float64 `json:"total"`
}

// PriceDelivery applies the tiered rule: flat fee up to and including
// FlatRateKm, plus PerKmRate for every kilometre beyond it.
func PriceDelivery(w Warehouse, distanceKm float64) Quote {
	q := Quote{
		WarehouseID: w.ID,
		DistanceKm:  distanceKm,
		FlatFee:     w.FlatFee,
		FlatRateKm:  w.FlatRateKm,
		PerKmRate:   w.PerKmRate,
	}
	q.IsFlat = distanceKm <= w.FlatRateKm
	if !q.IsFlat {
		q.ExtraKm = distanceKm - w.FlatRateKm
		// Rounded before the add so the total is never a fused multiply-add.
		q.ExtraFee = float64(q.ExtraKm * w.PerKmRate)
	}
	q.Total = w.FlatFee + q.ExtraFee
	return q
}

// RouteProvider returns the driving distance in meters of the first route between
// two points. It returns ErrNoRouteFound when the provider has no usable route.
type RouteProvider interface {
	DrivingDistance(ctx context.Context, from, to Coordinate) (float64, error)
}

// AddressSearcher resolves free text to candidate destinations.
type AddressSearcher interface {
	Search(ctx context.Context, query string) ([]Destination, error)
}
