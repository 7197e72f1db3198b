package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"delivery-quote-backend/internal/domain"
	"delivery-quote-backend/pkg/logger"
)

// WarehouseLookup resolves a warehouse from the registry's current local view.
type WarehouseLookup interface {
	Get(id string) (domain.Warehouse, error)
}

type QuoteUsecase struct {
	router    domain.RouteProvider
	searcher  domain.AddressSearcher
	warehouse WarehouseLookup
}

func NewQuoteUsecase(router domain.RouteProvider, searcher domain.AddressSearcher, warehouse WarehouseLookup) *QuoteUsecase {
	return &QuoteUsecase{
		router:    router,
		searcher:  searcher,
		warehouse: warehouse,
	}
}

// ComputeQuote prices a delivery from w to dest using the driving distance of the
// first route. A nil destination fails before any network call.
func (u *QuoteUsecase) ComputeQuote(ctx context.Context, w domain.Warehouse, dest *domain.Coordinate) (*domain.Quote, error) {
	if dest == nil {
		return nil, domain.ErrMissingDestination
	}

	start := time.Now()
	meters, err := u.router.DrivingDistance(ctx, w.Coordinate(), *dest)
	logger.RouteLookup(ctx, w.ID, meters, time.Since(start), err)
	if err != nil {
		if errors.Is(err, domain.ErrNoRouteFound) {
			return nil, domain.ErrNoRouteFound
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrQuoteFailed, err)
	}
	if math.IsNaN(meters) || math.IsInf(meters, 0) || meters < 0 {
		return nil, fmt.Errorf("%w: invalid route distance %v", domain.ErrQuoteFailed, meters)
	}

	q := domain.PriceDelivery(w, meters/1000)
	return &q, nil
}

// QuoteForWarehouse resolves the warehouse by id and computes the quote.
func (u *QuoteUsecase) QuoteForWarehouse(ctx context.Context, warehouseID string, dest *domain.Coordinate) (*domain.Quote, error) {
	if dest == nil {
		return nil, domain.ErrMissingDestination
	}
	w, err := u.warehouse.Get(warehouseID)
	if err != nil {
		return nil, err
	}
	return u.ComputeQuote(ctx, w, dest)
}

// SearchAddress returns candidate destinations for free text. Blank input returns
// no candidates without calling the provider.
func (u *QuoteUsecase) SearchAddress(ctx context.Context, query string) ([]domain.Destination, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.Destination{}, nil
	}
	results, err := u.searcher.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("address search failed: %w", err)
	}
	if results == nil {
		results = []domain.Destination{}
	}
	return results, nil
}
