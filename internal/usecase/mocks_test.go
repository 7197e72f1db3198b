package usecase

import (
	"context"
	"sync"

	"delivery-quote-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

type MockWarehouseStore struct {
	mock.Mock
}

func (m *MockWarehouseStore) GetWarehouse(ctx context.Context, id string) (domain.WarehouseDocument, bool, error) {
	args := m.Called(ctx, id)
	doc, _ := args.Get(0).(domain.WarehouseDocument)
	return doc, args.Bool(1), args.Error(2)
}

func (m *MockWarehouseStore) PutWarehouse(ctx context.Context, id string, doc domain.WarehouseDocument) error {
	args := m.Called(ctx, id, doc)
	return args.Error(0)
}

type MockRouteProvider struct {
	mock.Mock
}

func (m *MockRouteProvider) DrivingDistance(ctx context.Context, from, to domain.Coordinate) (float64, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(float64), args.Error(1)
}

type MockAddressSearcher struct {
	mock.Mock
}

func (m *MockAddressSearcher) Search(ctx context.Context, query string) ([]domain.Destination, error) {
	args := m.Called(ctx, query)
	results, _ := args.Get(0).([]domain.Destination)
	return results, args.Error(1)
}

// fakeCache is an in-memory SettingsCache.
type fakeCache struct {
	mu       sync.Mutex
	payload  string
	present  bool
	storeErr error
}

func (c *fakeCache) Load() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.payload, c.present
}

func (c *fakeCache) Store(payload string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.storeErr != nil {
		return c.storeErr
	}
	c.payload = payload
	c.present = true
	return nil
}

func ptr[T any](v T) *T {
	return &v
}

func numeric(s string) *domain.NumericInput {
	n := domain.NumericInput(s)
	return &n
}
