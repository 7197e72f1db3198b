package usecase

import (
	"context"
	"errors"
	"testing"

	"delivery-quote-backend/internal/domain"
	memoryrepo "delivery-quote-backend/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func findWarehouse(t *testing.T, warehouses []domain.Warehouse, id string) domain.Warehouse {
	t.Helper()
	for _, w := range warehouses {
		if w.ID == id {
			return w
		}
	}
	t.Fatalf("warehouse %q not found", id)
	return domain.Warehouse{}
}

func TestRegistryUsecase_LoadLocal(t *testing.T) {
	tests := []struct {
		name      string
		payload   string
		present   bool
		expectFee float64
		expectAdr string
	}{
		{name: "no cache", expectFee: 80},
		{name: "malformed cache", payload: `{"seaford":`, present: true, expectFee: 80},
		{name: "wrong shape", payload: `[1,2,3]`, present: true, expectFee: 80},
		{name: "cached values", payload: `{"seaford":{"flatFee":99,"address":"1 Wharf St"}}`, present: true, expectFee: 99, expectAdr: "1 Wharf St"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := NewRegistryUsecase(new(MockWarehouseStore), &fakeCache{payload: tt.payload, present: tt.present})

			warehouses := u.LoadLocal()

			require.Len(t, warehouses, len(domain.WarehouseIDs))
			seaford := findWarehouse(t, warehouses, domain.WarehouseSeaford)
			assert.Equal(t, tt.expectFee, seaford.FlatFee)
			assert.Equal(t, tt.expectAdr, seaford.Address)
			assert.Equal(t, 10.0, seaford.FlatRateKm)

			def, _ := domain.DefaultWarehouse(domain.WarehouseAuckland)
			assert.Equal(t, def, findWarehouse(t, warehouses, domain.WarehouseAuckland))
		})
	}
}

func TestRegistryUsecase_Get(t *testing.T) {
	u := NewRegistryUsecase(new(MockWarehouseStore), &fakeCache{})

	w, err := u.Get(domain.WarehouseChristchurch)
	require.NoError(t, err)
	assert.Equal(t, 55.0, w.FlatFee)

	_, err = u.Get("wellington")
	assert.ErrorIs(t, err, domain.ErrUnknownWarehouse)
}

func TestRegistryUsecase_RefreshFromRemote(t *testing.T) {
	store := new(MockWarehouseStore)
	store.On("GetWarehouse", mock.Anything, domain.WarehouseSeaford).
		Return(domain.WarehouseDocument{FlatFee: ptr(120.0), Address: ptr("5 Dock Rd")}, true, nil)
	store.On("GetWarehouse", mock.Anything, domain.WarehouseAuckland).
		Return(domain.WarehouseDocument{}, false, nil)
	store.On("GetWarehouse", mock.Anything, domain.WarehouseChristchurch).
		Return(domain.WarehouseDocument{}, false, nil)

	// A stale cached value for auckland is superseded by the defaults when the
	// remote has no document for it.
	cache := &fakeCache{payload: `{"auckland":{"flatFee":1}}`, present: true}
	u := NewRegistryUsecase(store, cache)

	warehouses, err := u.RefreshFromRemote(context.Background())
	require.NoError(t, err)

	seaford := findWarehouse(t, warehouses, domain.WarehouseSeaford)
	assert.Equal(t, 120.0, seaford.FlatFee)
	assert.Equal(t, "5 Dock Rd", seaford.Address)
	assert.Equal(t, 3.0, seaford.PerKmRate)
	assert.Equal(t, 60.0, findWarehouse(t, warehouses, domain.WarehouseAuckland).FlatFee)

	// The refreshed set is now what LoadLocal sees.
	assert.Equal(t, warehouses, u.LoadLocal())
	store.AssertExpectations(t)
}

func TestRegistryUsecase_RefreshFromRemote_StoreUnreachable(t *testing.T) {
	store := new(MockWarehouseStore)
	store.On("GetWarehouse", mock.Anything, mock.Anything).
		Return(domain.WarehouseDocument{}, false, errors.New("connection refused"))

	payload := `{"seaford":{"flatFee":99}}`
	cache := &fakeCache{payload: payload, present: true}
	u := NewRegistryUsecase(store, cache)
	before := u.LoadLocal()

	warehouses, err := u.RefreshFromRemote(context.Background())

	assert.ErrorIs(t, err, domain.ErrRegistryRefreshFailed)
	assert.Equal(t, before, warehouses)
	assert.Equal(t, 99.0, findWarehouse(t, warehouses, domain.WarehouseSeaford).FlatFee)

	cached, _ := cache.Load()
	assert.Equal(t, payload, cached)
}

func TestRegistryUsecase_RefreshFromRemote_CacheWriteFailureIsNotFatal(t *testing.T) {
	store := new(MockWarehouseStore)
	store.On("GetWarehouse", mock.Anything, mock.Anything).Return(domain.WarehouseDocument{}, false, nil)
	u := NewRegistryUsecase(store, &fakeCache{storeErr: errors.New("disk full")})

	warehouses, err := u.RefreshFromRemote(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultWarehouses(), warehouses)
}

func TestRegistryUsecase_SaveRoundTrip(t *testing.T) {
	repo := memoryrepo.NewWarehouseRepository()
	cache := &fakeCache{}
	u := NewRegistryUsecase(repo, cache)

	saved, err := u.Save(context.Background(), []domain.WarehouseInput{
		{
			ID:         domain.WarehouseSeaford,
			Address:    ptr("12 Beach Rd, Seaford"),
			Lat:        ptr(-38.1),
			Lng:        ptr(145.2),
			FlatFee:    numeric("85.50"),
			FlatRateKm: numeric("abc"),
			PerKmRate:  numeric("3.2km"),
		},
		{
			ID:      domain.WarehouseAuckland,
			FlatFee: numeric(""),
		},
	})
	require.NoError(t, err)

	seaford := findWarehouse(t, saved, domain.WarehouseSeaford)
	assert.Equal(t, 85.5, seaford.FlatFee)
	assert.Equal(t, 0.0, seaford.FlatRateKm)
	assert.Equal(t, 3.2, seaford.PerKmRate)
	assert.Equal(t, "12 Beach Rd, Seaford", seaford.Address)
	assert.Equal(t, -38.1, seaford.Lat)

	auckland := findWarehouse(t, saved, domain.WarehouseAuckland)
	assert.Equal(t, 0.0, auckland.FlatFee)
	assert.Equal(t, 3.0, auckland.PerKmRate)

	assert.Equal(t, saved, u.LoadLocal())

	for _, id := range domain.WarehouseIDs {
		doc, found, err := repo.GetWarehouse(context.Background(), id)
		require.NoError(t, err)
		require.True(t, found, id)
		require.NotNil(t, doc.FlatFee)
	}
}

func TestRegistryUsecase_SaveFailureLeavesCacheUntouched(t *testing.T) {
	store := new(MockWarehouseStore)
	store.On("PutWarehouse", mock.Anything, domain.WarehouseSeaford, mock.Anything).Return(nil)
	store.On("PutWarehouse", mock.Anything, domain.WarehouseAuckland, mock.Anything).Return(errors.New("permission denied"))
	store.On("PutWarehouse", mock.Anything, domain.WarehouseChristchurch, mock.Anything).Return(nil)

	payload := `{"seaford":{"flatFee":70}}`
	cache := &fakeCache{payload: payload, present: true}
	u := NewRegistryUsecase(store, cache)

	_, err := u.Save(context.Background(), []domain.WarehouseInput{
		{ID: domain.WarehouseSeaford, FlatFee: numeric("90")},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRegistrySaveFailed)
	assert.Contains(t, err.Error(), "permission denied")

	cached, _ := cache.Load()
	assert.Equal(t, payload, cached)
	assert.Equal(t, 70.0, findWarehouse(t, u.LoadLocal(), domain.WarehouseSeaford).FlatFee)
	store.AssertNumberOfCalls(t, "PutWarehouse", 3)
}

func TestRegistryUsecase_SaveRejectsBadInput(t *testing.T) {
	tests := []struct {
		name   string
		input  domain.WarehouseInput
		expect error
	}{
		{name: "unknown warehouse", input: domain.WarehouseInput{ID: "perth"}, expect: domain.ErrUnknownWarehouse},
		{name: "negative fee", input: domain.WarehouseInput{ID: domain.WarehouseSeaford, FlatFee: numeric("-5")}, expect: domain.ErrInvalidPricing},
		{name: "negative rate", input: domain.WarehouseInput{ID: domain.WarehouseAuckland, PerKmRate: numeric("-0.5")}, expect: domain.ErrInvalidPricing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(MockWarehouseStore)
			u := NewRegistryUsecase(store, &fakeCache{})

			_, err := u.Save(context.Background(), []domain.WarehouseInput{tt.input})

			assert.ErrorIs(t, err, tt.expect)
			store.AssertNotCalled(t, "PutWarehouse", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}
