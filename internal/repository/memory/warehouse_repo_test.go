package memoryrepo

import (
	"context"
	"testing"

	"delivery-quote-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWarehouseRepository_PutReplacesDocument(t *testing.T) {
	repo := NewWarehouseRepository()
	ctx := context.Background()

	_, found, err := repo.GetWarehouse(ctx, domain.WarehouseSeaford)
	require.NoError(t, err)
	assert.False(t, found)

	fee := 90.0
	address := "1 Nepean Hwy"
	require.NoError(t, repo.PutWarehouse(ctx, domain.WarehouseSeaford, domain.WarehouseDocument{FlatFee: &fee, Address: &address}))

	rate := 4.0
	require.NoError(t, repo.PutWarehouse(ctx, domain.WarehouseSeaford, domain.WarehouseDocument{PerKmRate: &rate}))

	doc, found, err := repo.GetWarehouse(ctx, domain.WarehouseSeaford)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Nil(t, doc.FlatFee)
	assert.Nil(t, doc.Address)
	assert.Equal(t, 4.0, *doc.PerKmRate)
}

func TestWarehouseRepository_CancelledContext(t *testing.T) {
	repo := NewWarehouseRepository()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := repo.GetWarehouse(ctx, domain.WarehouseSeaford)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, repo.PutWarehouse(ctx, domain.WarehouseSeaford, domain.WarehouseDocument{}), context.Canceled)
}
