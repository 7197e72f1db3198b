package memoryrepo

import (
	"context"
	"sync"

	"delivery-quote-backend/internal/domain"
)

// WarehouseRepository keeps documents in process memory. Used for local
// development (STORE_DRIVER=memory) and tests.
type WarehouseRepository struct {
	mu   sync.RWMutex
	docs map[string]domain.WarehouseDocument
}

func NewWarehouseRepository() *WarehouseRepository {
	return &WarehouseRepository{docs: make(map[string]domain.WarehouseDocument)}
}

func (r *WarehouseRepository) GetWarehouse(ctx context.Context, id string) (domain.WarehouseDocument, bool, error) {
	if err := ctx.Err(); err != nil {
		return domain.WarehouseDocument{}, false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, found := r.docs[id]
	return doc, found, nil
}

func (r *WarehouseRepository) PutWarehouse(ctx context.Context, id string, doc domain.WarehouseDocument) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[id] = doc
	return nil
}
