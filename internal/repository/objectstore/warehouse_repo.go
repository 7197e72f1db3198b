package objectrepo

import (
	"context"
	"fmt"
	"path"

	"delivery-quote-backend/internal/domain"

	"github.com/goccy/go-json"
)

// ObjectStorage is the subset of pkg/storage.R2Storage the repository needs.
type ObjectStorage interface {
	GetObject(ctx context.Context, key string) ([]byte, bool, error)
	PutObject(ctx context.Context, key string, data []byte, contentType string) error
}

type warehouseRepository struct {
	storage ObjectStorage
	prefix  string
}

// NewWarehouseRepository stores each warehouse as {prefix}/{id}.json.
func NewWarehouseRepository(storage ObjectStorage, prefix string) domain.WarehouseStore {
	return &warehouseRepository{storage: storage, prefix: prefix}
}

func (r *warehouseRepository) key(id string) string {
	return path.Join(r.prefix, id+".json")
}

func (r *warehouseRepository) GetWarehouse(ctx context.Context, id string) (domain.WarehouseDocument, bool, error) {
	data, found, err := r.storage.GetObject(ctx, r.key(id))
	if err != nil || !found {
		return domain.WarehouseDocument{}, false, err
	}

	var doc domain.WarehouseDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return domain.WarehouseDocument{}, false, fmt.Errorf("repository: malformed warehouse %s: %w", id, err)
	}
	return doc, true, nil
}

func (r *warehouseRepository) PutWarehouse(ctx context.Context, id string, doc domain.WarehouseDocument) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return r.storage.PutObject(ctx, r.key(id), data, "application/json")
}
