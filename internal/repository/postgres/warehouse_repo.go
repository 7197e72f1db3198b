package pgrepo

import (
	"context"
	"errors"
	"fmt"

	"delivery-quote-backend/internal/domain"

	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type warehouseRepository struct {
	db *pgxpool.Pool
}

// NewWarehouseRepository stores each warehouse document as one JSONB row.
func NewWarehouseRepository(db *pgxpool.Pool) domain.WarehouseStore {
	return &warehouseRepository{db: db}
}

func (r *warehouseRepository) GetWarehouse(ctx context.Context, id string) (domain.WarehouseDocument, bool, error) {
	var data []byte
	err := r.db.QueryRow(ctx, `SELECT data FROM warehouses WHERE id = $1`, id).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.WarehouseDocument{}, false, nil
		}
		return domain.WarehouseDocument{}, false, fmt.Errorf("repository: failed to read warehouse %s: %w", id, err)
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

	_, err = r.db.Exec(ctx, `
		INSERT INTO warehouses (id, data, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = now()
	`, id, data)
	if err != nil {
		return fmt.Errorf("repository: failed to write warehouse %s: %w", id, err)
	}
	return nil
}
