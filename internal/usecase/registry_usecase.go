package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"delivery-quote-backend/internal/domain"
	"delivery-quote-backend/pkg/logger"

	"github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"
)

// RegistryUsecase owns warehouse identity and pricing. Reads come from the local
// cache slot; the document store is authoritative but fetched best-effort.
type RegistryUsecase struct {
	store domain.WarehouseStore
	cache domain.SettingsCache
}

func NewRegistryUsecase(store domain.WarehouseStore, cache domain.SettingsCache) *RegistryUsecase {
	return &RegistryUsecase{
		store: store,
		cache: cache,
	}
}

// LoadLocal merges the cached documents over the defaults. A missing or malformed
// cache yields the defaults.
func (u *RegistryUsecase) LoadLocal() []domain.Warehouse {
	cached := u.readCache()

	out := make([]domain.Warehouse, 0, len(domain.WarehouseIDs))
	for _, def := range domain.DefaultWarehouses() {
		var doc *domain.WarehouseDocument
		if d, ok := cached[def.ID]; ok {
			doc = &d
		}
		out = append(out, domain.Merge(def, doc, nil))
	}
	return out
}

// Get returns one warehouse from the local view.
func (u *RegistryUsecase) Get(id string) (domain.Warehouse, error) {
	for _, w := range u.LoadLocal() {
		if w.ID == id {
			return w, nil
		}
	}
	return domain.Warehouse{}, fmt.Errorf("%w: %q", domain.ErrUnknownWarehouse, id)
}

// RefreshFromRemote fetches every known warehouse concurrently. On success the
// merged set replaces the cache. On failure the local view is returned unchanged
// along with an error wrapping ErrRegistryRefreshFailed.
func (u *RegistryUsecase) RefreshFromRemote(ctx context.Context) ([]domain.Warehouse, error) {
	docs := make([]*domain.WarehouseDocument, len(domain.WarehouseIDs))

	g, gctx := errgroup.WithContext(ctx)
	for i, id := range domain.WarehouseIDs {
		g.Go(func() error {
			start := time.Now()
			doc, found, err := u.store.GetWarehouse(gctx, id)
			logger.StoreCall(gctx, "get", id, time.Since(start), err)
			if err != nil {
				return fmt.Errorf("get %s: %w", id, err)
			}
			if found {
				docs[i] = &doc
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.WithContext(ctx).Warn().Err(err).Msg("Warehouse refresh failed, keeping cached values")
		return u.LoadLocal(), fmt.Errorf("%w: %w", domain.ErrRegistryRefreshFailed, err)
	}

	out := make([]domain.Warehouse, 0, len(domain.WarehouseIDs))
	for i, def := range domain.DefaultWarehouses() {
		out = append(out, domain.Merge(def, nil, docs[i]))
	}
	if err := u.writeCache(out); err != nil {
		logger.WithContext(ctx).Warn().Err(err).Msg("Failed to update warehouse cache")
	}
	return out, nil
}

// Save applies the edits to the local view and writes every known warehouse to the
// store concurrently. There is no transaction: a failure may leave some documents
// written. The cache is only overwritten when every write succeeds.
func (u *RegistryUsecase) Save(ctx context.Context, inputs []domain.WarehouseInput) ([]domain.Warehouse, error) {
	current := u.LoadLocal()
	index := make(map[string]int, len(current))
	for i, w := range current {
		index[w.ID] = i
	}

	for _, in := range inputs {
		i, ok := index[in.ID]
		if !ok {
			return nil, fmt.Errorf("%w: %q", domain.ErrUnknownWarehouse, in.ID)
		}
		w, err := in.Apply(current[i])
		if err != nil {
			return nil, err
		}
		current[i] = w
	}

	var g errgroup.Group
	errs := make([]error, len(current))
	for i, w := range current {
		g.Go(func() error {
			start := time.Now()
			err := u.store.PutWarehouse(ctx, w.ID, domain.DocumentFromWarehouse(w))
			logger.StoreCall(ctx, "put", w.ID, time.Since(start), err)
			if err != nil {
				errs[i] = fmt.Errorf("put %s: %w", w.ID, err)
			}
			return nil
		})
	}
	_ = g.Wait()

	if err := errors.Join(errs...); err != nil {
		logger.WithContext(ctx).Error().Err(err).Msg("Warehouse save failed")
		return nil, fmt.Errorf("%w: %w", domain.ErrRegistrySaveFailed, err)
	}

	if err := u.writeCache(current); err != nil {
		logger.WithContext(ctx).Warn().Err(err).Msg("Failed to update warehouse cache")
	}
	return current, nil
}

func (u *RegistryUsecase) readCache() map[string]domain.WarehouseDocument {
	payload, ok := u.cache.Load()
	if !ok || payload == "" {
		return nil
	}
	var docs map[string]domain.WarehouseDocument
	if err := json.Unmarshal([]byte(payload), &docs); err != nil {
		logger.Get().Debug().Err(err).Msg("Ignoring malformed warehouse cache")
		return nil
	}
	return docs
}

func (u *RegistryUsecase) writeCache(warehouses []domain.Warehouse) error {
	docs := make(map[string]domain.WarehouseDocument, len(warehouses))
	for _, w := range warehouses {
		docs[w.ID] = domain.DocumentFromWarehouse(w)
	}
	payload, err := json.Marshal(docs)
	if err != nil {
		return err
	}
	return u.cache.Store(string(payload))
}
