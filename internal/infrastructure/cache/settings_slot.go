package cache

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"delivery-quote-backend/pkg/cache"
)

// SettingsKey is the slot holding the JSON mapping of warehouse id to document.
const SettingsKey = "warehouseSettings"

// SettingsSlot implements domain.SettingsCache on top of a CacheService. When a
// snapshot path is set and the cache supports it, every Store is persisted so the
// slot survives a restart.
type SettingsSlot struct {
	cache        cache.CacheService
	snapshotPath string
	mu           sync.Mutex
}

func NewSettingsSlot(c cache.CacheService, snapshotPath string) *SettingsSlot {
	return &SettingsSlot{cache: c, snapshotPath: snapshotPath}
}

// Load returns the raw payload. A value that is not a string is treated as absent.
func (s *SettingsSlot) Load() (string, bool) {
	val, found := s.cache.Get(SettingsKey)
	if !found {
		return "", false
	}
	payload, ok := val.(string)
	return payload, ok
}

func (s *SettingsSlot) Store(payload string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache.Set(SettingsKey, payload, cache.NoExpiration)

	snap, ok := s.cache.(cache.Snapshotter)
	if !ok || s.snapshotPath == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.snapshotPath), 0o755); err != nil {
		return fmt.Errorf("failed to create cache snapshot dir: %w", err)
	}
	if err := snap.SaveFile(s.snapshotPath); err != nil {
		return fmt.Errorf("failed to write cache snapshot: %w", err)
	}
	return nil
}

// Restore loads a previous snapshot, if one exists.
func (s *SettingsSlot) Restore() error {
	snap, ok := s.cache.(cache.Snapshotter)
	if !ok || s.snapshotPath == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := snap.LoadFile(s.snapshotPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read cache snapshot: %w", err)
	}
	return nil
}
