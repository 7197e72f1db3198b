package cache

import "time"

// NoExpiration keeps an item until it is deleted or the cache is flushed.
const NoExpiration time.Duration = -1

// CacheService defines the behavior for caching mechanisms
type CacheService interface {
	// Get retrieves a value from the cache
	// Returns value, true if found
	// Returns nil, false if not found
	Get(key string) (interface{}, bool)

	// Set adds a value to the cache with a duration
	Set(key string, value interface{}, duration time.Duration)

	// Delete removes a value from the cache
	Delete(key string)

	// Flush removes all items
	Flush()
}

// Snapshotter is implemented by caches that can persist their items to disk.
type Snapshotter interface {
	SaveFile(path string) error
	LoadFile(path string) error
}
