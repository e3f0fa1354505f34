package cliente

import (
	"context"
	"time"
)

// Cache is the read-through cache capability the client service relies on.
// Implementations must treat misses and backend failures distinctly: a miss
// is (false, nil), a backend failure is an error the caller may absorb.
type Cache interface {
	// GetJSON fetches key and unmarshals it into dest, reporting whether
	// the key was present
	GetJSON(ctx context.Context, key string, dest any) (bool, error)

	// SetJSON marshals value and stores it under key with the given TTL
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error

	// Delete removes a single key; deleting an absent key is not an error
	Delete(ctx context.Context, key string) error

	// DeleteByPattern removes every key matching the glob pattern and
	// returns how many were deleted
	DeleteByPattern(ctx context.Context, pattern string) (int64, error)
}
