package cache

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/cespare/xxhash/v2"
)

// ErrCacheMiss is returned when a key is not present in the cache
var ErrCacheMiss = errors.New("cache miss")

// Client is a namespace-agnostic key/value store with per-entry TTL.
// Implementations must be safe for concurrent use on independent keys.
type Client interface {
	// Get retrieves a value, or ErrCacheMiss if the key is absent or expired
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the given TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a key; deleting an absent key is not an error
	Delete(ctx context.Context, key string) error
}

// Keys generates cache keys for one namespace. Repositories compose a Keys
// value instead of hand-rolling prefix strings per entity type.
type Keys struct {
	namespace string
}

// NewKeys creates a key generator for the given namespace
func NewKeys(namespace string) Keys {
	return Keys{namespace: namespace}
}

// Entity returns the key for a single entity, e.g. "session:42"
func (k Keys) Entity(id string) string {
	return fmt.Sprintf("%s:%s", k.namespace, id)
}

// Search returns a deterministic key for a filter set. Pairs are hashed in
// sorted order so logically equal filter sets always map to the same key.
func (k Keys) Search(filters map[string]string) string {
	names := make([]string, 0, len(filters))
	for name := range filters {
		names = append(names, name)
	}
	sort.Strings(names)

	digest := xxhash.New()
	for _, name := range names {
		_, _ = digest.WriteString(name)
		_, _ = digest.WriteString("=")
		_, _ = digest.WriteString(filters[name])
		_, _ = digest.WriteString(";")
	}

	return fmt.Sprintf("%s:search:%016x", k.namespace, digest.Sum64())
}
