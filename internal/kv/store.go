// Package kv provides the string-keyed storage adapter the document store
// persists into. Implementations translate backend-specific write failures
// into the shared error taxonomy so callers see one unified quota condition
// regardless of backend.
package kv

import (
	"context"

	"github.com/invoicepad/invoicepad/internal/logger"
	"github.com/invoicepad/invoicepad/internal/types"
)

// Store is a persistent string-keyed store.
type Store interface {
	// Get returns the value for key and whether the key was present.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set writes value under key. Writes that exceed the backend's capacity
	// fail with an error marked ErrQuotaExceeded; any other failure is
	// marked ErrStoreWrite.
	Set(ctx context.Context, key string, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the store.
	Close() error
}

// Probe checks whether the store accepts writes by writing and removing a
// sentinel key. A failed probe is reported once by the caller; no retries.
func Probe(ctx context.Context, s Store) bool {
	const sentinel = "__storage_probe__"

	if err := s.Set(ctx, sentinel, types.GenerateUUID()); err != nil {
		return false
	}
	if err := s.Delete(ctx, sentinel); err != nil {
		return false
	}
	return true
}

// EnsureAvailable probes the store and degrades to a no-op store when the
// probe fails, logging the condition once. Callers keep operating against
// the returned store in non-persistent mode.
func EnsureAvailable(ctx context.Context, s Store, log *logger.Logger) Store {
	if Probe(ctx, s) {
		return s
	}
	log.Warnw("storage unavailable, continuing without persistence")
	return NewNoopStore(log)
}
