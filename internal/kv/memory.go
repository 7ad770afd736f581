package kv

import (
	"context"
	"sync"

	ierr "github.com/invoicepad/invoicepad/internal/errors"
)

// MemoryStore implements Store over an in-process map. It backs tests and
// carries the same quota behavior as the durable stores, plus injectable
// read and write failures for exercising error paths.
type MemoryStore struct {
	mu         sync.RWMutex
	items      map[string]string
	quotaBytes int64
	readErr    error
	writeErr   error
}

// NewMemoryStore creates a new MemoryStore. quotaBytes caps the size of a
// single stored value; zero disables the cap.
func NewMemoryStore(quotaBytes int64) *MemoryStore {
	return &MemoryStore{
		items:      make(map[string]string),
		quotaBytes: quotaBytes,
	}
}

// FailWrites makes every subsequent Set return err. Passing nil restores
// normal behavior.
func (s *MemoryStore) FailWrites(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeErr = err
}

// FailReads makes every subsequent Get return err. Passing nil restores
// normal behavior.
func (s *MemoryStore) FailReads(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readErr = err
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.readErr != nil {
		return "", false, s.readErr
	}

	value, ok := s.items[key]
	return value, ok, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.writeErr != nil {
		return s.writeErr
	}

	if s.quotaBytes > 0 && int64(len(value)) > s.quotaBytes {
		return ierr.NewError("value exceeds storage quota").
			WithHint("storage full, delete some records").
			Mark(ierr.ErrQuotaExceeded)
	}

	s.items[key] = value
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, key)
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}

// Len returns the number of stored keys.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
