package kv

import (
	"context"

	"github.com/invoicepad/invoicepad/internal/logger"
)

// NoopStore is the degraded-mode store used after a failed availability
// probe. Reads always miss and writes are advisory no-ops; callers keep
// working against in-memory state without persistence.
type NoopStore struct {
	log *logger.Logger
}

func NewNoopStore(log *logger.Logger) *NoopStore {
	return &NoopStore{log: log}
}

func (s *NoopStore) Get(_ context.Context, key string) (string, bool, error) {
	return "", false, nil
}

func (s *NoopStore) Set(_ context.Context, key string, _ string) error {
	s.log.Debugw("dropping write, storage unavailable", "key", key)
	return nil
}

func (s *NoopStore) Delete(_ context.Context, _ string) error {
	return nil
}

func (s *NoopStore) Close() error {
	return nil
}
