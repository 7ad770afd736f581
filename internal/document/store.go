// Package document owns the single JSON document the application persists.
// It translates storage-layer failures into the shared error taxonomy and
// absorbs parse failures so a corrupted blob degrades the session instead
// of crashing it; failed reads and writes propagate to the caller.
package document

import (
	"context"

	jsoniter "github.com/json-iterator/go"

	"github.com/invoicepad/invoicepad/internal/cache"
	ierr "github.com/invoicepad/invoicepad/internal/errors"
	"github.com/invoicepad/invoicepad/internal/kv"
	"github.com/invoicepad/invoicepad/internal/logger"
	"github.com/invoicepad/invoicepad/internal/types"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Store reads and writes the AppDocument under a single storage key. The
// raw payload is cached so repeated reads skip the storage round trip; the
// cache is refreshed on every save.
type Store struct {
	kv    kv.Store
	cache cache.Cache
	log   *logger.Logger
}

// NewStore creates a document store over the given key-value store
func NewStore(store kv.Store, c cache.Cache, log *logger.Logger) *Store {
	return &Store{
		kv:    store,
		cache: c,
		log:   log,
	}
}

// Get returns the stored document. An absent blob yields an in-memory
// default that is NOT persisted; a blob that fails to parse is logged and
// left untouched in storage so it stays recoverable, with defaults returned
// in its place. A failed read propagates as an error: substituting defaults
// there would let a later save overwrite a document that still exists.
func (s *Store) Get(ctx context.Context) (*AppDocument, error) {
	raw, ok := s.cachedPayload(ctx)
	if !ok {
		var err error
		raw, ok, err = s.kv.Get(ctx, types.StorageKeyDocument)
		if err != nil {
			return nil, ierr.WithError(err).
				WithHint("Unable to read stored document").
				Mark(ierr.ErrStoreUnavailable)
		}
		if !ok {
			return Default(), nil
		}
		s.cache.Set(ctx, cache.GenerateKey(cache.PrefixDocument, types.StorageKeyDocument), raw, cache.DefaultExpiration)
	}

	doc, err := decode(raw)
	if err != nil {
		s.log.Warnw("stored document failed to parse, using defaults without overwriting it", "error", err)
		return Default(), nil
	}

	doc.normalize()
	return doc, nil
}

// Save serializes and writes the whole document. Quota and write failures
// propagate to the caller unchanged; the document store never silently
// drops a requested write.
func (s *Store) Save(ctx context.Context, doc *AppDocument) error {
	payload, err := json.MarshalToString(doc)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Unable to serialize document").
			Mark(ierr.ErrSystem)
	}

	if err := s.kv.Set(ctx, types.StorageKeyDocument, payload); err != nil {
		return err
	}

	s.cache.Set(ctx, cache.GenerateKey(cache.PrefixDocument, types.StorageKeyDocument), payload, cache.DefaultExpiration)
	return nil
}

// Init performs first-load housekeeping: an absent blob gets the default
// document written; a stored blob missing its version tag is stamped with
// the current version and rewritten. A blob that fails to parse is left
// alone.
func (s *Store) Init(ctx context.Context) error {
	raw, ok, err := s.kv.Get(ctx, types.StorageKeyDocument)
	if err != nil {
		s.log.Warnw("failed to read stored document during init", "error", err)
		return nil
	}

	if !ok {
		return s.Save(ctx, Default())
	}

	doc, err := decode(raw)
	if err != nil {
		s.log.Warnw("stored document failed to parse during init, leaving it untouched", "error", err)
		return nil
	}

	if doc.Version == "" {
		doc.Version = types.SchemaVersion
		doc.normalize()
		return s.Save(ctx, doc)
	}

	return nil
}

func (s *Store) cachedPayload(ctx context.Context) (string, bool) {
	v, ok := s.cache.Get(ctx, cache.GenerateKey(cache.PrefixDocument, types.StorageKeyDocument))
	if !ok {
		return "", false
	}
	raw, ok := v.(string)
	return raw, ok
}

func decode(raw string) (*AppDocument, error) {
	var doc AppDocument
	if err := json.UnmarshalFromString(raw, &doc); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Stored document is not valid JSON").
			Mark(ierr.ErrStoreParse)
	}
	return &doc, nil
}

// ExpireCache drops the cached payload, forcing the next read through to
// storage.
func (s *Store) ExpireCache(ctx context.Context) {
	s.cache.Delete(ctx, cache.GenerateKey(cache.PrefixDocument, types.StorageKeyDocument))
}
