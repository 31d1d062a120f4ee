// Package store persists the library as a single versioned document in
// Badger. Every mutation reads the whole document, applies one change,
// and writes it back whole; last writer wins.
package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"

	"github.com/optionshub/mediavault-server/internal/domain"
	apperrors "github.com/optionshub/mediavault-server/internal/errors"
)

// keyLibrary is the storage key for the library document. The version
// suffix mirrors the document schema version.
const keyLibrary = "library:doc:v4"

// SearchIndexer is the interface for keeping the search index in sync.
// Store uses this to notify about item changes without depending on the
// search implementation.
type SearchIndexer interface {
	IndexItem(ctx context.Context, item *domain.MediaItem) error
	DeleteItem(ctx context.Context, itemID string) error
	ReindexAll(ctx context.Context, items []domain.MediaItem) error
}

// NoopSearchIndexer is a no-op implementation for testing.
type NoopSearchIndexer struct{}

// IndexItem is a no-op.
func (NoopSearchIndexer) IndexItem(context.Context, *domain.MediaItem) error { return nil }

// DeleteItem is a no-op.
func (NoopSearchIndexer) DeleteItem(context.Context, string) error { return nil }

// ReindexAll is a no-op.
func (NoopSearchIndexer) ReindexAll(context.Context, []domain.MediaItem) error { return nil }

// NewNoopSearchIndexer creates a new no-op search indexer for testing.
func NewNoopSearchIndexer() SearchIndexer {
	return NoopSearchIndexer{}
}

// Store wraps a Badger database holding the library document.
type Store struct {
	db     *badger.DB
	logger *slog.Logger

	// Search indexer for keeping search in sync with store changes.
	// Set via SetSearchIndexer after store creation to avoid circular
	// dependencies.
	indexer SearchIndexer
}

// New opens the database at path and ensures a library document exists,
// seeding and migrating as needed.
func New(path string, logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil            // Disable Badger's internal logging
	opts.SyncWrites = true       // Ensure writes are synced to disk to prevent corruption on crashes
	opts.CompactL0OnClose = true // Compact L0 tables on close for faster startup

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	s := &Store{
		db:      db,
		logger:  logger,
		indexer: NoopSearchIndexer{},
	}

	if err := s.initLibrary(); err != nil {
		_ = db.Close()
		return nil, err
	}

	if logger != nil {
		logger.Info("Badger database opened successfully", "path", path)
	}

	return s, nil
}

// SetSearchIndexer wires the search indexer. Must be called before any
// mutation that should reach the index.
func (s *Store) SetSearchIndexer(indexer SearchIndexer) {
	if indexer != nil {
		s.indexer = indexer
	}
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close badger db: %w", err)
	}
	return nil
}

// initLibrary seeds the document on first run and migrates stored
// documents from older schema versions.
func (s *Store) initLibrary() error {
	return s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyLibrary))
		if errors.Is(err, badger.ErrKeyNotFound) {
			lib := SeedLibrary()
			if s.logger != nil {
				s.logger.Info("No library document found, seeding initial data", "items", len(lib.Items))
			}
			return writeLibrary(txn, lib)
		}
		if err != nil {
			return fmt.Errorf("read library document: %w", err)
		}

		var lib domain.Library
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &lib)
		}); err != nil {
			return fmt.Errorf("unmarshal library document: %w", err)
		}

		if changed := Migrate(&lib); changed {
			if s.logger != nil {
				s.logger.Info("Migrated library document", "schemaVersion", lib.SchemaVersion)
			}
			return writeLibrary(txn, &lib)
		}
		return nil
	})
}

// Library returns the current document. Callers receive their own copy
// and may mutate it freely.
func (s *Store) Library(ctx context.Context) (*domain.Library, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var lib domain.Library
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyLibrary))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &lib)
		})
	})
	if err != nil {
		return nil, apperrors.Internal("read library document", err)
	}
	return &lib, nil
}

// update applies fn to the document inside one read-modify-write
// transaction. fn returning an error aborts the write and the error is
// returned unchanged.
func (s *Store) update(ctx context.Context, fn func(lib *domain.Library) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyLibrary))
		if err != nil {
			return apperrors.Internal("read library document", err)
		}

		var lib domain.Library
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &lib)
		}); err != nil {
			return apperrors.Internal("unmarshal library document", err)
		}

		if err := fn(&lib); err != nil {
			return err
		}

		return writeLibrary(txn, &lib)
	})
}

func writeLibrary(txn *badger.Txn, lib *domain.Library) error {
	data, err := json.Marshal(lib)
	if err != nil {
		return fmt.Errorf("marshal library document: %w", err)
	}
	return txn.Set([]byte(keyLibrary), data)
}
