package search

import (
	"context"

	"github.com/optionshub/mediavault-server/internal/domain"
)

// StoreIndexer adapts SearchIndex to the store's SearchIndexer
// interface so the store can push changes without importing this
// package's index types directly.
type StoreIndexer struct {
	idx *SearchIndex
}

// NewStoreIndexer wraps a SearchIndex for use by the store.
func NewStoreIndexer(idx *SearchIndex) *StoreIndexer {
	return &StoreIndexer{idx: idx}
}

// IndexItem adds or updates one item.
func (a *StoreIndexer) IndexItem(_ context.Context, item *domain.MediaItem) error {
	return a.idx.Index(item)
}

// DeleteItem removes one item.
func (a *StoreIndexer) DeleteItem(_ context.Context, itemID string) error {
	return a.idx.Delete(itemID)
}

// ReindexAll rebuilds the index from scratch.
func (a *StoreIndexer) ReindexAll(_ context.Context, items []domain.MediaItem) error {
	return a.idx.Rebuild(items)
}
