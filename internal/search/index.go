// Package search maintains a Bleve full-text index over catalog items.
// It backs the operator's fuzzy search surface; the visitor-facing
// filter pipeline does its own exact substring matching and does not
// consult this index.
package search

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/simple"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/optionshub/mediavault-server/internal/domain"
)

// mappingVersion is incremented whenever the index mapping changes,
// triggering an automatic rebuild on startup.
const mappingVersion = "1"

// SearchIndex wraps a Bleve index with catalog-specific operations.
//
// Thread safety: all public methods are safe for concurrent use. The
// mutex protects against index corruption during rebuilds.
type SearchIndex struct {
	index  bleve.Index
	path   string
	logger *slog.Logger
	mu     sync.RWMutex
}

// Options configures the search index.
type Options struct {
	DataPath string       // Directory for index storage
	Logger   *slog.Logger // Logger for operations (stderr if nil)
}

// NewSearchIndex creates or opens a search index. A corrupted index or
// one built with an outdated mapping is removed and recreated.
func NewSearchIndex(opts Options) (*SearchIndex, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}

	indexPath := filepath.Join(opts.DataPath, "items.bleve")
	versionPath := filepath.Join(opts.DataPath, "items.version")

	var index bleve.Index
	var err error
	needsRebuild := false

	indexExists := false
	if _, statErr := os.Stat(indexPath); statErr == nil {
		indexExists = true
	}

	if indexExists {
		existingVersion, readErr := os.ReadFile(versionPath)
		if readErr != nil {
			logger.Info("search index has no version file, will rebuild",
				"new_version", mappingVersion,
			)
			needsRebuild = true
		} else if string(existingVersion) != mappingVersion {
			logger.Info("search index mapping version changed, will rebuild",
				"old_version", string(existingVersion),
				"new_version", mappingVersion,
			)
			needsRebuild = true
		}
	}

	if !needsRebuild && indexExists {
		index, err = bleve.Open(indexPath)
		if err != nil {
			logger.Warn("failed to open existing index, will recreate",
				"path", indexPath,
				"error", err,
			)
			needsRebuild = true
		}
	}

	if needsRebuild {
		if removeErr := os.RemoveAll(indexPath); removeErr != nil {
			return nil, fmt.Errorf("remove old index: %w", removeErr)
		}
		index = nil
	}

	if index == nil {
		index, err = bleve.New(indexPath, buildIndexMapping())
		if err != nil {
			return nil, fmt.Errorf("create index: %w", err)
		}
		if writeErr := os.WriteFile(versionPath, []byte(mappingVersion), 0644); writeErr != nil {
			logger.Warn("failed to write search version file", "error", writeErr)
		}
		logger.Info("created new search index", "path", indexPath, "mapping_version", mappingVersion)
	} else {
		logger.Info("opened existing search index", "path", indexPath)
	}

	return &SearchIndex{
		index:  index,
		path:   indexPath,
		logger: logger,
	}, nil
}

// buildIndexMapping creates the Bleve mapping for catalog items. Titles
// and descriptions are indexed per locale; author gets the simple
// analyzer since names should not be stemmed; type is an exact keyword
// for faceting.
func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = en.AnalyzerName

	docMapping := bleve.NewDocumentMapping()

	titleField := bleve.NewTextFieldMapping()
	titleField.Analyzer = en.AnalyzerName
	titleField.Store = true
	titleField.IncludeTermVectors = true
	docMapping.AddFieldMappingsAt("title_en", titleField)

	// Russian and Spanish titles use the simple analyzer; English
	// stemming would mangle them.
	localizedTitleField := bleve.NewTextFieldMapping()
	localizedTitleField.Analyzer = simple.Name
	localizedTitleField.Store = true
	localizedTitleField.IncludeTermVectors = true
	docMapping.AddFieldMappingsAt("title_ru", localizedTitleField)
	docMapping.AddFieldMappingsAt("title_es", localizedTitleField)

	authorField := bleve.NewTextFieldMapping()
	authorField.Analyzer = simple.Name
	authorField.Store = true
	authorField.IncludeTermVectors = true
	docMapping.AddFieldMappingsAt("author", authorField)

	descField := bleve.NewTextFieldMapping()
	descField.Analyzer = en.AnalyzerName
	descField.Store = false
	docMapping.AddFieldMappingsAt("description", descField)

	typeField := bleve.NewTextFieldMapping()
	typeField.Analyzer = keyword.Name
	typeField.Store = true
	docMapping.AddFieldMappingsAt("type", typeField)

	addedField := bleve.NewNumericFieldMapping()
	addedField.Store = true
	docMapping.AddFieldMappingsAt("added_at", addedField)

	indexMapping.AddDocumentMapping("_default", docMapping)

	return indexMapping
}

// itemToDoc flattens an item into the indexed field map.
func itemToDoc(item *domain.MediaItem) map[string]any {
	return map[string]any{
		"title_en":    item.Title.EN,
		"title_ru":    item.Title.RU,
		"title_es":    item.Title.ES,
		"author":      item.Author,
		"description": item.Description.EN + " " + item.Description.RU + " " + item.Description.ES,
		"type":        item.Type,
		"added_at":    item.AddedTime().Unix(),
	}
}

// Close closes the index and releases resources.
func (s *SearchIndex) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index.Close()
}

// Index adds or updates one item in the index.
func (s *SearchIndex) Index(item *domain.MediaItem) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.Index(item.ID, itemToDoc(item))
}

// Delete removes an item from the index.
func (s *SearchIndex) Delete(itemID string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.Delete(itemID)
}

// DocumentCount returns the total number of indexed items.
func (s *SearchIndex) DocumentCount() (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.DocCount()
}

// Rebuild drops the index and reindexes the given items in one batch.
// Acquires an exclusive lock, blocking searches until done.
func (s *SearchIndex) Rebuild(items []domain.MediaItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.index.Close(); err != nil {
		return fmt.Errorf("close index: %w", err)
	}
	if err := os.RemoveAll(s.path); err != nil {
		return fmt.Errorf("remove index: %w", err)
	}

	index, err := bleve.New(s.path, buildIndexMapping())
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	s.index = index

	batch := s.index.NewBatch()
	for i := range items {
		if err := batch.Index(items[i].ID, itemToDoc(&items[i])); err != nil {
			return fmt.Errorf("batch index %s: %w", items[i].ID, err)
		}
	}
	if err := s.index.Batch(batch); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}

	s.logger.Info("rebuilt search index", "path", s.path, "items", len(items))
	return nil
}
