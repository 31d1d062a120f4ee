package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/optionshub/mediavault-server/internal/config"
	"github.com/optionshub/mediavault-server/internal/logger"
	"github.com/optionshub/mediavault-server/internal/search"
)

// SearchIndexHandle wraps the search index with shutdown capability.
type SearchIndexHandle struct {
	*search.SearchIndex
}

// Shutdown implements do.Shutdownable.
func (h *SearchIndexHandle) Shutdown() error {
	return h.Close()
}

// ProvideSearchIndex provides the Bleve search index, wired into the
// store so item mutations keep it current.
func ProvideSearchIndex(i do.Injector) (*SearchIndexHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)

	index, err := search.NewSearchIndex(search.Options{
		DataPath: cfg.SearchIndexPath(),
		Logger:   log.Logger,
	})
	if err != nil {
		return nil, err
	}

	storeHandle.SetSearchIndexer(search.NewStoreIndexer(index))

	docCount, _ := index.DocumentCount()
	log.Info("Search index initialized", "documents", docCount)

	return &SearchIndexHandle{SearchIndex: index}, nil
}

// TriggerSearchReindexIfNeeded rebuilds an empty index from the catalog.
// Should be called after all services are wired.
func TriggerSearchReindexIfNeeded(i do.Injector) {
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	docCount, _ := indexHandle.DocumentCount()
	if docCount > 0 {
		return
	}

	lib, err := storeHandle.Library(context.Background())
	if err != nil || len(lib.Items) == 0 {
		return
	}

	log.Info("Search index is empty but the catalog is not, rebuilding",
		"item_count", len(lib.Items),
	)

	go func() {
		if err := indexHandle.Rebuild(lib.Items); err != nil {
			log.Error("Search index rebuild failed", "error", err)
			return
		}
		count, _ := indexHandle.DocumentCount()
		log.Info("Search index rebuild completed", "documents", count)
	}()
}
