// Package di provides dependency injection configuration for the MediaVault server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/optionshub/mediavault-server/internal/auth"
	"github.com/optionshub/mediavault-server/internal/config"
	"github.com/optionshub/mediavault-server/internal/di/providers"
	"github.com/optionshub/mediavault-server/internal/ipinfo"
	"github.com/optionshub/mediavault-server/internal/logger"
	"github.com/optionshub/mediavault-server/internal/media/covers"
	"github.com/optionshub/mediavault-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Storage layer
	do.Provide(injector, providers.ProvideStore)

	// Search layer
	do.Provide(injector, providers.ProvideSearchIndex)

	// Auth layer
	do.Provide(injector, providers.ProvideSessionService)

	// External clients
	do.Provide(injector, providers.ProvideIPInfoClient)
	do.Provide(injector, providers.ProvideCoverHasher)

	// Business services
	do.Provide(injector, providers.ProvideCatalogService)
	do.Provide(injector, providers.ProvideVisitService)
	do.Provide(injector, providers.ProvideEngagementService)
	do.Provide(injector, providers.ProvideAdminService)
	do.Provide(injector, providers.ProvideAnalyticsService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle
// management. This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*providers.SearchIndexHandle](injector)
	_ = do.MustInvoke[*auth.SessionService](injector)
	_ = do.MustInvoke[*ipinfo.Client](injector)
	_ = do.MustInvoke[*covers.Hasher](injector)

	// Business services
	_ = do.MustInvoke[*service.CatalogService](injector)
	_ = do.MustInvoke[*service.VisitService](injector)
	_ = do.MustInvoke[*service.EngagementService](injector)
	_ = do.MustInvoke[*service.AdminService](injector)
	_ = do.MustInvoke[*service.AnalyticsService](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	// Backfill the search index when it is empty but the catalog is not.
	providers.TriggerSearchReindexIfNeeded(injector)

	return nil
}
