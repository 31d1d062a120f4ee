package providers

import (
	"github.com/samber/do/v2"

	"github.com/optionshub/mediavault-server/internal/auth"
	"github.com/optionshub/mediavault-server/internal/config"
	"github.com/optionshub/mediavault-server/internal/ipinfo"
	"github.com/optionshub/mediavault-server/internal/logger"
	"github.com/optionshub/mediavault-server/internal/media/covers"
	"github.com/optionshub/mediavault-server/internal/service"
)

// ProvideSessionService provides the operator session service. The
// session key is generated per process, so restarting the server
// invalidates every outstanding operator session.
func ProvideSessionService(i do.Injector) (*auth.SessionService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	log.Info("Operator sessions configured",
		"session_duration", cfg.Admin.SessionDuration,
		"hashed_secret", cfg.Admin.SecretHash != "",
	)

	return auth.NewSessionService(cfg.Admin.Secret, cfg.Admin.SecretHash, cfg.Admin.SessionDuration), nil
}

// ProvideIPInfoClient provides the best-effort visitor IP lookup client.
func ProvideIPInfoClient(i do.Injector) (*ipinfo.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	return ipinfo.New(cfg.IPInfo.Endpoint, cfg.IPInfo.Timeout), nil
}

// ProvideCoverHasher provides the cover BlurHash generator.
func ProvideCoverHasher(i do.Injector) (*covers.Hasher, error) {
	log := do.MustInvoke[*logger.Logger](i)
	return covers.NewHasher(log.Logger), nil
}

// ProvideCatalogService provides the visitor-facing catalog service.
func ProvideCatalogService(i do.Injector) (*service.CatalogService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCatalogService(storeHandle.Store, log.Logger), nil
}

// ProvideVisitService provides the security gate and visit log service.
func ProvideVisitService(i do.Injector) (*service.VisitService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	ipClient := do.MustInvoke[*ipinfo.Client](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewVisitService(storeHandle.Store, ipClient, log.Logger), nil
}

// ProvideEngagementService provides the favorites/ratings/tracking service.
func ProvideEngagementService(i do.Injector) (*service.EngagementService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewEngagementService(storeHandle.Store, log.Logger), nil
}

// ProvideAdminService provides the operator mutation service.
func ProvideAdminService(i do.Injector) (*service.AdminService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	hasher := do.MustInvoke[*covers.Hasher](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAdminService(storeHandle.Store, hasher, log.Logger), nil
}

// ProvideAnalyticsService provides the dashboard aggregation service.
func ProvideAnalyticsService(i do.Injector) (*service.AnalyticsService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAnalyticsService(storeHandle.Store, log.Logger), nil
}
