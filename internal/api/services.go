package api

import (
	"github.com/optionshub/mediavault-server/internal/search"
	"github.com/optionshub/mediavault-server/internal/service"
)

// Services groups the business logic services used by the API server.
// This reduces the parameter count for NewServer and improves testability.
type Services struct {
	Catalog    *service.CatalogService
	Visit      *service.VisitService
	Engagement *service.EngagementService
	Admin      *service.AdminService
	Analytics  *service.AnalyticsService
	Search     *search.SearchIndex // operator-side fuzzy search
}
