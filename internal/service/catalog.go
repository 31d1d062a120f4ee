// Package service contains the business logic between the HTTP surface
// and the store.
package service

import (
	"context"
	"log/slog"

	"github.com/optionshub/mediavault-server/internal/access"
	"github.com/optionshub/mediavault-server/internal/catalog"
	"github.com/optionshub/mediavault-server/internal/domain"
	apperrors "github.com/optionshub/mediavault-server/internal/errors"
	"github.com/optionshub/mediavault-server/internal/store"
)

// CatalogService serves the visitor-facing read side of the catalog.
type CatalogService struct {
	store  *store.Store
	engine *catalog.Engine
	logger *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(st *store.Store, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		store:  st,
		engine: catalog.NewEngine(),
		logger: logger,
	}
}

// ItemView is an item decorated with the viewer-specific fields the
// client renders: the effective average rating, the viewer's own rating,
// and favorite membership.
type ItemView struct {
	domain.MediaItem
	AverageRating float64 `json:"averageRating"`
	UserRating    int     `json:"userRating,omitempty"`
	IsFavorite    bool    `json:"isFavorite"`
}

// List returns the filtered, ordered catalog for the viewer.
func (s *CatalogService) List(ctx context.Context, v domain.Viewer, q catalog.Query) ([]ItemView, error) {
	lib, err := s.store.Library(ctx)
	if err != nil {
		return nil, err
	}

	if q.Locale == "" {
		q.Locale = lib.DefaultLanguage
	}

	key := v.Key()
	items := s.engine.Filter(lib.Items, v, lib.Access(), lib.FavoritesOf(key), q)

	views := make([]ItemView, 0, len(items))
	for i := range items {
		views = append(views, s.decorate(lib, &items[i], key))
	}
	return views, nil
}

// Get returns a single item when the viewer may see it. Invisible items
// are reported as not found rather than forbidden, so their existence
// does not leak.
func (s *CatalogService) Get(ctx context.Context, v domain.Viewer, itemID string) (*ItemView, error) {
	lib, err := s.store.Library(ctx)
	if err != nil {
		return nil, err
	}

	item := lib.Item(itemID)
	if item == nil || !access.Visible(item, v, lib.Access()) {
		return nil, apperrors.NotFound("item not found")
	}

	view := s.decorate(lib, item, v.Key())
	return &view, nil
}

func (s *CatalogService) decorate(lib *domain.Library, item *domain.MediaItem, viewerKey string) ItemView {
	return ItemView{
		MediaItem:     *item,
		AverageRating: lib.AverageRating(item.ID),
		UserRating:    lib.UserRatings[viewerKey][item.ID],
		IsFavorite:    lib.IsFavorite(viewerKey, item.ID),
	}
}

// PublicConfig is the client bootstrap configuration. The bot token
// never leaves the server.
type PublicConfig struct {
	CustomTypes     []string                `json:"customTypes"`
	DefaultLanguage domain.Locale           `json:"defaultLanguage"`
	GlobalAccess    bool                    `json:"globalAccess"`
	BotUsername     string                  `json:"botUsername"`
	WelcomeMessage  domain.MultilingualText `json:"welcomeMessage"`
}

// Config returns the public client configuration.
func (s *CatalogService) Config(ctx context.Context) (*PublicConfig, error) {
	lib, err := s.store.Library(ctx)
	if err != nil {
		return nil, err
	}
	return &PublicConfig{
		CustomTypes:     lib.CustomTypes,
		DefaultLanguage: lib.DefaultLanguage,
		GlobalAccess:    lib.GlobalAccess,
		BotUsername:     lib.BotConfig.Username,
		WelcomeMessage:  lib.BotConfig.WelcomeMessage,
	}, nil
}
