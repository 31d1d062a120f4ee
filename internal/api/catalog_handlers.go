package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/optionshub/mediavault-server/internal/catalog"
	"github.com/optionshub/mediavault-server/internal/domain"
	"github.com/optionshub/mediavault-server/internal/service"
)

func (s *Server) registerCatalogRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listItems",
		Method:      http.MethodGet,
		Path:        "/api/v1/items",
		Summary:     "List catalog items",
		Description: "Returns the filtered, ordered catalog visible to the current viewer",
		Tags:        []string{"Catalog"},
	}, s.handleListItems)

	huma.Register(s.api, huma.Operation{
		OperationID: "getItem",
		Method:      http.MethodGet,
		Path:        "/api/v1/items/{id}",
		Summary:     "Get item",
		Description: "Returns a single catalog item when visible to the current viewer",
		Tags:        []string{"Catalog"},
	}, s.handleGetItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "getConfig",
		Method:      http.MethodGet,
		Path:        "/api/v1/config",
		Summary:     "Get public configuration",
		Description: "Returns the client bootstrap configuration",
		Tags:        []string{"Catalog"},
	}, s.handleGetConfig)
}

// === DTOs ===

// ListItemsInput contains parameters for listing the catalog.
type ListItemsInput struct {
	Query          string `query:"q" validate:"omitempty,max=200" doc:"Free-text search query"`
	Scope          string `query:"scope" validate:"omitempty,oneof=all title author" doc:"Search scope: all, title, or author"`
	Category       string `query:"category" validate:"omitempty,max=50" doc:"Category: all, favorites, recent, or an item type"`
	Language       string `query:"lang" validate:"omitempty,oneof=en ru es" doc:"Keep only items available in this content language"`
	Locale         string `query:"locale" validate:"omitempty,oneof=en ru es" doc:"Display locale used for search matching"`
	AcceptLanguage string `header:"Accept-Language" doc:"Fallback display locale when locale is not set"`
}

// ListItemsOutput wraps the catalog list for Huma.
type ListItemsOutput struct {
	Body struct {
		Items []service.ItemView `json:"items"`
		Total int                `json:"total" doc:"Number of items after filtering"`
	}
}

// GetItemInput identifies a single item.
type GetItemInput struct {
	ID string `path:"id" doc:"Item ID"`
}

// GetItemOutput wraps a single item for Huma.
type GetItemOutput struct {
	Body service.ItemView
}

// GetConfigOutput wraps the public configuration for Huma.
type GetConfigOutput struct {
	Body service.PublicConfig
}

// === Handlers ===

func (s *Server) handleListItems(ctx context.Context, input *ListItemsInput) (*ListItemsOutput, error) {
	locale := domain.Locale(input.Locale)
	if locale == "" {
		locale = negotiateLocale(input.AcceptLanguage)
	}

	q := catalog.Query{
		Text:            input.Query,
		Scope:           catalog.ParseScope(input.Scope),
		Category:        catalog.ParseCategory(input.Category),
		ContentLanguage: domain.Locale(input.Language),
		Locale:          locale,
	}

	items, err := s.services.Catalog.List(ctx, ViewerFrom(ctx), q)
	if err != nil {
		return nil, err
	}

	out := &ListItemsOutput{}
	out.Body.Items = items
	out.Body.Total = len(items)
	return out, nil
}

func (s *Server) handleGetItem(ctx context.Context, input *GetItemInput) (*GetItemOutput, error) {
	item, err := s.services.Catalog.Get(ctx, ViewerFrom(ctx), input.ID)
	if err != nil {
		return nil, err
	}
	return &GetItemOutput{Body: *item}, nil
}

func (s *Server) handleGetConfig(ctx context.Context, _ *struct{}) (*GetConfigOutput, error) {
	cfg, err := s.services.Catalog.Config(ctx)
	if err != nil {
		return nil, err
	}
	return &GetConfigOutput{Body: *cfg}, nil
}
