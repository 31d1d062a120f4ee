package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/optionshub/mediavault-server/internal/domain"
	"github.com/optionshub/mediavault-server/internal/search"
	"github.com/optionshub/mediavault-server/internal/service"
)

func (s *Server) registerAdminRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "saveItem",
		Method:      http.MethodPut,
		Path:        "/api/v1/admin/items",
		Summary:     "Save item",
		Description: "Creates or updates a catalog item. An empty id means create.",
		Tags:        []string{"Admin"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleSaveItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteItem",
		Method:      http.MethodDelete,
		Path:        "/api/v1/admin/items/{id}",
		Summary:     "Delete item",
		Description: "Removes an item along with its favorites and ratings",
		Tags:        []string{"Admin"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "getOverview",
		Method:      http.MethodGet,
		Path:        "/api/v1/admin/overview",
		Summary:     "Get library overview",
		Description: "Returns the entire library document for the operator surface",
		Tags:        []string{"Admin"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetOverview)

	huma.Register(s.api, huma.Operation{
		OperationID: "addWhitelistUser",
		Method:      http.MethodPost,
		Path:        "/api/v1/admin/whitelist",
		Summary:     "Add whitelist user",
		Description: "Grants a username access to private items",
		Tags:        []string{"Admin"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAddWhitelistUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "removeWhitelistUser",
		Method:      http.MethodDelete,
		Path:        "/api/v1/admin/whitelist/{username}",
		Summary:     "Remove whitelist user",
		Tags:        []string{"Admin"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleRemoveWhitelistUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "addBlockRule",
		Method:      http.MethodPost,
		Path:        "/api/v1/admin/blacklist",
		Summary:     "Add block rule",
		Description: "Blocks a visitor by username or IP",
		Tags:        []string{"Admin"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAddBlockRule)

	huma.Register(s.api, huma.Operation{
		OperationID: "removeBlockRule",
		Method:      http.MethodDelete,
		Path:        "/api/v1/admin/blacklist/{kind}/{value}",
		Summary:     "Remove block rule",
		Tags:        []string{"Admin"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleRemoveBlockRule)

	huma.Register(s.api, huma.Operation{
		OperationID: "setGlobalAccess",
		Method:      http.MethodPut,
		Path:        "/api/v1/admin/global-access",
		Summary:     "Set global access",
		Description: "Opens or closes private items to every visitor",
		Tags:        []string{"Admin"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleSetGlobalAccess)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateBotConfig",
		Method:      http.MethodPut,
		Path:        "/api/v1/admin/bot-config",
		Summary:     "Update bot configuration",
		Tags:        []string{"Admin"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateBotConfig)

	huma.Register(s.api, huma.Operation{
		OperationID: "setDefaultLanguage",
		Method:      http.MethodPut,
		Path:        "/api/v1/admin/default-language",
		Summary:     "Set default language",
		Tags:        []string{"Admin"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleSetDefaultLanguage)

	huma.Register(s.api, huma.Operation{
		OperationID: "addCustomType",
		Method:      http.MethodPost,
		Path:        "/api/v1/admin/custom-types",
		Summary:     "Add custom item type",
		Tags:        []string{"Admin"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAddCustomType)

	huma.Register(s.api, huma.Operation{
		OperationID: "exportLibrary",
		Method:      http.MethodGet,
		Path:        "/api/v1/admin/export",
		Summary:     "Export library",
		Description: "Returns the full library document as JSON",
		Tags:        []string{"Admin"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleExportLibrary)

	huma.Register(s.api, huma.Operation{
		OperationID: "importLibrary",
		Method:      http.MethodPost,
		Path:        "/api/v1/admin/import",
		Summary:     "Import library",
		Description: "Overwrites the library document. Malformed payloads leave the store untouched.",
		Tags:        []string{"Admin"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleImportLibrary)

	huma.Register(s.api, huma.Operation{
		OperationID: "getDashboard",
		Method:      http.MethodGet,
		Path:        "/api/v1/admin/dashboard",
		Summary:     "Get analytics dashboard",
		Tags:        []string{"Admin"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetDashboard)

	huma.Register(s.api, huma.Operation{
		OperationID: "listVisits",
		Method:      http.MethodGet,
		Path:        "/api/v1/admin/visits",
		Summary:     "List visit logs",
		Description: "Returns recorded visits, newest first",
		Tags:        []string{"Admin"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListVisits)

	huma.Register(s.api, huma.Operation{
		OperationID: "adminSearch",
		Method:      http.MethodGet,
		Path:        "/api/v1/admin/search",
		Summary:     "Search items",
		Description: "Fuzzy full-text search over the item index",
		Tags:        []string{"Admin"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAdminSearch)
}

// === DTOs ===

// SaveItemInput wraps the item payload.
type SaveItemInput struct {
	Body domain.MediaItem
}

// SaveItemOutput returns the saved item, including a generated id on create.
type SaveItemOutput struct {
	Body domain.MediaItem
}

// DeleteItemInput identifies the item to remove.
type DeleteItemInput struct {
	ID string `path:"id" doc:"Item ID"`
}

// OverviewOutput wraps the full library document.
type OverviewOutput struct {
	Body domain.Library
}

// WhitelistInput carries a username to whitelist.
type WhitelistInput struct {
	Body struct {
		Username string `json:"username" validate:"required,min=1,max=100" doc:"Platform username, @ prefix tolerated"`
	}
}

// WhitelistRemoveInput identifies the whitelist entry to remove.
type WhitelistRemoveInput struct {
	Username string `path:"username" doc:"Whitelisted username"`
}

// BlockRuleInput carries a block rule.
type BlockRuleInput struct {
	Body struct {
		Kind  string `json:"kind" validate:"required,oneof=username ip" doc:"Rule kind: username or ip"`
		Value string `json:"value" validate:"required,min=1,max=100" doc:"Exact handle or IP to block"`
	}
}

// BlockRuleRemoveInput identifies the rule to remove.
type BlockRuleRemoveInput struct {
	Kind  string `path:"kind" doc:"Rule kind: username or ip"`
	Value string `path:"value" doc:"Blocked handle or IP"`
}

// GlobalAccessInput carries the global access flag.
type GlobalAccessInput struct {
	Body struct {
		Enabled bool `json:"enabled"`
	}
}

// BotConfigInput wraps the chat-bot configuration.
type BotConfigInput struct {
	Body service.BotConfigRequest
}

// DefaultLanguageInput carries the new catalog default locale.
type DefaultLanguageInput struct {
	Body struct {
		Language string `json:"language" validate:"required,oneof=en ru es" doc:"Default locale"`
	}
}

// CustomTypeInput carries a new item type name.
type CustomTypeInput struct {
	Body struct {
		Name string `json:"name" validate:"required,min=1,max=50" doc:"Item type name"`
	}
}

// ExportOutput carries the raw library document.
type ExportOutput struct {
	ContentType string `header:"Content-Type"`
	Body        []byte
}

// ImportInput carries the raw document to import.
type ImportInput struct {
	RawBody []byte
}

// ImportOutput confirms the import.
type ImportOutput struct {
	Body struct {
		Imported bool `json:"imported"`
	}
}

// DashboardInput bounds the per-ranking size.
type DashboardInput struct {
	Top int `query:"top" validate:"omitempty,gte=1,lte=50" doc:"Entries per ranking (default 10)"`
}

// DashboardOutput wraps the analytics dashboard.
type DashboardOutput struct {
	Body service.Dashboard
}

// ListVisitsInput bounds the returned log size.
type ListVisitsInput struct {
	Limit int `query:"limit" validate:"omitempty,gte=0,lte=1000" doc:"Max entries (0 = all)"`
}

// ListVisitsOutput wraps the visit log.
type ListVisitsOutput struct {
	Body struct {
		Visits []domain.VisitLog `json:"visits"`
	}
}

// AdminSearchInput contains operator search parameters.
type AdminSearchInput struct {
	Query  string `query:"q" validate:"required,min=1,max=200" doc:"Search query"`
	Type   string `query:"type" validate:"omitempty,max=50" doc:"Exact item type filter"`
	Limit  int    `query:"limit" validate:"omitempty,gte=1,lte=100" doc:"Max results (default 20)"`
	Offset int    `query:"offset" validate:"omitempty,gte=0" doc:"Pagination offset"`
}

// AdminSearchOutput wraps index search results.
type AdminSearchOutput struct {
	Body search.Result
}

// StatusOutput is the generic success acknowledgement for admin mutations.
type StatusOutput struct {
	Body struct {
		OK bool `json:"ok"`
	}
}

func okOutput() *StatusOutput {
	out := &StatusOutput{}
	out.Body.OK = true
	return out
}

// === Handlers ===

func (s *Server) handleSaveItem(ctx context.Context, input *SaveItemInput) (*SaveItemOutput, error) {
	if err := RequireOperator(ctx); err != nil {
		return nil, err
	}

	saved, err := s.services.Admin.SaveItem(ctx, &input.Body)
	if err != nil {
		return nil, err
	}
	return &SaveItemOutput{Body: *saved}, nil
}

func (s *Server) handleDeleteItem(ctx context.Context, input *DeleteItemInput) (*StatusOutput, error) {
	if err := RequireOperator(ctx); err != nil {
		return nil, err
	}
	if err := s.services.Admin.DeleteItem(ctx, input.ID); err != nil {
		return nil, err
	}
	return okOutput(), nil
}

func (s *Server) handleGetOverview(ctx context.Context, _ *struct{}) (*OverviewOutput, error) {
	if err := RequireOperator(ctx); err != nil {
		return nil, err
	}

	lib, err := s.services.Admin.Overview(ctx)
	if err != nil {
		return nil, err
	}
	return &OverviewOutput{Body: *lib}, nil
}

func (s *Server) handleAddWhitelistUser(ctx context.Context, input *WhitelistInput) (*StatusOutput, error) {
	if err := RequireOperator(ctx); err != nil {
		return nil, err
	}
	if err := s.services.Admin.AddToWhitelist(ctx, input.Body.Username); err != nil {
		return nil, err
	}
	return okOutput(), nil
}

func (s *Server) handleRemoveWhitelistUser(ctx context.Context, input *WhitelistRemoveInput) (*StatusOutput, error) {
	if err := RequireOperator(ctx); err != nil {
		return nil, err
	}
	if err := s.services.Admin.RemoveFromWhitelist(ctx, input.Username); err != nil {
		return nil, err
	}
	return okOutput(), nil
}

func (s *Server) handleAddBlockRule(ctx context.Context, input *BlockRuleInput) (*StatusOutput, error) {
	if err := RequireOperator(ctx); err != nil {
		return nil, err
	}

	rule := domain.BlockRule{Kind: domain.BlockKind(input.Body.Kind), Value: input.Body.Value}
	if err := s.services.Admin.Block(ctx, rule); err != nil {
		return nil, err
	}
	return okOutput(), nil
}

func (s *Server) handleRemoveBlockRule(ctx context.Context, input *BlockRuleRemoveInput) (*StatusOutput, error) {
	if err := RequireOperator(ctx); err != nil {
		return nil, err
	}

	rule := domain.BlockRule{Kind: domain.BlockKind(input.Kind), Value: input.Value}
	if err := s.services.Admin.Unblock(ctx, rule); err != nil {
		return nil, err
	}
	return okOutput(), nil
}

func (s *Server) handleSetGlobalAccess(ctx context.Context, input *GlobalAccessInput) (*StatusOutput, error) {
	if err := RequireOperator(ctx); err != nil {
		return nil, err
	}
	if err := s.services.Admin.SetGlobalAccess(ctx, input.Body.Enabled); err != nil {
		return nil, err
	}
	return okOutput(), nil
}

func (s *Server) handleUpdateBotConfig(ctx context.Context, input *BotConfigInput) (*StatusOutput, error) {
	if err := RequireOperator(ctx); err != nil {
		return nil, err
	}
	if err := s.services.Admin.UpdateBotConfig(ctx, input.Body); err != nil {
		return nil, err
	}
	return okOutput(), nil
}

func (s *Server) handleSetDefaultLanguage(ctx context.Context, input *DefaultLanguageInput) (*StatusOutput, error) {
	if err := RequireOperator(ctx); err != nil {
		return nil, err
	}
	if err := s.services.Admin.SetDefaultLanguage(ctx, domain.Locale(input.Body.Language)); err != nil {
		return nil, err
	}
	return okOutput(), nil
}

func (s *Server) handleAddCustomType(ctx context.Context, input *CustomTypeInput) (*StatusOutput, error) {
	if err := RequireOperator(ctx); err != nil {
		return nil, err
	}
	if err := s.services.Admin.AddCustomType(ctx, input.Body.Name); err != nil {
		return nil, err
	}
	return okOutput(), nil
}

func (s *Server) handleExportLibrary(ctx context.Context, _ *struct{}) (*ExportOutput, error) {
	if err := RequireOperator(ctx); err != nil {
		return nil, err
	}

	data, err := s.services.Admin.Export(ctx)
	if err != nil {
		return nil, err
	}
	return &ExportOutput{ContentType: "application/json", Body: data}, nil
}

func (s *Server) handleImportLibrary(ctx context.Context, input *ImportInput) (*ImportOutput, error) {
	if err := RequireOperator(ctx); err != nil {
		return nil, err
	}
	if err := s.services.Admin.Import(ctx, input.RawBody); err != nil {
		return nil, err
	}

	out := &ImportOutput{}
	out.Body.Imported = true
	return out, nil
}

func (s *Server) handleGetDashboard(ctx context.Context, input *DashboardInput) (*DashboardOutput, error) {
	if err := RequireOperator(ctx); err != nil {
		return nil, err
	}

	top := input.Top
	if top <= 0 {
		top = 10
	}

	dash, err := s.services.Analytics.Dashboard(ctx, top)
	if err != nil {
		return nil, err
	}
	return &DashboardOutput{Body: *dash}, nil
}

func (s *Server) handleListVisits(ctx context.Context, input *ListVisitsInput) (*ListVisitsOutput, error) {
	if err := RequireOperator(ctx); err != nil {
		return nil, err
	}

	visits, err := s.services.Admin.VisitLogs(ctx, input.Limit)
	if err != nil {
		return nil, err
	}

	out := &ListVisitsOutput{}
	out.Body.Visits = visits
	return out, nil
}

func (s *Server) handleAdminSearch(ctx context.Context, input *AdminSearchInput) (*AdminSearchOutput, error) {
	if err := RequireOperator(ctx); err != nil {
		return nil, err
	}

	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}

	result, err := s.services.Search.Search(ctx, search.Params{
		Query:  input.Query,
		Type:   input.Type,
		Limit:  limit,
		Offset: input.Offset,
	})
	if err != nil {
		s.logger.Error("Admin search failed", "error", err, "query", input.Query)
		return nil, err
	}
	return &AdminSearchOutput{Body: *result}, nil
}
