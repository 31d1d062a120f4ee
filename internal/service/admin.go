package service

import (
	"context"
	"log/slog"

	"github.com/optionshub/mediavault-server/internal/domain"
	apperrors "github.com/optionshub/mediavault-server/internal/errors"
	"github.com/optionshub/mediavault-server/internal/id"
	"github.com/optionshub/mediavault-server/internal/media/covers"
	"github.com/optionshub/mediavault-server/internal/normalize"
	"github.com/optionshub/mediavault-server/internal/store"
	"github.com/optionshub/mediavault-server/internal/validation"
)

// AdminService covers every operator-only mutation.
type AdminService struct {
	store     *store.Store
	covers    *covers.Hasher
	validator *validation.Validator
	logger    *slog.Logger
}

// NewAdminService creates a new admin service.
func NewAdminService(st *store.Store, hasher *covers.Hasher, logger *slog.Logger) *AdminService {
	return &AdminService{
		store:     st,
		covers:    hasher,
		validator: validation.New(),
		logger:    logger,
	}
}

// SaveItem validates and persists an item. A missing id means create;
// the generated id is returned on the saved copy. Descriptions pasted
// as HTML are normalized to Markdown, and a BlurHash placeholder is
// computed for new cover URLs on a best-effort basis.
func (s *AdminService) SaveItem(ctx context.Context, item *domain.MediaItem) (*domain.MediaItem, error) {
	if item.Title.IsEmpty() {
		return nil, apperrors.Validation("title is required in at least one language")
	}
	if item.Type == "" {
		return nil, apperrors.Validation("item type is required")
	}
	for _, l := range item.ContentLanguages {
		if !l.Valid() {
			return nil, apperrors.Validation("unsupported content language: " + string(l))
		}
	}

	saved := *item
	normalize.Description(&saved.Description)

	if saved.ID == "" {
		newID, err := id.Generate("item")
		if err != nil {
			return nil, apperrors.Internal("generate item id", err)
		}
		saved.ID = newID
	}
	if len(saved.ContentLanguages) == 0 {
		saved.ContentLanguages = []domain.Locale{domain.LocaleEN}
	}
	for i := range saved.Formats {
		if saved.Formats[i].ID == "" {
			formatID, err := id.Generate("fmt")
			if err != nil {
				return nil, apperrors.Internal("generate format id", err)
			}
			saved.Formats[i].ID = formatID
		}
	}

	s.refreshBlurhash(ctx, &saved)

	if err := s.store.UpsertItem(ctx, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

// refreshBlurhash computes a placeholder when the cover URL changed.
// Failures leave the item without a placeholder; the cover itself still
// renders from its URL.
func (s *AdminService) refreshBlurhash(ctx context.Context, item *domain.MediaItem) {
	if item.CoverURL == "" {
		item.CoverBlurhash = ""
		return
	}

	if existing, err := s.store.Library(ctx); err == nil {
		if prev := existing.Item(item.ID); prev != nil && prev.CoverURL == item.CoverURL {
			item.CoverBlurhash = prev.CoverBlurhash
			return
		}
	}

	hash, err := s.covers.HashURL(ctx, item.CoverURL)
	if err != nil {
		s.logger.Warn("Failed to compute cover blurhash", "itemId", item.ID, "error", err)
		item.CoverBlurhash = ""
		return
	}
	item.CoverBlurhash = hash
}

// DeleteItem removes an item.
func (s *AdminService) DeleteItem(ctx context.Context, itemID string) error {
	return s.store.DeleteItem(ctx, itemID)
}

// AddToWhitelist grants a username access to private items.
func (s *AdminService) AddToWhitelist(ctx context.Context, username string) error {
	return s.store.AddAllowedUser(ctx, username)
}

// RemoveFromWhitelist revokes a whitelist entry.
func (s *AdminService) RemoveFromWhitelist(ctx context.Context, username string) error {
	return s.store.RemoveAllowedUser(ctx, username)
}

// Block adds a blacklist rule.
func (s *AdminService) Block(ctx context.Context, rule domain.BlockRule) error {
	return s.store.AddBlockRule(ctx, rule)
}

// Unblock removes a blacklist rule.
func (s *AdminService) Unblock(ctx context.Context, rule domain.BlockRule) error {
	return s.store.RemoveBlockRule(ctx, rule)
}

// SetGlobalAccess toggles the switch opening private items to everyone.
func (s *AdminService) SetGlobalAccess(ctx context.Context, enabled bool) error {
	return s.store.SetGlobalAccess(ctx, enabled)
}

// BotConfigRequest contains fields for updating the bot configuration.
type BotConfigRequest struct {
	Token          string                  `json:"token" validate:"omitempty,max=200"`
	Username       string                  `json:"username" validate:"required,min=1,max=100"`
	WelcomeMessage domain.MultilingualText `json:"welcomeMessage"`
	WebAppURL      string                  `json:"webAppUrl" validate:"omitempty,url,max=500"`
}

// UpdateBotConfig validates and replaces the chat-bot configuration.
func (s *AdminService) UpdateBotConfig(ctx context.Context, req BotConfigRequest) error {
	if err := s.validator.Validate(req); err != nil {
		return err
	}
	return s.store.UpdateBotConfig(ctx, domain.BotConfig{
		Token:          req.Token,
		Username:       req.Username,
		WelcomeMessage: req.WelcomeMessage,
		WebAppURL:      req.WebAppURL,
	})
}

// SetDefaultLanguage sets the catalog default locale.
func (s *AdminService) SetDefaultLanguage(ctx context.Context, locale domain.Locale) error {
	return s.store.SetDefaultLanguage(ctx, locale)
}

// AddCustomType registers a new item type.
func (s *AdminService) AddCustomType(ctx context.Context, name string) error {
	return s.store.AddCustomType(ctx, name)
}

// Overview returns the full document for the operator surface.
func (s *AdminService) Overview(ctx context.Context) (*domain.Library, error) {
	return s.store.Library(ctx)
}

// Export serializes the library document.
func (s *AdminService) Export(ctx context.Context) ([]byte, error) {
	return s.store.Export(ctx)
}

// Import overwrites the library document after a shape check. A
// malformed payload leaves the store untouched.
func (s *AdminService) Import(ctx context.Context, data []byte) error {
	if err := s.store.Import(ctx, data); err != nil {
		return err
	}
	s.logger.Info("Library document imported")
	return nil
}

// VisitLogs returns the most recent visits, newest first, capped at
// limit (0 means all).
func (s *AdminService) VisitLogs(ctx context.Context, limit int) ([]domain.VisitLog, error) {
	lib, err := s.store.Library(ctx)
	if err != nil {
		return nil, err
	}

	logs := lib.VisitLogs
	out := make([]domain.VisitLog, 0, len(logs))
	for i := len(logs) - 1; i >= 0; i-- {
		out = append(out, logs[i])
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}
