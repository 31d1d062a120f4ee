package service

import (
	"context"
	"log/slog"

	"github.com/optionshub/mediavault-server/internal/access"
	"github.com/optionshub/mediavault-server/internal/domain"
	apperrors "github.com/optionshub/mediavault-server/internal/errors"
	"github.com/optionshub/mediavault-server/internal/store"
)

// EngagementService handles viewer-initiated mutations: favorites,
// ratings, and activity tracking.
type EngagementService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewEngagementService creates a new engagement service.
func NewEngagementService(st *store.Store, logger *slog.Logger) *EngagementService {
	return &EngagementService{store: st, logger: logger}
}

// ToggleFavorite flips the viewer's favorite for a visible item and
// returns the new state.
func (s *EngagementService) ToggleFavorite(ctx context.Context, v domain.Viewer, itemID string) (bool, error) {
	if err := s.requireVisible(ctx, v, itemID); err != nil {
		return false, err
	}
	return s.store.ToggleFavorite(ctx, v.Key(), itemID)
}

// Rate records the viewer's 1-5 rating and returns the new average.
func (s *EngagementService) Rate(ctx context.Context, v domain.Viewer, itemID string, value int) (float64, error) {
	if err := s.requireVisible(ctx, v, itemID); err != nil {
		return 0, err
	}
	return s.store.SetUserRating(ctx, v.Key(), itemID, value)
}

// Track counts one view or download against a visible item.
func (s *EngagementService) Track(ctx context.Context, v domain.Viewer, kind domain.ActivityKind, itemID string) error {
	if err := s.requireVisible(ctx, v, itemID); err != nil {
		return err
	}
	return s.store.TrackActivity(ctx, kind, itemID, v.Handle)
}

// requireVisible hides invisible items behind not-found so engagement
// endpoints cannot be used to probe private content.
func (s *EngagementService) requireVisible(ctx context.Context, v domain.Viewer, itemID string) error {
	lib, err := s.store.Library(ctx)
	if err != nil {
		return err
	}
	item := lib.Item(itemID)
	if item == nil || !access.Visible(item, v, lib.Access()) {
		return apperrors.NotFound("item not found")
	}
	return nil
}
