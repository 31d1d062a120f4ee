package service

import (
	"context"
	"log/slog"
	"testing"

	"github.com/optionshub/mediavault-server/internal/domain"
	apperrors "github.com/optionshub/mediavault-server/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngagementService_ToggleFavorite_SelfInverse(t *testing.T) {
	s, cleanup := setupServiceTest(t)
	defer cleanup()

	svc := NewEngagementService(s, slog.New(slog.DiscardHandler))
	viewer := testUser(42, "reader")
	ctx := context.Background()

	on, err := svc.ToggleFavorite(ctx, viewer, "1")
	require.NoError(t, err)
	assert.True(t, on)

	off, err := svc.ToggleFavorite(ctx, viewer, "1")
	require.NoError(t, err)
	assert.False(t, off)

	lib, err := s.Library(ctx)
	require.NoError(t, err)
	assert.False(t, lib.IsFavorite(viewer.Key(), "1"))
}

func TestEngagementService_Rate_InvisibleItemNotFound(t *testing.T) {
	s, cleanup := setupServiceTest(t)
	defer cleanup()

	svc := NewEngagementService(s, slog.New(slog.DiscardHandler))

	// Item 3 is private and the guest is not whitelisted.
	_, err := svc.Rate(context.Background(), domain.Guest(), "3", 5)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestEngagementService_Rate_ReturnsNewAverage(t *testing.T) {
	s, cleanup := setupServiceTest(t)
	defer cleanup()

	svc := NewEngagementService(s, slog.New(slog.DiscardHandler))
	ctx := context.Background()

	avg, err := svc.Rate(ctx, testUser(1, "a"), "1", 5)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, avg, 0.001)

	avg, err = svc.Rate(ctx, testUser(2, "b"), "1", 2)
	require.NoError(t, err)
	assert.InDelta(t, 3.5, avg, 0.001)
}

func TestEngagementService_Track_CountsView(t *testing.T) {
	s, cleanup := setupServiceTest(t)
	defer cleanup()

	svc := NewEngagementService(s, slog.New(slog.DiscardHandler))
	ctx := context.Background()

	before, err := s.Library(ctx)
	require.NoError(t, err)
	startViews := before.Item("1").Views

	require.NoError(t, svc.Track(ctx, testUser(42, "reader"), domain.ActivityView, "1"))

	after, err := s.Library(ctx)
	require.NoError(t, err)
	assert.Equal(t, startViews+1, after.Item("1").Views)

	require.Len(t, after.UserAnalytics, 1)
	assert.Equal(t, "reader", after.UserAnalytics[0].Username)
}

func TestEngagementService_Track_PrivateItemNotFound(t *testing.T) {
	s, cleanup := setupServiceTest(t)
	defer cleanup()

	svc := NewEngagementService(s, slog.New(slog.DiscardHandler))

	err := svc.Track(context.Background(), domain.Guest(), domain.ActivityDownload, "6")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
