package service

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/optionshub/mediavault-server/internal/catalog"
	"github.com/optionshub/mediavault-server/internal/domain"
	apperrors "github.com/optionshub/mediavault-server/internal/errors"
	"github.com/optionshub/mediavault-server/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupServiceTest opens a store over a temporary directory. The store
// seeds itself with the starter catalog on first open.
func setupServiceTest(t *testing.T) (*store.Store, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "mediavault-service-test-*")
	require.NoError(t, err)

	s, err := store.New(tmpDir, slog.New(slog.DiscardHandler))
	require.NoError(t, err)

	cleanup := func() {
		_ = s.Close()
		_ = os.RemoveAll(tmpDir)
	}

	return s, cleanup
}

func testUser(id int64, handle string) domain.Viewer {
	return domain.Viewer{Role: domain.RoleUser, ID: id, Handle: handle}
}

func TestCatalogService_List_GuestSeesPublicOnly(t *testing.T) {
	s, cleanup := setupServiceTest(t)
	defer cleanup()

	svc := NewCatalogService(s, slog.New(slog.DiscardHandler))

	views, err := svc.List(context.Background(), domain.Guest(), catalog.Query{})
	require.NoError(t, err)

	assert.Len(t, views, 5)
	for _, v := range views {
		assert.False(t, v.IsPrivate)
	}
}

func TestCatalogService_List_WhitelistedUserSeesPrivate(t *testing.T) {
	s, cleanup := setupServiceTest(t)
	defer cleanup()

	svc := NewCatalogService(s, slog.New(slog.DiscardHandler))

	// Whitelist matching is case-insensitive on the handle.
	views, err := svc.List(context.Background(), testUser(42, "Pro_Trader_77"), catalog.Query{})
	require.NoError(t, err)
	assert.Len(t, views, 7)
}

func TestCatalogService_List_OperatorSeesEverything(t *testing.T) {
	s, cleanup := setupServiceTest(t)
	defer cleanup()

	svc := NewCatalogService(s, slog.New(slog.DiscardHandler))

	views, err := svc.List(context.Background(), domain.Operator(), catalog.Query{})
	require.NoError(t, err)
	assert.Len(t, views, 7)
}

func TestCatalogService_List_DecoratesWithViewerState(t *testing.T) {
	s, cleanup := setupServiceTest(t)
	defer cleanup()

	viewer := testUser(42, "reader")
	ctx := context.Background()

	_, err := s.ToggleFavorite(ctx, viewer.Key(), "1")
	require.NoError(t, err)
	_, err = s.SetUserRating(ctx, viewer.Key(), "1", 4)
	require.NoError(t, err)

	svc := NewCatalogService(s, slog.New(slog.DiscardHandler))
	view, err := svc.Get(ctx, viewer, "1")
	require.NoError(t, err)

	assert.True(t, view.IsFavorite)
	assert.Equal(t, 4, view.UserRating)
	assert.InDelta(t, 4.0, view.AverageRating, 0.001)
}

func TestCatalogService_Get_PrivateItemHiddenAsNotFound(t *testing.T) {
	s, cleanup := setupServiceTest(t)
	defer cleanup()

	svc := NewCatalogService(s, slog.New(slog.DiscardHandler))

	// Item 3 is private; a guest must not learn that it exists.
	_, err := svc.Get(context.Background(), domain.Guest(), "3")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = svc.Get(context.Background(), domain.Guest(), "no-such-item")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCatalogService_Config_OmitsBotToken(t *testing.T) {
	s, cleanup := setupServiceTest(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, s.UpdateBotConfig(ctx, domain.BotConfig{
		Token:    "123456:secret-token",
		Username: "catalog_bot",
	}))

	svc := NewCatalogService(s, slog.New(slog.DiscardHandler))
	cfg, err := svc.Config(ctx)
	require.NoError(t, err)

	assert.Equal(t, "catalog_bot", cfg.BotUsername)
	assert.Equal(t, domain.LocaleRU, cfg.DefaultLanguage)
	assert.NotEmpty(t, cfg.CustomTypes)
}
