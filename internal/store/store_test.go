package store

import (
	"context"
	"encoding/json/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optionshub/mediavault-server/internal/domain"
	apperrors "github.com/optionshub/mediavault-server/internal/errors"
)

func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "mediavault-test-*")
	require.NoError(t, err)

	s, err := New(filepath.Join(tmpDir, "test.db"), nil)
	require.NoError(t, err)

	cleanup := func() {
		_ = s.Close()
		_ = os.RemoveAll(tmpDir)
	}

	return s, cleanup
}

func TestNew_SeedsOnFirstRun(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	lib, err := s.Library(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.SchemaVersion, lib.SchemaVersion)
	assert.Len(t, lib.Items, 7)
	assert.Contains(t, lib.AllowedUsers, "admin_username")
	assert.NotNil(t, lib.UserFavorites)
	assert.NotNil(t, lib.UserRatings)
	assert.Equal(t, domain.LocaleRU, lib.DefaultLanguage)
	assert.False(t, lib.GlobalAccess)

	for _, item := range lib.Items {
		assert.NotEmpty(t, item.AddedDate, "seed item %s missing addedDate", item.ID)
		assert.True(t, item.AllowDownload)
		assert.NotEmpty(t, item.ContentLanguages)
	}
}

func TestUpsertItem(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	item := &domain.MediaItem{
		ID:               "item-new",
		Title:            domain.MultilingualText{EN: "New Item"},
		Type:             "BOOK",
		ContentLanguages: []domain.Locale{domain.LocaleEN},
		AllowDownload:    true,
		AllowReading:     true,
	}
	require.NoError(t, s.UpsertItem(ctx, item))

	lib, err := s.Library(ctx)
	require.NoError(t, err)
	require.NotNil(t, lib.Item("item-new"))
	assert.Equal(t, "New Item", lib.Item("item-new").Title.EN)

	// Upsert with the same id replaces in place.
	item.Title.EN = "Renamed"
	require.NoError(t, s.UpsertItem(ctx, item))

	lib, err = s.Library(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", lib.Item("item-new").Title.EN)
	assert.Len(t, lib.Items, 8)
}

func TestDeleteItem(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	// Favorite and rate the item first so pruning is observable.
	_, err := s.ToggleFavorite(ctx, "42", "1")
	require.NoError(t, err)
	_, err = s.SetUserRating(ctx, "42", "1", 5)
	require.NoError(t, err)

	require.NoError(t, s.DeleteItem(ctx, "1"))

	lib, err := s.Library(ctx)
	require.NoError(t, err)
	assert.Nil(t, lib.Item("1"))
	assert.NotContains(t, lib.UserFavorites["42"], "1")
	assert.NotContains(t, lib.UserRatings["42"], "1")

	err = s.DeleteItem(ctx, "no-such-item")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestToggleFavorite_SelfInverse(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	on, err := s.ToggleFavorite(ctx, domain.GuestID, "2")
	require.NoError(t, err)
	assert.True(t, on)

	lib, err := s.Library(ctx)
	require.NoError(t, err)
	assert.True(t, lib.IsFavorite(domain.GuestID, "2"))

	off, err := s.ToggleFavorite(ctx, domain.GuestID, "2")
	require.NoError(t, err)
	assert.False(t, off)

	lib, err = s.Library(ctx)
	require.NoError(t, err)
	assert.False(t, lib.IsFavorite(domain.GuestID, "2"))

	_, err = s.ToggleFavorite(ctx, domain.GuestID, "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSetUserRating(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	// Baseline reported while no user ratings exist.
	lib, err := s.Library(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 4.8, lib.AverageRating("1"), 0.001)

	avg, err := s.SetUserRating(ctx, "alice", "1", 5)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, avg, 0.001)

	avg, err = s.SetUserRating(ctx, "bob", "1", 2)
	require.NoError(t, err)
	assert.InDelta(t, 3.5, avg, 0.001)

	// Last write wins per user, no history.
	avg, err = s.SetUserRating(ctx, "bob", "1", 4)
	require.NoError(t, err)
	assert.InDelta(t, 4.5, avg, 0.001)

	_, err = s.SetUserRating(ctx, "alice", "1", 0)
	assert.ErrorIs(t, err, &apperrors.Error{Code: apperrors.CodeValidation})
	_, err = s.SetUserRating(ctx, "alice", "1", 6)
	assert.Error(t, err)
}

func TestTrackActivity(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	lib, err := s.Library(ctx)
	require.NoError(t, err)
	startViews := lib.Item("1").Views

	require.NoError(t, s.TrackActivity(ctx, domain.ActivityView, "1", "Alice"))
	require.NoError(t, s.TrackActivity(ctx, domain.ActivityDownload, "1", "alice"))
	require.NoError(t, s.TrackActivity(ctx, domain.ActivityView, "1", ""))

	lib, err = s.Library(ctx)
	require.NoError(t, err)
	assert.Equal(t, startViews+2, lib.Item("1").Views)

	// Handle is lowercased; anonymous views are not tracked per user.
	require.Len(t, lib.UserAnalytics, 1)
	assert.Equal(t, "alice", lib.UserAnalytics[0].Username)
	assert.Equal(t, int64(1), lib.UserAnalytics[0].Views)
	assert.Equal(t, int64(1), lib.UserAnalytics[0].Downloads)

	err = s.TrackActivity(ctx, domain.ActivityView, "missing", "")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestWhitelistMutations(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	require.NoError(t, s.AddAllowedUser(ctx, "@New_Reader "))
	require.NoError(t, s.AddAllowedUser(ctx, "new_reader")) // duplicate, no-op

	lib, err := s.Library(ctx)
	require.NoError(t, err)
	count := 0
	for _, u := range lib.AllowedUsers {
		if u == "new_reader" {
			count++
		}
	}
	assert.Equal(t, 1, count)

	require.NoError(t, s.RemoveAllowedUser(ctx, "new_reader"))
	lib, err = s.Library(ctx)
	require.NoError(t, err)
	assert.NotContains(t, lib.AllowedUsers, "new_reader")

	err = s.AddAllowedUser(ctx, "@ ")
	assert.Error(t, err)
}

func TestBlockRuleMutations(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	rule := domain.BlockRule{Kind: domain.BlockIP, Value: "203.0.113.9"}
	require.NoError(t, s.AddBlockRule(ctx, rule))
	require.NoError(t, s.AddBlockRule(ctx, rule)) // duplicate collapsed

	lib, err := s.Library(ctx)
	require.NoError(t, err)
	assert.Len(t, lib.Blacklist, 1)

	require.NoError(t, s.RemoveBlockRule(ctx, rule))
	lib, err = s.Library(ctx)
	require.NoError(t, err)
	assert.Empty(t, lib.Blacklist)

	assert.Error(t, s.AddBlockRule(ctx, domain.BlockRule{Kind: domain.BlockIP}))
	assert.Error(t, s.AddBlockRule(ctx, domain.BlockRule{Kind: "subnet", Value: "10.0.0.0/8"}))
}

func TestGlobalAccessAndBotConfig(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	require.NoError(t, s.SetGlobalAccess(ctx, true))
	lib, err := s.Library(ctx)
	require.NoError(t, err)
	assert.True(t, lib.GlobalAccess)

	cfg := domain.BotConfig{Username: "NewBot", WebAppURL: "https://example.com"}
	require.NoError(t, s.UpdateBotConfig(ctx, cfg))
	lib, err = s.Library(ctx)
	require.NoError(t, err)
	assert.Equal(t, cfg, lib.BotConfig)
}

func TestExportImport_RoundTrip(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	require.NoError(t, s.SetGlobalAccess(ctx, true))

	data, err := s.Export(ctx)
	require.NoError(t, err)

	require.NoError(t, s.SetGlobalAccess(ctx, false))
	require.NoError(t, s.DeleteItem(ctx, "1"))

	require.NoError(t, s.Import(ctx, data))

	lib, err := s.Library(ctx)
	require.NoError(t, err)
	assert.True(t, lib.GlobalAccess)
	assert.NotNil(t, lib.Item("1"))
}

func TestImport_MalformedLeavesStoreUntouched(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	before, err := s.Export(ctx)
	require.NoError(t, err)

	cases := [][]byte{
		[]byte("not json at all"),
		[]byte(`{"globalAccess": true}`),
		[]byte(`{"items": "nope"}`),
		[]byte(`{"items": {}}`),
	}
	for _, payload := range cases {
		err := s.Import(ctx, payload)
		assert.ErrorIs(t, err, apperrors.ErrMalformedImport)
	}

	after, err := s.Export(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, string(before), string(after))
}

func TestImport_MigratesLegacyDocument(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	legacy := []byte(`{
		"items": [{"id": "old-1", "title": {"en": "Legacy"}, "type": "BOOK"}],
		"allowedUsers": [],
		"blacklist": ["spammer", "203.0.113.9"]
	}`)
	require.NoError(t, s.Import(ctx, legacy))

	lib, err := s.Library(ctx)
	require.NoError(t, err)

	item := lib.Item("old-1")
	require.NotNil(t, item)
	assert.Equal(t, []domain.Locale{domain.LocaleEN}, item.ContentLanguages)
	assert.True(t, item.AllowDownload)
	assert.True(t, item.AllowReading)
	assert.NotEmpty(t, item.AddedDate)

	// Legacy bare-string blacklist entries are classified by shape.
	require.Len(t, lib.Blacklist, 2)
	assert.Equal(t, domain.BlockRule{Kind: domain.BlockUsername, Value: "spammer"}, lib.Blacklist[0])
	assert.Equal(t, domain.BlockRule{Kind: domain.BlockIP, Value: "203.0.113.9"}, lib.Blacklist[1])

	assert.Equal(t, domain.SchemaVersion, lib.SchemaVersion)
	assert.NotNil(t, lib.UserFavorites)
}

func TestAppendVisit(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	visit := domain.VisitLog{
		ID:        "visit-1",
		Timestamp: "2025-06-15T12:00:00Z",
		Username:  "alice",
		IP:        "10.0.0.1",
		Platform:  "telegram",
	}
	require.NoError(t, s.AppendVisit(ctx, visit))

	lib, err := s.Library(ctx)
	require.NoError(t, err)
	require.Len(t, lib.VisitLogs, 1)
	assert.Equal(t, visit, lib.VisitLogs[0])
}

func TestMigrate_Idempotent(t *testing.T) {
	lib := SeedLibrary()
	assert.False(t, Migrate(lib))
}

func TestLibrarySurvivesReopen(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "mediavault-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	dbPath := filepath.Join(tmpDir, "test.db")
	ctx := context.Background()

	s, err := New(dbPath, nil)
	require.NoError(t, err)
	require.NoError(t, s.SetGlobalAccess(ctx, true))
	require.NoError(t, s.Close())

	s, err = New(dbPath, nil)
	require.NoError(t, err)
	defer s.Close()

	lib, err := s.Library(ctx)
	require.NoError(t, err)
	assert.True(t, lib.GlobalAccess)
	assert.Len(t, lib.Items, 7)
}

func TestExportIsValidJSON(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	data, err := s.Export(context.Background())
	require.NoError(t, err)

	var lib domain.Library
	require.NoError(t, json.Unmarshal(data, &lib))
	assert.Len(t, lib.Items, 7)
}
