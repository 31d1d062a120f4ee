package api

import (
	"context"
	"encoding/json/v2"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optionshub/mediavault-server/internal/auth"
	"github.com/optionshub/mediavault-server/internal/domain"
	"github.com/optionshub/mediavault-server/internal/ipinfo"
	"github.com/optionshub/mediavault-server/internal/media/covers"
	"github.com/optionshub/mediavault-server/internal/search"
	"github.com/optionshub/mediavault-server/internal/service"
	"github.com/optionshub/mediavault-server/internal/store"
)

const testOperatorSecret = "test-operator-secret"

// testServer wraps the API server for handler testing.
type testServer struct {
	*Server
	api     humatest.TestAPI
	cleanup func()
}

// setupTestServer builds a full server over a temporary store. The store
// seeds itself with the starter catalog, and the search index is rebuilt
// from it synchronously so search tests are deterministic.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "mediavault-api-test-*")
	require.NoError(t, err)

	logger := slog.New(slog.DiscardHandler)

	st, err := store.New(filepath.Join(tmpDir, "db"), logger)
	require.NoError(t, err)

	index, err := search.NewSearchIndex(search.Options{
		DataPath: filepath.Join(tmpDir, "search"),
		Logger:   logger,
	})
	require.NoError(t, err)
	st.SetSearchIndexer(search.NewStoreIndexer(index))

	lib, err := st.Library(context.Background())
	require.NoError(t, err)
	require.NoError(t, index.Rebuild(lib.Items))

	// The lookup endpoint only fires for non-public connection addresses.
	ipSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("198.51.100.7"))
	}))

	sessions := auth.NewSessionService(testOperatorSecret, "", time.Hour)

	services := &Services{
		Catalog:    service.NewCatalogService(st, logger),
		Visit:      service.NewVisitService(st, ipinfo.New(ipSrv.URL, 2*time.Second), logger),
		Engagement: service.NewEngagementService(st, logger),
		Admin:      service.NewAdminService(st, covers.NewHasher(logger), logger),
		Analytics:  service.NewAnalyticsService(st, logger),
		Search:     index,
	}

	s := NewServer(st, services, sessions, []string{"*"}, logger)

	cleanup := func() {
		ipSrv.Close()
		_ = index.Close()
		_ = st.Close()
		_ = os.RemoveAll(tmpDir)
	}

	return &testServer{
		Server:  s,
		api:     humatest.Wrap(t, s.api),
		cleanup: cleanup,
	}
}

// operatorAuth exchanges the test secret for an Authorization header value.
func (ts *testServer) operatorAuth(t *testing.T) string {
	t.Helper()

	resp := ts.api.Post("/api/v1/admin/session", map[string]any{
		"secret": testOperatorSecret,
	})
	require.Equal(t, http.StatusOK, resp.Code, "Session failed: %s", resp.Body.String())

	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.NotEmpty(t, body.Token)

	return "Authorization: Bearer " + body.Token
}

// === Tests ===

func TestHealthCheck(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Get("/health")
	assert.Equal(t, http.StatusOK, resp.Code)

	var body HealthResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body.Status)
}

func TestListItems_GuestSeesPublicOnly(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Get("/api/v1/items")
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Items []service.ItemView `json:"items"`
		Total int                `json:"total"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, 5, body.Total)
}

func TestListItems_WhitelistedViewerSeesPrivate(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Get("/api/v1/items",
		"X-Viewer-Id: 42",
		"X-Viewer-Username: pro_trader_77",
	)
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, 7, body.Total)
}

func TestListItems_CategoryAndSearchFilters(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Get("/api/v1/items?category=JOURNAL")
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Items []service.ItemView `json:"items"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Len(t, body.Items, 1)
	assert.Equal(t, "4", body.Items[0].ID)

	resp = ts.api.Get("/api/v1/items?q=martin&scope=author&locale=en")
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Len(t, body.Items, 1)
	assert.Equal(t, "2", body.Items[0].ID)
}

func TestGetItem_PrivateHiddenFromGuests(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Get("/api/v1/items/3")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestGetConfig_OmitsBotToken(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Get("/api/v1/config")
	require.Equal(t, http.StatusOK, resp.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Contains(t, body, "botUsername")
	assert.NotContains(t, body, "token")
}

func TestOperatorSession(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Post("/api/v1/admin/session", map[string]any{
		"secret": "wrong-secret",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = ts.api.Get("/api/v1/admin/overview")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	authHeader := ts.operatorAuth(t)
	resp = ts.api.Get("/api/v1/admin/overview", authHeader)
	assert.Equal(t, http.StatusOK, resp.Code)

	var lib domain.Library
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &lib))
	assert.Len(t, lib.Items, 7)
}

func TestAdminSaveItemAndSearch(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	authHeader := ts.operatorAuth(t)

	resp := ts.api.Put("/api/v1/admin/items", authHeader, map[string]any{
		"id": "",
		"title": map[string]any{
			"en": "Quantum Gardening",
		},
		"type":   "BOOK",
		"author": "Ada Greenhouse",
	})
	require.Equal(t, http.StatusOK, resp.Code, "Save failed: %s", resp.Body.String())

	var saved domain.MediaItem
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &saved))
	assert.NotEmpty(t, saved.ID)

	resp = ts.api.Get("/api/v1/admin/search?q=quantum", authHeader)
	require.Equal(t, http.StatusOK, resp.Code)

	var result search.Result
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &result))
	require.NotEmpty(t, result.Hits)
	assert.Equal(t, saved.ID, result.Hits[0].ID)
}

func TestAdminSearch_RequiresOperator(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Get("/api/v1/admin/search?q=clean")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestToggleFavoriteAndRating(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	viewer := []string{"X-Viewer-Id: 42", "X-Viewer-Username: reader"}

	resp := ts.api.Post("/api/v1/items/1/favorite", viewer[0], viewer[1])
	require.Equal(t, http.StatusOK, resp.Code)

	var fav struct {
		IsFavorite bool `json:"isFavorite"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &fav))
	assert.True(t, fav.IsFavorite)

	resp = ts.api.Put("/api/v1/items/1/rating", viewer[0], viewer[1], map[string]any{
		"value": 4,
	})
	require.Equal(t, http.StatusOK, resp.Code)

	var rating struct {
		AverageRating float64 `json:"averageRating"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &rating))
	assert.InDelta(t, 4.0, rating.AverageRating, 0.001)

	resp = ts.api.Put("/api/v1/items/1/rating", viewer[0], viewer[1], map[string]any{
		"value": 6,
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestTrackActivity_RateLimited(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	var lastCode int
	for range 6 {
		resp := ts.api.Post("/api/v1/items/1/track", map[string]any{
			"kind": "view",
		})
		lastCode = resp.Code
	}
	assert.Equal(t, http.StatusTooManyRequests, lastCode)
}

func TestRegisterVisit_BlockedIP(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	// httptest requests arrive from 192.0.2.1.
	require.NoError(t, ts.store.AddBlockRule(context.Background(), domain.BlockRule{
		Kind:  domain.BlockIP,
		Value: "192.0.2.1",
	}))

	resp := ts.api.Post("/api/v1/visits", map[string]any{
		"platform": "web",
	})
	assert.Equal(t, http.StatusForbidden, resp.Code)
}

func TestRegisterVisit_Admitted(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Post("/api/v1/visits", map[string]any{
		"platform": "web",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Admitted bool `json:"admitted"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.True(t, body.Admitted)

	lib, err := ts.store.Library(context.Background())
	require.NoError(t, err)
	require.Len(t, lib.VisitLogs, 1)
	assert.Equal(t, "192.0.2.1", lib.VisitLogs[0].IP)
}

func TestExportImportRoundTrip(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	authHeader := ts.operatorAuth(t)

	resp := ts.api.Get("/api/v1/admin/export", authHeader)
	require.Equal(t, http.StatusOK, resp.Code)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &doc))
	assert.Contains(t, doc, "items")

	resp = ts.api.Post("/api/v1/admin/import", authHeader, resp.Body.Bytes())
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestImport_MalformedPayloadRejected(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	authHeader := ts.operatorAuth(t)

	resp := ts.api.Post("/api/v1/admin/import", authHeader, map[string]any{
		"notItems": []any{},
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	// The document survives the failed import intact.
	lib, err := ts.store.Library(context.Background())
	require.NoError(t, err)
	assert.Len(t, lib.Items, 7)
}

func TestGetDashboard(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	authHeader := ts.operatorAuth(t)

	resp := ts.api.Get("/api/v1/admin/dashboard?top=3", authHeader)
	require.Equal(t, http.StatusOK, resp.Code)

	var dash service.Dashboard
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &dash))
	assert.Equal(t, int64(13890), dash.Totals.Views)
	assert.Len(t, dash.TopByViews, 3)
	assert.Equal(t, "7", dash.TopByViews[0].ID)
}
