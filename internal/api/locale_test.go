package api

import (
	"encoding/json/v2"
	"net/http"
	"testing"

	"github.com/optionshub/mediavault-server/internal/domain"
	"github.com/optionshub/mediavault-server/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNegotiateLocale(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   domain.Locale
	}{
		{"empty header", "", ""},
		{"exact russian", "ru", domain.LocaleRU},
		{"regional spanish", "es-MX,es;q=0.9", domain.LocaleES},
		{"english with fallbacks", "en-US,en;q=0.9,de;q=0.5", domain.LocaleEN},
		{"unsupported language", "zz-not-a-tag-;;;", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, negotiateLocale(tt.header))
		})
	}
}

func TestListItems_AcceptLanguageDrivesSearchLocale(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	// The Russian title of item 2 only matches when the display locale
	// resolves to ru.
	resp := ts.api.Get("/api/v1/items?q=чистая&scope=title",
		"Accept-Language: ru-RU,ru;q=0.9",
	)
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Items []service.ItemView `json:"items"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Len(t, body.Items, 1)
	assert.Equal(t, "2", body.Items[0].ID)
}
