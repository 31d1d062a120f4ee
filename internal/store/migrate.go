package store

import (
	"time"

	"github.com/optionshub/mediavault-server/internal/domain"
)

// Migrate backfills fields that older document versions lack and bumps
// the schema version. It reports whether anything changed, so callers
// can skip the rewrite for up-to-date documents. Safe to run repeatedly.
func Migrate(lib *domain.Library) bool {
	changed := false
	legacy := lib.SchemaVersion < domain.SchemaVersion

	if lib.UserFavorites == nil {
		lib.UserFavorites = make(map[string][]string)
		changed = true
	}
	if lib.UserRatings == nil {
		lib.UserRatings = make(map[string]map[string]int)
		changed = true
	}
	if lib.BotConfig == (domain.BotConfig{}) {
		lib.BotConfig = seedBotConfig()
		changed = true
	}
	if len(lib.CustomTypes) == 0 {
		lib.CustomTypes = seedCustomTypes()
		changed = true
	}
	if !lib.DefaultLanguage.Valid() {
		lib.DefaultLanguage = domain.LocaleRU
		changed = true
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for i := range lib.Items {
		item := &lib.Items[i]
		if len(item.ContentLanguages) == 0 {
			item.ContentLanguages = []domain.Locale{domain.LocaleEN}
			changed = true
		}
		if item.AddedDate == "" {
			item.AddedDate = now
			changed = true
		}
		// Pre-v4 documents predate the permission flags, so an absent
		// flag decoded as false really means "allowed".
		if legacy && !item.AllowDownload {
			item.AllowDownload = true
			changed = true
		}
		if legacy && !item.AllowReading {
			item.AllowReading = true
			changed = true
		}
	}

	if legacy {
		lib.SchemaVersion = domain.SchemaVersion
		changed = true
	}
	return changed
}
