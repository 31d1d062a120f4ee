package store

import (
	"context"
	"encoding/json/v2"
	"strings"
	"time"

	"github.com/optionshub/mediavault-server/internal/domain"
	apperrors "github.com/optionshub/mediavault-server/internal/errors"
)

// UpsertItem inserts the item or replaces the stored item with the same
// id, then refreshes the search index.
func (s *Store) UpsertItem(ctx context.Context, item *domain.MediaItem) error {
	err := s.update(ctx, func(lib *domain.Library) error {
		for i := range lib.Items {
			if lib.Items[i].ID == item.ID {
				lib.Items[i] = *item
				return nil
			}
		}
		lib.Items = append(lib.Items, *item)
		return nil
	})
	if err != nil {
		return err
	}

	if err := s.indexer.IndexItem(ctx, item); err != nil && s.logger != nil {
		s.logger.Warn("Failed to index item", "itemId", item.ID, "error", err)
	}
	return nil
}

// DeleteItem removes the item and its search index entry. Favorites and
// ratings referencing the id are pruned in the same write.
func (s *Store) DeleteItem(ctx context.Context, id string) error {
	err := s.update(ctx, func(lib *domain.Library) error {
		idx := -1
		for i := range lib.Items {
			if lib.Items[i].ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return apperrors.NotFound("item not found")
		}
		lib.Items = append(lib.Items[:idx], lib.Items[idx+1:]...)

		for key, favs := range lib.UserFavorites {
			lib.UserFavorites[key] = removeString(favs, id)
		}
		for _, ratings := range lib.UserRatings {
			delete(ratings, id)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := s.indexer.DeleteItem(ctx, id); err != nil && s.logger != nil {
		s.logger.Warn("Failed to deindex item", "itemId", id, "error", err)
	}
	return nil
}

// ToggleFavorite flips itemID's membership in the viewer's favorite set
// and returns the new membership state. Applying it twice restores the
// original state.
func (s *Store) ToggleFavorite(ctx context.Context, viewerKey, itemID string) (bool, error) {
	var favorited bool
	err := s.update(ctx, func(lib *domain.Library) error {
		if lib.Item(itemID) == nil {
			return apperrors.NotFound("item not found")
		}
		if lib.UserFavorites == nil {
			lib.UserFavorites = make(map[string][]string)
		}
		favs := lib.UserFavorites[viewerKey]
		if containsString(favs, itemID) {
			lib.UserFavorites[viewerKey] = removeString(favs, itemID)
			favorited = false
		} else {
			lib.UserFavorites[viewerKey] = append(favs, itemID)
			favorited = true
		}
		return nil
	})
	return favorited, err
}

// SetUserRating records the viewer's rating for the item, overwriting
// any prior value, and returns the recomputed average.
func (s *Store) SetUserRating(ctx context.Context, viewerKey, itemID string, value int) (float64, error) {
	if value < 1 || value > 5 {
		return 0, apperrors.Validation("rating must be between 1 and 5")
	}

	var average float64
	err := s.update(ctx, func(lib *domain.Library) error {
		if lib.Item(itemID) == nil {
			return apperrors.NotFound("item not found")
		}
		if lib.UserRatings == nil {
			lib.UserRatings = make(map[string]map[string]int)
		}
		if lib.UserRatings[viewerKey] == nil {
			lib.UserRatings[viewerKey] = make(map[string]int)
		}
		lib.UserRatings[viewerKey][itemID] = value
		average = lib.AverageRating(itemID)
		return nil
	})
	return average, err
}

// TrackActivity increments the item's counter, the daily stat point, and
// the per-user record when a platform handle is known.
func (s *Store) TrackActivity(ctx context.Context, kind domain.ActivityKind, itemID, username string) error {
	if !kind.Valid() {
		return apperrors.Validation("unknown activity kind")
	}

	return s.update(ctx, func(lib *domain.Library) error {
		item := lib.Item(itemID)
		if item == nil {
			return apperrors.NotFound("item not found")
		}

		if kind == domain.ActivityView {
			item.Views++
		} else {
			item.Downloads++
		}

		today := time.Now().UTC().Format("2006-01-02")
		found := false
		for i := range lib.Stats {
			if lib.Stats[i].Date == today {
				if kind == domain.ActivityView {
					lib.Stats[i].Views++
				} else {
					lib.Stats[i].Downloads++
				}
				found = true
				break
			}
		}
		if !found {
			point := domain.StatPoint{Date: today}
			if kind == domain.ActivityView {
				point.Views = 1
			} else {
				point.Downloads = 1
			}
			lib.Stats = append(lib.Stats, point)
		}

		if username = strings.ToLower(strings.TrimSpace(username)); username != "" && username != domain.GuestID {
			var record *domain.UserAnalytics
			for i := range lib.UserAnalytics {
				if lib.UserAnalytics[i].Username == username {
					record = &lib.UserAnalytics[i]
					break
				}
			}
			if record == nil {
				lib.UserAnalytics = append(lib.UserAnalytics, domain.UserAnalytics{Username: username})
				record = &lib.UserAnalytics[len(lib.UserAnalytics)-1]
			}
			if kind == domain.ActivityView {
				record.Views++
			} else {
				record.Downloads++
			}
			record.LastActive = today
		}
		return nil
	})
}

// AppendVisit records one successful visit.
func (s *Store) AppendVisit(ctx context.Context, visit domain.VisitLog) error {
	return s.update(ctx, func(lib *domain.Library) error {
		lib.VisitLogs = append(lib.VisitLogs, visit)
		return nil
	})
}

// AddAllowedUser adds a cleaned username (leading @ stripped, trimmed,
// lowercased) to the whitelist. Adding an existing entry is a no-op.
func (s *Store) AddAllowedUser(ctx context.Context, username string) error {
	clean := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(username, "@")))
	if clean == "" {
		return apperrors.Validation("username cannot be empty")
	}
	return s.update(ctx, func(lib *domain.Library) error {
		if !containsString(lib.AllowedUsers, clean) {
			lib.AllowedUsers = append(lib.AllowedUsers, clean)
		}
		return nil
	})
}

// RemoveAllowedUser removes an exact whitelist entry.
func (s *Store) RemoveAllowedUser(ctx context.Context, username string) error {
	return s.update(ctx, func(lib *domain.Library) error {
		lib.AllowedUsers = removeString(lib.AllowedUsers, username)
		return nil
	})
}

// AddBlockRule appends a blacklist rule. Duplicate rules are collapsed.
func (s *Store) AddBlockRule(ctx context.Context, rule domain.BlockRule) error {
	if rule.Value == "" {
		return apperrors.Validation("block rule value cannot be empty")
	}
	if rule.Kind != domain.BlockUsername && rule.Kind != domain.BlockIP {
		return apperrors.Validation("unknown block rule kind")
	}
	return s.update(ctx, func(lib *domain.Library) error {
		for _, r := range lib.Blacklist {
			if r == rule {
				return nil
			}
		}
		lib.Blacklist = append(lib.Blacklist, rule)
		return nil
	})
}

// RemoveBlockRule removes an exact blacklist rule.
func (s *Store) RemoveBlockRule(ctx context.Context, rule domain.BlockRule) error {
	return s.update(ctx, func(lib *domain.Library) error {
		out := lib.Blacklist[:0]
		for _, r := range lib.Blacklist {
			if r != rule {
				out = append(out, r)
			}
		}
		lib.Blacklist = out
		return nil
	})
}

// SetGlobalAccess flips the switch that opens private items to everyone.
func (s *Store) SetGlobalAccess(ctx context.Context, enabled bool) error {
	return s.update(ctx, func(lib *domain.Library) error {
		lib.GlobalAccess = enabled
		return nil
	})
}

// UpdateBotConfig replaces the chat-bot configuration.
func (s *Store) UpdateBotConfig(ctx context.Context, cfg domain.BotConfig) error {
	return s.update(ctx, func(lib *domain.Library) error {
		lib.BotConfig = cfg
		return nil
	})
}

// SetDefaultLanguage sets the catalog's default display locale.
func (s *Store) SetDefaultLanguage(ctx context.Context, locale domain.Locale) error {
	if !locale.Valid() {
		return apperrors.Validation("unsupported locale")
	}
	return s.update(ctx, func(lib *domain.Library) error {
		lib.DefaultLanguage = locale
		return nil
	})
}

// AddCustomType registers a new item type for the operator's type
// selector. Duplicates are collapsed case-sensitively.
func (s *Store) AddCustomType(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return apperrors.Validation("type name cannot be empty")
	}
	return s.update(ctx, func(lib *domain.Library) error {
		if !containsString(lib.CustomTypes, name) {
			lib.CustomTypes = append(lib.CustomTypes, name)
		}
		return nil
	})
}

// Export serializes the whole document for the operator to copy out.
func (s *Store) Export(ctx context.Context) ([]byte, error) {
	lib, err := s.Library(ctx)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(lib)
	if err != nil {
		return nil, apperrors.Internal("marshal library document", err)
	}
	return data, nil
}

// Import replaces the whole document with the supplied payload. The
// payload must at minimum carry an items list; otherwise the store is
// left untouched. The imported document is migrated before the write
// and the search index is rebuilt afterwards.
func (s *Store) Import(ctx context.Context, data []byte) error {
	// Shape check before anything else: a valid payload carries an items
	// list. Anything short of that leaves the store untouched.
	var probe map[string]any
	if err := json.Unmarshal(data, &probe); err != nil {
		return apperrors.ErrMalformedImport.Wrap(err)
	}
	if _, ok := probe["items"].([]any); !ok {
		return apperrors.ErrMalformedImport
	}

	var lib domain.Library
	if err := json.Unmarshal(data, &lib); err != nil {
		return apperrors.ErrMalformedImport.Wrap(err)
	}
	Migrate(&lib)

	err := s.update(ctx, func(current *domain.Library) error {
		*current = lib
		return nil
	})
	if err != nil {
		return err
	}

	if err := s.indexer.ReindexAll(ctx, lib.Items); err != nil && s.logger != nil {
		s.logger.Warn("Failed to rebuild search index after import", "error", err)
	}
	return nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func removeString(list []string, s string) []string {
	out := list[:0]
	for _, v := range list {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}
