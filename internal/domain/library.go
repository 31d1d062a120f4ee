package domain

// BotConfig is the operator-editable chat-bot configuration. It is not
// involved in any access or filtering decision.
type BotConfig struct {
	Token          string           `json:"token"`
	Username       string           `json:"username"`
	WelcomeMessage MultilingualText `json:"welcomeMessage"`
	WebAppURL      string           `json:"webAppUrl"`
}

// SchemaVersion is the current library document schema. Load runs the
// migration step whenever a stored document reports an older version.
const SchemaVersion = 4

// Library is the entire persisted document. Every mutation reads it whole,
// modifies it, and writes it back whole; the unit of atomicity is one full
// document replace.
type Library struct {
	SchemaVersion int             `json:"schemaVersion"`
	Items         []MediaItem     `json:"items"`
	AllowedUsers  []string        `json:"allowedUsers"`
	Blacklist     []BlockRule     `json:"blacklist"`
	VisitLogs     []VisitLog      `json:"visitLogs"`
	Stats         []StatPoint     `json:"stats"`
	UserAnalytics []UserAnalytics `json:"userAnalytics"`
	// UserFavorites maps a viewer key to an ordered list of item ids.
	// Order is preserved for display; membership drives the favorites
	// category filter.
	UserFavorites map[string][]string `json:"userFavorites"`
	// UserRatings maps a viewer key to a map of item id -> rating 1..5.
	UserRatings     map[string]map[string]int `json:"userRatings"`
	CustomTypes     []string                  `json:"customTypes"`
	DefaultLanguage Locale                    `json:"defaultLanguage"`
	GlobalAccess    bool                      `json:"globalAccess"`
	BotConfig       BotConfig                 `json:"botConfig"`
}

// Access assembles the AccessState view of the document.
func (l *Library) Access() AccessState {
	return AccessState{
		AllowedUsers: l.AllowedUsers,
		Blacklist:    l.Blacklist,
		GlobalAccess: l.GlobalAccess,
		VisitLogs:    l.VisitLogs,
	}
}

// Item returns the item with the given id, or nil.
func (l *Library) Item(id string) *MediaItem {
	for i := range l.Items {
		if l.Items[i].ID == id {
			return &l.Items[i]
		}
	}
	return nil
}

// FavoritesOf returns the viewer's favorite item ids in insertion order.
func (l *Library) FavoritesOf(viewerKey string) []string {
	return l.UserFavorites[viewerKey]
}

// IsFavorite reports whether the viewer has favorited the item.
func (l *Library) IsFavorite(viewerKey, itemID string) bool {
	for _, id := range l.UserFavorites[viewerKey] {
		if id == itemID {
			return true
		}
	}
	return false
}

// AverageRating returns the arithmetic mean of all recorded per-user
// ratings for the item. With no recorded ratings it falls back to the
// item's static baseline; the baseline is never blended with user ratings.
func (l *Library) AverageRating(itemID string) float64 {
	var sum, n int
	for _, ratings := range l.UserRatings {
		if r, ok := ratings[itemID]; ok {
			sum += r
			n++
		}
	}
	if n == 0 {
		if item := l.Item(itemID); item != nil {
			return item.Rating
		}
		return 0
	}
	return float64(sum) / float64(n)
}
