// Package catalog implements the visitor-facing filter pipeline: access
// filtering, content-language filtering, the recently-added bucket,
// free-text search, and category selection.
package catalog

import (
	"sort"
	"strings"
	"time"

	"github.com/optionshub/mediavault-server/internal/access"
	"github.com/optionshub/mediavault-server/internal/domain"
)

// Recently-added bucket bounds.
const (
	recentWindow = 30 * 24 * time.Hour
	recentLimit  = 20
)

// categoryKind discriminates Category values.
type categoryKind int

const (
	kindAll categoryKind = iota
	kindFavorites
	kindRecent
	kindByType
)

// Category selects a slice of the catalog. It is a tagged value rather
// than a bare string so the synthetic buckets (favorites, recently added)
// cannot be confused with real item types.
type Category struct {
	kind     categoryKind
	itemType string
}

// All matches every item.
func All() Category { return Category{kind: kindAll} }

// Favorites matches the viewer's favorited items.
func Favorites() Category { return Category{kind: kindFavorites} }

// RecentlyAdded matches items added within the trailing 30 days,
// newest-first, capped at 20.
func RecentlyAdded() Category { return Category{kind: kindRecent} }

// ByType matches items whose type equals t exactly.
func ByType(t string) Category { return Category{kind: kindByType, itemType: t} }

// IsRecentlyAdded reports whether the category is the recency bucket.
func (c Category) IsRecentlyAdded() bool { return c.kind == kindRecent }

// ParseCategory maps the wire representation to a Category. The synthetic
// bucket names are reserved; anything else is an item type.
func ParseCategory(s string) Category {
	switch s {
	case "", "all":
		return All()
	case "favorites":
		return Favorites()
	case "recent", "recently-added":
		return RecentlyAdded()
	default:
		return ByType(s)
	}
}

// String returns the wire representation of the category.
func (c Category) String() string {
	switch c.kind {
	case kindFavorites:
		return "favorites"
	case kindRecent:
		return "recent"
	case kindByType:
		return c.itemType
	default:
		return "all"
	}
}

// SearchScope selects which fields free-text search matches against.
type SearchScope string

// Search scopes.
const (
	ScopeAll    SearchScope = "all"
	ScopeTitle  SearchScope = "title"
	ScopeAuthor SearchScope = "author"
)

// ParseScope maps the wire representation to a SearchScope, defaulting
// to ScopeAll.
func ParseScope(s string) SearchScope {
	switch SearchScope(s) {
	case ScopeTitle:
		return ScopeTitle
	case ScopeAuthor:
		return ScopeAuthor
	default:
		return ScopeAll
	}
}

// Query is one filter evaluation request.
type Query struct {
	Text     string
	Scope    SearchScope
	Category Category
	// ContentLanguage keeps only items available in this language.
	// The zero value means "any".
	ContentLanguage domain.Locale
	// Locale selects which localized title search matches against,
	// falling back to English when the localized title is empty.
	Locale domain.Locale
}

// Engine filters a library's items for a viewer.
type Engine struct {
	now func() time.Time
}

// NewEngine creates a filter engine using the real clock.
func NewEngine() *Engine {
	return &Engine{now: time.Now}
}

// NewEngineAt creates a filter engine with a fixed clock. Used in tests.
func NewEngineAt(now func() time.Time) *Engine {
	return &Engine{now: now}
}

// Filter narrows items to the ordered list the viewer should see.
//
// Stages run in a fixed order, each narrowing the previous result:
// access, content language, recency bucket (which sorts newest-first and
// truncates to 20 before search runs), free-text search, category.
// Items keep storage order except when the recency bucket re-sorts them.
func (e *Engine) Filter(items []domain.MediaItem, v domain.Viewer, state domain.AccessState, favorites []string, q Query) []domain.MediaItem {
	result := make([]domain.MediaItem, 0, len(items))
	for i := range items {
		if access.Visible(&items[i], v, state) {
			result = append(result, items[i])
		}
	}

	if q.ContentLanguage != "" {
		result = keep(result, func(m *domain.MediaItem) bool {
			return m.HasContentLanguage(q.ContentLanguage)
		})
	}

	if q.Category.IsRecentlyAdded() {
		cutoff := e.now().Add(-recentWindow)
		result = keep(result, func(m *domain.MediaItem) bool {
			t := m.AddedTime()
			return !t.IsZero() && !t.Before(cutoff)
		})
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].AddedTime().After(result[j].AddedTime())
		})
		if len(result) > recentLimit {
			result = result[:recentLimit]
		}
	}

	if text := strings.ToLower(strings.TrimSpace(q.Text)); text != "" {
		result = keep(result, func(m *domain.MediaItem) bool {
			return matchesText(m, text, q.Scope, q.Locale)
		})
	}

	switch q.Category.kind {
	case kindFavorites:
		favSet := make(map[string]struct{}, len(favorites))
		for _, id := range favorites {
			favSet[id] = struct{}{}
		}
		result = keep(result, func(m *domain.MediaItem) bool {
			_, ok := favSet[m.ID]
			return ok
		})
	case kindByType:
		result = keep(result, func(m *domain.MediaItem) bool {
			return m.Type == q.Category.itemType
		})
	}

	return result
}

// matchesText applies case-insensitive substring search. The title used
// is the viewer's locale title, falling back to English when empty.
func matchesText(m *domain.MediaItem, lowered string, scope SearchScope, locale domain.Locale) bool {
	title := strings.ToLower(m.Title.Get(locale))
	author := strings.ToLower(m.Author)
	switch scope {
	case ScopeTitle:
		return strings.Contains(title, lowered)
	case ScopeAuthor:
		return strings.Contains(author, lowered)
	default:
		return strings.Contains(title, lowered) || strings.Contains(author, lowered)
	}
}

func keep(items []domain.MediaItem, pred func(*domain.MediaItem) bool) []domain.MediaItem {
	out := items[:0]
	for i := range items {
		if pred(&items[i]) {
			out = append(out, items[i])
		}
	}
	return out
}
