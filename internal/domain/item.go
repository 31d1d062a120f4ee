package domain

import "time"

// MediaItem is a catalog asset (book, video, journal, or any custom type).
type MediaItem struct {
	ID            string           `json:"id"`
	Title         MultilingualText `json:"title"`
	Description   MultilingualText `json:"description"`
	CoverURL      string           `json:"coverUrl"`
	CoverBlurhash string           `json:"coverBlurhash,omitempty"`
	Type          string           `json:"type"`
	// Rating is the operator-set baseline. It is superseded by the derived
	// average as soon as any per-user rating exists.
	Rating           float64      `json:"rating"`
	Author           string       `json:"author"`
	PublishedDate    string       `json:"publishedDate"`
	AddedDate        string       `json:"addedDate"` // RFC 3339; backfilled on load for legacy records
	Formats          []FileFormat `json:"formats"`
	VideoURL         string       `json:"videoUrl,omitempty"`
	IsPrivate        bool         `json:"isPrivate"`
	Views            int64        `json:"views"`
	Downloads        int64        `json:"downloads"`
	ContentLanguages []Locale     `json:"contentLanguages"`
	AllowDownload    bool         `json:"allowDownload"`
	AllowReading     bool         `json:"allowReading"`
}

// FileFormat is a downloadable/readable resource attached to an item.
type FileFormat struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	URL      string `json:"url"`
	Size     string `json:"size"` // free-text label, not parsed
	Language Locale `json:"language,omitempty"`
	// Per-format permission overrides. Nil means "inherit" (permissive).
	AllowDownload *bool `json:"allowDownload,omitempty"`
	AllowReading  *bool `json:"allowReading,omitempty"`
}

// HasContentLanguage reports whether the item's content is available in l.
func (m *MediaItem) HasContentLanguage(l Locale) bool {
	for _, cl := range m.ContentLanguages {
		if cl == l {
			return true
		}
	}
	return false
}

// AddedTime parses the item's addedDate. The zero time is returned for
// legacy records that have not been migrated yet.
func (m *MediaItem) AddedTime() time.Time {
	if m.AddedDate == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, m.AddedDate)
	if err != nil {
		return time.Time{}
	}
	return t
}

// CanDownload returns the effective download permission for a format:
// item-level flag AND format-level flag, where an unset format flag is
// permissive. Item-level false always wins.
func (m *MediaItem) CanDownload(f FileFormat) bool {
	if !m.AllowDownload {
		return false
	}
	return f.AllowDownload == nil || *f.AllowDownload
}

// CanRead returns the effective read-online permission for a format,
// composed the same way as CanDownload.
func (m *MediaItem) CanRead(f FileFormat) bool {
	if !m.AllowReading {
		return false
	}
	return f.AllowReading == nil || *f.AllowReading
}
