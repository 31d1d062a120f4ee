// Package domain contains the core entities and evaluation rules for the
// MediaVault catalog.
package domain

// Locale identifies one of the supported content languages.
type Locale string

// Supported locales. Every multilingual field carries all three.
const (
	LocaleEN Locale = "en"
	LocaleRU Locale = "ru"
	LocaleES Locale = "es"
)

// Locales lists all supported locales in display order.
func Locales() []Locale {
	return []Locale{LocaleEN, LocaleRU, LocaleES}
}

// Valid reports whether l is a supported locale.
func (l Locale) Valid() bool {
	switch l {
	case LocaleEN, LocaleRU, LocaleES:
		return true
	}
	return false
}

// MultilingualText holds one string per supported locale.
// All three fields are always present; empty strings are allowed.
type MultilingualText struct {
	EN string `json:"en"`
	RU string `json:"ru"`
	ES string `json:"es"`
}

// Get returns the text for the given locale, falling back to English
// when the localized string is empty.
func (t MultilingualText) Get(l Locale) string {
	var s string
	switch l {
	case LocaleRU:
		s = t.RU
	case LocaleES:
		s = t.ES
	default:
		s = t.EN
	}
	if s == "" {
		return t.EN
	}
	return s
}

// IsEmpty reports whether no locale has any text.
func (t MultilingualText) IsEmpty() bool {
	return t.EN == "" && t.RU == "" && t.ES == ""
}

// Set stores text for the given locale.
func (t *MultilingualText) Set(l Locale, s string) {
	switch l {
	case LocaleRU:
		t.RU = s
	case LocaleES:
		t.ES = s
	default:
		t.EN = s
	}
}
