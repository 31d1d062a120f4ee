package api

import (
	"golang.org/x/text/language"

	"github.com/optionshub/mediavault-server/internal/domain"
)

// supportedLocales mirrors domain.Locales in matcher order.
var supportedLocales = []domain.Locale{domain.LocaleEN, domain.LocaleRU, domain.LocaleES}

var localeMatcher = language.NewMatcher([]language.Tag{
	language.English,
	language.Russian,
	language.Spanish,
})

// negotiateLocale picks a supported display locale from an
// Accept-Language header. The zero value means no usable preference,
// letting the catalog default apply.
func negotiateLocale(header string) domain.Locale {
	if header == "" {
		return ""
	}

	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return ""
	}

	_, idx, conf := localeMatcher.Match(tags...)
	if conf == language.No {
		return ""
	}
	return supportedLocales[idx]
}
