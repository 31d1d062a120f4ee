// Package normalize cleans operator-supplied text before it is stored.
// Descriptions pasted from rich editors often arrive as HTML; they are
// converted to Markdown so every client renders them the same way.
package normalize

import (
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/optionshub/mediavault-server/internal/domain"
)

// htmlTagPattern matches common HTML tags to detect if a string contains HTML.
var htmlTagPattern = regexp.MustCompile(`<(p|br|div|span|b|i|strong|em|a|ul|ol|li|h[1-6]|blockquote)[\s>/]`)

// containsHTML checks if a string appears to contain HTML markup.
func containsHTML(s string) bool {
	return htmlTagPattern.MatchString(strings.ToLower(s))
}

// Text converts HTML content to Markdown. Input without HTML is returned
// unchanged; a failed conversion falls back to the original string.
func Text(s string) string {
	if s == "" || !containsHTML(s) {
		return s
	}

	markdown, err := htmltomarkdown.ConvertString(s)
	if err != nil {
		return s
	}

	return strings.TrimSpace(markdown)
}

// Description normalizes every locale of a description in place.
func Description(t *domain.MultilingualText) {
	t.EN = Text(t.EN)
	t.RU = Text(t.RU)
	t.ES = Text(t.ES)
}
