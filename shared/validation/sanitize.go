package validation

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strict = bluemonday.StrictPolicy()
	// entity-encoded markup survives the policy as text, so brackets are dropped after unescaping
	angleBrackets = strings.NewReplacer("<", "", ">", "")
)

// SanitizeString strips every HTML tag and surrounding whitespace.
// Entities escaped by the policy are turned back into text since values are stored raw,
// and any angle bracket left after that is removed.
func SanitizeString(s string) string {
	return strings.TrimSpace(angleBrackets.Replace(html.UnescapeString(strict.Sanitize(s))))
}
