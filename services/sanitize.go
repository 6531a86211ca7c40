package services

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// SanitizeContent drops markup from user-authored text such as notes and
// chat messages. The API stores plain text, so the entities bluemonday
// emits are decoded again.
func SanitizeContent(content string) string {
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(content)))
}
