package utils

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var sanitizer = bluemonday.StrictPolicy()

// SanitizeText strips any HTML from a free-text field. Print names and
// uploader strings are rendered verbatim in the frontend, so markup is
// removed rather than escaped.
func SanitizeText(input string) string {
	return strings.TrimSpace(sanitizer.Sanitize(input))
}
