package utils

import "github.com/microcosm-cc/bluemonday"

var (
	ugcPolicy    = bluemonday.UGCPolicy()
	strictPolicy = bluemonday.StrictPolicy()
)

// SanitizeUGC cleans user-generated content while keeping common formatting.
func SanitizeUGC(input string) string {
	return ugcPolicy.Sanitize(input)
}

// SanitizeText strips all markup, used for titles and other plain fields.
func SanitizeText(input string) string {
	return strictPolicy.Sanitize(input)
}
