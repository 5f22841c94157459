package utils

import "github.com/microcosm-cc/bluemonday"

var (
	sanitizer = bluemonday.UGCPolicy()
	stripper  = bluemonday.StrictPolicy()
)

// Sanitize cleans HTML content to prevent XSS attacks.
func Sanitize(input string) string {
	return sanitizer.Sanitize(input)
}

// StripTags removes all markup. Used for plain-text fields like goal titles
// and check-in notes where no HTML is ever expected.
func StripTags(input string) string {
	return stripper.Sanitize(input)
}
