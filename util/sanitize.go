package util

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var XSSPolicy = bluemonday.UGCPolicy()

// maxSanitizePasses bounds how many layers of entity escaping are peeled off.
const maxSanitizePasses = 4

// XSSSanitize strips unsafe HTML and returns it unescaped. Unescaping can
// surface markup that was hidden behind entities, so the policy runs again
// until the text stops changing.
func XSSSanitize(val string) string {
	for i := 0; i < maxSanitizePasses; i++ {
		next := html.UnescapeString(XSSPolicy.Sanitize(val))
		if next == val {
			return strings.TrimSpace(val)
		}
		val = next
	}
	// still changing: keep the escaped form
	return strings.TrimSpace(XSSPolicy.Sanitize(val))
}
