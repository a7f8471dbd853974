// internal/assistant/sanitize.go
package assistant

import "strings"

// Sanitize strips markdown bold and inline-code markers from model output and
// trims surrounding whitespace. Idempotent.
func Sanitize(text string) string {
	text = strings.ReplaceAll(text, "**", "")
	text = strings.ReplaceAll(text, "`", "")
	return strings.TrimSpace(text)
}
