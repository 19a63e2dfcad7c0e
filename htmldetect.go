package paste2md

import (
	"regexp"
	"strings"
)

// htmlTagPattern matches opening tags for the elements rich-text
// clipboards actually produce. Bare angle brackets in prose or code do
// not match.
var htmlTagPattern = regexp.MustCompile(`(?i)<\s*(p|div|span|a|br|img|h[1-6]|ul|ol|li|table|tr|td|th|strong|em|b|i|code|pre|blockquote|meta|style)[^>]*>`)

// LooksLikeHTML reports whether content appears to be HTML markup
// rather than plain text. Use it to route a clipboard payload to
// Input.HTML or Input.Text when the source offers no MIME type.
func LooksLikeHTML(content string) bool {
	if strings.Contains(content, "<!DOCTYPE") || strings.Contains(content, "<html") {
		return true
	}
	return htmlTagPattern.MatchString(content)
}
