package doctext

import (
	"regexp"
	"strings"
)

var inlineLink = regexp.MustCompile(`\{@(?:link|linkcode|linkplain)\s+([^}|\s]+)(?:[\s|][^}]*)?\}`)

var braceEscaper = strings.NewReplacer("{", "&#123;", "}", "&#125;")

// Sanitize makes generated doc text safe to embed in page markup: inline
// {@link X} references become plain X and remaining braces are escaped.
func Sanitize(text string) string {
	if text == "" {
		return ""
	}
	return braceEscaper.Replace(inlineLink.ReplaceAllString(text, "$1"))
}
