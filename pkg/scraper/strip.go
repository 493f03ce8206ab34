package scraper

import "regexp"

// tagPattern matches any tag-like fragment, including one left unterminated
// at the end of the input.
var tagPattern = regexp.MustCompile(`<[^>]*>?`)

// StripTags removes every <...> fragment from markup and keeps the text
// between tags untouched and in order.
func StripTags(markup string) string {
	return tagPattern.ReplaceAllString(markup, "")
}
