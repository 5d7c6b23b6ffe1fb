package blog

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

const metaDescriptionLimit = 160

var (
	contentPolicy = bluemonday.UGCPolicy()
	textPolicy    = bluemonday.StrictPolicy()
)

func sanitizeContent(s string) string {
	return contentPolicy.Sanitize(s)
}

// plainText strips markup and collapses whitespace, cutting at limit runes.
func plainText(s string, limit int) string {
	text := html.UnescapeString(textPolicy.Sanitize(s))
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if limit > 0 && len(runes) > limit {
		text = strings.TrimSpace(string(runes[:limit]))
	}
	return text
}
