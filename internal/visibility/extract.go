package visibility

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// URLs are terminated by whitespace or closing punctuation so that trailing
// markdown brackets and sentence punctuation stay out of the captured source.
var urlPattern = regexp.MustCompile(`https?://[^\s<>"')\]]+|www\.[^\s<>"')\]]+`)

// extractURLs returns the distinct URLs in text, in first-seen order.
func extractURLs(text string) []string {
	matches := urlPattern.FindAllString(text, -1)

	urls := make([]string, 0, len(matches))
	seen := make(map[string]struct{}, len(matches))
	for _, u := range matches {
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		urls = append(urls, u)
	}
	return urls
}

// extractContext captures a window of text centered on the first occurrence
// of term, trimmed to rune boundaries, with ellipsis markers when truncated.
// window is the total excerpt size; roughly half falls on each side.
func extractContext(text, lower, term string, window int) string {
	pos := strings.Index(lower, term)
	if pos == -1 {
		return ""
	}

	start := max(0, pos-window/2)
	end := min(len(text), pos+len(term)+window/2)

	for start > 0 && !utf8.RuneStart(text[start]) {
		start--
	}
	for end < len(text) && !utf8.RuneStart(text[end]) {
		end++
	}

	excerpt := strings.TrimSpace(text[start:end])
	if start > 0 {
		excerpt = "..." + excerpt
	}
	if end < len(text) {
		excerpt = excerpt + "..."
	}
	return excerpt
}
