package textutil

import (
	"regexp"
	"strings"
)

var tagRegex = regexp.MustCompile(`<[^>]+>`)

// StripTags removes HTML markup from free text. It does not decode
// entities, product descriptions only ever carry simple formatting tags.
func StripTags(text string) string {
	return strings.TrimSpace(tagRegex.ReplaceAllString(text, ""))
}

// Wrap splits text into indented lines of at most width characters.
func Wrap(text string, width int, indent string) []string {
	var lines []string
	current := indent

	for _, word := range strings.Fields(text) {
		if len(current)+len(word)+1 > width {
			lines = append(lines, current)
			current = indent + word
			continue
		}
		if current == indent {
			current += word
		} else {
			current += " " + word
		}
	}

	if strings.TrimSpace(current) != "" {
		lines = append(lines, current)
	}
	return lines
}
