package llm

import (
	"regexp"
	"strings"
)

// fence matches a markdown code fence and its optional language tag.
var fence = regexp.MustCompile("```[A-Za-z]*\n?")

// StripCodeFences removes every markdown fence from a model reply, keeping
// what was inside them, and trims the result.
func StripCodeFences(reply string) string {
	return strings.TrimSpace(fence.ReplaceAllString(reply, ""))
}

// ExtractJSONObject returns the text from the first '{' to the last '}' inclusive.
// It reports false when there is no such span.
func ExtractJSONObject(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end < start {
		return "", false
	}
	return text[start : end+1], true
}
