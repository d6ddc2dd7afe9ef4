// Package chunker bounds the amount of document text that gets embedded in
// an LLM prompt. Tokens are approximated by whitespace-delimited words to
// avoid heavy tokenizer dependencies.
package chunker

import "strings"

// Head returns up to maxWords leading words of text, collapsing whitespace.
// The second return reports whether anything was cut off.
func Head(text string, maxWords int) (string, bool) {
	if maxWords <= 0 {
		maxWords = 6000
	}
	words := strings.Fields(text)
	if len(words) <= maxWords {
		return strings.Join(words, " "), false
	}
	return strings.Join(words[:maxWords], " "), true
}

// WordCount approximates the token count of text.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
