package scraper

import (
	"regexp"
	"strings"
)

const (
	minKeywordLen = 4  // tokens shorter than this are noise
	maxKeywords   = 10 // bounds matching cost per text
)

var nonWord = regexp.MustCompile(`[^\w\s]`)

// ExtractKeywords normalizes free text into a deduplicated keyword list:
// lowercase, punctuation stripped, short tokens dropped, capped at the first
// ten surviving tokens in original order. Deterministic and side-effect free.
func ExtractKeywords(text string) []string {
	cleaned := nonWord.ReplaceAllString(strings.ToLower(text), "")

	seen := make(map[string]struct{})
	var out []string
	kept := 0
	for _, tok := range strings.Fields(cleaned) {
		if len(tok) < minKeywordLen {
			continue
		}
		if kept == maxKeywords {
			break
		}
		kept++
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	return out
}

func containsKeyword(keywords []string, kw string) bool {
	for _, k := range keywords {
		if k == kw {
			return true
		}
	}
	return false
}
