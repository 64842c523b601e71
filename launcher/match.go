package launcher

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// newMatcher returns a predicate testing text against pattern, either fuzzily or as a case-insensitive substring.
// The empty pattern matches everything.
func newMatcher(pattern string, fuzzily bool) func(string) bool {
	if pattern == "" {
		return func(string) bool { return true }
	}
	if fuzzily {
		return func(text string) bool {
			return len(fuzzy.Find(pattern, []string{text})) != 0
		}
	}
	needle := strings.ToLower(pattern)
	return func(text string) bool {
		return strings.Contains(strings.ToLower(text), needle)
	}
}
