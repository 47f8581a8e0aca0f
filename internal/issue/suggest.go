// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// maxSuggestionDistance is the largest edit distance still offered as a
// "did you mean" suggestion.
const maxSuggestionDistance = 3

// DidYouMean returns the candidate closest to word by edit distance, or
// false when nothing is within maxSuggestionDistance. A suggestion must also
// share at least one character position with word, so very short words only
// match near-identical candidates. Comparison ignores case; ties go to the
// earliest candidate. An exact match is not a suggestion.
func DidYouMean(word string, candidates []string) (string, bool) {
	if word == "" {
		return "", false
	}

	lower := strings.ToLower(word)
	limit := min(maxSuggestionDistance, utf8.RuneCountInString(lower)-1)
	best := ""
	bestDistance := limit + 1
	for _, c := range candidates {
		if c == word {
			continue
		}
		d := levenshtein.ComputeDistance(lower, strings.ToLower(c))
		if d < bestDistance {
			best, bestDistance = c, d
		}
	}
	return best, best != ""
}
