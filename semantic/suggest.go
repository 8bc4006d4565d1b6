package semantic

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// maxTypoDistance bounds the edit distance of a suggestion that is not a
// fuzzy match.
const maxTypoDistance = 2

// suggest returns the candidate closest to name, or "" when nothing is close.
func suggest(name string, candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}

	ranks := fuzzy.RankFindFold(name, candidates)
	if len(ranks) > 0 {
		sort.Stable(ranks)
		return ranks[0].Target
	}

	best, bestDistance := "", maxTypoDistance+1
	for _, c := range candidates {
		if d := fuzzy.LevenshteinDistance(name, c); d < bestDistance {
			best, bestDistance = c, d
		}
	}
	return best
}
