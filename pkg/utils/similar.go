package utils

import (
	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// Minimum similarity for a candidate to be suggested
const minSimilarity = 0.5

// ClosestMatch returns the candidate most similar to name by Levenshtein
// distance, if any is similar enough to be worth suggesting.
func ClosestMatch(name string, candidates []string) (string, bool) {
	lv := metrics.NewLevenshtein()

	best, similarity := "", 0.0
	for _, c := range candidates {
		sim := strutil.Similarity(name, c, lv)
		if sim > similarity {
			best, similarity = c, sim
		}
	}
	return best, similarity >= minSimilarity
}
