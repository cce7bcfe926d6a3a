// Package similarity implements the Jaccard-style token-set similarity used
// for intent classification and FAQ retrieval.
package similarity

import "appraisal-workers/internal/assistant/textnorm"

// Score computes |A ∩ B| / |A ∪ B| over the stemmed keyword sets of the two
// texts. Both sets empty is defined as 0, not NaN. Symmetric, bounded in
// [0,1]; no metric properties are claimed.
func Score(a, b string) float64 {
	setA := textnorm.StemSet(a)
	setB := textnorm.StemSet(b)

	if len(setA) == 0 && len(setB) == 0 {
		return 0
	}

	intersection := 0
	for stem := range setA {
		if _, ok := setB[stem]; ok {
			intersection++
		}
	}

	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}

	return float64(intersection) / float64(union)
}
