package normalize

import "github.com/agext/levenshtein"

// Scorer picks the candidate most similar to input. Score is in [0,1],
// 1 meaning identical. An empty candidate list yields ("", 0).
type Scorer interface {
	BestMatch(input string, candidates []string) (string, float64)
}

// LevenshteinScorer scores folded strings by normalized edit distance.
type LevenshteinScorer struct {
	Params *levenshtein.Params
}

func (s LevenshteinScorer) BestMatch(input string, candidates []string) (string, float64) {
	key := Fold(input)
	best, bestScore := "", 0.0
	for i, cand := range candidates {
		score := levenshtein.Similarity(key, Fold(cand), s.Params)
		if i == 0 || score > bestScore {
			best, bestScore = cand, score
		}
	}
	return best, bestScore
}
