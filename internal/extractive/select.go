package extractive

import (
	"cmp"
	"math"
	"slices"
	"strings"
)

// scoreResolution is the granularity at which scores are compared. Float
// sums of the same terms in a different order can differ in the last bit;
// rounding first keeps such sentences tied.
const scoreResolution = 1e9

// Select keeps the n highest scoring sentences and returns them in
// original order.
//
// Ranking is a stable sort on descending score, so among equal scores the
// earlier sentence wins. Scores equal to within 1e-9 count as equal. When every score is zero this degenerates to the
// first n sentences. Fewer than n sentences returns all of them.
func Select(sents []Sentence, n int) []Sentence {
	if n <= 0 || len(sents) == 0 {
		return nil
	}
	ranked := slices.Clone(sents)
	slices.SortStableFunc(ranked, func(a, b Sentence) int {
		return cmp.Compare(rankKey(b.Score), rankKey(a.Score))
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	slices.SortFunc(ranked, compareOrder)
	return ranked
}

// Join concatenates sentence texts with a single space.
func Join(sents []Sentence) string {
	parts := make([]string, len(sents))
	for i, s := range sents {
		parts[i] = s.Text
	}
	return strings.Join(parts, " ")
}

func rankKey(score float64) float64 {
	return math.Round(score*scoreResolution) / scoreResolution
}

func compareOrder(a, b Sentence) int { return cmp.Compare(a.Order, b.Order) }
