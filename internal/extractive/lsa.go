package extractive

import (
	"fmt"
	"math"
	"slices"

	"github.com/kljensen/snowball/english"
	"gonum.org/v1/gonum/mat"
)

// tfSmoothing damps raw term counts inside a sentence so one repeated word
// cannot dominate the decomposition.
const tfSmoothing = 0.4

// LSA ranks sentences with latent semantic analysis. It builds a stemmed
// term-sentence matrix, decomposes it with a thin SVD and scores every
// sentence by the length of its singular-value-weighted topic vector.
type LSA struct {
	Splitter Splitter
}

// NewLSA returns the LSA strategy with the punctuation splitter, which has
// no external model to load.
func NewLSA() *LSA {
	return &LSA{Splitter: PeriodSplitter{}}
}

func (l *LSA) Name() string { return "lsa" }

func (l *LSA) Summarize(text string, n int) Result {
	splitter := l.Splitter
	if splitter == nil {
		splitter = PeriodSplitter{}
	}
	sents, err := splitter.Split(text)
	if err != nil {
		return failed(fmt.Errorf("lsa: split: %w", err))
	}
	if len(sents) == 0 {
		return degenerate("lsa: no sentences")
	}
	if len(sents) <= n {
		return ok(Join(sents))
	}

	matrix, terms := termSentenceMatrix(sents)
	if terms == 0 {
		return degenerate("lsa: no terms")
	}
	ranks, err := rankSentences(matrix)
	if err != nil {
		return failed(err)
	}
	for i := range sents {
		sents[i].Score = ranks[i]
	}
	return ok(Join(Select(sents, n)))
}

func termSentenceMatrix(sents []Sentence) (*mat.Dense, int) {
	index := map[string]int{}
	perSentence := make([]map[int]float64, len(sents))
	for j, s := range sents {
		counts := map[int]float64{}
		for _, w := range SignificantWords(s.Text) {
			stem := english.Stem(w, false)
			row, seen := index[stem]
			if !seen {
				row = len(index)
				index[stem] = row
			}
			counts[row]++
		}
		perSentence[j] = counts
	}
	if len(index) == 0 {
		return nil, 0
	}

	m := mat.NewDense(len(index), len(sents), nil)
	for j, counts := range perSentence {
		maxCount := 0.0
		for _, c := range counts {
			maxCount = math.Max(maxCount, c)
		}
		for row, c := range counts {
			m.Set(row, j, tfSmoothing+(1-tfSmoothing)*c/maxCount)
		}
	}
	return m, len(index)
}

func rankSentences(a *mat.Dense) ([]float64, error) {
	var svd mat.SVD
	if !svd.Factorize(a, mat.SVDThin) {
		return nil, fmt.Errorf("lsa: svd did not converge")
	}
	sigma := svd.Values(nil)
	var v mat.Dense
	svd.VTo(&v)

	rows, cols := v.Dims()
	ranks := make([]float64, rows)
	for i := 0; i < rows; i++ {
		sum := 0.0
		for k := 0; k < cols && k < len(sigma); k++ {
			x := sigma[k] * v.At(i, k)
			sum += x * x
		}
		ranks[i] = math.Sqrt(sum)
	}
	if slices.ContainsFunc(ranks, func(r float64) bool { return math.IsNaN(r) }) {
		return nil, fmt.Errorf("lsa: non-finite rank")
	}
	return ranks, nil
}
