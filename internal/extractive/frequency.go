package extractive

// FrequencyTable maps a salient word to its frequency normalized by the
// most frequent salient word, so values lie in (0, 1] and the maximum is
// exactly 1.0. An empty table means the document carries no salience signal.
type FrequencyTable map[string]float64

// BuildFrequencyTable counts the significant words of text and normalizes
// the counts.
func BuildFrequencyTable(text string) FrequencyTable {
	return FrequencyTableFromWords(SignificantWords(text))
}

// FrequencyTableFromWords normalizes a pre-tokenized word list. Words are
// expected to be filtered already.
func FrequencyTableFromWords(words []string) FrequencyTable {
	counts := make(map[string]int, len(words))
	maxCount := 0
	for _, w := range words {
		counts[w]++
		if counts[w] > maxCount {
			maxCount = counts[w]
		}
	}

	table := make(FrequencyTable, len(counts))
	if maxCount == 0 {
		return table
	}
	for w, c := range counts {
		table[w] = float64(c) / float64(maxCount)
	}
	return table
}

// ScoreSentences returns a copy of sentences with Score set to the sum of
// the table frequency of each significant word. Words missing from the
// table contribute nothing.
func ScoreSentences(sents []Sentence, table FrequencyTable) []Sentence {
	out := make([]Sentence, len(sents))
	for i, s := range sents {
		score := 0.0
		for _, w := range SignificantWords(s.Text) {
			score += table[w]
		}
		s.Score = score
		out[i] = s
	}
	return out
}
