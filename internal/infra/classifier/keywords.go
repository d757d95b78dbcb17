package classifier

// SelectKeywords takes the first topK labels of a ranking (best first) and
// keeps those whose score is strictly greater than threshold. labels and
// scores are parallel; extra entries in either are ignored.
func SelectKeywords(labels []string, scores []float64, threshold float64, topK int) []string {
	n := min(len(labels), len(scores), max(topK, 0))
	var out []string
	for i := 0; i < n; i++ {
		if scores[i] > threshold {
			out = append(out, labels[i])
		}
	}
	return out
}
