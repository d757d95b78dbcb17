package extractive_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gianpd/summarizerAI/internal/extractive"
)

const animals = "The cat sat. The cat ate fish. Dogs bark loudly at night. Fish swim in water. The sun is bright today."

func periodChain() *extractive.Summarizer {
	return extractive.New(nil,
		&extractive.Frequency{Splitter: extractive.PeriodSplitter{}},
		extractive.NewLSA(),
	)
}

/* ───────── frequency table ───────── */

func TestBuildFrequencyTable(t *testing.T) {
	table := extractive.BuildFrequencyTable(animals)

	assert.Equal(t, 1.0, table["cat"])
	assert.Equal(t, 1.0, table["fish"])
	assert.Equal(t, 0.5, table["sat"])
	assert.Equal(t, 0.5, table["today"])
	assert.NotContains(t, table, "the")
	assert.NotContains(t, table, "is")
	assert.NotContains(t, table, "at")
}

func TestBuildFrequencyTable_MaxIsOne(t *testing.T) {
	docs := []string{
		animals,
		"Alpha beta gamma. Alpha beta. Alpha.",
		"Markets rallied. Investors cheered markets, markets, markets!",
	}
	for _, doc := range docs {
		table := extractive.BuildFrequencyTable(doc)
		require.NotEmpty(t, table)
		maxFreq := 0.0
		for _, f := range table {
			assert.Greater(t, f, 0.0)
			assert.LessOrEqual(t, f, 1.0)
			if f > maxFreq {
				maxFreq = f
			}
		}
		assert.Equal(t, 1.0, maxFreq, doc)
	}
}

func TestBuildFrequencyTable_Empty(t *testing.T) {
	for _, doc := range []string{"", "   ", "a an it is. To be or.", "!!! ??? ..."} {
		assert.Empty(t, extractive.BuildFrequencyTable(doc), doc)
	}
}

func TestSignificantWords(t *testing.T) {
	got := extractive.SignificantWords("The QUICK brown fox, it ran to 42 places!")
	assert.Equal(t, []string{"quick", "brown", "fox", "ran", "places"}, got)
}

/* ───────── scoring & selection ───────── */

func TestScoreSentences(t *testing.T) {
	sents, err := extractive.PeriodSplitter{}.Split(animals)
	require.NoError(t, err)

	scored := extractive.ScoreSentences(sents, extractive.BuildFrequencyTable(animals))

	want := []float64{1.5, 2.5, 2.0, 2.0, 1.5}
	require.Len(t, scored, len(want))
	for i, s := range scored {
		assert.InDelta(t, want[i], s.Score, 1e-9, s.Text)
		assert.Equal(t, i, s.Order)
	}
}

func TestScoreSentences_NoScoreableWords(t *testing.T) {
	sents := []extractive.Sentence{{Text: "It is.", Order: 0}}
	scored := extractive.ScoreSentences(sents, extractive.FrequencyTable{"cat": 1})
	assert.Equal(t, 0.0, scored[0].Score)
}

func TestSelect_RoundingTiesKeepOrder(t *testing.T) {
	table := extractive.FrequencyTable{"alpha": 0.1, "beta": 0.2, "gamma": 0.7}
	sents := []extractive.Sentence{
		{Text: "Gamma beta alpha.", Order: 0},
		{Text: "Alpha beta gamma.", Order: 1},
	}

	scored := extractive.ScoreSentences(sents, table)
	require.InDelta(t, scored[0].Score, scored[1].Score, 1e-12)

	got := extractive.Select(scored, 1)
	require.Len(t, got, 1)
	assert.Equal(t, "Gamma beta alpha.", got[0].Text)
}

func TestSelect(t *testing.T) {
	sents := []extractive.Sentence{
		{Text: "s0", Order: 0, Score: 1},
		{Text: "s1", Order: 1, Score: 3},
		{Text: "s2", Order: 2, Score: 2},
		{Text: "s3", Order: 3, Score: 2},
		{Text: "s4", Order: 4, Score: 3},
	}

	tests := []struct {
		name string
		n    int
		want string
	}{
		{"top two keep document order", 2, "s1 s4"},
		{"tie broken by earlier sentence", 3, "s1 s2 s4"},
		{"n larger than document", 10, "s0 s1 s2 s3 s4"},
		{"zero", 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractive.Join(extractive.Select(sents, tt.n)))
		})
	}
}

func TestSelect_AllZeroScoresFallsBackToFirstN(t *testing.T) {
	sents := []extractive.Sentence{
		{Text: "a", Order: 0}, {Text: "b", Order: 1}, {Text: "c", Order: 2},
	}
	assert.Equal(t, "a b", extractive.Join(extractive.Select(sents, 2)))
}

func TestSelect_DoesNotMutateInput(t *testing.T) {
	sents := []extractive.Sentence{
		{Text: "a", Order: 0, Score: 1}, {Text: "b", Order: 1, Score: 2},
	}
	extractive.Select(sents, 1)
	assert.Equal(t, "a", sents[0].Text)
}

/* ───────── splitters ───────── */

func TestPeriodSplitter(t *testing.T) {
	got, err := extractive.PeriodSplitter{}.Split("  One. Two!  Three?? Four...Five ")
	require.NoError(t, err)

	texts := make([]string, len(got))
	for i, s := range got {
		texts[i] = s.Text
		assert.Equal(t, i, s.Order)
	}
	assert.Equal(t, []string{"One.", "Two!", "Three??", "Four...", "Five"}, texts)
}

func TestPeriodSplitter_Restartable(t *testing.T) {
	first, _ := extractive.PeriodSplitter{}.Split(animals)
	second, _ := extractive.PeriodSplitter{}.Split(animals)
	assert.Equal(t, first, second)
}

func TestPunktSplitter(t *testing.T) {
	got, err := extractive.NewPunktSplitter().Split("Hello world. How are you? I am fine!")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Hello world.", got[0].Text)
	assert.Equal(t, "I am fine!", got[2].Text)
}

func TestPunktSplitter_NilIsUnavailable(t *testing.T) {
	var p *extractive.PunktSplitter
	_, err := p.Split("Text.")
	assert.Error(t, err)
}

/* ───────── naive & LSA tiers ───────── */

func TestTruncate(t *testing.T) {
	tests := []struct {
		text string
		n    int
		want string
	}{
		{"A. B. C.", 2, "A. B."},
		{"A. B. C.", 5, "A. B. C."},
		{"No terminator", 3, "No terminator."},
		{"", 3, ""},
		{" . . ", 3, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, extractive.Truncate(tt.text, tt.n), tt.text)
	}
}

func TestLSA(t *testing.T) {
	doc := "Solar panels convert sunlight into electricity. " +
		"Electricity from solar panels powers homes. " +
		"My neighbour owns a red bicycle. " +
		"Solar electricity reduces household energy bills. " +
		"Bicycles need air."

	res := extractive.NewLSA().Summarize(doc, 2)
	require.Equal(t, extractive.StatusOK, res.Status, res.Err)

	sents, _ := extractive.PeriodSplitter{}.Split(doc)
	assertOrdered(t, sents, res.Summary, 2)
}

func TestLSA_Degenerate(t *testing.T) {
	res := extractive.NewLSA().Summarize("It is. To be. Or so.", 1)
	assert.Equal(t, extractive.StatusDegenerate, res.Status)
}

/* ───────── orchestrator ───────── */

func TestSummarize_Scenario(t *testing.T) {
	got, err := extractive.Summarize(animals, 2)
	require.NoError(t, err)

	// cat and fish tie as the most frequent words; the second sentence wins
	// outright and the dogs sentence beats the fish sentence on position.
	assert.Equal(t, "The cat ate fish. Dogs bark loudly at night.", got)
}

func TestSummarize_PeriodChainMatchesDefault(t *testing.T) {
	want, err := extractive.Summarize(animals, 2)
	require.NoError(t, err)
	got, err := periodChain().Summarize(animals, 2)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSummarize_Empty(t *testing.T) {
	for _, text := range []string{"", "   \n\t"} {
		got, err := extractive.Summarize(text, 5)
		require.NoError(t, err)
		assert.Equal(t, "", got)
	}
}

func TestSummarize_InvalidCount(t *testing.T) {
	_, err := extractive.Summarize(animals, -1)
	assert.True(t, errors.Is(err, extractive.ErrInvalidArgument))
}

func TestSummarize_ZeroMeansDefault(t *testing.T) {
	doc := strings.Repeat("Sentence about nothing in particular. ", 8)
	got, err := periodChain().Summarize(doc, 0)
	require.NoError(t, err)
	assert.Equal(t, extractive.DefaultSentenceCount, strings.Count(got, "."))
}

func TestSummarize_FewerSentencesThanN(t *testing.T) {
	got, err := periodChain().Summarize(animals, 10)
	require.NoError(t, err)
	assert.Equal(t, animals, got)
}

func TestSummarize_OrderPreserved(t *testing.T) {
	doc := "Rain fell on the city. Traffic slowed across the city center. " +
		"Officials closed two bridges. The city council met at noon. " +
		"Schools stayed open. Rain is expected to continue through the city tomorrow."
	sents, _ := extractive.PeriodSplitter{}.Split(doc)

	for n := 1; n <= len(sents); n++ {
		got, err := periodChain().Summarize(doc, n)
		require.NoError(t, err)
		assertOrdered(t, sents, got, n)
	}
}

func TestSummarize_Idempotent(t *testing.T) {
	once, err := periodChain().Summarize(animals, 2)
	require.NoError(t, err)
	twice, err := periodChain().Summarize(once, 2)
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}

func TestSummarizer_FallsBackOnSplitterFailure(t *testing.T) {
	s := extractive.New(nil, &extractive.Frequency{Splitter: brokenSplitter{}}, extractive.NewLSA())

	out, err := s.Run(animals, 2)
	require.NoError(t, err)
	assert.Equal(t, "lsa", out.Strategy)
	require.Len(t, out.Attempts, 2)
	assert.Equal(t, extractive.StatusFailed, out.Attempts[0].Status)
	assert.NotEmpty(t, out.Summary)
}

func TestSummarizer_RecoversPanickingStrategy(t *testing.T) {
	s := extractive.New(nil, panicStrategy{})

	out, err := s.Run("First part. Second part. Third part.", 2)
	require.NoError(t, err)
	assert.Equal(t, "naive", out.Strategy)
	assert.Equal(t, "First part. Second part.", out.Summary)
	assert.Equal(t, extractive.StatusFailed, out.Attempts[0].Status)
}

func TestSummarizer_NeverEmptyForNonEmptyInput(t *testing.T) {
	inputs := []string{"...", "?!", "a", "It is. It was.", "x y z"}
	for _, in := range inputs {
		got, err := extractive.Summarize(in, 3)
		require.NoError(t, err)
		assert.NotEmpty(t, got, in)
	}
}

func TestSummarizer_IdentityForPunctuationOnly(t *testing.T) {
	s := extractive.New(nil, &extractive.Frequency{Splitter: brokenSplitter{}})

	out, err := s.Run(" ... ", 3)
	require.NoError(t, err)

	assert.Equal(t, "identity", out.Strategy)
	assert.Equal(t, "...", out.Summary)
	require.Len(t, out.Attempts, 2)
	assert.Equal(t, "naive", out.Attempts[1].Strategy)
	assert.Equal(t, extractive.StatusOK, out.Attempts[1].Status)
}

/* ───────── helpers ───────── */

type brokenSplitter struct{}

func (brokenSplitter) Split(string) ([]extractive.Sentence, error) {
	return nil, errors.New("model not loaded")
}

type panicStrategy struct{}

func (panicStrategy) Name() string { return "panic" }

func (panicStrategy) Summarize(string, int) extractive.Result { panic("boom") }

// assertOrdered checks summary is made of at most n distinct document
// sentences appearing in document order.
func assertOrdered(t *testing.T, sents []extractive.Sentence, summary string, n int) {
	t.Helper()
	last := -1
	count := 0
	rest := summary
	for _, s := range sents {
		if !strings.HasPrefix(rest, s.Text) {
			continue
		}
		assert.Greater(t, s.Order, last)
		last = s.Order
		count++
		rest = strings.TrimPrefix(strings.TrimPrefix(rest, s.Text), " ")
	}
	assert.Empty(t, rest, "summary contains text outside the document: %q", summary)
	assert.LessOrEqual(t, count, n)
	assert.Positive(t, count)
}
