package extractive

import (
	"fmt"
	"strings"
	"sync"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
)

// Sentence is a span of the source document.
// Order is assigned once by the splitter and is the sentence's position in
// the document; it is what lets selected sentences be put back in narrative
// order.
type Sentence struct {
	Text  string
	Order int
	Score float64
}

// Splitter segments text into ordered sentences.
// Implementations must be deterministic: splitting the same text twice
// yields the same sequence.
type Splitter interface {
	Split(text string) ([]Sentence, error)
}

// PeriodSplitter splits on terminal punctuation ('.', '!' and '?').
// Runs of terminators stay attached to the sentence they close and
// whitespace-only fragments are discarded. It never fails.
type PeriodSplitter struct{}

func (PeriodSplitter) Split(text string) ([]Sentence, error) {
	var out []Sentence
	var b strings.Builder
	runes := []rune(text)

	flush := func() {
		s := strings.TrimSpace(b.String())
		b.Reset()
		if s == "" {
			return
		}
		out = append(out, Sentence{Text: s, Order: len(out)})
	}

	for i := 0; i < len(runes); i++ {
		b.WriteRune(runes[i])
		if !isTerminator(runes[i]) {
			continue
		}
		for i+1 < len(runes) && isTerminator(runes[i+1]) {
			i++
			b.WriteRune(runes[i])
		}
		flush()
	}
	flush()
	return out, nil
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

type sentenceTokenizer interface {
	Tokenize(text string) []*sentences.Sentence
}

// punktTokenizer is the process-wide punkt model. Loading the english
// training data is the expensive part, so it happens at most once.
var punktTokenizer = sync.OnceValues(func() (sentenceTokenizer, error) {
	t, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, err
	}
	return t, nil
})

// PunktSplitter detects sentence boundaries with the unsupervised punkt
// model trained on english text. It handles abbreviations, initials and
// decimal numbers that PeriodSplitter would cut through.
type PunktSplitter struct {
	tokenizer sentenceTokenizer
	err       error
}

// NewPunktSplitter returns a splitter backed by the shared punkt model.
// A model that fails to load is reported by Split, not here, so the
// summarizer can fall back to another strategy.
func NewPunktSplitter() *PunktSplitter {
	t, err := punktTokenizer()
	return &PunktSplitter{tokenizer: t, err: err}
}

func (p *PunktSplitter) Split(text string) ([]Sentence, error) {
	if p == nil || p.tokenizer == nil {
		if p != nil && p.err != nil {
			return nil, fmt.Errorf("punkt splitter unavailable: %w", p.err)
		}
		return nil, fmt.Errorf("punkt splitter unavailable")
	}
	var out []Sentence
	for _, s := range p.tokenizer.Tokenize(text) {
		t := strings.TrimSpace(s.Text)
		if t == "" {
			continue
		}
		out = append(out, Sentence{Text: t, Order: len(out)})
	}
	return out, nil
}
