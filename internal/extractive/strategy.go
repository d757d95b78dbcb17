package extractive

import "fmt"

// Status classifies the outcome of a single strategy attempt.
type Status int

const (
	// StatusOK means the strategy produced a usable summary.
	StatusOK Status = iota
	// StatusDegenerate means the input gave the strategy nothing to work
	// with (no sentences, no terms). The next strategy should be tried.
	StatusDegenerate
	// StatusFailed means a collaborator failed (splitter, decomposition).
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusDegenerate:
		return "degenerate"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Result is what a strategy returns instead of panicking or erroring.
type Result struct {
	Summary string
	Status  Status
	Err     error
}

func ok(summary string) Result { return Result{Summary: summary, Status: StatusOK} }

func degenerate(reason string) Result {
	return Result{Status: StatusDegenerate, Err: fmt.Errorf("%s", reason)}
}

func failed(err error) Result { return Result{Status: StatusFailed, Err: err} }

// Strategy is one tier of the summarization chain.
// n is always positive when called by Summarizer.
type Strategy interface {
	Name() string
	Summarize(text string, n int) Result
}

// Frequency scores sentences by word-frequency salience.
type Frequency struct {
	Splitter Splitter
}

// NewFrequency returns the frequency strategy using the punkt splitter.
func NewFrequency() *Frequency {
	return &Frequency{Splitter: NewPunktSplitter()}
}

func (f *Frequency) Name() string { return "frequency" }

func (f *Frequency) Summarize(text string, n int) Result {
	if f.Splitter == nil {
		return failed(fmt.Errorf("frequency: no sentence splitter"))
	}
	sents, err := f.Splitter.Split(text)
	if err != nil {
		return failed(fmt.Errorf("frequency: split: %w", err))
	}
	if len(sents) == 0 {
		return degenerate("frequency: no sentences")
	}
	table := BuildFrequencyTable(text)
	scored := ScoreSentences(sents, table)
	return ok(Join(Select(scored, n)))
}
