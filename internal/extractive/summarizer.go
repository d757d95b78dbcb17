package extractive

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
)

// DefaultSentenceCount is the summary length used when the caller passes 0.
const DefaultSentenceCount = 5

// ErrInvalidArgument is returned for a negative sentence count. It is the
// only error Summarize reports.
var ErrInvalidArgument = errors.New("extractive: invalid argument")

// Attempt records one strategy run.
type Attempt struct {
	Strategy string
	Status   Status
	Err      error
}

// Outcome is the summary together with the strategy that produced it.
type Outcome struct {
	Summary  string
	Strategy string
	Attempts []Attempt
}

// Summarizer runs strategies in order until one succeeds.
// Naive truncation is always appended as the final tier so a non-empty
// document never yields an empty summary.
type Summarizer struct {
	strategies []Strategy
	logger     *slog.Logger
}

// New returns a Summarizer trying strategies in the given order.
func New(logger *slog.Logger, strategies ...Strategy) *Summarizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Summarizer{strategies: strategies, logger: logger}
}

// NewDefault returns the frequency → LSA → naive chain.
func NewDefault(logger *slog.Logger) *Summarizer {
	return New(logger, NewFrequency(), NewLSA())
}

// Summarize returns an extractive summary of at most n sentences.
func (s *Summarizer) Summarize(text string, n int) (string, error) {
	out, err := s.Run(text, n)
	if err != nil {
		return "", err
	}
	return out.Summary, nil
}

// Run is Summarize with the attempt trail, for callers that record which
// tier served the request.
func (s *Summarizer) Run(text string, n int) (Outcome, error) {
	if n < 0 {
		return Outcome{}, fmt.Errorf("%w: sentence count %d", ErrInvalidArgument, n)
	}
	if n == 0 {
		n = DefaultSentenceCount
	}
	if strings.TrimSpace(text) == "" {
		return Outcome{}, nil
	}

	var out Outcome
	for _, st := range s.tiers() {
		res := s.attempt(st, text, n)
		out.Attempts = append(out.Attempts, Attempt{Strategy: st.Name(), Status: res.Status, Err: res.Err})
		if res.Status == StatusOK && strings.TrimSpace(res.Summary) != "" {
			out.Summary = res.Summary
			out.Strategy = st.Name()
			return out, nil
		}
		s.logger.Debug("extractive strategy fell through",
			slog.String("strategy", st.Name()),
			slog.String("status", res.Status.String()),
			slog.Any("error", res.Err))
	}

	// Naive yields "" only for input made of terminators and blanks; such
	// input is returned trimmed, as is.
	out.Summary = strings.TrimSpace(text)
	out.Strategy = "identity"
	return out, nil
}

func (s *Summarizer) tiers() []Strategy {
	for _, st := range s.strategies {
		if _, isNaive := st.(Naive); isNaive {
			return s.strategies
		}
	}
	return append(slices.Clip(s.strategies), Naive{})
}

// attempt runs one strategy and turns a panic inside it into a failed
// result.
func (s *Summarizer) attempt(st Strategy, text string, n int) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = failed(fmt.Errorf("%s: panic: %v", st.Name(), r))
		}
	}()
	return st.Summarize(text, n)
}

var defaultSummarizer = sync.OnceValue(func() *Summarizer {
	return NewDefault(nil)
})

// Summarize runs the default chain. See Summarizer.Summarize.
func Summarize(text string, n int) (string, error) {
	return defaultSummarizer().Summarize(text, n)
}
