// Package chunk splits long documents into token-bounded segments for
// models with a fixed input window.
package chunk

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gianpd/summarizerAI/internal/extractive"
)

// DefaultBudget is the input window of the bart family of models.
const DefaultBudget = 1024

// ErrInvalidArgument is returned for a non-positive token budget.
var ErrInvalidArgument = errors.New("chunk: invalid argument")

// Chunker packs consecutive sentences into chunks of at most Budget tokens.
//
// Each candidate is measured as a whole (current + " " + sentence) because
// BPE token counts are not additive across a join. A sentence that alone
// exceeds the budget becomes its own oversized chunk; it is never cut.
type Chunker struct {
	Counter  TokenCounter
	Splitter extractive.Splitter
	Budget   int
}

// New returns a chunker with the given counter and budget, splitting on
// terminal punctuation.
func New(counter TokenCounter, budget int) *Chunker {
	return &Chunker{Counter: counter, Splitter: extractive.PeriodSplitter{}, Budget: budget}
}

// Chunk partitions text into ordered chunks. Every sentence lands in exactly
// one chunk and chunks keep document order. Text that is empty or only
// whitespace is blank and yields no chunks and no error; any other input
// yields at least one chunk.
func (c *Chunker) Chunk(text string) ([]string, error) {
	if c.Budget <= 0 {
		return nil, fmt.Errorf("%w: token budget %d", ErrInvalidArgument, c.Budget)
	}
	counter := c.Counter
	if counter == nil {
		counter = WhitespaceCounter{}
	}
	splitter := c.Splitter
	if splitter == nil {
		splitter = extractive.PeriodSplitter{}
	}

	sents, err := splitter.Split(text)
	if err != nil {
		return nil, fmt.Errorf("chunk: split: %w", err)
	}

	var (
		chunks  []string
		current string
	)
	for _, s := range sents {
		candidate := s.Text
		if current != "" {
			candidate = current + " " + s.Text
		}
		if counter.CountTokens(candidate) <= c.Budget {
			current = candidate
			continue
		}
		if current != "" {
			chunks = append(chunks, current)
		}
		current = s.Text
	}
	if strings.TrimSpace(current) != "" {
		chunks = append(chunks, current)
	}
	return chunks, nil
}

// Split chunks text with the whitespace counter.
func Split(text string, budget int) ([]string, error) {
	return New(WhitespaceCounter{}, budget).Chunk(text)
}
