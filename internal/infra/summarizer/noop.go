package summarizer

import (
	"context"

	"github.com/gianpd/summarizerAI/internal/utils/text"
)

// NoOp returns its input cut to a character limit. Selected with
// ABSTRACTIVE_PROVIDER=noop for offline runs.
type NoOp struct {
	limit int
}

// NewNoOp creates a NoOp that keeps at most limit runes; limit <= 0 keeps everything.
func NewNoOp(limit int) *NoOp {
	return &NoOp{limit: limit}
}

func (n *NoOp) Summarize(_ context.Context, s string) (string, error) {
	if n.limit <= 0 || text.CountRunes(s) <= n.limit {
		return s, nil
	}
	return text.TruncateRunes(s, n.limit), nil
}
