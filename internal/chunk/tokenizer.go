package chunk

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// DefaultEncoding is the BPE vocabulary used when none is configured.
const DefaultEncoding = "cl100k_base"

// TokenCounter reports how many model tokens a text occupies.
// Implementations must be safe for concurrent use.
type TokenCounter interface {
	CountTokens(text string) int
}

// WhitespaceCounter approximates tokens as whitespace-separated words.
// It needs no model and is the fallback when a vocabulary cannot be loaded.
type WhitespaceCounter struct{}

func (WhitespaceCounter) CountTokens(text string) int {
	return len(strings.Fields(text))
}

// TiktokenCounter counts BPE tokens. The encoding is loaded on first use,
// at most once per counter; concurrent first calls wait for the same load.
type TiktokenCounter struct {
	encoding string
	logger   *slog.Logger

	once     sync.Once
	enc      *tiktoken.Tiktoken
	fallback TokenCounter
}

// NewTiktokenCounter returns a counter for the named encoding. Loading is
// deferred until the first CountTokens call.
func NewTiktokenCounter(encoding string, logger *slog.Logger) *TiktokenCounter {
	if encoding == "" {
		encoding = DefaultEncoding
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TiktokenCounter{encoding: encoding, logger: logger, fallback: WhitespaceCounter{}}
}

func (c *TiktokenCounter) CountTokens(text string) int {
	c.once.Do(c.load)
	if c.enc == nil {
		return c.fallback.CountTokens(text)
	}
	return len(c.enc.Encode(text, nil, nil))
}

// Ready reports whether the BPE vocabulary is in use, loading it if needed.
func (c *TiktokenCounter) Ready() bool {
	c.once.Do(c.load)
	return c.enc != nil
}

func (c *TiktokenCounter) load() {
	enc, err := tiktoken.GetEncoding(c.encoding)
	if err != nil {
		c.logger.Warn("tokenizer unavailable, counting words instead",
			slog.String("encoding", c.encoding),
			slog.Any("error", err))
		return
	}
	c.enc = enc
}

var (
	sharedMu       sync.Mutex
	sharedCounters = map[string]*TiktokenCounter{}
)

// Shared returns the process-wide counter for encoding. Every caller asking
// for the same encoding gets the same handle, so the vocabulary is loaded
// once per process.
func Shared(encoding string, logger *slog.Logger) *TiktokenCounter {
	if encoding == "" {
		encoding = DefaultEncoding
	}
	sharedMu.Lock()
	defer sharedMu.Unlock()
	if c, ok := sharedCounters[encoding]; ok {
		return c
	}
	c := NewTiktokenCounter(encoding, logger)
	sharedCounters[encoding] = c
	return c
}
