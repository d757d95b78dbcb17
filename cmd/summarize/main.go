// Package main summarizes a document from the command line.
// Usage: summarize [-n N] [-chunk [-budget B]] [-abstractive] [-output json] [-file path]
//
// Text is read from -file or, when omitted, from stdin.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/gianpd/summarizerAI/internal/chunk"
	"github.com/gianpd/summarizerAI/internal/extractive"
	"github.com/gianpd/summarizerAI/internal/infra/huggingface"
	"github.com/gianpd/summarizerAI/internal/infra/summarizer"
	"github.com/gianpd/summarizerAI/internal/observability/logging"
	"github.com/gianpd/summarizerAI/internal/usecase/summary"
	"github.com/gianpd/summarizerAI/pkg/config"
)

// Output is the -output json shape.
type Output struct {
	Summary  string   `json:"summary,omitempty"`
	Strategy string   `json:"strategy,omitempty"`
	Chunks   []string `json:"chunks,omitempty"`
}

type options struct {
	sentences   int
	chunk       bool
	budget      int
	tokenizer   string
	abstractive bool
	output      string
	file        string
	timeout     time.Duration
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	logger := logging.New(stderr, logging.ParseLevel(os.Getenv("LOG_LEVEL")), logging.FormatText)

	text, err := readInput(opts.file, stdin)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), opts.timeout)
	defer cancel()

	out, err := execute(ctx, opts, text, logger)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if opts.output == "json" {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			fmt.Fprintf(stderr, "Error: failed to encode JSON: %v\n", err)
			return 1
		}
		return 0
	}
	outputText(stdout, out)
	return 0
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("summarize", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVar(&opts.sentences, "n", extractive.DefaultSentenceCount, "Number of sentences in the extractive summary")
	fs.BoolVar(&opts.chunk, "chunk", false, "Print token-bounded chunks instead of a summary")
	fs.IntVar(&opts.budget, "budget", chunk.DefaultBudget, "Token budget per chunk")
	fs.StringVar(&opts.tokenizer, "tokenizer", "tiktoken", "Token counter: tiktoken or whitespace")
	fs.BoolVar(&opts.abstractive, "abstractive", false, "Summarize chunks with ABSTRACTIVE_PROVIDER instead of extracting sentences")
	fs.StringVar(&opts.output, "output", "text", "Output format: text or json")
	fs.StringVar(&opts.file, "file", "", "Read text from this file instead of stdin")
	fs.DurationVar(&opts.timeout, "timeout", 2*time.Minute, "Overall deadline for abstractive calls")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: summarize [-n N] [-chunk [-budget B]] [-abstractive] [-output json] [-file path]")
		fmt.Fprintln(stderr, "")
		fmt.Fprintln(stderr, "Examples:")
		fmt.Fprintln(stderr, "  summarize -file article.txt")
		fmt.Fprintln(stderr, "  cat article.txt | summarize -n 3 -output json")
		fmt.Fprintln(stderr, "  summarize -chunk -budget 512 -file article.txt")
		fmt.Fprintln(stderr, "")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	switch {
	case opts.output != "text" && opts.output != "json":
		err := fmt.Errorf("invalid output %q (must be 'text' or 'json')", opts.output)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return opts, err
	case opts.tokenizer != "tiktoken" && opts.tokenizer != "whitespace":
		err := fmt.Errorf("invalid tokenizer %q (must be 'tiktoken' or 'whitespace')", opts.tokenizer)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return opts, err
	}
	return opts, nil
}

func readInput(path string, stdin io.Reader) (string, error) {
	if path == "" {
		raw, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(raw), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(raw), nil
}

func execute(ctx context.Context, opts options, text string, logger *slog.Logger) (Output, error) {
	counter := tokenCounter(opts.tokenizer, logger)

	if opts.chunk {
		chunks, err := chunk.New(counter, opts.budget).Chunk(text)
		if err != nil {
			return Output{}, err
		}
		if tc, ok := counter.(*chunk.TiktokenCounter); ok && !tc.Ready() {
			logger.Warn("tokenizer vocabulary unavailable, chunks were sized by whitespace words")
		}
		return Output{Chunks: chunks}, nil
	}

	if opts.abstractive {
		s, err := abstractiveSummarizer(logger)
		if err != nil {
			return Output{}, err
		}
		abs := &summary.ChunkedAbstractor{Chunker: chunk.New(counter, opts.budget), Summarizer: s}
		text, err := abs.Summarize(ctx, text)
		if err != nil {
			return Output{}, err
		}
		return Output{Summary: text, Strategy: "abstractive"}, nil
	}

	outcome, err := extractive.NewDefault(logger).Run(text, opts.sentences)
	if err != nil {
		return Output{}, err
	}
	return Output{Summary: outcome.Summary, Strategy: outcome.Strategy}, nil
}

func tokenCounter(name string, logger *slog.Logger) chunk.TokenCounter {
	if name == "whitespace" {
		return chunk.WhitespaceCounter{}
	}
	return chunk.Shared(config.GetEnvString("TOKENIZER_ENCODING", chunk.DefaultEncoding), logger)
}

func abstractiveSummarizer(logger *slog.Logger) (summarizer.Summarizer, error) {
	provider, err := summarizer.ParseProvider(config.GetEnvString("ABSTRACTIVE_PROVIDER", ""))
	if err != nil {
		return nil, err
	}
	if provider == summarizer.ProviderNone {
		return nil, errors.New("-abstractive needs ABSTRACTIVE_PROVIDER (huggingface, claude, openai or noop)")
	}
	var hf *huggingface.Client
	if provider == summarizer.ProviderHuggingFace {
		hfCfg, err := huggingface.LoadConfigFromEnv()
		if err != nil {
			return nil, err
		}
		hf = huggingface.NewClient("summarizer", hfCfg, logger)
	}
	return summarizer.FromEnv(provider, hf, logger)
}

func outputText(w io.Writer, out Output) {
	if out.Chunks != nil {
		for i, c := range out.Chunks {
			fmt.Fprintf(w, "--- chunk %d ---\n%s\n", i+1, c)
		}
		return
	}
	fmt.Fprintln(w, out.Summary)
}
