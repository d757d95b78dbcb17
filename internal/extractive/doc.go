// Package extractive builds extractive summaries: summaries made of verbatim
// sentences selected from the source document.
//
// Three strategies are provided, tried in order by Summarizer:
//
//   - Frequency: sentences are scored by the normalized frequency of their
//     salient words and the top n are emitted in original order.
//   - LSA: sentences are ranked by latent semantic analysis over a stemmed
//     term-sentence matrix.
//   - Naive: the first n fragments split on '.'.
//
// Every strategy is a pure function of its input and safe for concurrent use.
// Only an invalid sentence count is reported to the caller as an error; any
// other problem makes the orchestrator move to the next strategy.
package extractive
