// Package summary implements the summary use cases: accepting URLs for
// background summarization, summarizing raw text, and managing stored
// summaries.
package summary

import "errors"

// Sentinel errors for summary use case operations.
var (
	// ErrSummaryNotFound indicates that the requested summary was not found,
	// or that a keyword search matched nothing.
	ErrSummaryNotFound = errors.New("summary not found")

	// ErrInvalidSummaryID indicates that the provided summary ID is invalid.
	// Summary IDs must be positive integers.
	ErrInvalidSummaryID = errors.New("invalid summary ID")

	// ErrEmptyText indicates that text submitted for summarization is blank.
	ErrEmptyText = errors.New("text is required")
)
