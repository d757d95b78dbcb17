// Package summary provides HTTP handlers for the summary endpoints: URL and
// text summarization, lookup, keyword search, updates and deletion, plus the
// document chunking endpoint.
package summary

import (
	"time"

	"github.com/gianpd/summarizerAI/internal/domain/entity"
)

// DTO represents the JSON structure for summary data transfer.
// Summary is null while the summary is still being generated.
type DTO struct {
	ID        int64      `json:"id"`
	URL       string     `json:"url"`
	Summary   *string    `json:"summary"`
	KeyTop    string     `json:"key_top"`
	Keywords  string     `json:"keywords"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

func toDTO(s *entity.Summary) DTO {
	out := DTO{
		ID:        s.ID,
		URL:       s.URL,
		KeyTop:    s.KeyTop,
		Keywords:  s.Keywords,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
	if !s.Pending() {
		text := s.Summary
		out.Summary = &text
	}
	return out
}

func toDTOs(items []*entity.Summary) []DTO {
	out := make([]DTO, 0, len(items))
	for _, s := range items {
		out = append(out, toDTO(s))
	}
	return out
}

// TextRequest is the body of POST /summaries/text.
type TextRequest struct {
	Text string `json:"text"`
}

// TextResponse echoes the text with its summary.
type TextResponse struct {
	Text    string `json:"text"`
	Summary string `json:"summary"`
}

// CreateRequest is the body of POST /summaries.
type CreateRequest struct {
	URL string `json:"url"`
}

// UpdateRequest is the body of PUT /summaries/{id}; absent fields are left unchanged.
type UpdateRequest struct {
	URL      *string `json:"url"`
	Summary  *string `json:"summary"`
	KeyTop   *string `json:"key_top"`
	Keywords *string `json:"keywords"`
}

// ChunkRequest is the body of POST /chunks. A zero TokenBudget selects the
// server default.
type ChunkRequest struct {
	Text        string `json:"text"`
	TokenBudget int    `json:"token_budget"`
}

// ChunkResponse lists the chunks in document order.
type ChunkResponse struct {
	Chunks      []string `json:"chunks"`
	Count       int      `json:"count"`
	TokenBudget int      `json:"token_budget"`
}
