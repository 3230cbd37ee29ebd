// Package questions implements the question domain for Beacon. Questions are
// the natural-language prompts sent to LLM providers during visibility
// checks, typically derived from the paid search keywords a brand already
// bids on.
package questions

import (
	"time"

	"github.com/google/uuid"
)

// Question represents one tracked question for a brand.
type Question struct {
	ID      uuid.UUID `json:"id"`
	BrandID uuid.UUID `json:"brand_id"`

	SourceKeyword string `json:"source_keyword"`
	QuestionText  string `json:"question_text"`
	Category      string `json:"category"`
	Intent        string `json:"intent"`

	Priority int    `json:"priority"`
	IsActive bool   `json:"is_active"`
	Notes    string `json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateCommand carries the data needed to register a new question.
// Priority defaults to 5 when zero; new questions are active.
type CreateCommand struct {
	BrandID       uuid.UUID `json:"brand_id"`
	SourceKeyword string    `json:"source_keyword"`
	QuestionText  string    `json:"question_text"`
	Category      string    `json:"category"`
	Intent        string    `json:"intent"`
	Priority      int       `json:"priority"`
	Notes         string    `json:"notes"`
}

// UpdateCommand carries replacement values for an existing question.
type UpdateCommand struct {
	SourceKeyword string `json:"source_keyword"`
	QuestionText  string `json:"question_text"`
	Category      string `json:"category"`
	Intent        string `json:"intent"`
	Priority      int    `json:"priority"`
	IsActive      bool   `json:"is_active"`
	Notes         string `json:"notes"`
}

// GenerateCommand requests candidate questions for a keyword without
// persisting anything.
type GenerateCommand struct {
	Keyword    string `json:"keyword"`
	Variations int    `json:"variations"`
}
