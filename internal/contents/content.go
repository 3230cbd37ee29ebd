// Package contents implements the content domain for Beacon. Content pieces
// are the interventions an experiment deploys: articles, comparison pages,
// documentation, whatever is published to influence how LLMs answer the
// brand's target questions.
package contents

import (
	"time"

	"github.com/google/uuid"
)

// Content represents one published or planned content piece for a brand.
type Content struct {
	ID      uuid.UUID `json:"id"`
	BrandID uuid.UUID `json:"brand_id"`

	Title       string `json:"title"`
	ContentType string `json:"content_type"`
	URL         string `json:"url"`
	Platform    string `json:"platform"`
	Description string `json:"description"`

	TargetKeywords    []string    `json:"target_keywords"`
	TargetQuestionIDs []uuid.UUID `json:"target_question_ids"`

	PublishedAt *time.Time `json:"published_at,omitempty"`
	IsPublished bool       `json:"is_published"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateCommand carries the data needed to register a new content piece.
type CreateCommand struct {
	BrandID           uuid.UUID   `json:"brand_id"`
	Title             string      `json:"title"`
	ContentType       string      `json:"content_type"`
	URL               string      `json:"url"`
	Platform          string      `json:"platform"`
	Description       string      `json:"description"`
	TargetKeywords    []string    `json:"target_keywords"`
	TargetQuestionIDs []uuid.UUID `json:"target_question_ids"`
}

// UpdateCommand carries replacement values for an existing content piece.
// Setting IsPublished stamps PublishedAt on the first publish.
type UpdateCommand struct {
	Title             string      `json:"title"`
	ContentType       string      `json:"content_type"`
	URL               string      `json:"url"`
	Platform          string      `json:"platform"`
	Description       string      `json:"description"`
	TargetKeywords    []string    `json:"target_keywords"`
	TargetQuestionIDs []uuid.UUID `json:"target_question_ids"`
	IsPublished       bool        `json:"is_published"`
}
