package questions

import (
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/aeolab/beacon/pkg/query"
	"github.com/aeolab/beacon/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "questions", "q").
	Project("id", "ID").
	Project("brand_id", "BrandID").
	Project("source_keyword", "SourceKeyword").
	Project("question_text", "QuestionText").
	Project("category", "Category").
	Project("intent", "Intent").
	Project("priority", "Priority").
	Project("is_active", "IsActive").
	Project("notes", "Notes").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "Priority",
	Descending: true,
}

// Filters contains optional filtering criteria for question queries.
// Nil fields are ignored.
type Filters struct {
	BrandID  *uuid.UUID `json:"brand_id,omitempty"`
	Category *string    `json:"category,omitempty"`
	Intent   *string    `json:"intent,omitempty"`
	IsActive *bool      `json:"is_active,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("BrandID", f.BrandID).
		WhereEquals("Category", f.Category).
		WhereEquals("Intent", f.Intent).
		WhereEquals("IsActive", f.IsActive)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if b := values.Get("brand_id"); b != "" {
		if id, err := uuid.Parse(b); err == nil {
			f.BrandID = &id
		}
	}

	if c := values.Get("category"); c != "" {
		f.Category = &c
	}

	if i := values.Get("intent"); i != "" {
		f.Intent = &i
	}

	if a := values.Get("is_active"); a != "" {
		if active, err := strconv.ParseBool(a); err == nil {
			f.IsActive = &active
		}
	}

	return f
}

func scanQuestion(s repository.Scanner) (Question, error) {
	var q Question

	err := s.Scan(
		&q.ID,
		&q.BrandID,
		&q.SourceKeyword,
		&q.QuestionText,
		&q.Category,
		&q.Intent,
		&q.Priority,
		&q.IsActive,
		&q.Notes,
		&q.CreatedAt,
		&q.UpdatedAt,
	)

	return q, err
}
