package checks

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/google/uuid"

	"github.com/aeolab/beacon/pkg/query"
	"github.com/aeolab/beacon/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "visibility_checks", "vc").
	Project("id", "ID").
	Project("question_id", "QuestionID").
	Project("experiment_id", "ExperimentID").
	Project("provider", "Provider").
	Project("model", "Model").
	Project("response_text", "ResponseText").
	Project("status", "Status").
	Project("score", "Score").
	Project("position", "Position").
	Project("total_items", "TotalItems").
	Project("competitor_count", "CompetitorCount").
	Project("cited_sources", "CitedSources").
	Project("competitors_found", "CompetitorsFound").
	Project("context", "Context").
	Project("checked_at", "CheckedAt")

var defaultSort = query.SortField{
	Field:      "CheckedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for check queries.
// Nil fields are ignored.
type Filters struct {
	QuestionID   *uuid.UUID `json:"question_id,omitempty"`
	ExperimentID *uuid.UUID `json:"experiment_id,omitempty"`
	Provider     *string    `json:"provider,omitempty"`
	Status       *string    `json:"status,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("QuestionID", f.QuestionID).
		WhereEquals("ExperimentID", f.ExperimentID).
		WhereEquals("Provider", f.Provider).
		WhereEquals("Status", f.Status)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if q := values.Get("question_id"); q != "" {
		if id, err := uuid.Parse(q); err == nil {
			f.QuestionID = &id
		}
	}

	if e := values.Get("experiment_id"); e != "" {
		if id, err := uuid.Parse(e); err == nil {
			f.ExperimentID = &id
		}
	}

	if p := values.Get("provider"); p != "" {
		f.Provider = &p
	}

	if s := values.Get("status"); s != "" {
		f.Status = &s
	}

	return f
}

func scanCheck(s repository.Scanner) (Check, error) {
	var c Check
	var sourcesRaw, competitorsRaw []byte

	err := s.Scan(
		&c.ID,
		&c.QuestionID,
		&c.ExperimentID,
		&c.Provider,
		&c.Model,
		&c.ResponseText,
		&c.Status,
		&c.Score,
		&c.Position,
		&c.TotalItems,
		&c.CompetitorCount,
		&sourcesRaw,
		&competitorsRaw,
		&c.Context,
		&c.CheckedAt,
	)

	if err != nil {
		return c, err
	}

	if len(sourcesRaw) > 0 {
		if err := json.Unmarshal(sourcesRaw, &c.CitedSources); err != nil {
			return c, fmt.Errorf("unmarshal cited_sources: %w", err)
		}
	}
	if c.CitedSources == nil {
		c.CitedSources = []string{}
	}

	if len(competitorsRaw) > 0 {
		if err := json.Unmarshal(competitorsRaw, &c.CompetitorsFound); err != nil {
			return c, fmt.Errorf("unmarshal competitors_found: %w", err)
		}
	}
	if c.CompetitorsFound == nil {
		c.CompetitorsFound = []string{}
	}

	return c, nil
}
