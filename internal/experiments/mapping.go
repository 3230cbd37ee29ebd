package experiments

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/google/uuid"

	"github.com/aeolab/beacon/pkg/query"
	"github.com/aeolab/beacon/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "experiments", "e").
	Project("id", "ID").
	Project("brand_id", "BrandID").
	Project("name", "Name").
	Project("description", "Description").
	Project("hypothesis", "Hypothesis").
	Project("target_question_ids", "TargetQuestionIDs").
	Project("content_intervention", "ContentIntervention").
	Project("content_ids", "ContentIDs").
	Project("control_start", "ControlStart").
	Project("control_end", "ControlEnd").
	Project("test_start", "TestStart").
	Project("test_end", "TestEnd").
	Project("status", "Status").
	Project("control_avg_score", "ControlAvgScore").
	Project("test_avg_score", "TestAvgScore").
	Project("score_change", "ScoreChange").
	Project("is_significant", "IsSignificant").
	Project("p_value", "PValue").
	Project("conclusion", "Conclusion").
	Project("learnings", "Learnings").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for experiment queries.
// Nil fields are ignored. All fields use exact matching.
type Filters struct {
	BrandID *uuid.UUID `json:"brand_id,omitempty"`
	Status  *string    `json:"status,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("BrandID", f.BrandID).
		WhereEquals("Status", f.Status)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if b := values.Get("brand_id"); b != "" {
		if id, err := uuid.Parse(b); err == nil {
			f.BrandID = &id
		}
	}

	if s := values.Get("status"); s != "" {
		f.Status = &s
	}

	return f
}

func scanExperiment(s repository.Scanner) (Experiment, error) {
	var e Experiment
	var questionsRaw, contentsRaw []byte

	err := s.Scan(
		&e.ID,
		&e.BrandID,
		&e.Name,
		&e.Description,
		&e.Hypothesis,
		&questionsRaw,
		&e.ContentIntervention,
		&contentsRaw,
		&e.ControlStart,
		&e.ControlEnd,
		&e.TestStart,
		&e.TestEnd,
		&e.Status,
		&e.ControlAvgScore,
		&e.TestAvgScore,
		&e.ScoreChange,
		&e.IsSignificant,
		&e.PValue,
		&e.Conclusion,
		&e.Learnings,
		&e.CreatedAt,
		&e.UpdatedAt,
	)

	if err != nil {
		return e, err
	}

	if len(questionsRaw) > 0 {
		if err := json.Unmarshal(questionsRaw, &e.TargetQuestionIDs); err != nil {
			return e, fmt.Errorf("unmarshal target_question_ids: %w", err)
		}
	}
	if e.TargetQuestionIDs == nil {
		e.TargetQuestionIDs = []uuid.UUID{}
	}

	if len(contentsRaw) > 0 {
		if err := json.Unmarshal(contentsRaw, &e.ContentIDs); err != nil {
			return e, fmt.Errorf("unmarshal content_ids: %w", err)
		}
	}
	if e.ContentIDs == nil {
		e.ContentIDs = []uuid.UUID{}
	}

	return e, nil
}

func scanObservation(s repository.Scanner) (Observation, error) {
	var ob Observation
	err := s.Scan(&ob.Provider, &ob.Status, &ob.Score, &ob.CheckedAt)
	return ob, err
}
