// Package experiments implements the experiment domain for Beacon.
// It provides types, data access, and analysis logic for control-vs-test
// content experiments: lifecycle management, partitioning visibility checks
// into measurement windows, aggregate comparison, and an approximate
// significance verdict.
package experiments

import (
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of an experiment. Status advances
// monotonically through draft → control_period → test_period → completed;
// cancelled is reachable from any non-terminal state.
type Status string

const (
	StatusDraft         Status = "draft"
	StatusControlPeriod Status = "control_period"
	StatusTestPeriod    Status = "test_period"
	StatusCompleted     Status = "completed"
	StatusCancelled     Status = "cancelled"
)

// Terminal reports whether no further transitions are allowed.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransition reports whether the lifecycle permits moving to the target
// status. Completion is allowed from any non-terminal state so that an
// experiment can be frozen early for analysis.
func (s Status) CanTransition(to Status) bool {
	if s.Terminal() {
		return false
	}
	switch to {
	case StatusControlPeriod:
		return s == StatusDraft
	case StatusTestPeriod:
		return s == StatusControlPeriod
	case StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// Experiment represents a content experiment for one brand. The rollup fields
// (ControlAvgScore through PValue) are a derived cache written by Analyze;
// they can be recomputed from the check history at any time and are never the
// source of truth.
type Experiment struct {
	ID      uuid.UUID `json:"id"`
	BrandID uuid.UUID `json:"brand_id"`

	Name        string `json:"name"`
	Description string `json:"description"`
	Hypothesis  string `json:"hypothesis"`

	TargetQuestionIDs []uuid.UUID `json:"target_question_ids"`

	ContentIntervention string      `json:"content_intervention"`
	ContentIDs          []uuid.UUID `json:"content_ids"`

	ControlStart *time.Time `json:"control_start"`
	ControlEnd   *time.Time `json:"control_end"`
	TestStart    *time.Time `json:"test_start"`
	TestEnd      *time.Time `json:"test_end"`

	Status Status `json:"status"`

	ControlAvgScore *float64 `json:"control_avg_score"`
	TestAvgScore    *float64 `json:"test_avg_score"`
	ScoreChange     *float64 `json:"score_change"`
	IsSignificant   *bool    `json:"is_significant"`
	PValue          *float64 `json:"p_value"`

	Conclusion string `json:"conclusion"`
	Learnings  string `json:"learnings"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateCommand carries the data needed to register a new experiment in draft.
type CreateCommand struct {
	BrandID           uuid.UUID   `json:"brand_id"`
	Name              string      `json:"name"`
	Description       string      `json:"description"`
	Hypothesis        string      `json:"hypothesis"`
	TargetQuestionIDs []uuid.UUID `json:"target_question_ids"`
}

// StartTestCommand carries the content intervention recorded when the test
// period begins.
type StartTestCommand struct {
	ContentIntervention string      `json:"content_intervention"`
	ContentIDs          []uuid.UUID `json:"content_ids"`
}

// ConcludeCommand carries optional human conclusions recorded on completion.
type ConcludeCommand struct {
	Conclusion string `json:"conclusion"`
	Learnings  string `json:"learnings"`
}

// Progress summarizes where an experiment currently stands.
type Progress struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Status        Status    `json:"status"`
	Hypothesis    string    `json:"hypothesis"`
	DaysRemaining *int      `json:"days_remaining,omitempty"`
	ScoreChange   *float64  `json:"score_change,omitempty"`
	IsSignificant *bool     `json:"is_significant,omitempty"`
}

// ProgressAt computes the progress view at the given instant. During an
// active period it reports whole days remaining in that period's window,
// clamped at zero.
func (e *Experiment) ProgressAt(now time.Time) Progress {
	p := Progress{
		ID:         e.ID,
		Name:       e.Name,
		Status:     e.Status,
		Hypothesis: e.Hypothesis,
	}

	switch e.Status {
	case StatusControlPeriod:
		p.DaysRemaining = daysRemaining(e.ControlEnd, now)
	case StatusTestPeriod:
		p.DaysRemaining = daysRemaining(e.TestEnd, now)
	case StatusCompleted:
		p.ScoreChange = e.ScoreChange
		p.IsSignificant = e.IsSignificant
	}

	return p
}

func daysRemaining(end *time.Time, now time.Time) *int {
	if end == nil {
		return nil
	}
	days := int(end.Sub(now).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return &days
}
