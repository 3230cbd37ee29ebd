// Package checks implements the visibility check domain for Beacon: recording
// classifier results as immutable history rows, running check batches across
// providers, and summarizing recent visibility for a brand.
package checks

import (
	"time"

	"github.com/google/uuid"

	"github.com/aeolab/beacon/internal/visibility"
)

// Check is one recorded visibility measurement: a single provider's answer to
// a single question, classified. Rows are immutable after insert; corrections
// come from re-running checks, never from editing history.
type Check struct {
	ID           uuid.UUID  `json:"id"`
	QuestionID   uuid.UUID  `json:"question_id"`
	ExperimentID *uuid.UUID `json:"experiment_id,omitempty"`

	Provider     string `json:"provider"`
	Model        string `json:"model"`
	ResponseText string `json:"response_text"`

	Status     visibility.Status `json:"status"`
	Score      int               `json:"score"`
	Position   *int              `json:"position,omitempty"`
	TotalItems *int              `json:"total_items,omitempty"`

	CompetitorCount  int      `json:"competitor_count"`
	CitedSources     []string `json:"cited_sources"`
	CompetitorsFound []string `json:"competitors_found"`
	Context          string   `json:"context"`

	CheckedAt time.Time `json:"checked_at"`
}

// RecordCommand persists one classifier result against a question.
type RecordCommand struct {
	QuestionID   uuid.UUID         `json:"question_id"`
	ExperimentID *uuid.UUID        `json:"experiment_id,omitempty"`
	Result       visibility.Result `json:"result"`
}

// RunCommand requests a check batch for a brand. Empty QuestionIDs means all
// of the brand's active questions; empty Providers means every registered
// provider.
type RunCommand struct {
	BrandID      uuid.UUID   `json:"brand_id"`
	QuestionIDs  []uuid.UUID `json:"question_ids,omitempty"`
	Providers    []string    `json:"providers,omitempty"`
	ExperimentID *uuid.UUID  `json:"experiment_id,omitempty"`
}

// RunReport summarizes one batch run. Failed counts provider calls that
// errored and were skipped; their question/provider pairs produce no rows.
type RunReport struct {
	BrandID   uuid.UUID `json:"brand_id"`
	Questions int       `json:"questions"`
	Providers []string  `json:"providers"`
	Recorded  int       `json:"recorded"`
	Failed    int       `json:"failed"`
	Checks    []Check   `json:"checks"`
}

// Summary is a trailing-window aggregate of a brand's checks.
type Summary struct {
	BrandID     uuid.UUID                  `json:"brand_id"`
	Days        int                        `json:"days"`
	TotalChecks int                        `json:"total_checks"`
	AvgScore    float64                    `json:"avg_score"`
	ByProvider  map[string]ProviderSummary `json:"by_provider"`
}

// ProviderSummary aggregates one provider's checks within the summary window.
type ProviderSummary struct {
	Checks   int                       `json:"checks"`
	AvgScore float64                   `json:"avg_score"`
	Statuses map[visibility.Status]int `json:"statuses"`
}
