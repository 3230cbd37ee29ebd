package checks

import (
	"testing"

	"github.com/google/uuid"

	"github.com/aeolab/beacon/internal/visibility"
)

func TestSummarizeEmpty(t *testing.T) {
	brandID := uuid.New()

	s := summarize(brandID, 30, nil)

	if s.BrandID != brandID {
		t.Errorf("brand id: got %s, want %s", s.BrandID, brandID)
	}
	if s.TotalChecks != 0 {
		t.Errorf("total checks: got %d, want 0", s.TotalChecks)
	}
	if s.AvgScore != 0 {
		t.Errorf("avg score: got %f, want 0", s.AvgScore)
	}
	if len(s.ByProvider) != 0 {
		t.Errorf("providers: got %d, want 0", len(s.ByProvider))
	}
}

func TestSummarizeAggregates(t *testing.T) {
	rows := []summaryRow{
		{Provider: "openai", Status: visibility.StatusFeatured, Score: 100},
		{Provider: "openai", Status: visibility.StatusMentioned, Score: 70},
		{Provider: "openai", Status: visibility.StatusNotFound, Score: 0},
		{Provider: "anthropic", Status: visibility.StatusListed, Score: 40},
	}

	s := summarize(uuid.New(), 7, rows)

	if s.Days != 7 {
		t.Errorf("days: got %d, want 7", s.Days)
	}
	if s.TotalChecks != 4 {
		t.Errorf("total checks: got %d, want 4", s.TotalChecks)
	}
	if s.AvgScore != 52.5 {
		t.Errorf("avg score: got %f, want 52.5", s.AvgScore)
	}

	openai := s.ByProvider["openai"]
	if openai.Checks != 3 {
		t.Errorf("openai checks: got %d, want 3", openai.Checks)
	}
	if diff := openai.AvgScore - 170.0/3.0; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("openai avg: got %f, want %f", openai.AvgScore, 170.0/3.0)
	}
	if openai.Statuses[visibility.StatusFeatured] != 1 {
		t.Errorf("openai featured tally: got %d, want 1", openai.Statuses[visibility.StatusFeatured])
	}

	anthropic := s.ByProvider["anthropic"]
	if anthropic.Checks != 1 || anthropic.AvgScore != 40 {
		t.Errorf("anthropic summary: got %+v", anthropic)
	}
}
