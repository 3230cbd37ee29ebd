package experiments

import (
	"time"

	"github.com/google/uuid"

	"github.com/aeolab/beacon/internal/visibility"
)

// Observation is the slice of a visibility check the analyzer needs: when it
// ran, which provider produced it, and how it scored.
type Observation struct {
	Provider  string
	Status    visibility.Status
	Score     int
	CheckedAt time.Time
}

// Results is the control-vs-test comparison for one experiment.
type Results struct {
	ExperimentID   uuid.UUID `json:"experiment_id"`
	ExperimentName string    `json:"experiment_name"`

	ControlChecks       int     `json:"control_checks"`
	ControlAvgScore     float64 `json:"control_avg_score"`
	ControlFeaturedRate float64 `json:"control_featured_rate"`

	TestChecks       int     `json:"test_checks"`
	TestAvgScore     float64 `json:"test_avg_score"`
	TestFeaturedRate float64 `json:"test_featured_rate"`

	// ScoreChange is the percentage change of the average score. With a zero
	// control baseline it reports 100 for any improvement and 0 otherwise.
	ScoreChange         float64 `json:"score_change"`
	ScoreChangeAbsolute float64 `json:"score_change_absolute"`
	FeaturedRateChange  float64 `json:"featured_rate_change"`

	IsSignificant   bool       `json:"is_significant"`
	PValue          *float64   `json:"p_value"`
	ConfidenceLevel Confidence `json:"confidence_level"`

	ByProvider map[string]ProviderComparison `json:"by_provider"`
}

// ProviderComparison breaks the comparison down for a single LLM provider.
type ProviderComparison struct {
	ControlAvg   float64 `json:"control_avg"`
	TestAvg      float64 `json:"test_avg"`
	Change       float64 `json:"change"`
	ControlCount int     `json:"control_count"`
	TestCount    int     `json:"test_count"`
}

// analyze partitions observations into the control and test windows and
// computes the full comparison. Window bounds are inclusive and applied
// independently: when windows overlap, an observation inside both counts in
// both partitions. Zero observations produce a well-typed empty result rather
// than an error.
func analyze(exp *Experiment, observations []Observation, minSamples int) Results {
	var control, test []Observation
	for _, ob := range observations {
		if inWindow(ob.CheckedAt, exp.ControlStart, exp.ControlEnd) {
			control = append(control, ob)
		}
		if inWindow(ob.CheckedAt, exp.TestStart, exp.TestEnd) {
			test = append(test, ob)
		}
	}

	controlScores := scores(control)
	testScores := scores(test)

	controlAvg := mean(controlScores)
	testAvg := mean(testScores)

	var scoreChange float64
	switch {
	case controlAvg > 0:
		scoreChange = (testAvg - controlAvg) / controlAvg * 100
	case testAvg > 0:
		scoreChange = 100
	}

	controlFeatured := featuredRate(control)
	testFeatured := featuredRate(test)

	verdict := approxSignificance(controlScores, testScores, minSamples)

	return Results{
		ExperimentID:        exp.ID,
		ExperimentName:      exp.Name,
		ControlChecks:       len(control),
		ControlAvgScore:     controlAvg,
		ControlFeaturedRate: controlFeatured,
		TestChecks:          len(test),
		TestAvgScore:        testAvg,
		TestFeaturedRate:    testFeatured,
		ScoreChange:         scoreChange,
		ScoreChangeAbsolute: testAvg - controlAvg,
		FeaturedRateChange:  testFeatured - controlFeatured,
		IsSignificant:       verdict.significant,
		PValue:              verdict.pValue,
		ConfidenceLevel:     verdict.confidence,
		ByProvider:          compareProviders(control, test),
	}
}

func inWindow(t time.Time, start, end *time.Time) bool {
	if start == nil || end == nil {
		return false
	}
	return !t.Before(*start) && !t.After(*end)
}

func scores(observations []Observation) []float64 {
	out := make([]float64, len(observations))
	for i, ob := range observations {
		out[i] = float64(ob.Score)
	}
	return out
}

func featuredRate(observations []Observation) float64 {
	if len(observations) == 0 {
		return 0
	}
	featured := 0
	for _, ob := range observations {
		if ob.Status == visibility.StatusFeatured {
			featured++
		}
	}
	return float64(featured) / float64(len(observations))
}

// compareProviders reports control/test averages per provider present in
// either partition.
func compareProviders(control, test []Observation) map[string]ProviderComparison {
	controlByProvider := groupScores(control)
	testByProvider := groupScores(test)

	providers := make(map[string]struct{})
	for p := range controlByProvider {
		providers[p] = struct{}{}
	}
	for p := range testByProvider {
		providers[p] = struct{}{}
	}

	out := make(map[string]ProviderComparison, len(providers))
	for p := range providers {
		controlAvg := mean(controlByProvider[p])
		testAvg := mean(testByProvider[p])
		out[p] = ProviderComparison{
			ControlAvg:   controlAvg,
			TestAvg:      testAvg,
			Change:       testAvg - controlAvg,
			ControlCount: len(controlByProvider[p]),
			TestCount:    len(testByProvider[p]),
		}
	}
	return out
}

func groupScores(observations []Observation) map[string][]float64 {
	out := make(map[string][]float64)
	for _, ob := range observations {
		out[ob.Provider] = append(out[ob.Provider], float64(ob.Score))
	}
	return out
}
