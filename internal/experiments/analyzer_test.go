package experiments

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/aeolab/beacon/internal/visibility"
)

var (
	controlStart = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	controlEnd   = controlStart.AddDate(0, 0, 14)
	testStart    = controlEnd.AddDate(0, 0, 1)
	testEnd      = testStart.AddDate(0, 0, 28)
)

func windowedExperiment() *Experiment {
	return &Experiment{
		ID:           uuid.New(),
		Name:         "youtube tutorial test",
		Status:       StatusTestPeriod,
		ControlStart: &controlStart,
		ControlEnd:   &controlEnd,
		TestStart:    &testStart,
		TestEnd:      &testEnd,
	}
}

func controlObs(provider string, score int, status visibility.Status) Observation {
	return Observation{Provider: provider, Score: score, Status: status, CheckedAt: controlStart.Add(time.Hour)}
}

func testObs(provider string, score int, status visibility.Status) Observation {
	return Observation{Provider: provider, Score: score, Status: status, CheckedAt: testStart.Add(time.Hour)}
}

func repeat(n int, fn func() Observation) []Observation {
	out := make([]Observation, 0, n)
	for range n {
		out = append(out, fn())
	}
	return out
}

func TestAnalyzeEmptyExperiment(t *testing.T) {
	exp := windowedExperiment()

	r := analyze(exp, nil, 5)

	if r.ControlChecks != 0 || r.TestChecks != 0 {
		t.Errorf("counts: got %d/%d, want 0/0", r.ControlChecks, r.TestChecks)
	}
	if r.ControlAvgScore != 0 || r.TestAvgScore != 0 {
		t.Errorf("averages: got %v/%v, want 0/0", r.ControlAvgScore, r.TestAvgScore)
	}
	if r.ScoreChange != 0 {
		t.Errorf("score change: got %v, want 0", r.ScoreChange)
	}
	if r.IsSignificant {
		t.Error("empty experiment must not be significant")
	}
	if r.PValue != nil {
		t.Errorf("p-value: got %v, want nil", *r.PValue)
	}
	if r.ConfidenceLevel != ConfidenceInsufficientData {
		t.Errorf("confidence: got %q, want insufficient_data", r.ConfidenceLevel)
	}
	if r.ByProvider == nil || len(r.ByProvider) != 0 {
		t.Errorf("by-provider: got %v, want empty map", r.ByProvider)
	}
}

func TestAnalyzePartitioning(t *testing.T) {
	exp := windowedExperiment()

	obs := []Observation{
		// Inclusive boundaries land inside their window.
		{Provider: "openai", Score: 40, Status: visibility.StatusListed, CheckedAt: controlStart},
		{Provider: "openai", Score: 40, Status: visibility.StatusListed, CheckedAt: controlEnd},
		{Provider: "openai", Score: 70, Status: visibility.StatusMentioned, CheckedAt: testStart},
		// Outside both windows: excluded entirely.
		{Provider: "openai", Score: 100, Status: visibility.StatusFeatured, CheckedAt: controlStart.Add(-time.Hour)},
		{Provider: "openai", Score: 100, Status: visibility.StatusFeatured, CheckedAt: testEnd.Add(time.Hour)},
	}

	r := analyze(exp, obs, 5)

	if r.ControlChecks != 2 {
		t.Errorf("control checks: got %d, want 2", r.ControlChecks)
	}
	if r.TestChecks != 1 {
		t.Errorf("test checks: got %d, want 1", r.TestChecks)
	}
	if r.ControlAvgScore != 40 {
		t.Errorf("control avg: got %v, want 40", r.ControlAvgScore)
	}
	if r.TestAvgScore != 70 {
		t.Errorf("test avg: got %v, want 70", r.TestAvgScore)
	}
}

func TestAnalyzeOverlappingWindowsDoubleCount(t *testing.T) {
	// Overlapping windows are applied independently; a check inside both
	// counts in both partitions. This mirrors the historical behavior and is
	// deliberately not deduplicated.
	exp := windowedExperiment()
	overlapStart := controlStart
	overlapEnd := controlEnd
	exp.TestStart = &overlapStart
	exp.TestEnd = &overlapEnd

	obs := []Observation{controlObs("openai", 70, visibility.StatusMentioned)}

	r := analyze(exp, obs, 5)

	if r.ControlChecks != 1 || r.TestChecks != 1 {
		t.Errorf("counts: got %d/%d, want 1/1 (double counted)", r.ControlChecks, r.TestChecks)
	}
}

func TestAnalyzeScoreChange(t *testing.T) {
	tests := []struct {
		name       string
		control    []int
		test       []int
		wantChange float64
		wantAbs    float64
	}{
		{"improvement", []int{40, 40}, []int{70, 70}, 75, 30},
		{"regression", []int{100}, []int{40}, -60, -60},
		{"zero baseline with improvement", []int{0, 0}, []int{50, 50}, 100, 50},
		{"zero baseline no improvement", []int{0}, []int{0}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exp := windowedExperiment()

			var obs []Observation
			for _, s := range tt.control {
				obs = append(obs, controlObs("openai", s, visibility.StatusListed))
			}
			for _, s := range tt.test {
				obs = append(obs, testObs("openai", s, visibility.StatusListed))
			}

			r := analyze(exp, obs, 5)

			if math.Abs(r.ScoreChange-tt.wantChange) > 1e-9 {
				t.Errorf("score change: got %v, want %v", r.ScoreChange, tt.wantChange)
			}
			if math.Abs(r.ScoreChangeAbsolute-tt.wantAbs) > 1e-9 {
				t.Errorf("absolute change: got %v, want %v", r.ScoreChangeAbsolute, tt.wantAbs)
			}
		})
	}
}

func TestAnalyzeFeaturedRate(t *testing.T) {
	exp := windowedExperiment()

	obs := []Observation{
		controlObs("openai", 100, visibility.StatusFeatured),
		controlObs("openai", 40, visibility.StatusListed),
		testObs("openai", 100, visibility.StatusFeatured),
		testObs("openai", 100, visibility.StatusFeatured),
	}

	r := analyze(exp, obs, 5)

	if r.ControlFeaturedRate != 0.5 {
		t.Errorf("control featured rate: got %v, want 0.5", r.ControlFeaturedRate)
	}
	if r.TestFeaturedRate != 1.0 {
		t.Errorf("test featured rate: got %v, want 1.0", r.TestFeaturedRate)
	}
	if math.Abs(r.FeaturedRateChange-0.5) > 1e-9 {
		t.Errorf("featured rate change: got %v, want 0.5", r.FeaturedRateChange)
	}
}

func TestAnalyzeZeroVarianceNotSignificant(t *testing.T) {
	// Both partitions have zero variance, so the pooled standard error is
	// zero and the verdict is not significant despite the large mean
	// difference. A known limitation of the approximation, preserved on
	// purpose.
	exp := windowedExperiment()

	obs := append(
		repeat(5, func() Observation { return controlObs("openai", 40, visibility.StatusListed) }),
		repeat(5, func() Observation { return testObs("openai", 100, visibility.StatusFeatured) })...,
	)

	r := analyze(exp, obs, 5)

	if r.IsSignificant {
		t.Error("zero-variance comparison must not be significant")
	}
	if r.PValue != nil {
		t.Errorf("p-value: got %v, want nil", *r.PValue)
	}
	if r.ConfidenceLevel != ConfidenceLow {
		t.Errorf("confidence: got %q, want low", r.ConfidenceLevel)
	}
}

func TestAnalyzeInsufficientData(t *testing.T) {
	exp := windowedExperiment()

	obs := append(
		repeat(4, func() Observation { return controlObs("openai", 40, visibility.StatusListed) }),
		repeat(10, func() Observation { return testObs("openai", 100, visibility.StatusFeatured) })...,
	)

	r := analyze(exp, obs, 5)

	if r.IsSignificant {
		t.Error("under-sampled comparison must not be significant")
	}
	if r.PValue != nil {
		t.Errorf("p-value: got %v, want nil", *r.PValue)
	}
	if r.ConfidenceLevel != ConfidenceInsufficientData {
		t.Errorf("confidence: got %q, want insufficient_data", r.ConfidenceLevel)
	}
}

func TestAnalyzeSignificantImprovement(t *testing.T) {
	exp := windowedExperiment()

	// Spread within each partition keeps the variance nonzero while the
	// means stay far apart.
	controlScores := []int{30, 40, 40, 40, 50}
	testScores := []int{90, 100, 100, 100, 110}

	var obs []Observation
	for _, s := range controlScores {
		obs = append(obs, controlObs("openai", s, visibility.StatusListed))
	}
	for _, s := range testScores {
		obs = append(obs, testObs("openai", s, visibility.StatusFeatured))
	}

	r := analyze(exp, obs, 5)

	if !r.IsSignificant {
		t.Fatal("expected a significant verdict")
	}
	if r.PValue == nil || *r.PValue != 0.01 {
		t.Errorf("p-value: got %v, want 0.01", r.PValue)
	}
	if r.ConfidenceLevel != ConfidenceHigh {
		t.Errorf("confidence: got %q, want high", r.ConfidenceLevel)
	}
}

func TestAnalyzeByProvider(t *testing.T) {
	exp := windowedExperiment()

	obs := []Observation{
		controlObs("openai", 40, visibility.StatusListed),
		controlObs("openai", 60, visibility.StatusMentioned),
		testObs("openai", 100, visibility.StatusFeatured),
		testObs("anthropic", 70, visibility.StatusMentioned),
	}

	r := analyze(exp, obs, 5)

	if len(r.ByProvider) != 2 {
		t.Fatalf("providers: got %d, want 2", len(r.ByProvider))
	}

	oa := r.ByProvider["openai"]
	if oa.ControlAvg != 50 || oa.TestAvg != 100 || oa.Change != 50 {
		t.Errorf("openai comparison: got %+v", oa)
	}
	if oa.ControlCount != 2 || oa.TestCount != 1 {
		t.Errorf("openai counts: got %d/%d, want 2/1", oa.ControlCount, oa.TestCount)
	}

	// anthropic appears only in the test partition; control side reads zero.
	an := r.ByProvider["anthropic"]
	if an.ControlAvg != 0 || an.ControlCount != 0 || an.TestAvg != 70 {
		t.Errorf("anthropic comparison: got %+v", an)
	}
}

func TestAnalyzeUnsetWindowsExcludeEverything(t *testing.T) {
	exp := windowedExperiment()
	exp.ControlStart = nil
	exp.ControlEnd = nil

	obs := []Observation{controlObs("openai", 40, visibility.StatusListed)}

	r := analyze(exp, obs, 5)

	if r.ControlChecks != 0 {
		t.Errorf("control checks: got %d, want 0 with unset window", r.ControlChecks)
	}
}
