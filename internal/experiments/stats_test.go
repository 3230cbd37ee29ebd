package experiments

import (
	"math"
	"testing"
)

func TestMean(t *testing.T) {
	tests := []struct {
		name string
		xs   []float64
		want float64
	}{
		{"empty", nil, 0},
		{"single", []float64{42}, 42},
		{"several", []float64{40, 70, 100}, 70},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mean(tt.xs); got != tt.want {
				t.Errorf("mean(%v) = %v, want %v", tt.xs, got, tt.want)
			}
		})
	}
}

func TestSampleStdDev(t *testing.T) {
	tests := []struct {
		name string
		xs   []float64
		want float64
	}{
		{"empty", nil, 0},
		{"single value treated as zero spread", []float64{40}, 0},
		{"no variance", []float64{40, 40, 40}, 0},
		{"known spread", []float64{2, 4, 4, 4, 5, 5, 7, 9}, 2.138089935},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sampleStdDev(tt.xs)
			if math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("sampleStdDev(%v) = %v, want %v", tt.xs, got, tt.want)
			}
		})
	}
}

func TestApproxSignificanceThresholds(t *testing.T) {
	// Construct samples whose t statistic lands in each band. Shared shape:
	// both sides n=5 with stddev ~7.07, pooled SE ~4.47, so the mean gap
	// divided by 4.47 selects the band.
	base := func(center float64) []float64 {
		return []float64{center - 10, center, center, center, center + 10}
	}

	tests := []struct {
		name            string
		gap             float64
		wantSignificant bool
		wantP           *float64
		wantConfidence  Confidence
	}{
		{"far above 2.58", 60, true, floatPtr(0.01), ConfidenceHigh},
		{"between 1.96 and 2.58", 10, true, floatPtr(0.05), ConfidenceMedium},
		{"between 1.645 and 1.96", 8, false, floatPtr(0.10), ConfidenceLow},
		{"below 1.645", 2, false, floatPtr(0.5), ConfidenceLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := approxSignificance(base(40), base(40+tt.gap), 5)

			if v.significant != tt.wantSignificant {
				t.Errorf("significant: got %v, want %v", v.significant, tt.wantSignificant)
			}
			if v.confidence != tt.wantConfidence {
				t.Errorf("confidence: got %q, want %q", v.confidence, tt.wantConfidence)
			}
			if tt.wantP == nil {
				if v.pValue != nil {
					t.Errorf("p-value: got %v, want nil", *v.pValue)
				}
			} else if v.pValue == nil || *v.pValue != *tt.wantP {
				t.Errorf("p-value: got %v, want %v", v.pValue, *tt.wantP)
			}
		})
	}
}

func TestApproxSignificanceEdgeCases(t *testing.T) {
	t.Run("insufficient data", func(t *testing.T) {
		v := approxSignificance([]float64{1, 2, 3, 4}, []float64{1, 2, 3, 4, 5}, 5)
		if v.significant || v.pValue != nil || v.confidence != ConfidenceInsufficientData {
			t.Errorf("got %+v, want insufficient_data verdict", v)
		}
	})

	t.Run("zero variance on both sides", func(t *testing.T) {
		v := approxSignificance(
			[]float64{40, 40, 40, 40, 40},
			[]float64{100, 100, 100, 100, 100},
			5,
		)
		if v.significant || v.pValue != nil || v.confidence != ConfidenceLow {
			t.Errorf("got %+v, want not-significant low-confidence verdict", v)
		}
	})

	t.Run("configurable minimum samples", func(t *testing.T) {
		v := approxSignificance([]float64{30, 40, 50}, []float64{90, 100, 110}, 3)
		if v.confidence == ConfidenceInsufficientData {
			t.Errorf("min samples override not honored: %+v", v)
		}
	})
}
