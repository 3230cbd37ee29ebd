package experiments

import "math"

// Confidence qualifies a significance verdict.
type Confidence string

const (
	ConfidenceHigh             Confidence = "high"
	ConfidenceMedium           Confidence = "medium"
	ConfidenceLow              Confidence = "low"
	ConfidenceInsufficientData Confidence = "insufficient_data"
)

type verdict struct {
	significant bool
	pValue      *float64
	confidence  Confidence
}

// approxSignificance runs a coarse two-sample comparison: the t statistic is
// real, but the p-value comes from a fixed threshold table rather than a
// t-distribution lookup. Two known limitations are deliberate and load-bearing
// for compatibility with the historical verdicts: fewer than minSamples
// observations on either side short-circuits to insufficient_data, and two
// zero-variance samples are reported as not significant even when their means
// differ.
func approxSignificance(control, test []float64, minSamples int) verdict {
	if len(control) < minSamples || len(test) < minSamples {
		return verdict{confidence: ConfidenceInsufficientData}
	}

	controlStd := sampleStdDev(control)
	testStd := sampleStdDev(test)

	if controlStd == 0 && testStd == 0 {
		return verdict{confidence: ConfidenceLow}
	}

	pooledSE := math.Sqrt(
		controlStd*controlStd/float64(len(control)) +
			testStd*testStd/float64(len(test)),
	)
	if pooledSE == 0 {
		return verdict{confidence: ConfidenceLow}
	}

	t := math.Abs(mean(test)-mean(control)) / pooledSE

	switch {
	case t > 2.58: // ~99% confidence
		return verdict{significant: true, pValue: floatPtr(0.01), confidence: ConfidenceHigh}
	case t > 1.96: // ~95% confidence
		return verdict{significant: true, pValue: floatPtr(0.05), confidence: ConfidenceMedium}
	case t > 1.645: // ~90% confidence
		return verdict{pValue: floatPtr(0.10), confidence: ConfidenceLow}
	default:
		return verdict{pValue: floatPtr(0.5), confidence: ConfidenceLow}
	}
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// sampleStdDev returns the sample standard deviation (n-1 denominator),
// treating samples of fewer than two values as having zero spread.
func sampleStdDev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	m := mean(xs)
	var sum float64
	for _, x := range xs {
		d := x - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(xs)-1))
}

func floatPtr(f float64) *float64 { return &f }
