package features

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// mean returns the arithmetic mean, 0 for an empty slice.
func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stat.Mean(xs, nil)
}

// popStd returns the population standard deviation (divisor n), matching the
// estimator the calibrated thresholds were tuned against.
func popStd(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := stat.Mean(xs, nil)
	var sum float64
	for _, x := range xs {
		d := x - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(xs)))
}

// popVar returns the population variance (divisor n).
func popVar(xs []float64) float64 {
	s := popStd(xs)
	return s * s
}

// sampleShape computes skewness and excess kurtosis of the amplitude
// distribution. A near-constant signal has no defined shape; both default
// to 0 so the statistical scorer still runs.
func sampleShape(xs []float64) (skew, kurtosis float64) {
	if len(xs) < 2 {
		return 0, 0
	}
	if popStd(xs) < eps {
		return 0, 0
	}
	skew = stat.Skew(xs, nil)
	kurtosis = stat.ExKurtosis(xs, nil)
	if math.IsNaN(skew) || math.IsInf(skew, 0) {
		skew = 0
	}
	if math.IsNaN(kurtosis) || math.IsInf(kurtosis, 0) {
		kurtosis = 0
	}
	return skew, kurtosis
}
