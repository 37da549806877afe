package detection

import (
	"math"
	"sort"

	"github.com/AbhishekDeveloper2k22/ai-voice-detection/internal/domain/features"
)

// Each scorer accumulates weighted boolean checks against its feature
// group and normalizes by the module's check count, capped at 1. A
// triggered check contributes its weight and its indicator phrase.

func scorePitch(f *features.Bundle) ModuleScore {
	var acc float64
	var reasons []string

	if f.PitchConsistency > pitchConsistencyMax {
		acc += 1.5
		reasons = append(reasons, "unnatural pitch consistency")
	}
	if f.PitchVariation < pitchVariationMin {
		acc += 1.0
		reasons = append(reasons, "limited pitch variation")
	}
	if f.PitchRange < pitchRangeMin {
		acc += 0.5
		reasons = append(reasons, "narrow pitch range")
	}
	if meanOf(f.MFCCDeltaStd) < mfccDeltaStdMin {
		acc += 1.0
		reasons = append(reasons, "robotic speech dynamics")
	}

	return finishScore(ModulePitch, acc/pitchChecks, reasons)
}

func scoreSpectral(f *features.Bundle) ModuleScore {
	var acc float64
	var reasons []string

	if f.SpectralFlatnessMean > spectralFlatnessMax {
		acc += 1.0
		reasons = append(reasons, "synthetic spectral pattern")
	}
	if f.SpectralCentroidVar < spectralCentroidVarMin {
		acc += 1.0
		reasons = append(reasons, "unnatural spectral consistency")
	}
	if f.HarmonicRatio > harmonicRatioMax || f.HarmonicRatio < harmonicRatioMin {
		acc += 1.0
		reasons = append(reasons, "unusual harmonic structure")
	}
	if stdOf(f.SpectralContrastMean) < spectralContrastStdMin {
		acc += 0.5
		reasons = append(reasons, "flat spectral contrast")
	}

	return finishScore(ModuleSpectral, acc/spectralChecks, reasons)
}

func scoreTemporal(f *features.Bundle) ModuleScore {
	var acc float64
	var reasons []string

	if f.RMSVariation < rmsVariationMin {
		acc += 1.0
		reasons = append(reasons, "robotic energy consistency")
	}
	if f.OnsetStrengthMean > 0 &&
		f.OnsetStrengthStd/(f.OnsetStrengthMean+1e-6) < onsetRegularityMax {
		acc += 1.0
		reasons = append(reasons, "mechanical rhythm patterns")
	}
	if f.ZCRMean > 0 && f.ZCRStd/(f.ZCRMean+1e-6) < zcrRegularityMax {
		acc += 1.0
		reasons = append(reasons, "unnatural speech transitions")
	}

	return finishScore(ModuleTemporal, acc/temporalChecks, reasons)
}

func scoreStatistical(f *features.Bundle) ModuleScore {
	var acc float64
	var reasons []string

	if f.Kurtosis < kurtosisMin || f.Kurtosis > kurtosisMax {
		acc += 1.0
		reasons = append(reasons, "unusual amplitude distribution")
	}
	if math.Abs(f.Skewness) > skewnessAbsMax {
		acc += 0.5
		reasons = append(reasons, "asymmetric waveform")
	}
	if len(f.FormantFreqs) >= minFormantCount &&
		stdOf(formantSpacings(f.FormantFreqs)) < formantSpacingStdMax {
		acc += 1.0
		reasons = append(reasons, "synthetic formant patterns")
	}

	return finishScore(ModuleStatistical, acc/statisticalChecks, reasons)
}

// finishScore caps the normalized accumulator at 1 and substitutes the
// module's natural-voice phrase when nothing triggered.
func finishScore(m Module, score float64, reasons []string) ModuleScore {
	if len(reasons) == 0 {
		reasons = []string{defaultReasons[m]}
	}
	return ModuleScore{Score: math.Min(score, 1.0), Reasons: reasons}
}

// formantSpacings returns the gaps between consecutive sorted formant
// frequencies.
func formantSpacings(freqs []float64) []float64 {
	sorted := append([]float64(nil), freqs...)
	sort.Float64s(sorted)
	diffs := make([]float64, 0, len(sorted)-1)
	for i := 1; i < len(sorted); i++ {
		diffs = append(diffs, sorted[i]-sorted[i-1])
	}
	return diffs
}

func meanOf(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// stdOf is the population standard deviation, matching the statistics
// the thresholds were calibrated against.
func stdOf(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := meanOf(xs)
	var acc float64
	for _, x := range xs {
		d := x - m
		acc += d * d
	}
	return math.Sqrt(acc / float64(len(xs)))
}
