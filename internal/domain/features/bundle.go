// Package features derives the acoustic feature bank used by the detection
// scorers from a canonical mono waveform.
package features

import "math"

// Analysis geometry. These mirror common speech-analysis defaults: a 2048
// sample window at 22050 Hz is ~93 ms, hopped every ~23 ms.
const (
	frameLength = 2048
	hopLength   = 512
	numMFCC     = 20
	numMels     = 128
	numFormants = 5
)

// Bundle is the fixed-schema feature bank. Every scalar is finite by
// construction; estimators that find no data substitute the documented
// defaults instead of NaN.
type Bundle struct {
	// Cepstral shape. Vectors are indexed by MFCC coefficient.
	MFCCMean      []float64
	MFCCStd       []float64
	MFCCDeltaMean []float64
	MFCCDeltaStd  []float64

	// Frame-level spectral statistics reduced over time.
	SpectralCentroidMean  float64
	SpectralCentroidStd   float64
	SpectralCentroidVar   float64
	SpectralBandwidthMean float64
	SpectralBandwidthStd  float64
	SpectralRolloffMean   float64
	SpectralRolloffStd    float64
	SpectralContrastMean  []float64 // one entry per octave sub-band
	SpectralFlatnessMean  float64
	SpectralFlatnessStd   float64

	// Fundamental frequency track statistics. All zero when no voiced
	// frames were found.
	PitchMean        float64
	PitchStd         float64
	PitchRange       float64
	PitchVariation   float64 // coefficient of variation
	PitchConsistency float64 // reciprocal of the variation

	// Energy envelope.
	RMSMean      float64
	RMSStd       float64
	RMSVariation float64

	// Zero-crossing rate.
	ZCRMean float64
	ZCRStd  float64

	// Rhythm. Tempo is 0 when the onset envelope carries no energy.
	Tempo             float64
	OnsetStrengthMean float64
	OnsetStrengthStd  float64

	// Amplitude distribution shape.
	Kurtosis float64
	Skewness float64

	// Share of spectral energy attributed to the tonal and transient
	// components. The two ratios sum to ~1.
	HarmonicRatio   float64
	PercussiveRatio float64

	// FormantFreqs holds the top spectral peak frequencies (Hz), a crude
	// vocal-tract resonance proxy, ordered by ascending magnitude rank.
	FormantFreqs []float64

	// Duration in seconds.
	Duration float64
}

// Validate reports the first non-finite value found, if any. A nil return
// means every feature in the bundle is usable by the scorers.
func (b *Bundle) Validate() error {
	check := func(name string, v float64) error {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &nonFiniteError{feature: name, value: v}
		}
		return nil
	}
	checkVec := func(name string, vs []float64) error {
		for _, v := range vs {
			if err := check(name, v); err != nil {
				return err
			}
		}
		return nil
	}

	vectors := map[string][]float64{
		"mfcc_mean":       b.MFCCMean,
		"mfcc_std":        b.MFCCStd,
		"mfcc_delta_mean": b.MFCCDeltaMean,
		"mfcc_delta_std":  b.MFCCDeltaStd,
		"spectral_contrast_mean": b.SpectralContrastMean,
		"formant_freqs":          b.FormantFreqs,
	}
	for name, vec := range vectors {
		if err := checkVec(name, vec); err != nil {
			return err
		}
	}

	scalars := map[string]float64{
		"spectral_centroid_mean":  b.SpectralCentroidMean,
		"spectral_centroid_std":   b.SpectralCentroidStd,
		"spectral_centroid_var":   b.SpectralCentroidVar,
		"spectral_bandwidth_mean": b.SpectralBandwidthMean,
		"spectral_bandwidth_std":  b.SpectralBandwidthStd,
		"spectral_rolloff_mean":   b.SpectralRolloffMean,
		"spectral_rolloff_std":    b.SpectralRolloffStd,
		"spectral_flatness_mean":  b.SpectralFlatnessMean,
		"spectral_flatness_std":   b.SpectralFlatnessStd,
		"pitch_mean":              b.PitchMean,
		"pitch_std":               b.PitchStd,
		"pitch_range":             b.PitchRange,
		"pitch_variation":         b.PitchVariation,
		"pitch_consistency":       b.PitchConsistency,
		"rms_mean":                b.RMSMean,
		"rms_std":                 b.RMSStd,
		"rms_variation":           b.RMSVariation,
		"zcr_mean":                b.ZCRMean,
		"zcr_std":                 b.ZCRStd,
		"tempo":                   b.Tempo,
		"onset_strength_mean":     b.OnsetStrengthMean,
		"onset_strength_std":      b.OnsetStrengthStd,
		"kurtosis":                b.Kurtosis,
		"skewness":                b.Skewness,
		"harmonic_ratio":          b.HarmonicRatio,
		"percussive_ratio":        b.PercussiveRatio,
		"duration":                b.Duration,
	}
	for name, v := range scalars {
		if err := check(name, v); err != nil {
			return err
		}
	}
	return nil
}

type nonFiniteError struct {
	feature string
	value   float64
}

func (e *nonFiniteError) Error() string {
	return "feature " + e.feature + " is not finite"
}
