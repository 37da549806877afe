package features

import (
	"math"

	"github.com/AbhishekDeveloper2k22/ai-voice-detection/internal/domain/audio"
	platformerrors "github.com/AbhishekDeveloper2k22/ai-voice-detection/internal/platform/errors"
)

// Extractor computes the full feature bank from a canonical waveform. It is
// stateless and safe for concurrent use.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract derives the Bundle deterministically: the same waveform always
// yields the same features. Degenerate input (NaN/Inf contamination, less
// than one second of audio) fails with KindAnalysis; silence does not fail,
// it resolves to the documented default values.
func (e *Extractor) Extract(wave *audio.Waveform) (*Bundle, error) {
	if wave == nil || len(wave.Samples) == 0 {
		return nil, platformerrors.New(platformerrors.KindAnalysis,
			"extract features", "empty waveform")
	}
	if wave.Duration() < 1.0 {
		return nil, platformerrors.Newf(platformerrors.KindAnalysis,
			"extract features", "audio too short for analysis: %.2fs", wave.Duration())
	}
	for _, s := range wave.Samples {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return nil, platformerrors.New(platformerrors.KindAnalysis,
				"extract features", "waveform is NaN/Inf contaminated")
		}
	}

	spec := computeSpectrogram(wave.Samples, wave.SampleRate)

	// Cepstral block.
	melPower := melPowerSpectrogram(spec)
	melDB := powerToDB(melPower)
	mfccs := mfcc(melDB)
	mfccDeltas := delta(mfccs)

	// Spectral block.
	spectral := computeFrameSpectral(spec)
	contrast := computeSpectralContrast(spec)

	// Pitch block.
	pitch := computePitchStats(trackPitch(spec))

	// Energy and temporal block.
	rms := frameRMS(wave.Samples)
	zcr := frameZCR(wave.Samples)
	onsetEnv := onsetStrength(melDB)
	rmsMean := mean(rms)

	// Statistical block.
	skew, kurtosis := sampleShape(wave.Samples)
	harmonicRatio, percussiveRatio := harmonicPercussiveRatios(spec)

	bundle := &Bundle{
		MFCCMean:      colMeans(mfccs, numMFCC),
		MFCCStd:       colStds(mfccs, numMFCC),
		MFCCDeltaMean: colMeans(mfccDeltas, numMFCC),
		MFCCDeltaStd:  colStds(mfccDeltas, numMFCC),

		SpectralCentroidMean:  mean(spectral.centroid),
		SpectralCentroidStd:   popStd(spectral.centroid),
		SpectralCentroidVar:   popVar(spectral.centroid),
		SpectralBandwidthMean: mean(spectral.bandwidth),
		SpectralBandwidthStd:  popStd(spectral.bandwidth),
		SpectralRolloffMean:   mean(spectral.rolloff),
		SpectralRolloffStd:    popStd(spectral.rolloff),
		SpectralContrastMean:  contrast,
		SpectralFlatnessMean:  mean(spectral.flatness),
		SpectralFlatnessStd:   popStd(spectral.flatness),

		PitchMean:        pitch.mean,
		PitchStd:         pitch.std,
		PitchRange:       pitch.rng,
		PitchVariation:   pitch.variation,
		PitchConsistency: pitch.consistency,

		RMSMean:      rmsMean,
		RMSStd:       popStd(rms),
		RMSVariation: popStd(rms) / (rmsMean + eps),

		ZCRMean: mean(zcr),
		ZCRStd:  popStd(zcr),

		Tempo:             estimateTempo(onsetEnv, wave.SampleRate),
		OnsetStrengthMean: mean(onsetEnv),
		OnsetStrengthStd:  popStd(onsetEnv),

		Kurtosis: kurtosis,
		Skewness: skew,

		HarmonicRatio:   harmonicRatio,
		PercussiveRatio: percussiveRatio,

		FormantFreqs: computeFormantPeaks(spec, numFormants),
		Duration:     wave.Duration(),
	}

	if err := bundle.Validate(); err != nil {
		return nil, platformerrors.Wrap(platformerrors.KindAnalysis,
			"extract features", "feature bank failed the finiteness invariant", err)
	}
	return bundle, nil
}

// colMeans reduces a frame-major matrix to per-column means.
func colMeans(frames [][]float64, cols int) []float64 {
	out := make([]float64, cols)
	if len(frames) == 0 {
		return out
	}
	for _, frame := range frames {
		for c := 0; c < cols && c < len(frame); c++ {
			out[c] += frame[c]
		}
	}
	for c := range out {
		out[c] /= float64(len(frames))
	}
	return out
}

// colStds reduces a frame-major matrix to per-column population deviations.
func colStds(frames [][]float64, cols int) []float64 {
	out := make([]float64, cols)
	if len(frames) == 0 {
		return out
	}
	means := colMeans(frames, cols)
	for _, frame := range frames {
		for c := 0; c < cols && c < len(frame); c++ {
			d := frame[c] - means[c]
			out[c] += d * d
		}
	}
	for c := range out {
		out[c] = math.Sqrt(out[c] / float64(len(frames)))
	}
	return out
}
