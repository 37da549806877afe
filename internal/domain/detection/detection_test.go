package detection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AbhishekDeveloper2k22/ai-voice-detection/internal/domain/features"
)

// naturalBundle sits comfortably outside every calibrated boundary.
func naturalBundle() *features.Bundle {
	return &features.Bundle{
		PitchConsistency: 10.0,
		PitchVariation:   0.15,
		PitchRange:       120.0,
		MFCCDeltaStd:     []float64{1.0, 1.2, 1.4},

		SpectralFlatnessMean: 0.05,
		SpectralCentroidVar:  500.0,
		HarmonicRatio:        0.7,
		SpectralContrastMean: []float64{10, 15, 22, 5, 18, 9},

		RMSVariation:      0.4,
		OnsetStrengthMean: 1.0,
		OnsetStrengthStd:  0.8,
		ZCRMean:           0.1,
		ZCRStd:            0.05,

		Kurtosis:     2.0,
		Skewness:     0.2,
		FormantFreqs: []float64{400, 1200, 2600, 3500, 5000},
	}
}

// syntheticBundle trips every check in every module.
func syntheticBundle() *features.Bundle {
	return &features.Bundle{
		PitchConsistency: 1e6,
		PitchVariation:   0.001,
		PitchRange:       10.0,
		MFCCDeltaStd:     []float64{0.1, 0.1, 0.1},

		SpectralFlatnessMean: 0.3,
		SpectralCentroidVar:  10.0,
		HarmonicRatio:        0.99,
		SpectralContrastMean: []float64{3.0, 3.5, 3.2, 3.4, 3.1, 3.3},

		RMSVariation:      0.01,
		OnsetStrengthMean: 1.0,
		OnsetStrengthStd:  0.1,
		ZCRMean:           0.1,
		ZCRStd:            0.01,

		Kurtosis:     -1.4,
		Skewness:     2.0,
		FormantFreqs: []float64{700, 750, 800, 850, 900},
	}
}

func TestScorePitch(t *testing.T) {
	t.Run("all checks triggered", func(t *testing.T) {
		s := scorePitch(syntheticBundle())
		assert.Equal(t, 1.0, s.Score)
		assert.Equal(t, []string{
			"unnatural pitch consistency",
			"limited pitch variation",
			"narrow pitch range",
			"robotic speech dynamics",
		}, s.Reasons)
	})

	t.Run("no checks triggered", func(t *testing.T) {
		s := scorePitch(naturalBundle())
		assert.Equal(t, 0.0, s.Score)
		assert.Equal(t, []string{"natural pitch patterns"}, s.Reasons)
	})

	t.Run("boundaries are strict", func(t *testing.T) {
		f := naturalBundle()
		f.PitchConsistency = 15.0 // exactly at the boundary
		f.PitchVariation = 0.05
		f.PitchRange = 50.0
		s := scorePitch(f)
		assert.Equal(t, 0.0, s.Score)
	})

	t.Run("partial accumulation", func(t *testing.T) {
		f := naturalBundle()
		f.PitchConsistency = 20.0 // weight 1.5 of 4 checks
		s := scorePitch(f)
		assert.InDelta(t, 0.375, s.Score, 1e-9)
		assert.Equal(t, []string{"unnatural pitch consistency"}, s.Reasons)
	})
}

func TestScoreSpectral(t *testing.T) {
	t.Run("all checks triggered", func(t *testing.T) {
		s := scoreSpectral(syntheticBundle())
		assert.InDelta(t, 0.875, s.Score, 1e-9) // 3.5 of 4
		assert.Contains(t, s.Reasons, "unusual harmonic structure")
		assert.Contains(t, s.Reasons, "flat spectral contrast")
	})

	t.Run("low harmonic ratio also counts as unusual", func(t *testing.T) {
		f := naturalBundle()
		f.HarmonicRatio = 0.1
		s := scoreSpectral(f)
		assert.Equal(t, []string{"unusual harmonic structure"}, s.Reasons)
	})

	t.Run("natural bundle", func(t *testing.T) {
		s := scoreSpectral(naturalBundle())
		assert.Equal(t, 0.0, s.Score)
		assert.Equal(t, "natural spectral characteristics", s.Reason())
	})
}

func TestScoreTemporal(t *testing.T) {
	t.Run("all checks triggered", func(t *testing.T) {
		s := scoreTemporal(syntheticBundle())
		assert.Equal(t, 1.0, s.Score)
	})

	t.Run("zero means skip regularity checks", func(t *testing.T) {
		f := syntheticBundle()
		f.OnsetStrengthMean = 0
		f.OnsetStrengthStd = 0
		f.ZCRMean = 0
		f.ZCRStd = 0
		s := scoreTemporal(f)
		assert.InDelta(t, 1.0/3.0, s.Score, 1e-9)
		assert.Equal(t, []string{"robotic energy consistency"}, s.Reasons)
	})

	t.Run("natural bundle", func(t *testing.T) {
		s := scoreTemporal(naturalBundle())
		assert.Equal(t, 0.0, s.Score)
	})
}

func TestScoreStatistical(t *testing.T) {
	t.Run("all checks triggered", func(t *testing.T) {
		s := scoreStatistical(syntheticBundle())
		assert.InDelta(t, 2.5/3.0, s.Score, 1e-9)
	})

	t.Run("high kurtosis also triggers", func(t *testing.T) {
		f := naturalBundle()
		f.Kurtosis = 6.0
		s := scoreStatistical(f)
		assert.Equal(t, []string{"unusual amplitude distribution"}, s.Reasons)
	})

	t.Run("too few formants skips the spacing check", func(t *testing.T) {
		f := naturalBundle()
		f.FormantFreqs = []float64{700, 750}
		s := scoreStatistical(f)
		assert.Equal(t, 0.0, s.Score)
	})

	t.Run("natural bundle", func(t *testing.T) {
		s := scoreStatistical(naturalBundle())
		assert.Equal(t, 0.0, s.Score)
	})
}

func TestDetect_SyntheticVerdict(t *testing.T) {
	d := NewDetector(DefaultThreshold)
	res := d.Detect(syntheticBundle(), LanguageEnglish)

	require.Equal(t, ClassificationAIGenerated, res.Classification)
	// 0.30*1.0 + 0.30*0.875 + 0.25*1.0 + 0.15*(2.5/3)
	assert.InDelta(t, 0.9375, res.Probability, 1e-9)
	assert.Equal(t, res.Probability, res.Confidence)
	assert.Contains(t, res.Explanation, "Detected AI indicators: ")
	assert.Contains(t, res.Explanation, "unnatural pitch consistency")
	assert.GreaterOrEqual(t, res.Modules[ModulePitch].Score, 0.625)
}

func TestDetect_HumanVerdict(t *testing.T) {
	d := NewDetector(DefaultThreshold)
	res := d.Detect(naturalBundle(), LanguageEnglish)

	require.Equal(t, ClassificationHuman, res.Classification)
	assert.Equal(t, 0.0, res.Probability)
	assert.Equal(t, 1.0, res.Confidence)
	assert.Equal(t, "Voice exhibits natural pitch dynamics, organic spectral characteristics", res.Explanation)
}

func TestDetect_ThresholdBoundary(t *testing.T) {
	// A maxed-out pitch module with every other module at zero puts the
	// aggregate at exactly 0.30. Landing on the threshold is enough for
	// an AI verdict; only strictly-below stays human.
	f := naturalBundle()
	f.PitchConsistency = 1e6
	f.PitchVariation = 0.001
	f.PitchRange = 10.0
	f.MFCCDeltaStd = []float64{0.1}

	at := NewDetector(0.3).Detect(f, LanguageEnglish)
	assert.InDelta(t, 0.3, at.Probability, 1e-9)
	require.Equal(t, ClassificationAIGenerated, at.Classification)
	assert.InDelta(t, at.Probability, at.Confidence, 1e-9)

	above := NewDetector(0.31).Detect(f, LanguageEnglish)
	require.Equal(t, ClassificationHuman, above.Classification)
	assert.InDelta(t, 1-above.Probability, above.Confidence, 1e-9)
}

func TestDetect_LanguageAdjustment(t *testing.T) {
	f := naturalBundle()
	f.PitchConsistency = 20.0 // pitch raw score 0.375

	d := NewDetector(DefaultThreshold)
	english := d.Detect(f, LanguageEnglish)
	tamil := d.Detect(f, LanguageTamil)
	hindi := d.Detect(f, LanguageHindi)
	telugu := d.Detect(f, LanguageTelugu)

	assert.InDelta(t, 0.375, english.Modules[ModulePitch].Score, 1e-9)
	assert.InDelta(t, 0.375*1.1, tamil.Modules[ModulePitch].Score, 1e-9)
	assert.InDelta(t, 0.375*1.05, hindi.Modules[ModulePitch].Score, 1e-9)
	assert.InDelta(t, 0.375*1.08, telugu.Modules[ModulePitch].Score, 1e-9)

	// Multipliers only scale pitch; the statistical module never moves.
	assert.Equal(t, english.Modules[ModuleStatistical].Score, tamil.Modules[ModuleStatistical].Score)

	// Adjusted scores stay capped at 1 even for the strongest languages.
	max := d.Detect(syntheticBundle(), LanguageMalayalam)
	assert.LessOrEqual(t, max.Modules[ModulePitch].Score, 1.0)
}

func TestDetect_UnknownLanguageIsNeutral(t *testing.T) {
	f := naturalBundle()
	f.PitchConsistency = 20.0

	d := NewDetector(DefaultThreshold)
	unknown := d.Detect(f, Language("Klingon"))
	english := d.Detect(f, LanguageEnglish)
	assert.Equal(t, english.Probability, unknown.Probability)
}

func TestDetect_ConfidenceBounds(t *testing.T) {
	bundles := []*features.Bundle{naturalBundle(), syntheticBundle()}
	d := NewDetector(DefaultThreshold)
	for _, f := range bundles {
		for _, lang := range SupportedLanguages() {
			res := d.Detect(f, lang)
			assert.GreaterOrEqual(t, res.Confidence, 0.5)
			assert.LessOrEqual(t, res.Confidence, 1.0)
			assert.GreaterOrEqual(t, res.Probability, 0.0)
			assert.LessOrEqual(t, res.Probability, 1.0)
		}
	}
}

func TestExplainAI(t *testing.T) {
	t.Run("ranks by score with pitch-first tie break", func(t *testing.T) {
		modules := map[Module]ModuleScore{
			ModulePitch:       {Score: 1.0, Reasons: []string{"limited pitch variation"}},
			ModuleSpectral:    {Score: 0.5, Reasons: []string{"synthetic spectral pattern"}},
			ModuleTemporal:    {Score: 1.0, Reasons: []string{"mechanical rhythm patterns"}},
			ModuleStatistical: {Score: 0.9, Reasons: []string{"asymmetric waveform"}},
		}
		got := explainAI(modules)
		assert.Equal(t, "Detected AI indicators: limited pitch variation, mechanical rhythm patterns, asymmetric waveform", got)
	})

	t.Run("skips modules with only the natural phrase", func(t *testing.T) {
		modules := map[Module]ModuleScore{
			ModulePitch:       {Score: 0.8, Reasons: []string{"natural pitch patterns"}},
			ModuleSpectral:    {Score: 0.7, Reasons: []string{"unusual harmonic structure"}},
			ModuleTemporal:    {Score: 0.1, Reasons: []string{"natural temporal patterns"}},
			ModuleStatistical: {Score: 0.0, Reasons: []string{"natural statistical properties"}},
		}
		got := explainAI(modules)
		assert.Equal(t, "Detected AI indicators: unusual harmonic structure", got)
	})

	t.Run("generic fallback when no indicators fired", func(t *testing.T) {
		modules := map[Module]ModuleScore{
			ModulePitch:       {Score: 0.6, Reasons: []string{"natural pitch patterns"}},
			ModuleSpectral:    {Score: 0.6, Reasons: []string{"natural spectral characteristics"}},
			ModuleTemporal:    {Score: 0.6, Reasons: []string{"natural temporal patterns"}},
			ModuleStatistical: {Score: 0.6, Reasons: []string{"natural statistical properties"}},
		}
		assert.Equal(t, "Synthetic voice patterns detected across multiple audio features", explainAI(modules))
	})
}

func TestExplainHuman(t *testing.T) {
	t.Run("cites at most two low-scoring modules", func(t *testing.T) {
		modules := map[Module]ModuleScore{
			ModulePitch:       {Score: 0.1},
			ModuleSpectral:    {Score: 0.5},
			ModuleTemporal:    {Score: 0.2},
			ModuleStatistical: {Score: 0.0},
		}
		assert.Equal(t, "Voice exhibits natural pitch dynamics, human-like rhythm", explainHuman(modules))
	})

	t.Run("fallback when every module scores moderately", func(t *testing.T) {
		modules := map[Module]ModuleScore{
			ModulePitch:       {Score: 0.4},
			ModuleSpectral:    {Score: 0.4},
			ModuleTemporal:    {Score: 0.4},
			ModuleStatistical: {Score: 0.3},
		}
		assert.Equal(t, "Voice shows characteristics consistent with human speech", explainHuman(modules))
	})
}

func TestScoreMonotonicity(t *testing.T) {
	// Triggering additional checks never lowers a module score.
	base := naturalBundle()
	base.PitchConsistency = 20.0
	one := scorePitch(base)

	more := naturalBundle()
	more.PitchConsistency = 20.0
	more.PitchVariation = 0.01
	two := scorePitch(more)

	assert.Greater(t, two.Score, one.Score)
}
