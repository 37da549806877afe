package detection

// Calibrated decision boundaries. These values were fitted against a
// labeled corpus of synthetic and recorded speech; changing any of them
// shifts the operating point of the whole detector, so they are kept
// together here rather than spread across the scorers.
const (
	// Pitch module.
	pitchConsistencyMax = 15.0
	pitchVariationMin   = 0.05
	pitchRangeMin       = 50.0
	mfccDeltaStdMin     = 0.3

	// Spectral module.
	spectralFlatnessMax    = 0.15
	spectralCentroidVarMin = 100.0
	harmonicRatioMax       = 0.95
	harmonicRatioMin       = 0.3
	spectralContrastStdMin = 2.0

	// Temporal module.
	rmsVariationMin    = 0.1
	onsetRegularityMax = 0.3
	zcrRegularityMax   = 0.2

	// Statistical module.
	kurtosisMin          = -1.0
	kurtosisMax          = 5.0
	skewnessAbsMax       = 1.5
	formantSpacingStdMax = 100.0
	minFormantCount      = 3

	// Per-module check counts used to normalize the accumulators.
	pitchChecks       = 4.0
	spectralChecks    = 4.0
	temporalChecks    = 3.0
	statisticalChecks = 3.0
)

// Fusion weights over the language-adjusted module scores. They sum to 1.
const (
	weightPitch       = 0.30
	weightSpectral    = 0.30
	weightTemporal    = 0.25
	weightStatistical = 0.15
)

// DefaultThreshold is the aggregate probability at or above which a clip
// is classified as AI generated.
const DefaultThreshold = 0.5

// languageProfile holds per-module multipliers applied to the raw scores
// before fusion. The statistical module is language-independent.
type languageProfile struct {
	pitch    float64
	spectral float64
	temporal float64
}

var languageProfiles = map[Language]languageProfile{
	LanguageTamil:     {pitch: 1.1, spectral: 1.0, temporal: 1.0},
	LanguageEnglish:   {pitch: 1.0, spectral: 1.0, temporal: 1.0},
	LanguageHindi:     {pitch: 1.05, spectral: 1.0, temporal: 1.0},
	LanguageMalayalam: {pitch: 1.1, spectral: 1.0, temporal: 1.0},
	LanguageTelugu:    {pitch: 1.08, spectral: 1.0, temporal: 1.0},
}

// profileFor returns the calibration profile for lang, falling back to
// neutral multipliers for anything outside the supported set.
func profileFor(lang Language) languageProfile {
	if p, ok := languageProfiles[lang]; ok {
		return p
	}
	return languageProfile{pitch: 1.0, spectral: 1.0, temporal: 1.0}
}

// Default phrases emitted when none of a module's indicators fire.
var defaultReasons = map[Module]string{
	ModulePitch:       "natural pitch patterns",
	ModuleSpectral:    "natural spectral characteristics",
	ModuleTemporal:    "natural temporal patterns",
	ModuleStatistical: "natural statistical properties",
}

// Phrases used when explaining a human verdict from low-scoring modules.
var humanTraits = map[Module]string{
	ModulePitch:       "natural pitch dynamics",
	ModuleSpectral:    "organic spectral characteristics",
	ModuleTemporal:    "human-like rhythm",
	ModuleStatistical: "natural voice properties",
}

const (
	aiExplanationPrefix      = "Detected AI indicators: "
	aiExplanationFallback    = "Synthetic voice patterns detected across multiple audio features"
	humanExplanationPrefix   = "Voice exhibits "
	humanExplanationFallback = "Voice shows characteristics consistent with human speech"
)
