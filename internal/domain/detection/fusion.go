package detection

import (
	"math"
	"sort"
	"strings"

	"github.com/AbhishekDeveloper2k22/ai-voice-detection/internal/domain/features"
)

// Detector fuses the four module scorers into a single verdict.
// It is stateless and safe for concurrent use.
type Detector struct {
	threshold float64
}

// NewDetector builds a detector classifying as AI generated any clip
// whose aggregate probability reaches threshold. Non-positive values
// fall back to DefaultThreshold.
func NewDetector(threshold float64) *Detector {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Detector{threshold: threshold}
}

// Detect scores the bundle with all four modules, applies the language
// calibration profile, and fuses the adjusted scores into a verdict.
// Unsupported languages run with neutral multipliers.
func (d *Detector) Detect(f *features.Bundle, lang Language) *Result {
	raw := map[Module]ModuleScore{
		ModulePitch:       scorePitch(f),
		ModuleSpectral:    scoreSpectral(f),
		ModuleTemporal:    scoreTemporal(f),
		ModuleStatistical: scoreStatistical(f),
	}

	profile := profileFor(lang)
	adjusted := map[Module]ModuleScore{
		ModulePitch:       adjust(raw[ModulePitch], profile.pitch),
		ModuleSpectral:    adjust(raw[ModuleSpectral], profile.spectral),
		ModuleTemporal:    adjust(raw[ModuleTemporal], profile.temporal),
		ModuleStatistical: raw[ModuleStatistical],
	}

	probability := weightPitch*adjusted[ModulePitch].Score +
		weightSpectral*adjusted[ModuleSpectral].Score +
		weightTemporal*adjusted[ModuleTemporal].Score +
		weightStatistical*adjusted[ModuleStatistical].Score

	classification := ClassificationHuman
	confidence := 1 - probability
	if probability >= d.threshold {
		classification = ClassificationAIGenerated
		confidence = probability
	}

	return &Result{
		Classification: classification,
		Probability:    probability,
		Confidence:     confidence,
		Explanation:    explain(classification, adjusted),
		Modules:        adjusted,
	}
}

func adjust(s ModuleScore, multiplier float64) ModuleScore {
	s.Score = math.Min(s.Score*multiplier, 1.0)
	return s
}

// explain synthesizes the verdict explanation from the adjusted module
// scores. AI verdicts cite the triggered indicators of the strongest
// modules; human verdicts cite natural traits of the weakest ones.
func explain(c Classification, modules map[Module]ModuleScore) string {
	if c == ClassificationAIGenerated {
		return explainAI(modules)
	}
	return explainHuman(modules)
}

func explainAI(modules map[Module]ModuleScore) string {
	ranked := append([]Module(nil), modulePriority...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return modules[ranked[i]].Score > modules[ranked[j]].Score
	})

	var indicators []string
	for _, m := range ranked[:3] {
		if s := modules[m]; s.Reason() != defaultReasons[m] {
			indicators = append(indicators, s.Reason())
		}
	}
	if len(indicators) == 0 {
		return aiExplanationFallback
	}
	return aiExplanationPrefix + strings.Join(indicators, ", ")
}

func explainHuman(modules map[Module]ModuleScore) string {
	var traits []string
	for _, m := range modulePriority {
		if modules[m].Score < 0.3 {
			traits = append(traits, humanTraits[m])
		}
		if len(traits) == 2 {
			break
		}
	}
	if len(traits) == 0 {
		return humanExplanationFallback
	}
	return humanExplanationPrefix + strings.Join(traits, ", ")
}
