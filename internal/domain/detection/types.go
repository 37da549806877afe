// Package detection turns an extracted feature bundle into an
// AI-generated / human verdict with per-module evidence and a short
// natural-language explanation.
package detection

import "strings"

// Classification is the final verdict label.
type Classification string

const (
	ClassificationAIGenerated Classification = "AI_GENERATED"
	ClassificationHuman       Classification = "HUMAN"
)

// Language selects the calibration profile applied before fusion.
type Language string

const (
	LanguageTamil     Language = "Tamil"
	LanguageEnglish   Language = "English"
	LanguageHindi     Language = "Hindi"
	LanguageMalayalam Language = "Malayalam"
	LanguageTelugu    Language = "Telugu"
)

// SupportedLanguages lists every language with a calibration profile,
// in presentation order.
func SupportedLanguages() []Language {
	return []Language{
		LanguageTamil,
		LanguageEnglish,
		LanguageHindi,
		LanguageMalayalam,
		LanguageTelugu,
	}
}

// Module identifies one of the four analysis scorers.
type Module string

const (
	ModulePitch       Module = "pitch"
	ModuleSpectral    Module = "spectral"
	ModuleTemporal    Module = "temporal"
	ModuleStatistical Module = "statistical"
)

// modulePriority fixes the order used for score ties and for walking
// modules when building explanations.
var modulePriority = []Module{ModulePitch, ModuleSpectral, ModuleTemporal, ModuleStatistical}

// ModuleScore is one scorer's verdict: a value in [0,1] plus the list of
// triggered synthetic-indicator phrases. When no indicator fires the
// reasons hold the module's single natural-voice phrase instead.
type ModuleScore struct {
	Score   float64
	Reasons []string
}

// Reason renders the reasons as a single comma-joined phrase.
func (s ModuleScore) Reason() string {
	return strings.Join(s.Reasons, ", ")
}

// Result is the fused outcome of all four modules.
type Result struct {
	Classification Classification
	// Probability is the aggregate chance the clip is AI generated.
	Probability float64
	// Confidence backs the returned classification: Probability for
	// AI verdicts, its complement for human ones.
	Confidence  float64
	Explanation string
	// Modules holds the language-adjusted per-module scores that went
	// into the weighted aggregate.
	Modules map[Module]ModuleScore
}
