package config

import "time"

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	Audio     AudioConfig     `yaml:"audio"`
	Detection DetectionConfig `yaml:"detection"`
}

type ServerConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	APIKey          string        `yaml:"api_key"`
	RequestTimeout  time.Duration `yaml:"request_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type LogConfig struct {
	Level string `yaml:"log_level"`
	Dir   string `yaml:"log_dir"`
	File  string `yaml:"log_file"`
}

// AudioConfig bounds what the decoder will accept.
type AudioConfig struct {
	// SampleRate is the canonical rate every input is resampled to.
	SampleRate int `yaml:"sample_rate"`
	// MaxDuration rejects absurdly long uploads before analysis. Seconds.
	MaxDuration int `yaml:"max_duration"`
	// MinPayloadBytes is the smallest byte count worth handing to a codec.
	MinPayloadBytes int `yaml:"min_payload_bytes"`
}

type DetectionConfig struct {
	// ConfidenceThreshold is the AI-probability at or above which a sample
	// is classified as AI generated.
	ConfidenceThreshold float64  `yaml:"confidence_threshold"`
	SupportedLanguages  []string `yaml:"supported_languages"`
}

// IsLanguageSupported reports whether lang is in the configured set.
// Comparison is case-sensitive: language tags are proper nouns.
func (d DetectionConfig) IsLanguageSupported(lang string) bool {
	for _, l := range d.SupportedLanguages {
		if l == lang {
			return true
		}
	}
	return false
}
