package config

import "time"

// DefaultConfig returns the configuration used when no file or environment
// overrides are present.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8000,
			APIKey:          "sk_test_123456789",
			RequestTimeout:  30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
			Dir:   "data/logs",
			File:  "server.log",
		},
		Audio: AudioConfig{
			SampleRate:      22050,
			MaxDuration:     300,
			MinPayloadBytes: 100,
		},
		Detection: DetectionConfig{
			ConfidenceThreshold: 0.5,
			SupportedLanguages:  []string{"Tamil", "English", "Hindi", "Malayalam", "Telugu"},
		},
	}
}
