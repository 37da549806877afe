package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	platformerrors "github.com/AbhishekDeveloper2k22/ai-voice-detection/internal/platform/errors"
)

const defaultConfigPath = ".config.yaml"

// Loader reads configuration from an optional yaml file, then applies
// environment variable overrides on top of the defaults.
type Loader struct {
	path      string
	useDotEnv bool
}

func NewLoader() *Loader {
	return &Loader{
		path:      defaultConfigPath,
		useDotEnv: true,
	}
}

// WithPath overrides the config file location.
func (l *Loader) WithPath(path string) *Loader {
	if path != "" {
		l.path = path
	}
	return l
}

// WithDotEnv toggles loading variables from a .env file before reading config.
func (l *Loader) WithDotEnv(enabled bool) *Loader {
	l.useDotEnv = enabled
	return l
}

// Result captures the loaded configuration and its origin path. Path is empty
// when the config came entirely from defaults and environment.
type Result struct {
	Config *Config
	Path   string
}

func (l *Loader) Load() (*Result, error) {
	if l.useDotEnv {
		// Missing .env is fine; the process environment still applies.
		_ = godotenv.Load()
	}

	cfg := DefaultConfig()
	path := ""

	if data, err := os.ReadFile(l.path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, platformerrors.Wrap(platformerrors.KindConfig,
				"load config", "malformed yaml in "+l.path, err)
		}
		path = l.path
	} else if !os.IsNotExist(err) {
		return nil, platformerrors.Wrap(platformerrors.KindConfig,
			"load config", "cannot read "+l.path, err)
	}

	applyEnvOverrides(cfg)

	if err := l.validate(cfg); err != nil {
		return nil, err
	}

	return &Result{Config: cfg, Path: path}, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("API_SECRET_KEY"); v != "" {
		cfg.Server.APIKey = v
	}
	if v := os.Getenv("API_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("API_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("MODEL_CONFIDENCE_THRESHOLD"); v != "" {
		if threshold, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Detection.ConfidenceThreshold = threshold
		}
	}
}

func (l *Loader) validate(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return platformerrors.Newf(platformerrors.KindConfig,
			"validate config", "server port out of range: %d", cfg.Server.Port)
	}
	if cfg.Audio.SampleRate <= 0 {
		return platformerrors.Newf(platformerrors.KindConfig,
			"validate config", "sample rate must be positive: %d", cfg.Audio.SampleRate)
	}
	if cfg.Detection.ConfidenceThreshold < 0 || cfg.Detection.ConfidenceThreshold > 1 {
		return platformerrors.Newf(platformerrors.KindConfig,
			"validate config", "confidence threshold out of [0,1]: %v", cfg.Detection.ConfidenceThreshold)
	}
	if len(cfg.Detection.SupportedLanguages) == 0 {
		return platformerrors.New(platformerrors.KindConfig,
			"validate config", "supported languages list is empty")
	}
	return nil
}
