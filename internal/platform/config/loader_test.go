package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoader_Load(t *testing.T) {
	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, ".config.yaml")

	configContent := `
server:
  host: "127.0.0.1"
  port: 8080
  api_key: "sk_file_key"
log:
  log_level: "debug"
  log_dir: "/tmp/logs"
  log_file: "test.log"
detection:
  confidence_threshold: 0.6
`

	if err := os.WriteFile(configFile, []byte(configContent), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	loader := NewLoader().WithPath(configFile).WithDotEnv(false)
	res, err := loader.Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	cfg := res.Config

	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("expected server host 127.0.0.1, got %s", cfg.Server.Host)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected server port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected log level debug, got %s", cfg.Log.Level)
	}
	if cfg.Detection.ConfidenceThreshold != 0.6 {
		t.Errorf("expected threshold 0.6, got %v", cfg.Detection.ConfidenceThreshold)
	}
	// Fields absent from the file keep their defaults.
	if cfg.Audio.SampleRate != 22050 {
		t.Errorf("expected default sample rate 22050, got %d", cfg.Audio.SampleRate)
	}
	if res.Path != configFile {
		t.Errorf("expected path %s, got %s", configFile, res.Path)
	}
}

func TestLoader_MissingFileUsesDefaults(t *testing.T) {
	loader := NewLoader().
		WithPath(filepath.Join(t.TempDir(), "nope.yaml")).
		WithDotEnv(false)

	res, err := loader.Load()
	if err != nil {
		t.Fatalf("missing config file should not be an error: %v", err)
	}
	if res.Path != "" {
		t.Errorf("expected empty path for defaults, got %s", res.Path)
	}
	if got := res.Config.Detection.ConfidenceThreshold; got != 0.5 {
		t.Errorf("expected default threshold 0.5, got %v", got)
	}
}

func TestLoader_EnvOverrides(t *testing.T) {
	t.Setenv("API_SECRET_KEY", "sk_env_key")
	t.Setenv("API_PORT", "9999")
	t.Setenv("MODEL_CONFIDENCE_THRESHOLD", "0.75")

	loader := NewLoader().
		WithPath(filepath.Join(t.TempDir(), "nope.yaml")).
		WithDotEnv(false)

	res, err := loader.Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	cfg := res.Config

	if cfg.Server.APIKey != "sk_env_key" {
		t.Errorf("expected API key from env, got %s", cfg.Server.APIKey)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("expected port 9999, got %d", cfg.Server.Port)
	}
	if cfg.Detection.ConfidenceThreshold != 0.75 {
		t.Errorf("expected threshold 0.75, got %v", cfg.Detection.ConfidenceThreshold)
	}
}

func TestLoader_Validate(t *testing.T) {
	loader := NewLoader()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid defaults",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name:    "invalid server port",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: true,
		},
		{
			name:    "invalid sample rate",
			mutate:  func(c *Config) { c.Audio.SampleRate = 0 },
			wantErr: true,
		},
		{
			name:    "threshold above one",
			mutate:  func(c *Config) { c.Detection.ConfidenceThreshold = 1.5 },
			wantErr: true,
		},
		{
			name:    "no languages",
			mutate:  func(c *Config) { c.Detection.SupportedLanguages = nil },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := loader.validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestIsLanguageSupported(t *testing.T) {
	cfg := DefaultConfig()

	for _, lang := range []string{"Tamil", "English", "Hindi", "Malayalam", "Telugu"} {
		if !cfg.Detection.IsLanguageSupported(lang) {
			t.Errorf("expected %s to be supported", lang)
		}
	}
	for _, lang := range []string{"english", "French", ""} {
		if cfg.Detection.IsLanguageSupported(lang) {
			t.Errorf("expected %q to be unsupported", lang)
		}
	}
}
