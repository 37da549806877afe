package testing

import (
	"math"
	"testing"

	"github.com/AbhishekDeveloper2k22/ai-voice-detection/internal/platform/config"
	"github.com/AbhishekDeveloper2k22/ai-voice-detection/internal/platform/logging"
)

func SetupTestConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 8080
	cfg.Server.APIKey = "sk_test_123456789"
	cfg.Log.Level = "debug"
	cfg.Log.Dir = t.TempDir()
	cfg.Log.File = "test.log"
	return cfg
}

func SetupTestLogger(t *testing.T) *logging.Logger {
	t.Helper()

	cfg := SetupTestConfig(t)
	logger, err := logging.New(logging.Config{
		Level:    cfg.Log.Level,
		Dir:      cfg.Log.Dir,
		Filename: cfg.Log.File,
	})
	if err != nil {
		t.Fatalf("failed to create test logger: %v", err)
	}
	t.Cleanup(func() { logger.Close() })
	return logger
}

func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error but got nil")
	}
}

func AssertEqual(t *testing.T, expected, actual interface{}) {
	t.Helper()
	if expected != actual {
		t.Fatalf("expected %v, got %v", expected, actual)
	}
}

// AssertInDelta fails when actual is not within tol of expected. NaN never
// compares close to anything.
func AssertInDelta(t *testing.T, expected, actual, tol float64) {
	t.Helper()
	if math.IsNaN(actual) || math.Abs(expected-actual) > tol {
		t.Fatalf("expected %v ± %v, got %v", expected, tol, actual)
	}
}
