// internal/config/validate_test.go
package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate_DefaultValid(t *testing.T) {
	errs := Default().Validate()
	assert.Empty(t, errs, "expected no errors for default config")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"invalid log level", func(c *Config) { c.Log.Level = "verbose" }, "log.level"},
		{"empty database path", func(c *Config) { c.Database.Path = "" }, "database.path"},
		{"zero workers", func(c *Config) { c.Import.Workers = 0 }, "import.workers"},
		{"too many workers", func(c *Config) { c.Import.Workers = 65 }, "import.workers"},
		{"unknown confidence", func(c *Config) { c.Linking.MinConfidence = "certain" }, "linking.min_confidence"},
		{"none confidence", func(c *Config) { c.Linking.MinConfidence = "none" }, "linking.min_confidence"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			errs := cfg.Validate()
			assert.True(t, containsError(errs, tt.want), "expected %s error, got %v", tt.want, errs)
		})
	}
}

func TestValidate_Boundaries(t *testing.T) {
	for _, workers := range []int{1, 64} {
		cfg := Default()
		cfg.Import.Workers = workers
		assert.Empty(t, cfg.Validate(), "workers=%d should be valid", workers)
	}
	for _, level := range []string{"low", "MEDIUM", " high "} {
		cfg := Default()
		cfg.Linking.MinConfidence = level
		assert.Empty(t, cfg.Validate(), "min_confidence=%q should be valid", level)
	}
}

func TestValidate_CollectsAll(t *testing.T) {
	cfg := &Config{}
	errs := cfg.Validate()
	assert.True(t, containsError(errs, "database.path"), "got %v", errs)
	assert.True(t, containsErrorBoth(errs, "import.workers", "got 0"), "got %v", errs)
}

// Helper functions to check for errors containing specific strings
func containsError(errs []string, substr string) bool {
	for _, e := range errs {
		if strings.Contains(e, substr) {
			return true
		}
	}
	return false
}

func containsErrorBoth(errs []string, substr1, substr2 string) bool {
	for _, e := range errs {
		if strings.Contains(e, substr1) && strings.Contains(e, substr2) {
			return true
		}
	}
	return false
}
