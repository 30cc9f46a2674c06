// internal/config/validate.go
package config

import (
	"fmt"

	"github.com/tankobon/tankobon/internal/match"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

const maxImportWorkers = 64

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	if !validLogLevels[c.Log.Level] {
		errs = append(errs, fmt.Sprintf("log.level: must be one of debug, info, warn, error; got %q", c.Log.Level))
	}

	if c.Database.Path == "" {
		errs = append(errs, "database.path: required")
	}

	if c.Import.Workers < 1 || c.Import.Workers > maxImportWorkers {
		errs = append(errs, fmt.Sprintf("import.workers: must be between 1 and %d, got %d", maxImportWorkers, c.Import.Workers))
	}

	conf, err := match.ParseConfidence(c.Linking.MinConfidence)
	if err != nil || conf == match.ConfidenceNone {
		errs = append(errs, fmt.Sprintf("linking.min_confidence: must be one of low, medium, high; got %q", c.Linking.MinConfidence))
	}

	return errs
}
