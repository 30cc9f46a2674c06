// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tankobon/tankobon/internal/match"
)

// Config is the root configuration structure.
type Config struct {
	Log      LogConfig      `toml:"log"`
	Database DatabaseConfig `toml:"database"`
	Import   ImportConfig   `toml:"import"`
	Linking  LinkingConfig  `toml:"linking"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

type ImportConfig struct {
	Workers     int  `toml:"workers"`
	SkipInvalid bool `toml:"skip_invalid"`
	DeriveIDs   bool `toml:"derive_ids"`
}

type LinkingConfig struct {
	MinConfidence string `toml:"min_confidence"`
}

// Confidence returns the parsed minimum confidence, falling back to medium
// when the value is invalid. Validate reports invalid values.
func (l LinkingConfig) Confidence() match.Confidence {
	c, err := match.ParseConfidence(l.MinConfidence)
	if err != nil {
		return match.ConfidenceMedium
	}
	return c
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{
		Log:      LogConfig{Level: "info"},
		Database: DatabaseConfig{Path: "./data/tankobon.db"},
		Import: ImportConfig{
			Workers:     4,
			SkipInvalid: true,
			DeriveIDs:   true,
		},
		Linking: LinkingConfig{MinConfidence: "medium"},
	}
}

// Load reads, parses and validates the configuration file.
func Load(path string) (*Config, error) {
	cfg, err := LoadWithoutValidation(path)
	if err != nil {
		return nil, err
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, &ConfigError{Path: path, Errors: errs}
	}
	return cfg, nil
}

// LoadWithoutValidation reads and parses the configuration file, applying
// defaults but skipping validation.
func LoadWithoutValidation(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	content, missing := substituteEnvVars(string(data))
	if len(missing) > 0 {
		return nil, &ConfigError{Path: path, Missing: missing}
	}

	// Keys absent from the file keep their Default values.
	cfg := Default()
	if _, err := toml.Decode(content, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	def := Default()
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
	if c.Database.Path == "" {
		c.Database.Path = def.Database.Path
	}
	if c.Import.Workers == 0 {
		c.Import.Workers = def.Import.Workers
	}
	if c.Linking.MinConfidence == "" {
		c.Linking.MinConfidence = def.Linking.MinConfidence
	}
}

// envVarPattern matches ${VAR}, ${VAR:-default} and ${VAR:?message}.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?:(:-|:\?)([^}]*))?\}`)

// substituteEnvVars replaces environment references and returns the names
// (or "NAME: message" for :? references) of variables it could not resolve.
// Unresolved references are left unchanged.
func substituteEnvVars(content string) (string, []string) {
	var missing []string
	out := envVarPattern.ReplaceAllStringFunc(content, func(ref string) string {
		m := envVarPattern.FindStringSubmatch(ref)
		name, op, arg := m[1], m[2], m[3]
		value, ok := os.LookupEnv(name)

		switch op {
		case ":-":
			if value == "" {
				return arg
			}
			return value
		case ":?":
			if value == "" {
				missing = append(missing, name+": "+strings.TrimSpace(arg))
				return ref
			}
			return value
		}
		if !ok {
			missing = append(missing, name)
			return ref
		}
		return value
	})
	return out, missing
}
