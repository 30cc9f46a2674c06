package config

import (
	"path/filepath"
	"testing"
)

func TestSubstituteEnvVars(t *testing.T) {
	t.Setenv("TANKOBON_DB", "/srv/tankobon/library.db")
	t.Setenv("TANKOBON_LOG_LEVEL", "")
	t.Setenv("TANKOBON_WORKERS", "")

	tests := []struct {
		name    string
		input   string
		want    string
		missing []string
	}{
		{
			name:  "database path from env",
			input: `path = "${TANKOBON_DB}"`,
			want:  `path = "/srv/tankobon/library.db"`,
		},
		{
			name:  "default overridden by env",
			input: `path = "${TANKOBON_DB:-./data/tankobon.db}"`,
			want:  `path = "/srv/tankobon/library.db"`,
		},
		{
			name:  "empty value takes default",
			input: `level = "${TANKOBON_LOG_LEVEL:-info}"`,
			want:  `level = "info"`,
		},
		{
			name:    "unset required",
			input:   `path = "${TANKOBON_TEST_NONEXISTENT_DB}"`,
			want:    `path = "${TANKOBON_TEST_NONEXISTENT_DB}"`,
			missing: []string{"TANKOBON_TEST_NONEXISTENT_DB"},
		},
		{
			name:    "empty with message",
			input:   `workers = ${TANKOBON_WORKERS:?set a worker count}`,
			want:    `workers = ${TANKOBON_WORKERS:?set a worker count}`,
			missing: []string{"TANKOBON_WORKERS: set a worker count"},
		},
		{
			name:    "several on one line",
			input:   `${TANKOBON_DB} ${TANKOBON_TEST_NONEXISTENT_DB} ${TANKOBON_LOG_LEVEL:-warn}`,
			want:    `/srv/tankobon/library.db ${TANKOBON_TEST_NONEXISTENT_DB} warn`,
			missing: []string{"TANKOBON_TEST_NONEXISTENT_DB"},
		},
		{
			name:  "no references",
			input: `min_confidence = "high"`,
			want:  `min_confidence = "high"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, missing := substituteEnvVars(tt.input)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
			if len(missing) != len(tt.missing) {
				t.Fatalf("missing = %v, want %v", missing, tt.missing)
			}
			for i := range missing {
				if missing[i] != tt.missing[i] {
					t.Errorf("missing[%d] = %q, want %q", i, missing[i], tt.missing[i])
				}
			}
		})
	}
}

func TestDefaultConfig_DatabasePathFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := WriteDefault(path, false); err != nil {
		t.Fatalf("write default: %v", err)
	}

	t.Setenv("TANKOBON_DB", "")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Database.Path != "./data/tankobon.db" {
		t.Errorf("default path = %q", cfg.Database.Path)
	}

	t.Setenv("TANKOBON_DB", "/srv/tankobon/library.db")
	cfg, err = Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Database.Path != "/srv/tankobon/library.db" {
		t.Errorf("env path = %q", cfg.Database.Path)
	}
}
