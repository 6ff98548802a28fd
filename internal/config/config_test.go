package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sparkjournal/internal/models"
)

// Helper to create a temp config file.
func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()

	configPath := filepath.Join(tmpDir, "importer.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create temp config file: %v", err)
	}

	return configPath
}

const validConfigYAML = `
importer:
  source_dir: "./emails"
  entries_file: "./data/entries.json"
  max_index: 10
  skip_indices: [3]
  categories:
    ops:
      he: "תפעול"
      en: "Operations"
summary:
  max_chars: 300
  min_cut: 100
related:
  max: 2
output:
  pretty_print: true
  create_backup: true
logging:
  level: "debug"
`

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	if cfg.Importer.MaxIndex != 32 {
		t.Errorf("MaxIndex = %d, want 32", cfg.Importer.MaxIndex)
	}

	skip := cfg.SkipSet()
	for _, idx := range []int{16, 22, 23, 24} {
		if _, ok := skip[idx]; !ok {
			t.Errorf("index %d should be skipped by default", idx)
		}
	}

	if len(cfg.Importer.Categories) != 3 {
		t.Errorf("expected 3 default categories, got %d", len(cfg.Importer.Categories))
	}

	if cfg.Summary.MaxChars != 500 || cfg.Summary.MinCut != 200 || cfg.Related.Max != 3 {
		t.Errorf("unexpected defaults: %+v %+v", cfg.Summary, cfg.Related)
	}
}

func TestLoadConfig_Valid(t *testing.T) {
	configPath := createTempConfigFile(t, validConfigYAML)

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Importer.SourceDir != "./emails" {
		t.Errorf("SourceDir = %s", cfg.Importer.SourceDir)
	}

	if cfg.Importer.MaxIndex != 10 {
		t.Errorf("MaxIndex = %d, want 10", cfg.Importer.MaxIndex)
	}

	if len(cfg.Importer.SkipIndices) != 1 || cfg.Importer.SkipIndices[0] != 3 {
		t.Errorf("SkipIndices = %v, want [3]", cfg.Importer.SkipIndices)
	}

	if cfg.Importer.Categories["ops"].EN != "Operations" {
		t.Errorf("ops category not loaded: %+v", cfg.Importer.Categories)
	}

	if cfg.Summary.MaxChars != 300 || cfg.Summary.MinCut != 100 {
		t.Errorf("Summary = %+v", cfg.Summary)
	}

	if cfg.Related.Max != 2 {
		t.Errorf("Related.Max = %d, want 2", cfg.Related.Max)
	}

	if !cfg.Output.CreateBackup {
		t.Error("Expected CreateBackup to be true")
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %s", cfg.Logging.Level)
	}
}

func TestLoadConfig_PartialKeepsDefaults(t *testing.T) {
	configPath := createTempConfigFile(t, "importer:\n  source_dir: /srv/mail\n")

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Importer.SourceDir != "/srv/mail" {
		t.Errorf("SourceDir = %s", cfg.Importer.SourceDir)
	}

	if cfg.Importer.EntriesFile != Default().Importer.EntriesFile {
		t.Errorf("EntriesFile = %s, want default", cfg.Importer.EntriesFile)
	}

	if cfg.Summary.MaxChars != 500 {
		t.Errorf("Summary.MaxChars = %d, want 500", cfg.Summary.MaxChars)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	if _, err := LoadConfig("/nonexistent/importer.yaml"); err == nil {
		t.Error("Expected error for missing file")
	}

	configPath := createTempConfigFile(t, "importer: [not a map")
	if _, err := LoadConfig(configPath); err == nil || !strings.Contains(err.Error(), "failed to parse YAML") {
		t.Errorf("Expected parse error, got %v", err)
	}

	configPath = createTempConfigFile(t, "logging:\n  level: verbose\n")
	if _, err := LoadConfig(configPath); !errors.Is(err, ErrInvalidLogLevel) {
		t.Errorf("Expected ErrInvalidLogLevel, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{"missing source dir", func(c *Config) { c.Importer.SourceDir = "" }, ErrMissingSourceDir},
		{"missing entries file", func(c *Config) { c.Importer.EntriesFile = "" }, ErrMissingEntriesFile},
		{"zero max index", func(c *Config) { c.Importer.MaxIndex = 0 }, ErrInvalidMaxIndex},
		{"negative skip", func(c *Config) { c.Importer.SkipIndices = []int{-1} }, ErrNegativeSkipIndex},
		{"empty label", func(c *Config) { c.Importer.Categories["y"] = models.CategoryLabel{EN: "Y"} }, ErrEmptyCategoryLabel},
		{"zero summary", func(c *Config) { c.Summary.MaxChars = 0 }, ErrInvalidSummaryChars},
		{"cut past limit", func(c *Config) { c.Summary.MinCut = 500 }, ErrInvalidSummaryCut},
		{"negative cut", func(c *Config) { c.Summary.MinCut = -1 }, ErrInvalidSummaryCut},
		{"negative related", func(c *Config) { c.Related.Max = -1 }, ErrInvalidRelatedMax},
		{"bad level", func(c *Config) { c.Logging.Level = "trace" }, ErrInvalidLogLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			if err := cfg.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvSourceDir, "/env/emails")
	t.Setenv(EnvLogLevel, "WARN")
	t.Setenv(EnvEntriesFile, "")
	t.Setenv(EnvMetadataFile, "")

	envFile := filepath.Join(t.TempDir(), ".env")
	content := EnvSourceDir + "=/dotenv/emails\n" + EnvMetadataFile + "=/dotenv/meta.yaml\n"

	if err := os.WriteFile(envFile, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	// Unset so the .env file can supply it; t.Setenv restores the original on cleanup.
	_ = os.Unsetenv(EnvMetadataFile)

	cfg := Default()
	if err := cfg.ApplyEnv(envFile); err != nil {
		t.Fatalf("ApplyEnv failed: %v", err)
	}

	if cfg.Importer.SourceDir != "/env/emails" {
		t.Errorf("SourceDir = %s, process env should win over .env", cfg.Importer.SourceDir)
	}

	if cfg.Importer.MetadataFile != "/dotenv/meta.yaml" {
		t.Errorf("MetadataFile = %s, want value from .env", cfg.Importer.MetadataFile)
	}

	if cfg.Importer.EntriesFile != Default().Importer.EntriesFile {
		t.Errorf("EntriesFile = %s, empty env must not override", cfg.Importer.EntriesFile)
	}

	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %s, want warn", cfg.Logging.Level)
	}
}

func TestApplyEnv_MissingFileIsIgnored(t *testing.T) {
	cfg := Default()
	if err := cfg.ApplyEnv(filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Errorf("ApplyEnv with missing file failed: %v", err)
	}
}

