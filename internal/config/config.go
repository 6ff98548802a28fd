// Package config provides configuration management for the journal importer.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"sparkjournal/internal/models"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file settings.
const (
	EnvSourceDir    = "JOURNAL_SOURCE_DIR"
	EnvEntriesFile  = "JOURNAL_ENTRIES_FILE"
	EnvMetadataFile = "JOURNAL_METADATA_FILE"
	EnvLogLevel     = "LOG_LEVEL"
)

// Configuration validation errors.
var (
	ErrMissingSourceDir    = errors.New("importer.source_dir is required")
	ErrMissingEntriesFile  = errors.New("importer.entries_file is required")
	ErrInvalidMaxIndex     = errors.New("importer.max_index must be at least 1")
	ErrNegativeSkipIndex   = errors.New("importer.skip_indices must be non-negative")
	ErrEmptyCategoryLabel  = errors.New("importer.categories labels need both he and en")
	ErrInvalidSummaryChars = errors.New("summary.max_chars must be at least 1")
	ErrInvalidSummaryCut   = errors.New("summary.min_cut must be in [0, summary.max_chars)")
	ErrInvalidRelatedMax   = errors.New("related.max must be non-negative")
	ErrInvalidLogLevel     = errors.New("logging.level must be one of: debug, info, warn, error")
)

// Config represents the complete importer configuration.
type Config struct {
	Importer ImporterConfig `yaml:"importer"`
	Summary  SummaryConfig  `yaml:"summary"`
	Related  RelatedConfig  `yaml:"related"`
	Output   OutputConfig   `yaml:"output"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ImporterConfig says where records come from and where the journal lives.
type ImporterConfig struct {
	SourceDir    string                          `yaml:"source_dir"`
	EntriesFile  string                          `yaml:"entries_file"`
	MetadataFile string                          `yaml:"metadata_file"`
	Categories   map[string]models.CategoryLabel `yaml:"categories"`
	SkipIndices  []int                           `yaml:"skip_indices"`
	MaxIndex     int                             `yaml:"max_index"`
}

// SummaryConfig bounds derived executive summaries.
type SummaryConfig struct {
	MaxChars int `yaml:"max_chars"`
	MinCut   int `yaml:"min_cut"`
}

// RelatedConfig controls the same-day related entry backfill.
type RelatedConfig struct {
	Max int `yaml:"max"`
}

// OutputConfig defines how the journal file is written.
type OutputConfig struct {
	PrettyPrint  bool `yaml:"pretty_print"`
	CreateBackup bool `yaml:"create_backup"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Importer: ImporterConfig{
			SourceDir:   "/tmp/emails",
			EntriesFile: "/tmp/spark-journal/data/entries.json",
			MaxIndex:    32,
			// 16 is a duplicate test send; 22-24 were imported by hand.
			SkipIndices: []int{16, 22, 23, 24},
			Categories: map[string]models.CategoryLabel{
				"research":     {HE: "מחקר ושאלות", EN: "Research & Questions"},
				"future-plans": {HE: "תוכניות עתידיות", EN: "Future Plans"},
				"projects":     {HE: "פרויקטים", EN: "Projects"},
			},
		},
		Summary: SummaryConfig{MaxChars: 500, MinCut: 200},
		Related: RelatedConfig{Max: 3},
		Output:  OutputConfig{PrettyPrint: true},
		Logging: LoggingConfig{Level: "info"},
	}
}

// LoadConfig loads configuration from a YAML file on top of the defaults.
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// ApplyEnv loads envFile when it exists and applies the JOURNAL_* and
// LOG_LEVEL overrides. Variables already set in the process win over the file.
func (c *Config) ApplyEnv(envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	if v := os.Getenv(EnvSourceDir); v != "" {
		c.Importer.SourceDir = v
	}

	if v := os.Getenv(EnvEntriesFile); v != "" {
		c.Importer.EntriesFile = v
	}

	if v := os.Getenv(EnvMetadataFile); v != "" {
		c.Importer.MetadataFile = v
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Importer.SourceDir == "" {
		return ErrMissingSourceDir
	}

	if c.Importer.EntriesFile == "" {
		return ErrMissingEntriesFile
	}

	if c.Importer.MaxIndex < 1 {
		return ErrInvalidMaxIndex
	}

	for _, idx := range c.Importer.SkipIndices {
		if idx < 0 {
			return fmt.Errorf("%w: %d", ErrNegativeSkipIndex, idx)
		}
	}

	for key, label := range c.Importer.Categories {
		if label.HE == "" || label.EN == "" {
			return fmt.Errorf("%w: %s", ErrEmptyCategoryLabel, key)
		}
	}

	if c.Summary.MaxChars < 1 {
		return ErrInvalidSummaryChars
	}

	if c.Summary.MinCut < 0 || c.Summary.MinCut >= c.Summary.MaxChars {
		return ErrInvalidSummaryCut
	}

	if c.Related.Max < 0 {
		return ErrInvalidRelatedMax
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	return nil
}

// SkipSet returns the explicit exclusion set.
func (c *Config) SkipSet() map[int]struct{} {
	skip := make(map[int]struct{}, len(c.Importer.SkipIndices))
	for _, idx := range c.Importer.SkipIndices {
		skip[idx] = struct{}{}
	}

	return skip
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Source: %s, Entries: %s, MaxIndex: %d, Skip: %v}",
		c.Importer.SourceDir,
		c.Importer.EntriesFile,
		c.Importer.MaxIndex,
		c.Importer.SkipIndices,
	)
}
