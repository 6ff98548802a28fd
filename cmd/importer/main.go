// Package main provides the journal importer command-line tool.
package main

import (
	"flag"
	"fmt"
	"os"

	"sparkjournal/internal/config"
	"sparkjournal/internal/importer"
	"sparkjournal/internal/logger"
	"sparkjournal/pkg/metadata"
)

const defaultConfigPath = "configs/importer.yaml"

func main() {
	configFile := flag.String("config", "", "Path to YAML configuration file (default: "+defaultConfigPath+" if present)")
	envFile := flag.String("env", ".env", "Path to an optional .env file")
	sourceDir := flag.String("source-dir", "", "Directory holding the exported email JSON files")
	entriesFile := flag.String("entries", "", "Journal entries.json to merge into")
	metadataFile := flag.String("metadata", "", "YAML metadata table (default: built-in table)")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error")
	help := flag.Bool("help", false, "Show usage information")

	flag.Parse()

	if *help {
		printUsage()
		os.Exit(0)
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	if err := cfg.ApplyEnv(*envFile); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	applyFlags(cfg, *sourceDir, *entriesFile, *metadataFile, *logLevel)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ configuration validation failed: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(cfg.Logging.Level).WithRunID()
	log.Debug("configuration", "config", cfg.String())

	table, err := loadTable(cfg.Importer.MetadataFile)
	if err != nil {
		log.Error("metadata table unavailable", "error", err)
		os.Exit(1)
	}

	log.Info("metadata table loaded", "entries", table.Len(), "hash", table.Hash())

	fmt.Printf("📂 Reading emails from: %s\n", cfg.Importer.SourceDir)
	fmt.Printf("📝 Merging into: %s\n\n", cfg.Importer.EntriesFile)

	if _, err := importer.New(cfg, table, log, os.Stdout).Run(); err != nil {
		log.Error("import failed", "error", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		if _, statErr := os.Stat(defaultConfigPath); statErr != nil {
			return config.Default(), nil
		}

		path = defaultConfigPath
	}

	fmt.Printf("⚙️  Loading configuration from: %s\n", path)

	return config.LoadConfig(path)
}

func applyFlags(cfg *config.Config, sourceDir, entriesFile, metadataFile, logLevel string) {
	if sourceDir != "" {
		cfg.Importer.SourceDir = sourceDir
	}

	if entriesFile != "" {
		cfg.Importer.EntriesFile = entriesFile
	}

	if metadataFile != "" {
		cfg.Importer.MetadataFile = metadataFile
	}

	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
}

func loadTable(path string) (*metadata.Table, error) {
	if path == "" {
		return metadata.Default()
	}

	return metadata.Load(path)
}

func printUsage() {
	fmt.Println("Usage: ./bin/importer [OPTIONS]")
	fmt.Println()
	fmt.Println("Converts exported email JSON files into bilingual journal entries and")
	fmt.Println("merges them into the journal's entries.json.")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  ./bin/importer")
	fmt.Println("  ./bin/importer -source-dir ./emails -entries ./data/entries.json")
	fmt.Println("  JOURNAL_METADATA_FILE=configs/metadata.yaml ./bin/importer -log-level debug")
}
