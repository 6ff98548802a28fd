// Package main provides the verify command-line tool for checking a journal
// entries file without modifying it.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"sparkjournal/internal/config"
	"sparkjournal/internal/journal"
	"sparkjournal/internal/validator"
)

func main() {
	inputPath := flag.String("input", "", "Path to entries.json (default: importer.entries_file)")
	strict := flag.Bool("strict", false, "Fail on missing or duplicate ids and self-references")
	flag.Parse()

	path := *inputPath
	if path == "" {
		cfg := config.Default()
		if err := cfg.ApplyEnv(".env"); err != nil {
			fmt.Fprintf(os.Stderr, "❌ %v\n", err)
			os.Exit(1)
		}

		path = cfg.Importer.EntriesFile
	}

	os.Exit(run(path, *strict, os.Stdout))
}

// run checks the file at path and returns the process exit code.
func run(path string, strict bool, out io.Writer) int {
	fmt.Fprintf(out, "📂 Reading: %s\n", path)

	c, err := journal.NewStore(path, config.OutputConfig{}).Load()
	if err != nil {
		fmt.Fprintf(out, "❌ %v\n", err)

		return 1
	}

	v := validator.NewJournalValidator()
	if strict {
		v = validator.NewStrictJournalValidator()
	}

	result := v.Validate(c)
	result.PrintErrors(out)
	result.PrintWarnings(out)

	fmt.Fprintln(out, result.String())

	if !result.IsValid {
		return 1
	}

	return 0
}
