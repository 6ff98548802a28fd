// Package metadata provides the curated per-record metadata table that the
// importer attaches to each exported email.
package metadata

import (
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"sort"

	"sparkjournal/internal/models"

	"gopkg.in/yaml.v3"
)

// Table errors.
var (
	ErrReadTable     = errors.New("failed to read metadata table")
	ErrParseTable    = errors.New("failed to parse metadata table")
	ErrNegativeIndex = errors.New("metadata index must be non-negative")
	ErrDuplicateID   = errors.New("metadata id used by more than one index")
)

//go:embed table.yaml
var defaultTable []byte

// Table maps a source index to its metadata entry.
type Table struct {
	entries map[int]models.MetadataEntry
	hash    string
}

// Default returns the table compiled into the binary.
func Default() (*Table, error) {
	return Parse(defaultTable)
}

// Load reads a table from a YAML file.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadTable, err)
	}

	return Parse(data)
}

// Parse decodes a YAML document keyed by integer index.
func Parse(data []byte) (*Table, error) {
	entries := make(map[int]models.MetadataEntry)
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseTable, err)
	}

	owners := make(map[string]int, len(entries))

	for _, index := range sortedIndices(entries) {
		if index < 0 {
			return nil, fmt.Errorf("%w: %d", ErrNegativeIndex, index)
		}

		id := entries[index].ID
		if prev, ok := owners[id]; ok {
			return nil, fmt.Errorf("%w: %q at %d and %d", ErrDuplicateID, id, prev, index)
		}

		owners[id] = index
	}

	sum := sha256.Sum256(data)

	return &Table{entries: entries, hash: hex.EncodeToString(sum[:])}, nil
}

// Lookup returns the entry for index and whether one is defined.
func (t *Table) Lookup(index int) (models.MetadataEntry, bool) {
	m, ok := t.entries[index]

	return m, ok
}

// Len returns the number of defined entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// Hash is the SHA-256 of the document the table was parsed from.
func (t *Table) Hash() string {
	return t.hash
}

func sortedIndices(entries map[int]models.MetadataEntry) []int {
	indices := make([]int, 0, len(entries))
	for i := range entries {
		indices = append(indices, i)
	}

	sort.Ints(indices)

	return indices
}
