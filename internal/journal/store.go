// Package journal loads, merges and persists the journal collection.
package journal

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"sparkjournal/internal/config"
	"sparkjournal/internal/models"
)

// Store errors.
var (
	ErrEntriesFileRead  = errors.New("failed to read entries file")
	ErrEntriesFileParse = errors.New("failed to parse entries file")
	ErrEntriesFileWrite = errors.New("failed to write entries file")
	ErrBackup           = errors.New("failed to back up entries file")
)

// BackupSuffix is appended to the entries file name for the pre-write copy.
const BackupSuffix = ".bak"

// Store reads and overwrites one entries file.
type Store struct {
	path   string
	output config.OutputConfig
}

// NewStore creates a store for the entries file at path.
func NewStore(path string, output config.OutputConfig) *Store {
	return &Store{path: path, output: output}
}

// Path returns the entries file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the whole collection. A missing or malformed file is an error.
func (s *Store) Load() (*models.Collection, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrEntriesFileRead, s.path, err)
	}

	var c models.Collection
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrEntriesFileParse, s.path, err)
	}

	if c.Categories == nil {
		c.Categories = make(map[string]models.CategoryLabel)
	}

	return &c, nil
}

// Save overwrites the entries file with c in a single write, copying the
// previous content aside first when backups are enabled.
func (s *Store) Save(c *models.Collection) error {
	data, err := Encode(c, s.output.PrettyPrint)
	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrEntriesFileWrite, s.path, err)
	}

	if s.output.CreateBackup {
		if err := s.backup(); err != nil {
			return err
		}
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("%w %s: %w", ErrEntriesFileWrite, s.path, err)
	}

	return nil
}

func (s *Store) backup() error {
	prev, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrBackup, s.path, err)
	}

	if err := os.WriteFile(s.path+BackupSuffix, prev, 0644); err != nil {
		return fmt.Errorf("%w %s: %w", ErrBackup, s.path, err)
	}

	return nil
}

// Encode serializes c with HTML left unescaped and non-ASCII text kept as-is.
func Encode(c *models.Collection, pretty bool) ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if pretty {
		enc.SetIndent("", "  ")
	}

	if err := enc.Encode(c); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
