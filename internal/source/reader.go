// Package source locates and decodes the exported email records.
package source

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"sparkjournal/internal/models"
)

// Source errors.
var (
	ErrReadDir     = errors.New("failed to list source directory")
	ErrReadRecord  = errors.New("failed to read source record")
	ErrParseRecord = errors.New("failed to parse source record")
)

// Reader finds records in a directory by their two-digit index prefix.
type Reader struct {
	dir   string
	names []string
}

// NewReader creates a reader over dir. The directory is listed on first use.
func NewReader(dir string) *Reader {
	return &Reader{dir: dir}
}

// FilePrefix is the file name prefix for index: zero-padded to two digits plus "_".
func FilePrefix(index int) string {
	return fmt.Sprintf("%02d_", index)
}

// Find returns the name of the first file, in name order, that carries the
// prefix of index. The bool is false when no such file exists.
func (r *Reader) Find(index int) (string, bool, error) {
	if r.names == nil {
		if err := r.list(); err != nil {
			return "", false, err
		}
	}

	prefix := FilePrefix(index)
	for _, name := range r.names {
		if strings.HasPrefix(name, prefix) {
			return name, true, nil
		}
	}

	return "", false, nil
}

// Read decodes the record stored in the named file of the directory.
func (r *Reader) Read(name string) (*models.SourceRecord, error) {
	path := filepath.Join(r.dir, name)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrReadRecord, path, err)
	}

	var rec models.SourceRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrParseRecord, path, err)
	}

	return &rec, nil
}

func (r *Reader) list() error {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrReadDir, r.dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}

		names = append(names, e.Name())
	}

	r.names = names

	return nil
}
