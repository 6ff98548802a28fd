package source_test

import (
	"os"
	"path/filepath"
	"testing"

	"sparkjournal/internal/source"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestFilePrefix(t *testing.T) {
	assert.Equal(t, "07_", source.FilePrefix(7))
	assert.Equal(t, "00_", source.FilePrefix(0))
	assert.Equal(t, "31_", source.FilePrefix(31))
	assert.Equal(t, "100_", source.FilePrefix(100))
}

func TestReaderFind(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "07_status.json", "{}")
	writeFile(t, dir, "07_b_later.json", "{}")
	writeFile(t, dir, "17_other.json", "{}")
	writeFile(t, dir, "7_unpadded.json", "{}")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "05_dir"), 0o755))

	r := source.NewReader(dir)

	name, ok, err := r.Find(7)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "07_b_later.json", name)

	_, ok, err = r.Find(5)
	require.NoError(t, err)
	assert.False(t, ok, "directories are not records")

	_, ok, err = r.Find(1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReaderFindMissingDir(t *testing.T) {
	r := source.NewReader(filepath.Join(t.TempDir(), "nope"))

	_, _, err := r.Find(0)
	require.ErrorIs(t, err, source.ErrReadDir)
}

func TestReaderRead(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "05_test.json", `{"html": "<h1>Hi</h1>", "date": "2026-01-01T00:00:00Z", "subject": "Hello", "from": "x@y"}`)
	writeFile(t, dir, "06_partial.json", `{"html": null}`)
	writeFile(t, dir, "08_broken.json", `{"html": `)

	r := source.NewReader(dir)

	rec, err := r.Read("05_test.json")
	require.NoError(t, err)
	assert.Equal(t, "<h1>Hi</h1>", rec.HTML)
	assert.Equal(t, "2026-01-01T00:00:00Z", rec.Date)
	assert.Equal(t, "Hello", rec.Subject)

	rec, err = r.Read("06_partial.json")
	require.NoError(t, err)
	assert.Empty(t, rec.HTML)
	assert.Empty(t, rec.Date)

	_, err = r.Read("08_broken.json")
	require.ErrorIs(t, err, source.ErrParseRecord)

	_, err = r.Read("09_missing.json")
	require.ErrorIs(t, err, source.ErrReadRecord)
}
