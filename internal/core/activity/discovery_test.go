package activity

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDiscoverLogFiles_UnionsDirectories(t *testing.T) {
	status := t.TempDir()
	narrative := t.TempDir()

	a := writeFile(t, status, "2026-01-02-fix.md", "# Fix")
	b := writeFile(t, narrative, "2026-01-01-plan.md", "# Plan")

	files := DiscoverLogFiles([]string{status, narrative}, nil)
	assert.ElementsMatch(t, []string{a, b}, files)
	assert.True(t, sort.StringsAreSorted(files))
}

func TestDiscoverLogFiles_MissingDirIgnored(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "2026-01-01-log.md", "# Log")

	files := DiscoverLogFiles([]string{filepath.Join(dir, "nope"), dir}, nil)
	assert.Len(t, files, 1)
}

func TestDiscoverLogFiles_SkipsNonLogFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "README.md", "readme")
	writeFile(t, dir, "readme-extra.md", "readme")
	writeFile(t, dir, "notes.txt", "text")
	writeFile(t, dir, "2026-01-01-real.md", "# Real")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))

	files := DiscoverLogFiles([]string{dir}, nil)
	require.Len(t, files, 1)
	assert.Contains(t, files[0], "2026-01-01-real.md")
}

func TestDiscoverLogFiles_IgnoreGlobs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "2026-01-01-draft.md", "# Draft")
	writeFile(t, dir, "2026-01-02-final.md", "# Final")

	files := DiscoverLogFiles([]string{dir}, []string{"*-draft.md"})
	require.Len(t, files, 1)
	assert.Contains(t, files[0], "final")
}

func TestLoadEntries_SkipsUnreadable(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "2026-01-01-good.md", "# Good\n\n## Summary\n\nDid things.\n")

	entries := LoadEntries([]string{filepath.Join(dir, "missing.md"), good})
	require.Len(t, entries, 1)
	assert.Equal(t, "2026-01-01", entries[0].Date)
	assert.Equal(t, "good", entries[0].Topic)
}
