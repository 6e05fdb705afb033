// Package activity discovers session logs and derives member state and
// task lists from them.
package activity

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/colonyops/squadview/internal/core/logging"
	"github.com/colonyops/squadview/internal/core/logparse"
)

// DiscoverLogFiles unions markdown files from every candidate directory.
// Both the status and narrative directories may legitimately contain files,
// so all candidates are scanned rather than short-circuiting on the first
// that exists; missing directories contribute nothing. Files whose name
// starts with "readme" (any case) and files matching an ignore glob are
// skipped. The result is sorted lexically.
func DiscoverLogFiles(dirs []string, ignore []string) []string {
	var files []string
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue // missing directory means no files, not an error
		}

		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			name := entry.Name()
			if !strings.EqualFold(filepath.Ext(name), ".md") {
				continue
			}
			if strings.HasPrefix(strings.ToLower(name), "readme") {
				continue
			}
			if matchesIgnore(name, ignore) {
				continue
			}
			files = append(files, filepath.Join(dir, name))
		}
	}

	sort.Strings(files)
	return files
}

func matchesIgnore(name string, ignore []string) bool {
	for _, pattern := range ignore {
		if ok, err := doublestar.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}

// LoadEntries parses every discovered log file. Malformed or unreadable
// files are skipped with a warning; the batch never aborts.
func LoadEntries(files []string) []logparse.Entry {
	log := logging.Component("activity")

	entries := make([]logparse.Entry, 0, len(files))
	for _, file := range files {
		entry, err := logparse.ParseFile(file)
		if err != nil {
			log.Warn().Err(err).Str("path", file).Msg("skipping unreadable log file")
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}
