package decisions

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/colonyops/squadview/internal/core/logging"
	"github.com/colonyops/squadview/internal/core/mdscan"
)

// metadataWindow bounds how far into a section metadata lines are honored.
// Deep **Date:** lines belong to quoted material, not the decision itself.
const metadataWindow = 20

// Load combines the ledger and the decisions directory, sorted newest
// first. Date comparison is lexical, which ISO dates make correct; entries
// with no date sort to the very end.
func Load(ledgerPath, dir string) []Entry {
	entries := ParseLedgerFile(ledgerPath)
	entries = append(entries, ParseDir(dir)...)

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date > entries[j].Date
	})
	return entries
}

// ParseLedgerFile parses the canonical decisions ledger. A missing file
// yields no entries; a read failure is logged and skipped.
func ParseLedgerFile(path string) []Entry {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		log := logging.Component("decisions")
		log.Warn().Err(err).Str("path", path).Msg("skipping unreadable ledger")
		return nil
	}
	return ParseLedger(string(data), path)
}

// ParseLedger extracts decision entries from ledger markdown.
//
// H2 headings are always candidate decisions. H3 headings are candidates
// only when they start with an ISO date: that distinguishes Scribe-merged
// dated entries from plain structural subsections like "### Context".
// Cleaned titles on the subsection denylist are filtered regardless.
func ParseLedger(content, path string) []Entry {
	lines := mdscan.SplitLines(content)

	var entries []Entry
	for i, line := range lines {
		level := mdscan.HeadingLevel(line)
		if level != 2 && level != 3 {
			continue
		}

		raw := mdscan.HeadingTitle(line)
		if level == 3 && headingDate(raw) == "" {
			continue
		}

		cleaned := cleanTitle(raw)
		if cleaned == "" || isDenied(cleaned) {
			continue
		}

		body := sectionLines(lines, i, level)
		date, author := sectionMetadata(body)
		if date == "" {
			date = headingDate(raw)
		}

		entries = append(entries, Entry{
			Title:      cleaned,
			Date:       date,
			Author:     author,
			Content:    strings.Join(body, "\n"),
			FilePath:   path,
			LineNumber: i + 1,
		})
	}
	return entries
}

// ParseDir parses a directory tree of individual decision files. A missing
// directory yields no entries; malformed files are skipped with a warning.
func ParseDir(dir string) []Entry {
	if dir == "" {
		return nil
	}
	if _, err := os.Stat(dir); err != nil {
		return nil
	}

	log := logging.Component("decisions")

	matches, err := doublestar.Glob(os.DirFS(dir), "**/*.md")
	if err != nil {
		log.Warn().Err(err).Str("dir", dir).Msg("decision directory scan failed")
		return nil
	}
	sort.Strings(matches)

	var entries []Entry
	for _, rel := range matches {
		path := filepath.Join(dir, rel)
		entry, err := parseDecisionFile(path)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("skipping malformed decision file")
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

// parseDecisionFile parses one standalone decision document. The title
// prefers an H1 and falls back to H2 then H3; a missing date falls back to
// the file's birth time.
func parseDecisionFile(path string) (Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Entry{}, fmt.Errorf("read decision file: %w", err)
	}

	lines := mdscan.SplitLines(string(data))

	title, lineNumber := "", 1
	for _, level := range []int{1, 2, 3} {
		for i, line := range lines {
			if mdscan.HeadingLevel(line) != level {
				continue
			}
			cleaned := cleanTitle(mdscan.HeadingTitle(line))
			if cleaned == "" || isDenied(cleaned) {
				continue
			}
			title = cleaned
			lineNumber = i + 1
			break
		}
		if title != "" {
			break
		}
	}
	if title == "" {
		return Entry{}, fmt.Errorf("decision file %s has no heading", path)
	}

	date, author := sectionMetadata(lines)
	if date == "" {
		date = fileBirthDate(path)
	}

	return Entry{
		Title:      title,
		Date:       date,
		Author:     author,
		Content:    string(data),
		FilePath:   path,
		LineNumber: lineNumber,
	}, nil
}

// sectionLines returns the heading line plus its body, up to the next
// heading at the same or a shallower level.
func sectionLines(lines []string, start, level int) []string {
	end := len(lines)
	for i := start + 1; i < len(lines); i++ {
		if l := mdscan.HeadingLevel(lines[i]); l != 0 && l <= level {
			end = i
			break
		}
	}
	return lines[start:end]
}

// sectionMetadata scans the first metadataWindow lines for **Date:** and
// **Author:**/**By:** values. The first embedded ISO date wins, which also
// handles ranges like "2026-02-14/15".
func sectionMetadata(lines []string) (date, author string) {
	var byline string

	window := lines
	if len(window) > metadataWindow {
		window = window[:metadataWindow]
	}

	for _, line := range window {
		key, value, ok := mdscan.MetaLine(line)
		if !ok {
			continue
		}
		switch strings.ToLower(key) {
		case "date":
			if date == "" {
				date = isoDatePattern.FindString(value)
			}
		case "author":
			if author == "" {
				author = strings.TrimSpace(value)
			}
		case "by":
			if byline == "" {
				byline = strings.TrimSpace(value)
			}
		}
	}

	if author == "" {
		author = byline
	}
	return date, author
}

// fileBirthDate approximates a decision file's creation date from file
// metadata when the document itself never states one.
func fileBirthDate(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return ""
	}
	return info.ModTime().Format("2006-01-02")
}
