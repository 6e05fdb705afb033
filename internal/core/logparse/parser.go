package logparse

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/colonyops/squadview/internal/core/mdscan"
	"github.com/colonyops/squadview/pkg/slug"
)

// NoSummary is the sentinel used when no summary text could be extracted.
const NoSummary = "No summary available"

var (
	// 2026-03-01-api-design.md or 2026-03-01T1430-api-design.md
	fileNamePattern = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})(?:T(\d{2})(\d{2}))?[-_]*(.*)$`)

	isoDatePattern  = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
	issueRefPattern = regexp.MustCompile(`#\d+`)

	// **Alice:** refactored the parser (inside a bullet)
	boldItemPattern = regexp.MustCompile(`^\*\*([^*]+?):?\*\*:?\s*(.*)$`)

	// Alice refactored the parser (capitalized first word heuristic)
	plainItemPattern = regexp.MustCompile(`^([A-Z][A-Za-z]+)\s+(.+)$`)

	// trailing role or work-item suffix, e.g. "Rusty (WI-01)"
	parenSuffixPattern = regexp.MustCompile(`\s*\([^)]*\)$`)
)

// ParseFile reads and parses one session log. It only fails on I/O; odd
// content degrades to best-effort fields.
func ParseFile(path string) (Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Entry{}, fmt.Errorf("read log file: %w", err)
	}

	entry := Parse(filepath.Base(path), string(data))
	entry.FilePath = path
	return entry, nil
}

// Parse builds an Entry from a log file's name and content. It never fails:
// every field has a fallback chain ending in a deterministic default.
func Parse(filename, content string) Entry {
	lines := mdscan.SplitLines(content)

	var entry Entry
	entry.Date, entry.Timestamp = extractDate(filename, lines)
	entry.Topic = extractTopic(filename, lines)
	entry.Participants = extractParticipants(lines)
	entry.Summary = extractSummary(lines)
	entry.WhatWasDone = extractWorkItems(lines)
	entry.RelatedIssues = extractRelatedIssues(lines, content)

	if body, ok := mdscan.Section(lines, "decision"); ok {
		entry.Decisions = mdscan.BulletTexts(body)
	}
	if body, ok := mdscan.Section(lines, "outcome"); ok {
		entry.Outcomes = mdscan.BulletTexts(body)
	}

	return entry
}

// extractDate resolves the session date: filename prefix, then a **Date:**
// metadata line, then the current date.
func extractDate(filename string, lines []string) (string, time.Time) {
	if m := fileNamePattern.FindStringSubmatch(filename); m != nil {
		date := m[1]
		ts := midnight(date)
		if m[2] != "" {
			if t, err := time.Parse("2006-01-02T15:04", fmt.Sprintf("%sT%s:%s", date, m[2], m[3])); err == nil {
				ts = t
			}
		}
		return date, ts
	}

	for _, line := range lines {
		if key, value, ok := mdscan.MetaLine(line); ok && strings.EqualFold(key, "date") {
			if d := isoDatePattern.FindString(value); d != "" {
				return d, midnight(d)
			}
		}
	}

	now := time.Now().UTC()
	date := now.Format("2006-01-02")
	return date, midnight(date)
}

// extractTopic resolves the topic: filename suffix, then the first H1 as a
// slug, then "unknown".
func extractTopic(filename string, lines []string) string {
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	if m := fileNamePattern.FindStringSubmatch(base); m != nil && m[4] != "" {
		if s := slug.Make(m[4]); s != "" {
			return s
		}
	}

	for _, line := range lines {
		if mdscan.HeadingLevel(line) == 1 {
			if s := slug.Make(mdscan.HeadingTitle(line)); s != "" {
				return s
			}
			break
		}
	}

	return "unknown"
}

// extractSummary tries, in order: an explicit Summary section, an **Outcome**
// table-row value, a heading's trailing em-dash fragment, and the first
// free-text paragraph after the title.
func extractSummary(lines []string) string {
	if body, ok := mdscan.Section(lines, "summary"); ok {
		if text := firstParagraph(body); text != "" {
			return text
		}
	}

	for _, line := range lines {
		cells := mdscan.TableCells(line)
		if len(cells) >= 2 && strings.EqualFold(mdscan.StripBold(cells[0]), "outcome") && cells[1] != "" {
			return cells[1]
		}
	}

	for _, line := range lines {
		if mdscan.HeadingLevel(line) == 0 {
			continue
		}
		if _, after, found := strings.Cut(mdscan.HeadingTitle(line), "—"); found {
			if text := strings.TrimSpace(after); text != "" {
				return text
			}
		}
	}

	if text := firstParagraph(skipTitle(lines)); text != "" {
		return text
	}

	return NoSummary
}

// extractWorkItems parses the per-agent work breakdown from a What Was Done
// section, falling back to Summary and What Happened sections, then to an
// inline "Work done:" label.
func extractWorkItems(lines []string) []WorkItem {
	sources := [][]string{}
	for _, name := range []string{"what was done", "summary", "what happened"} {
		if body, ok := mdscan.Section(lines, name); ok {
			sources = append(sources, body)
		}
	}
	if block := inlineLabelBlock(lines, "work done"); block != nil {
		sources = append(sources, block)
	}

	for _, body := range sources {
		var items []WorkItem
		for _, line := range body {
			if !mdscan.IsBullet(line) {
				continue
			}
			if agent, desc, ok := workItem(mdscan.BulletText(line)); ok {
				items = append(items, WorkItem{Agent: agent, Description: desc})
			}
		}
		if len(items) > 0 {
			return items
		}
	}
	return nil
}

// workItem splits one bullet into agent and description. Bold agents are
// authoritative; unbolded bullets use the capitalized-first-word heuristic.
func workItem(text string) (string, string, bool) {
	if m := boldItemPattern.FindStringSubmatch(text); m != nil {
		desc := strings.TrimSpace(m[2])
		if desc == "" {
			return "", "", false
		}
		return cleanAgent(m[1]), desc, true
	}

	if m := plainItemPattern.FindStringSubmatch(text); m != nil {
		return cleanAgent(m[1]), strings.TrimSpace(m[2]), true
	}

	return "", "", false
}

// extractRelatedIssues collects #NNN references from a Related Issues
// section, else from anywhere in the document. Order-preserving dedupe.
func extractRelatedIssues(lines []string, content string) []string {
	var refs []string
	if body, ok := mdscan.Section(lines, "related issue"); ok {
		refs = issueRefPattern.FindAllString(strings.Join(body, "\n"), -1)
	}
	if len(refs) == 0 {
		refs = issueRefPattern.FindAllString(content, -1)
	}
	return dedupe(refs)
}

// inlineLabelBlock returns the bullet lines immediately following an inline
// label such as "**Work done:**", stopping at a blank line or heading.
func inlineLabelBlock(lines []string, label string) []string {
	for i, line := range lines {
		if !strings.Contains(strings.ToLower(line), label+":") {
			continue
		}

		var block []string
		for _, next := range lines[i+1:] {
			if strings.TrimSpace(next) == "" || mdscan.HeadingLevel(next) != 0 {
				break
			}
			block = append(block, next)
		}
		if len(block) > 0 {
			return block
		}
	}
	return nil
}

// firstParagraph joins the first run of plain prose lines, skipping
// headings, bullets, tables, metadata lines, and HTML comments.
func firstParagraph(lines []string) string {
	var para []string
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			if len(para) > 0 {
				return strings.Join(para, " ")
			}
		case mdscan.HeadingLevel(line) != 0, mdscan.IsBullet(line), mdscan.TableCells(line) != nil,
			mdscan.IsMetaLine(line), strings.HasPrefix(trimmed, "<!--"):
			if len(para) > 0 {
				return strings.Join(para, " ")
			}
		default:
			para = append(para, trimmed)
		}
	}
	return strings.Join(para, " ")
}

// skipTitle drops everything up to and including the first heading.
func skipTitle(lines []string) []string {
	for i, line := range lines {
		if mdscan.HeadingLevel(line) != 0 {
			return lines[i+1:]
		}
	}
	return lines
}

// cleanAgent strips a trailing parenthetical suffix like "(WI-01)".
func cleanAgent(name string) string {
	name = strings.TrimSpace(name)
	return strings.TrimSpace(parenSuffixPattern.ReplaceAllString(name, ""))
}

func dedupe(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

func midnight(date string) time.Time {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}
	}
	return t
}
