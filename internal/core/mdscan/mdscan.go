// Package mdscan provides line-oriented scanning helpers for the loosely
// structured markdown the squad writes. It is deliberately not a markdown
// parser: the artifact conventions only ever use headings, bullets, tables,
// and bold metadata lines, and heuristic extraction needs raw-line fidelity.
package mdscan

import (
	"regexp"
	"strings"
)

// metaLinePattern matches "**Key:** value" with the colon inside or outside
// the bold markers. The colon is required; a plain bold span is not metadata.
var metaLinePattern = regexp.MustCompile(`^\*\*([^*:]+)(?::\*\*|\*\*:)\s*(.*)$`)

// SplitLines normalizes CRLF endings and splits content into lines.
func SplitLines(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	return strings.Split(content, "\n")
}

// HeadingLevel returns the hash count of a markdown heading line, or 0.
func HeadingLevel(line string) int {
	trimmed := strings.TrimSpace(line)
	n := 0
	for n < len(trimmed) && trimmed[n] == '#' {
		n++
	}
	if n == 0 || n > 6 || n == len(trimmed) || trimmed[n] != ' ' {
		return 0
	}
	return n
}

// HeadingTitle returns the text of a heading line with hashes stripped.
func HeadingTitle(line string) string {
	trimmed := strings.TrimSpace(line)
	return strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
}

// Section returns the body lines of the first heading whose title contains
// any of the wanted names (case-insensitive). The body runs until the next
// heading at the same or a shallower level.
func Section(lines []string, names ...string) ([]string, bool) {
	for i, line := range lines {
		level := HeadingLevel(line)
		if level == 0 {
			continue
		}

		title := strings.ToLower(HeadingTitle(line))
		if !containsAny(title, names) {
			continue
		}

		var body []string
		for _, next := range lines[i+1:] {
			if l := HeadingLevel(next); l != 0 && l <= level {
				break
			}
			body = append(body, next)
		}
		return body, true
	}
	return nil, false
}

func containsAny(title string, names []string) bool {
	for _, name := range names {
		if strings.Contains(title, name) {
			return true
		}
	}
	return false
}

// TableCells splits a markdown table row into trimmed cell values.
// Returns nil for lines that are not table rows.
func TableCells(line string) []string {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "|") {
		return nil
	}

	trimmed = strings.Trim(trimmed, "|")
	parts := strings.Split(trimmed, "|")
	cells := make([]string, 0, len(parts))
	for _, p := range parts {
		cells = append(cells, strings.TrimSpace(p))
	}
	return cells
}

// IsSeparatorRow reports whether the cells form a |---|---| divider row.
func IsSeparatorRow(cells []string) bool {
	if len(cells) == 0 {
		return false
	}
	for _, c := range cells {
		if c == "" {
			continue
		}
		if strings.Trim(c, "-: ") != "" {
			return false
		}
	}
	return true
}

// StripBold removes surrounding ** markers and a trailing colon.
func StripBold(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "**")
	s = strings.TrimSuffix(s, "**")
	s = strings.TrimSuffix(strings.TrimSpace(s), ":")
	return strings.TrimSpace(s)
}

// IsBullet reports whether the line is a "- " or "* " list item.
func IsBullet(line string) bool {
	trimmed := strings.TrimSpace(line)
	return strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ")
}

// BulletText returns a list item's text with its marker stripped.
func BulletText(line string) string {
	trimmed := strings.TrimSpace(line)
	trimmed = strings.TrimPrefix(trimmed, "- ")
	trimmed = strings.TrimPrefix(trimmed, "* ")
	return strings.TrimSpace(trimmed)
}

// BulletTexts collects the text of every list item in the body lines.
func BulletTexts(lines []string) []string {
	var out []string
	for _, line := range lines {
		if IsBullet(line) {
			out = append(out, BulletText(line))
		}
	}
	return out
}

// MetaLine parses a "**Key:** value" line into its key and value.
func MetaLine(line string) (key, value string, ok bool) {
	m := metaLinePattern.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return "", "", false
	}
	return strings.TrimSpace(m[1]), strings.TrimSpace(m[2]), true
}

// IsMetaLine reports whether the line is a "**Key:** value" metadata line.
func IsMetaLine(line string) bool {
	_, _, ok := MetaLine(line)
	return ok
}
