// Package decisions parses the squad's decision records: a single ledger
// file and/or a directory of individual decision files.
package decisions

import (
	"regexp"
	"strings"
)

// Entry is one structured decision record.
type Entry struct {
	// Title is cleaned of date, "Decision:", and "User directive" prefixes.
	Title string `json:"title"`
	// Date is an ISO date string, empty when the record never states one.
	Date string `json:"date,omitempty"`
	// Author comes from an **Author:** or **By:** line; Author wins when
	// both are present.
	Author string `json:"author,omitempty"`
	// Content is the full raw section text, heading included.
	Content    string `json:"content"`
	FilePath   string `json:"filePath"`
	LineNumber int    `json:"lineNumber"`
}

// subsectionDenylist holds generic structural headings that are never real
// decisions, whatever their level. Matched case-insensitively against the
// cleaned title.
var subsectionDenylist = map[string]bool{
	"context":         true,
	"decision":        true,
	"rationale":       true,
	"impact":          true,
	"members":         true,
	"alumni":          true,
	"directive":       true,
	"success metrics": true,
	"status":          true,
	"notes":           true,
	"outcome":         true,
	"next steps":      true,
	"background":      true,
	"alternatives":    true,
}

var (
	isoDatePattern = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

	// leading "2026-02-14:" / "2026-02-14 -" / "2026-02-14 —" prefixes
	datePrefixPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}(?:/\d+)?\s*[:\-—–]?\s*`)

	decisionPrefixPattern  = regexp.MustCompile(`(?i)^decision\s*[:\-—–]\s*`)
	directivePrefixPattern = regexp.MustCompile(`(?i)^user directive\s*[:\-—–]\s*`)
)

// cleanTitle strips the date, "Decision:", and "User directive —"
// boilerplate prefixes from a raw heading title.
func cleanTitle(raw string) string {
	title := strings.TrimSpace(raw)
	title = datePrefixPattern.ReplaceAllString(title, "")
	title = decisionPrefixPattern.ReplaceAllString(title, "")
	title = directivePrefixPattern.ReplaceAllString(title, "")
	return strings.TrimSpace(title)
}

// isDenied reports whether a cleaned title is a generic subsection heading.
func isDenied(cleaned string) bool {
	return subsectionDenylist[strings.ToLower(cleaned)]
}

// headingDate returns the ISO date a heading title starts with, if any.
func headingDate(raw string) string {
	title := strings.TrimSpace(raw)
	if d := isoDatePattern.FindString(title); d != "" && strings.HasPrefix(title, d) {
		return d
	}
	return ""
}
