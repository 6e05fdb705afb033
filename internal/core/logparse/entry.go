// Package logparse turns a single squad session log into a structured Entry.
//
// Session logs are agent-authored markdown with conventions that drifted over
// the life of a project: several heading levels, several date encodings, and
// several ways of declaring who worked. The parser is liberal in what it
// accepts and deterministic in what it produces; it never fails on odd
// structure, only on I/O.
package logparse

import "time"

// Entry is one parsed session log.
//
// Optional fields are populated by whichever extractor in the fallback chain
// fired first; see parser.go for the chains.
type Entry struct {
	// Date is the ISO date (YYYY-MM-DD) the session happened. Never empty:
	// filename prefix, then a **Date:** metadata line, then today.
	Date string `json:"date"`

	// Topic is a slug derived from the filename suffix or the first H1.
	// Falls back to "unknown".
	Topic string `json:"topic"`

	// Timestamp is the session datetime when the filename encodes one
	// (YYYY-MM-DDThhmm), otherwise Date at midnight UTC.
	Timestamp time.Time `json:"timestamp"`

	// Participants lists agent names in declaration order, duplicates removed.
	Participants []string `json:"participants"`

	// Summary is never empty; "No summary available" is used when every
	// extraction strategy comes up dry.
	Summary string `json:"summary"`

	// Decisions and Outcomes hold the free-text bullets of their sections,
	// nil when the section is missing.
	Decisions []string `json:"decisions,omitempty"`
	Outcomes  []string `json:"outcomes,omitempty"`

	// RelatedIssues holds deduplicated "#123" style references, from a
	// Related Issues section or, failing that, anywhere in the document.
	RelatedIssues []string `json:"relatedIssues,omitempty"`

	// WhatWasDone is the per-agent work breakdown, nil when none was found.
	WhatWasDone []WorkItem `json:"whatWasDone,omitempty"`

	// FilePath is set by ParseFile; empty for entries parsed from memory.
	FilePath string `json:"filePath,omitempty"`
}

// WorkItem is one "- **Agent:** description" style line from a work section.
type WorkItem struct {
	Agent       string `json:"agent"`
	Description string `json:"description"`
}
