package logparse

import (
	"strings"

	"github.com/colonyops/squadview/internal/core/mdscan"
)

// participantExtractor attempts one historical participant-declaration
// convention. The bool reports whether the convention yielded anything.
type participantExtractor func(lines []string) ([]string, bool)

// participantExtractors is the ordered fallback chain. The log format
// evolved with no version marker and no backward migration, so every
// convention that ever existed has to be handled simultaneously; the first
// extractor that yields names wins.
var participantExtractors = []participantExtractor{
	fromMetaList("participants"),
	fromMetaList("who worked"),
	fromAgentRoutedRow,
	fromWhoWorkedTable,
	fromWhoWorkedBullets,
	fromWorkSectionBullets("what happened"),
	fromWorkDoneLabel,
	fromAnyBoldBullet,
}

func extractParticipants(lines []string) []string {
	for _, extract := range participantExtractors {
		if names, ok := extract(lines); ok && len(names) > 0 {
			return dedupe(names)
		}
	}
	return nil
}

// fromMetaList handles "**Participants:** Alice, Bob" style metadata lines,
// splitting the value on commas and semicolons.
func fromMetaList(key string) participantExtractor {
	return func(lines []string) ([]string, bool) {
		for _, line := range lines {
			k, value, ok := mdscan.MetaLine(line)
			if !ok || !strings.EqualFold(k, key) {
				continue
			}
			return splitNames(value), true
		}
		return nil, false
	}
}

// fromAgentRoutedRow handles coordinator-era tables with a row like
// "| **Agent routed** | Rusty (Parser) |".
func fromAgentRoutedRow(lines []string) ([]string, bool) {
	for _, line := range lines {
		cells := mdscan.TableCells(line)
		if len(cells) < 2 {
			continue
		}
		label := strings.ToLower(mdscan.StripBold(cells[0]))
		if !strings.HasPrefix(label, "agent routed") {
			continue
		}
		if name := cleanAgent(mdscan.StripBold(cells[1])); name != "" {
			return []string{name}, true
		}
	}
	return nil, false
}

// fromWhoWorkedTable reads the first column of a markdown table under a
// "Who Worked" section, skipping the header row, separator rows, and any
// bullet-prefixed stragglers mixed into the table.
func fromWhoWorkedTable(lines []string) ([]string, bool) {
	body, ok := mdscan.Section(lines, "who worked")
	if !ok {
		return nil, false
	}

	var names []string
	sawHeader := false
	for _, line := range body {
		cells := mdscan.TableCells(line)
		if cells == nil {
			continue
		}
		if mdscan.IsSeparatorRow(cells) {
			continue
		}
		if !sawHeader {
			sawHeader = true
			continue
		}
		name := cleanAgent(mdscan.StripBold(cells[0]))
		if name == "" || strings.HasPrefix(name, "-") {
			continue
		}
		names = append(names, name)
	}
	return names, len(names) > 0
}

// fromWhoWorkedBullets reads a "Who Worked" section written as a bullet list.
func fromWhoWorkedBullets(lines []string) ([]string, bool) {
	body, ok := mdscan.Section(lines, "who worked")
	if !ok {
		return nil, false
	}

	var names []string
	for _, line := range body {
		if !mdscan.IsBullet(line) {
			continue
		}
		if name := bulletName(mdscan.BulletText(line)); name != "" {
			names = append(names, name)
		}
	}
	return names, len(names) > 0
}

// fromWorkSectionBullets collects bold agent names from bullets under the
// named work sections. "What Was Done" is matched too: its heading contains
// no marker distinguishing it from "What Happened" era logs.
func fromWorkSectionBullets(names ...string) participantExtractor {
	names = append(names, "what was done")
	return func(lines []string) ([]string, bool) {
		for _, name := range names {
			body, ok := mdscan.Section(lines, name)
			if !ok {
				continue
			}
			if found := boldBulletNames(body); len(found) > 0 {
				return found, true
			}
		}
		return nil, false
	}
}

// fromWorkDoneLabel collects bold agent names from bullets following an
// inline "Work done:" label.
func fromWorkDoneLabel(lines []string) ([]string, bool) {
	block := inlineLabelBlock(lines, "work done")
	if block == nil {
		return nil, false
	}
	names := boldBulletNames(block)
	return names, len(names) > 0
}

// fromAnyBoldBullet is the last resort: bold names in any bullet anywhere.
func fromAnyBoldBullet(lines []string) ([]string, bool) {
	names := boldBulletNames(lines)
	return names, len(names) > 0
}

func boldBulletNames(lines []string) []string {
	var names []string
	for _, line := range lines {
		if !mdscan.IsBullet(line) {
			continue
		}
		m := boldItemPattern.FindStringSubmatch(mdscan.BulletText(line))
		if m == nil {
			continue
		}
		if name := cleanAgent(m[1]); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// bulletName extracts the agent name from a plain roster-style bullet:
// the bold span when present, otherwise the text before a colon or dash.
func bulletName(text string) string {
	if m := boldItemPattern.FindStringSubmatch(text); m != nil {
		return cleanAgent(m[1])
	}
	for _, sep := range []string{":", " — ", " - "} {
		if before, _, found := strings.Cut(text, sep); found {
			return cleanAgent(mdscan.StripBold(before))
		}
	}
	return cleanAgent(mdscan.StripBold(text))
}

// splitNames tokenizes a comma/semicolon separated name list, dropping
// empty tokens.
func splitNames(value string) []string {
	fields := strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ';'
	})

	names := make([]string, 0, len(fields))
	for _, f := range fields {
		if name := strings.TrimSpace(f); name != "" {
			names = append(names, name)
		}
	}
	return names
}
