package roster

import (
	"strings"

	"github.com/colonyops/squadview/internal/core/mdscan"
)

// CapabilityProfile describes what a squad is good at, used to shape issue
// routing. Declared in the roster file as an HTML-comment feature flag plus
// three emoji-keyed skill lists.
type CapabilityProfile struct {
	// Enabled comes from a "<!-- capability-routing: on -->" comment.
	Enabled bool `json:"enabled"`

	Strong   []string `json:"strong"`   // 🟢
	Moderate []string `json:"moderate"` // 🟡
	Avoid    []string `json:"avoid"`    // 🔴
}

var capabilityMarkers = []struct {
	emoji string
	field func(*CapabilityProfile) *[]string
}{
	{"🟢", func(p *CapabilityProfile) *[]string { return &p.Strong }},
	{"🟡", func(p *CapabilityProfile) *[]string { return &p.Moderate }},
	{"🔴", func(p *CapabilityProfile) *[]string { return &p.Avoid }},
}

// parseCapabilities extracts the optional capability profile. Returns nil
// when neither the flag comment nor any emoji list is present.
func parseCapabilities(lines []string) *CapabilityProfile {
	var profile CapabilityProfile
	found := false

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)

		if enabled, ok := capabilityFlag(trimmed); ok {
			profile.Enabled = enabled
			found = true
			continue
		}

		for _, marker := range capabilityMarkers {
			if !strings.HasPrefix(trimmed, marker.emoji) {
				continue
			}
			items := capabilityList(trimmed, marker.emoji, lines[i+1:])
			if len(items) > 0 {
				*marker.field(&profile) = items
				found = true
			}
		}
	}

	if !found {
		return nil
	}
	return &profile
}

// capabilityFlag parses "<!-- capability-routing: on -->" style comments.
func capabilityFlag(line string) (bool, bool) {
	if !strings.HasPrefix(line, "<!--") || !strings.Contains(line, "capability-routing") {
		return false, false
	}

	value := strings.TrimSuffix(strings.TrimPrefix(line, "<!--"), "-->")
	_, value, _ = strings.Cut(value, ":")
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "on", "true", "yes", "1":
		return true, true
	default:
		return false, true
	}
}

// capabilityList reads an emoji-keyed skill list in either form:
//
//	🟢 Go, parsers, CLI tooling        (single line, comma separated)
//
//	🟢 Strong                          (block label followed by bullets)
//	- Go
//	- parsers
func capabilityList(line, emoji string, following []string) []string {
	rest := strings.TrimSpace(strings.TrimPrefix(line, emoji))
	rest = strings.TrimPrefix(rest, ":")
	rest = strings.TrimSpace(mdscan.StripBold(rest))

	var block []string
	for _, next := range following {
		if !mdscan.IsBullet(next) {
			break
		}
		block = append(block, strings.TrimSpace(mdscan.BulletText(next)))
	}

	// Bullets following the marker win; the marker text is then a label.
	if len(block) > 0 {
		return block
	}

	var items []string
	for _, part := range strings.Split(rest, ",") {
		if item := strings.TrimSpace(part); item != "" {
			items = append(items, item)
		}
	}
	return items
}
