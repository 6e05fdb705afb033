// Package roster parses the squad membership file: the Members table, the
// optional capability profile, and the issue-source declaration.
package roster

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/colonyops/squadview/internal/core/mdscan"
)

// Status is a member's runtime state. The roster file's badges are
// configuration-time hints; only an explicit working marker maps to
// StatusWorking, and the aggregation overlay has the final say.
type Status string

const (
	StatusWorking Status = "working"
	StatusIdle    Status = "idle"
)

// Member is one resolved roster entry.
type Member struct {
	Name        string `json:"name"`
	Role        string `json:"role"`
	Status      Status `json:"status"`
	CurrentTask string `json:"currentTask,omitempty"`
}

// Roster is the parsed contents of the membership file.
type Roster struct {
	Members      []Member
	Capabilities *CapabilityProfile
	IssueSource  *IssueSourceConfig
}

// ErrNoRows indicates the Members table exists but no row could be parsed.
// This is the only roster failure surfaced to callers; a missing file or a
// missing table degrade to an empty roster.
var ErrNoRows = errors.New("roster: members table has no parseable rows")

// roleCoordinator routes work between agents and is excluded from the
// member list; coordinators are not doers.
const roleCoordinator = "coordinator"

// ParseFile reads and parses the roster. A missing file yields an empty
// roster and no error.
func ParseFile(path string) (Roster, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Roster{}, nil
	}
	if err != nil {
		return Roster{}, fmt.Errorf("read roster: %w", err)
	}
	return Parse(string(data))
}

// Parse parses roster markdown. It returns ErrNoRows only when a Members
// table is present but structurally corrupt beyond row extraction.
func Parse(content string) (Roster, error) {
	lines := mdscan.SplitLines(content)

	members, err := parseMembersTable(lines)
	if err != nil {
		return Roster{}, err
	}

	return Roster{
		Members:      members,
		Capabilities: parseCapabilities(lines),
		IssueSource:  parseIssueSource(lines),
	}, nil
}

// parseMembersTable locates the Members section table and maps its rows.
// The header row determines column positions; separator rows are skipped;
// Coordinator rows are dropped.
func parseMembersTable(lines []string) ([]Member, error) {
	body, ok := mdscan.Section(lines, "members")
	if !ok {
		// No Members heading at all; fall back to the first table anywhere.
		body = lines
	}

	var (
		members   []Member
		columns   map[string]int
		dataRows  int
		validRows int
		sawHeader bool
	)

	for _, line := range body {
		cells := mdscan.TableCells(line)
		if cells == nil {
			if sawHeader {
				break // table ended
			}
			continue
		}
		if mdscan.IsSeparatorRow(cells) {
			continue
		}

		if !sawHeader {
			sawHeader = true
			columns = headerColumns(cells)
			continue
		}

		dataRows++
		member, ok := memberFromRow(cells, columns)
		if !ok {
			continue
		}
		validRows++
		if strings.EqualFold(member.Role, roleCoordinator) {
			continue
		}
		members = append(members, member)
	}

	// Rows exist but none produced a name at all: structural corruption.
	// A coordinator-only table still counts as valid (and empty).
	if sawHeader && dataRows > 0 && validRows == 0 {
		return nil, ErrNoRows
	}

	return members, nil
}

// headerColumns maps lowercase header names to cell indexes.
func headerColumns(cells []string) map[string]int {
	columns := make(map[string]int, len(cells))
	for i, cell := range cells {
		columns[strings.ToLower(mdscan.StripBold(cell))] = i
	}
	return columns
}

func memberFromRow(cells []string, columns map[string]int) (Member, bool) {
	name := cellValue(cells, columns, "name", "agent", "member")
	if name == "" {
		return Member{}, false
	}

	return Member{
		Name:   name,
		Role:   cellValue(cells, columns, "role"),
		Status: statusFromBadge(cellValue(cells, columns, "status", "state")),
	}, true
}

// cellValue resolves a cell by any of the given header names.
func cellValue(cells []string, columns map[string]int, names ...string) string {
	for _, name := range names {
		if i, ok := columns[name]; ok && i < len(cells) {
			return mdscan.StripBold(cells[i])
		}
	}
	return ""
}

// statusFromBadge maps a status badge to the binary runtime state. Only an
// explicit working marker counts; Active, Silent, Monitor, Coding Agent,
// and absent badges are all configuration noise and map to idle.
func statusFromBadge(badge string) Status {
	lowered := strings.ToLower(badge)
	if strings.Contains(lowered, "working") || strings.Contains(badge, "🔨") {
		return StatusWorking
	}
	return StatusIdle
}
