package squad

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/colonyops/squadview/internal/core/activity"
	"github.com/colonyops/squadview/internal/core/mdscan"
	"github.com/colonyops/squadview/internal/core/roster"
)

// Folder names under the agents directory that are not member charters.
var reservedAgentDirs = map[string]bool{
	"coordinator": true,
	"shared":      true,
	"templates":   true,
}

// resolveMembersLocked walks the member resolution chain. Each tier runs
// only when the previous one produced nothing.
func (p *Provider) resolveMembersLocked(ctx context.Context) ([]roster.Member, error) {
	members, err := p.rosterMembers(ctx)
	if err != nil {
		return nil, err
	}
	if len(members) > 0 {
		return members, nil
	}

	if members := p.charterMembers(); len(members) > 0 {
		return members, nil
	}

	return p.participantMembersLocked(), nil
}

// rosterMembers is tier 1. An empty yield from an existing roster file
// usually means an initializer created the file but has not written rows
// yet, so the parse is retried once after a short delay. Structural
// corruption that survives the retry is the one error surfaced to the
// caller.
func (p *Provider) rosterMembers(ctx context.Context) ([]roster.Member, error) {
	path := p.cfg.RosterFile()

	r, err := roster.ParseFile(path)
	if err == nil && len(r.Members) > 0 {
		return r.Members, nil
	}
	if _, statErr := os.Stat(path); statErr != nil {
		return nil, nil // no roster file, nothing to retry
	}

	p.log.Debug().Str("path", path).Msg("roster yielded no members, retrying once")
	if sleepErr := sleepCtx(ctx, p.cfg.Roster.RetryDelay.Std()); sleepErr != nil {
		return nil, sleepErr
	}

	r, err = roster.ParseFile(path)
	if err != nil {
		if errors.Is(err, roster.ErrNoRows) {
			return nil, err
		}
		p.log.Warn().Err(err).Str("path", path).Msg("roster parse failed after retry")
		return nil, nil
	}
	return r.Members, nil
}

// charterMembers is tier 2: one member per agent folder, role read from
// the charter document's **Role:** line.
func (p *Provider) charterMembers() []roster.Member {
	dir := p.cfg.AgentsDir()
	subdirs, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var members []roster.Member
	for _, sub := range subdirs {
		if !sub.IsDir() {
			continue
		}
		name := sub.Name()
		if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
			continue
		}
		if reservedAgentDirs[strings.ToLower(name)] {
			continue
		}

		members = append(members, roster.Member{
			Name:   titleCase(name),
			Role:   charterRole(filepath.Join(dir, name)),
			Status: roster.StatusIdle,
		})
	}
	return members
}

// charterRole reads the first **Role:** line from the folder's charter
// document, preferring charter.md over other markdown files.
func charterRole(dir string) string {
	names := []string{"charter.md"}
	if entries, err := os.ReadDir(dir); err == nil {
		for _, e := range entries {
			if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".md") {
				continue
			}
			if strings.EqualFold(e.Name(), "charter.md") {
				continue
			}
			names = append(names, e.Name())
		}
	}

	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			continue
		}
		for _, line := range mdscan.SplitLines(string(data)) {
			key, value, ok := mdscan.MetaLine(line)
			if ok && strings.EqualFold(key, "role") && value != "" {
				return value
			}
		}
	}
	return "Squad Member"
}

// participantMembersLocked is tier 3: the union of every log participant,
// in first-seen order.
func (p *Provider) participantMembersLocked() []roster.Member {
	seen := make(map[string]bool)

	var members []roster.Member
	for _, entry := range p.loadEntriesLocked() {
		for _, name := range entry.Participants {
			if seen[name] {
				continue
			}
			seen[name] = true
			members = append(members, roster.Member{
				Name:   name,
				Role:   "Squad Member",
				Status: roster.StatusIdle,
			})
		}
	}
	return members
}

// overlayActivityLocked stamps status and current task onto resolved
// members. Working state comes from the status log only, and is kept
// only when an in-progress task actually references the member.
func (p *Provider) overlayActivityLocked(members []roster.Member) {
	states := activity.MemberStates(p.statusEntriesLocked())
	tasks := p.loadTasksLocked()

	for i := range members {
		m := &members[i]
		if state, ok := states[m.Name]; ok {
			m.Status = state
		}

		m.CurrentTask = ""
		for _, task := range tasks {
			if task.Status == activity.TaskInProgress && strings.EqualFold(task.Assignee, m.Name) {
				m.CurrentTask = task.Title
				break
			}
		}

		if m.Status == roster.StatusWorking && m.CurrentTask == "" {
			m.Status = roster.StatusIdle
		}
	}
}

func titleCase(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
