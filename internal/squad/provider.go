// Package squad aggregates session logs, the roster, and the decision
// ledger into a single cached view of the squad.
package squad

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/colonyops/squadview/internal/core/activity"
	"github.com/colonyops/squadview/internal/core/config"
	"github.com/colonyops/squadview/internal/core/decisions"
	"github.com/colonyops/squadview/internal/core/logging"
	"github.com/colonyops/squadview/internal/core/logparse"
	"github.com/colonyops/squadview/internal/core/roster"
)

// Provider owns the four cache slots and is the only writer to them.
// Reads populate a slot lazily; Refresh clears every slot together so a
// consumer never observes a view mixing old and new file state.
type Provider struct {
	cfg *config.Config
	log zerolog.Logger

	mu sync.Mutex

	entries       []logparse.Entry
	entriesLoaded bool

	members       []roster.Member
	membersLoaded bool

	tasks       []activity.Task
	tasksLoaded bool

	decisionList    []decisions.Entry
	decisionsLoaded bool
}

// NewProvider creates a provider reading from the configured workspace.
func NewProvider(cfg *config.Config) *Provider {
	return &Provider{
		cfg: cfg,
		log: logging.Component("squad"),
	}
}

// Refresh invalidates all cache slots. The next read of each slot
// re-parses from disk.
func (p *Provider) Refresh() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.entriesLoaded = false
	p.membersLoaded = false
	p.tasksLoaded = false
	p.decisionsLoaded = false
	p.entries = nil
	p.members = nil
	p.tasks = nil
	p.decisionList = nil
}

// Entries returns every parsed session log entry, newest slot state.
func (p *Provider) Entries() []logparse.Entry {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loadEntriesLocked()
}

func (p *Provider) loadEntriesLocked() []logparse.Entry {
	if !p.entriesLoaded {
		files := activity.DiscoverLogFiles(p.cfg.LogDirs(), p.cfg.Ignore)
		p.entries = activity.LoadEntries(files)
		p.entriesLoaded = true
	}
	return p.entries
}

// statusEntriesLocked narrows the cached entries to those under the
// status log directory. Narrative logs are historical record only and
// must never affect computed member state.
func (p *Provider) statusEntriesLocked() []logparse.Entry {
	statusDir := p.cfg.StatusLogDir()

	var out []logparse.Entry
	for _, e := range p.loadEntriesLocked() {
		if strings.HasPrefix(e.FilePath, statusDir) {
			out = append(out, e)
		}
	}
	return out
}

// Members resolves the squad member list and overlays activity state.
// Only roster-table corruption surfaces as an error; every other missing
// or partial source degrades to the next resolution tier.
func (p *Provider) Members(ctx context.Context) ([]roster.Member, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.loadMembersLocked(ctx)
}

func (p *Provider) loadMembersLocked(ctx context.Context) ([]roster.Member, error) {
	if !p.membersLoaded {
		members, err := p.resolveMembersLocked(ctx)
		if err != nil {
			return nil, err
		}
		p.overlayActivityLocked(members)
		p.members = members
		p.membersLoaded = true
	}
	return p.members, nil
}

// Tasks returns the derived task list, newest first.
func (p *Provider) Tasks() []activity.Task {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loadTasksLocked()
}

func (p *Provider) loadTasksLocked() []activity.Task {
	if !p.tasksLoaded {
		p.tasks = activity.ActiveTasks(p.loadEntriesLocked())
		p.tasksLoaded = true
	}
	return p.tasks
}

// TasksForMember returns the tasks assigned to the named member.
func (p *Provider) TasksForMember(name string) []activity.Task {
	p.mu.Lock()
	defer p.mu.Unlock()

	var out []activity.Task
	for _, task := range p.loadTasksLocked() {
		if strings.EqualFold(task.Assignee, name) {
			out = append(out, task)
		}
	}
	return out
}

// Decisions returns all decision entries, newest first.
func (p *Provider) Decisions() []decisions.Entry {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.decisionsLoaded {
		p.decisionList = decisions.Load(p.cfg.LedgerFile(), p.cfg.DecisionsDir())
		p.decisionsLoaded = true
	}
	return p.decisionList
}
