package squad

import (
	"context"
	"strings"

	"github.com/colonyops/squadview/internal/core/activity"
	"github.com/colonyops/squadview/internal/core/logparse"
	"github.com/colonyops/squadview/internal/core/roster"
)

// WorkDetails is the drill-down view for a single task.
type WorkDetails struct {
	Task       activity.Task    `json:"task"`
	Member     *roster.Member   `json:"member,omitempty"`
	LogEntries []logparse.Entry `json:"logEntries,omitempty"`
}

// WorkDetails resolves a task by id together with its assignee and the
// log entries that mention the assignee or the task's issue reference.
// Returns nil when no task carries the id.
func (p *Provider) WorkDetails(ctx context.Context, taskID string) (*WorkDetails, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var task *activity.Task
	for _, t := range p.loadTasksLocked() {
		if t.ID == taskID {
			task = &t
			break
		}
	}
	if task == nil {
		return nil, nil
	}

	details := &WorkDetails{Task: *task}

	members, err := p.loadMembersLocked(ctx)
	if err != nil {
		return nil, err
	}
	for i, m := range members {
		if strings.EqualFold(m.Name, task.Assignee) {
			details.Member = &members[i]
			break
		}
	}

	details.LogEntries = p.relatedEntriesLocked(*task)
	return details, nil
}

// relatedEntriesLocked finds entries referencing the task's issue number
// or listing its assignee as a participant.
func (p *Provider) relatedEntriesLocked(task activity.Task) []logparse.Entry {
	issueRef := "#" + task.ID

	var out []logparse.Entry
	for _, entry := range p.loadEntriesLocked() {
		if entryMentionsIssue(entry, issueRef) || entryHasParticipant(entry, task.Assignee) {
			out = append(out, entry)
		}
	}
	return out
}

func entryMentionsIssue(entry logparse.Entry, ref string) bool {
	for _, r := range entry.RelatedIssues {
		if r == ref {
			return true
		}
	}
	for _, o := range entry.Outcomes {
		if strings.Contains(o, ref) {
			return true
		}
	}
	return false
}

func entryHasParticipant(entry logparse.Entry, name string) bool {
	if name == "" {
		return false
	}
	for _, participant := range entry.Participants {
		if strings.EqualFold(participant, name) {
			return true
		}
	}
	return false
}
