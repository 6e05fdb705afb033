package activity

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/colonyops/squadview/internal/core/logparse"
	"github.com/colonyops/squadview/pkg/slug"
)

var issueRefPattern = regexp.MustCompile(`#\d+`)

// TaskStatus is the lifecycle state of a derived task.
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
)

// Task is a unit of work derived from log entries. Tasks are never parsed
// directly; they are recomputed in full on every derivation call.
type Task struct {
	// ID is the issue number for issue-derived tasks, or
	// "{date}-{agent-slug}" for prose-derived ones.
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      TaskStatus `json:"status"`
	Assignee    string     `json:"assignee,omitempty"`
	StartedAt   time.Time  `json:"startedAt"`
	CompletedAt time.Time  `json:"completedAt,omitzero"`
}

// maxTitleLen bounds task titles; longer ones are cut at a word boundary.
const maxTitleLen = 60

// completionSignals are the keywords and emoji that mark free-text outcome
// prose as finished work.
var completionSignals = []string{"completed", "done", "✅", "pass", "succeeds"}

// ActiveTasks derives the deduplicated task list from log entries.
//
// Entries are processed newest-first so that first-occurrence-wins
// deduplication favors the most recent mention of an issue. Two passes:
// issue-referenced tasks first, then prose fallback tasks for entries that
// produced no issue task. Entries that already yielded structured
// issue-linked tasks contribute no synthetic task; that would double-count
// the session's output.
func ActiveTasks(entries []logparse.Entry) []Task {
	ordered := make([]logparse.Entry, len(entries))
	copy(ordered, entries)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date > ordered[j].Date
	})

	var (
		tasks []Task
		seen  = map[string]bool{}
		// indexes of entries that produced at least one issue task
		hasIssueTask = map[int]bool{}
	)

	for i, entry := range ordered {
		for _, task := range issueTasks(entry) {
			hasIssueTask[i] = true
			if seen[task.ID] {
				continue
			}
			seen[task.ID] = true
			tasks = append(tasks, task)
		}
	}

	for i, entry := range ordered {
		if hasIssueTask[i] || len(entry.Participants) == 0 {
			continue
		}

		if len(entry.WhatWasDone) > 0 {
			for _, item := range entry.WhatWasDone {
				task := workItemTask(entry, item)
				if seen[task.ID] {
					continue
				}
				seen[task.ID] = true
				tasks = append(tasks, task)
			}
			continue
		}

		task := summaryTask(entry)
		if seen[task.ID] {
			continue
		}
		seen[task.ID] = true
		tasks = append(tasks, task)
	}

	return tasks
}

// issueTasks emits one task per issue reference in the entry: the Related
// Issues list plus any #NNN tokens inside outcome bullets.
func issueTasks(entry logparse.Entry) []Task {
	refs := append([]string{}, entry.RelatedIssues...)
	for _, outcome := range entry.Outcomes {
		refs = append(refs, issueRefs(outcome)...)
	}

	status := TaskInProgress
	completedAt := time.Time{}
	if hasCompletionSignal(strings.Join(entry.Outcomes, " ")) {
		status = TaskCompleted
		completedAt = entry.Timestamp
	}

	var tasks []Task
	emitted := map[string]bool{}
	for _, ref := range refs {
		id := strings.TrimPrefix(ref, "#")
		if id == "" || emitted[id] {
			continue
		}
		emitted[id] = true

		tasks = append(tasks, Task{
			ID:          id,
			Title:       truncateTitle(fmt.Sprintf("#%s: %s", id, entry.Summary)),
			Description: entry.Summary,
			Status:      status,
			Assignee:    firstParticipant(entry),
			StartedAt:   entry.Timestamp,
			CompletedAt: completedAt,
		})
	}
	return tasks
}

// workItemTask converts one per-agent work item into a completed task.
func workItemTask(entry logparse.Entry, item logparse.WorkItem) Task {
	return Task{
		ID:          fmt.Sprintf("%s-%s", entry.Date, slug.Make(item.Agent)),
		Title:       truncateTitle(item.Description),
		Description: item.Description,
		Status:      TaskCompleted,
		Assignee:    item.Agent,
		StartedAt:   entry.Timestamp,
		CompletedAt: entry.Timestamp,
	}
}

// summaryTask synthesizes one task from an entry's summary and first
// participant, for entries with no per-agent breakdown.
func summaryTask(entry logparse.Entry) Task {
	assignee := firstParticipant(entry)

	signalText := entry.Summary + " " + strings.Join(entry.Outcomes, " ")
	status := TaskInProgress
	completedAt := time.Time{}
	if hasCompletionSignal(signalText) {
		status = TaskCompleted
		completedAt = entry.Timestamp
	}

	return Task{
		ID:          fmt.Sprintf("%s-%s", entry.Date, slug.Make(assignee)),
		Title:       truncateTitle(entry.Summary),
		Description: entry.Summary,
		Status:      status,
		Assignee:    assignee,
		StartedAt:   entry.Timestamp,
		CompletedAt: completedAt,
	}
}

// hasCompletionSignal reports whether free-text prose indicates finished
// work.
func hasCompletionSignal(text string) bool {
	lowered := strings.ToLower(text)
	for _, signal := range completionSignals {
		if strings.Contains(lowered, signal) {
			return true
		}
	}
	return false
}

// truncateTitle cuts titles longer than maxTitleLen at the nearest word
// boundary before the limit and appends an ellipsis.
func truncateTitle(title string) string {
	runes := []rune(title)
	if len(runes) <= maxTitleLen {
		return title
	}

	cut := string(runes[:maxTitleLen])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ") + "…"
}

func firstParticipant(entry logparse.Entry) string {
	if len(entry.Participants) == 0 {
		return ""
	}
	return entry.Participants[0]
}

func issueRefs(text string) []string {
	return issueRefPattern.FindAllString(text, -1)
}
