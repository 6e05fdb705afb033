package activity

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/squadview/internal/core/logparse"
)

func entry(date string, mutate func(*logparse.Entry)) logparse.Entry {
	e := logparse.Entry{
		Date:      date,
		Topic:     "topic",
		Summary:   "Worked on the aggregation pipeline",
		Timestamp: mustDate(date),
	}
	if mutate != nil {
		mutate(&e)
	}
	return e
}

func mustDate(date string) time.Time {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return t
}

func TestActiveTasks_ScenarioIssuePair(t *testing.T) {
	e := entry("2026-03-01", func(e *logparse.Entry) {
		e.Topic = "api-design"
		e.Participants = []string{"Alice", "Bob"}
		e.RelatedIssues = []string{"#10", "#11"}
	})

	tasks := ActiveTasks([]logparse.Entry{e})
	require.Len(t, tasks, 2)

	assert.Equal(t, "10", tasks[0].ID)
	assert.Equal(t, "11", tasks[1].ID)
	for _, task := range tasks {
		assert.Equal(t, TaskInProgress, task.Status)
		assert.Equal(t, "Alice", task.Assignee)
	}
}

func TestActiveTasks_NoDuplicateIDs(t *testing.T) {
	newer := entry("2026-03-02", func(e *logparse.Entry) {
		e.Participants = []string{"Alice"}
		e.RelatedIssues = []string{"#7"}
		e.Outcomes = []string{"issue #7 done ✅"}
	})
	older := entry("2026-03-01", func(e *logparse.Entry) {
		e.Participants = []string{"Bob"}
		e.RelatedIssues = []string{"#7"}
	})

	tasks := ActiveTasks([]logparse.Entry{older, newer})
	require.Len(t, tasks, 1)

	// Newest-first processing: the 03-02 completed occurrence wins.
	assert.Equal(t, "7", tasks[0].ID)
	assert.Equal(t, TaskCompleted, tasks[0].Status)
	assert.Equal(t, "Alice", tasks[0].Assignee)
}

func TestActiveTasks_IssueRefsInOutcomes(t *testing.T) {
	e := entry("2026-03-01", func(e *logparse.Entry) {
		e.Participants = []string{"Alice"}
		e.Outcomes = []string{"shipped #42, follow-up pending"}
	})

	tasks := ActiveTasks([]logparse.Entry{e})
	require.Len(t, tasks, 1)
	assert.Equal(t, "42", tasks[0].ID)
	assert.Equal(t, TaskInProgress, tasks[0].Status)
}

func TestActiveTasks_CompletionSignals(t *testing.T) {
	signals := []string{"Completed the work", "all DONE here", "✅", "tests pass", "build succeeds"}

	for _, signal := range signals {
		e := entry("2026-03-01", func(e *logparse.Entry) {
			e.Participants = []string{"Alice"}
			e.RelatedIssues = []string{"#1"}
			e.Outcomes = []string{signal}
		})

		tasks := ActiveTasks([]logparse.Entry{e})
		require.Len(t, tasks, 1)
		assert.Equal(t, TaskCompleted, tasks[0].Status, "signal %q", signal)
	}
}

func TestActiveTasks_WhatWasDoneFallback(t *testing.T) {
	e := entry("2026-03-01", func(e *logparse.Entry) {
		e.Participants = []string{"Alice", "Bob"}
		e.WhatWasDone = []logparse.WorkItem{
			{Agent: "Alice", Description: "rewrote the scanner"},
			{Agent: "Bob", Description: "reviewed the diff"},
		}
	})

	tasks := ActiveTasks([]logparse.Entry{e})
	require.Len(t, tasks, 2)

	assert.Equal(t, "2026-03-01-alice", tasks[0].ID)
	assert.Equal(t, TaskCompleted, tasks[0].Status)
	assert.Equal(t, "rewrote the scanner", tasks[0].Title)
	assert.Equal(t, "2026-03-01-bob", tasks[1].ID)
}

func TestActiveTasks_SummaryFallback(t *testing.T) {
	e := entry("2026-03-01", func(e *logparse.Entry) {
		e.Participants = []string{"Carol"}
		e.Summary = "Started the roster refactor"
	})

	tasks := ActiveTasks([]logparse.Entry{e})
	require.Len(t, tasks, 1)

	assert.Equal(t, "2026-03-01-carol", tasks[0].ID)
	assert.Equal(t, TaskInProgress, tasks[0].Status)
	assert.Equal(t, "Carol", tasks[0].Assignee)
	assert.Equal(t, "Started the roster refactor", tasks[0].Title)
}

func TestActiveTasks_IssueEntryGetsNoSyntheticTask(t *testing.T) {
	e := entry("2026-03-01", func(e *logparse.Entry) {
		e.Participants = []string{"Alice"}
		e.RelatedIssues = []string{"#3"}
		e.WhatWasDone = []logparse.WorkItem{{Agent: "Alice", Description: "fixed it"}}
	})

	tasks := ActiveTasks([]logparse.Entry{e})
	require.Len(t, tasks, 1)
	assert.Equal(t, "3", tasks[0].ID)
}

func TestActiveTasks_NoParticipantsNoProseTask(t *testing.T) {
	e := entry("2026-03-01", nil)

	assert.Empty(t, ActiveTasks([]logparse.Entry{e}))
}

func TestTruncateTitle(t *testing.T) {
	long := "Reworked the whole aggregation pipeline including discovery and caching"
	got := truncateTitle(long)

	assert.LessOrEqual(t, len([]rune(got)), maxTitleLen+1)
	assert.True(t, len(got) < len(long))
	assert.Equal(t, "…", string([]rune(got)[len([]rune(got))-1]))
	assert.NotContains(t, got, "includin…") // cut at a word boundary
}

func TestTruncateTitle_ShortUnchanged(t *testing.T) {
	assert.Equal(t, "short title", truncateTitle("short title"))
}

func TestTruncateTitle_MultibyteStaysValid(t *testing.T) {
	long := strings.Repeat("é", maxTitleLen+10)
	got := truncateTitle(long)

	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, maxTitleLen+1, len([]rune(got)))
	assert.Equal(t, "…", string([]rune(got)[maxTitleLen]))
}
