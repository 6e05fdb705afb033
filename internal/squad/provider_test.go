package squad

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/squadview/internal/core/activity"
	"github.com/colonyops/squadview/internal/core/config"
	"github.com/colonyops/squadview/internal/core/roster"
)

func testProvider(t *testing.T) (*Provider, *config.Config) {
	t.Helper()

	ws := t.TempDir()
	cfg, err := config.Load("", ws)
	require.NoError(t, err)
	cfg.Roster.RetryDelay = config.Duration(10 * time.Millisecond)

	return NewProvider(cfg), cfg
}

func writeWorkspaceFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

const rosterContent = `# Team

## Members

| Name  | Role     | Status     |
|-------|----------|------------|
| Alice | Engineer | 🔨 Working |
| Bob   | Reviewer | ✅ Active  |
`

func TestMembers_RosterTier(t *testing.T) {
	p, cfg := testProvider(t)
	writeWorkspaceFile(t, cfg.RosterFile(), rosterContent)
	writeWorkspaceFile(t, filepath.Join(cfg.StatusLogDir(), "2026-03-01-work.md"),
		"# Work\n\n**Participants:** Alice\n\n## Summary\n\nStarted the parser.\n")

	members, err := p.Members(context.Background())
	require.NoError(t, err)
	require.Len(t, members, 2)

	assert.Equal(t, "Alice", members[0].Name)
	assert.Equal(t, roster.StatusWorking, members[0].Status)
	assert.Equal(t, "Started the parser.", members[0].CurrentTask)
	assert.Equal(t, roster.StatusIdle, members[1].Status)
}

func TestMembers_WorkingWithoutTaskDowngraded(t *testing.T) {
	p, cfg := testProvider(t)
	writeWorkspaceFile(t, cfg.RosterFile(), rosterContent)
	// No log entries at all: no in-progress task can back Alice's badge.

	members, err := p.Members(context.Background())
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, roster.StatusIdle, members[0].Status)
}

func TestMembers_NarrativeLogNeverSetsWorking(t *testing.T) {
	p, cfg := testProvider(t)
	writeWorkspaceFile(t, cfg.RosterFile(), rosterContent)
	writeWorkspaceFile(t, filepath.Join(cfg.NarrativeLogDir(), "2026-03-01-story.md"),
		"# Story\n\n**Participants:** Bob\n\n## Summary\n\nWrote the retrospective.\n")

	members, err := p.Members(context.Background())
	require.NoError(t, err)

	for _, m := range members {
		assert.Equal(t, roster.StatusIdle, m.Status, m.Name)
	}
}

func TestMembers_CharterTier(t *testing.T) {
	p, cfg := testProvider(t)
	writeWorkspaceFile(t, filepath.Join(cfg.AgentsDir(), "rusty-nail", "charter.md"),
		"# Rusty Nail\n\n**Role:** Build Engineer\n")
	writeWorkspaceFile(t, filepath.Join(cfg.AgentsDir(), "coordinator", "charter.md"),
		"**Role:** Router\n")
	writeWorkspaceFile(t, filepath.Join(cfg.AgentsDir(), "plain", "notes.md"),
		"nothing structured here\n")

	members, err := p.Members(context.Background())
	require.NoError(t, err)
	require.Len(t, members, 2)

	byName := make(map[string]roster.Member)
	for _, m := range members {
		byName[m.Name] = m
	}
	assert.Equal(t, "Build Engineer", byName["Rusty Nail"].Role)
	assert.Equal(t, "Squad Member", byName["Plain"].Role)
}

func TestMembers_ParticipantTier(t *testing.T) {
	p, cfg := testProvider(t)
	writeWorkspaceFile(t, filepath.Join(cfg.StatusLogDir(), "2026-03-01-work.md"),
		"# Work\n\n**Participants:** Carol, Dave\n\n## Summary\n\nPaired on review.\n")

	members, err := p.Members(context.Background())
	require.NoError(t, err)
	require.Len(t, members, 2)

	assert.Equal(t, "Carol", members[0].Name)
	assert.Equal(t, "Squad Member", members[0].Role)
}

func TestMembers_EmptyRosterRetriesThenFallsThrough(t *testing.T) {
	p, cfg := testProvider(t)
	writeWorkspaceFile(t, cfg.RosterFile(), "# Team\n\nno table yet\n")
	writeWorkspaceFile(t, filepath.Join(cfg.StatusLogDir(), "2026-03-01-work.md"),
		"# Work\n\n**Participants:** Carol\n\n## Summary\n\nWorked.\n")

	members, err := p.Members(context.Background())
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "Carol", members[0].Name)
}

func TestMembers_CorruptRosterSurfacesError(t *testing.T) {
	p, cfg := testProvider(t)
	writeWorkspaceFile(t, cfg.RosterFile(), `## Members

| Name | Role | Status |
|------|------|--------|
|      |      |        |
`)

	_, err := p.Members(context.Background())
	require.ErrorIs(t, err, roster.ErrNoRows)
}

func TestMembers_RetryRespectsContext(t *testing.T) {
	p, cfg := testProvider(t)
	cfg.Roster.RetryDelay = config.Duration(time.Minute)
	writeWorkspaceFile(t, cfg.RosterFile(), "# Team\n\nempty\n")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := p.Members(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRefresh_ReloadsChangedFiles(t *testing.T) {
	p, cfg := testProvider(t)
	logPath := filepath.Join(cfg.StatusLogDir(), "2026-03-01-work.md")
	writeWorkspaceFile(t, logPath,
		"# Work\n\n**Participants:** Alice\n\n## Related Issues\n\n- #1\n")

	tasks := p.Tasks()
	require.Len(t, tasks, 1)

	// Cached result survives the file change until Refresh.
	writeWorkspaceFile(t, logPath,
		"# Work\n\n**Participants:** Alice\n\n## Related Issues\n\n- #1\n- #2\n")
	assert.Len(t, p.Tasks(), 1)

	p.Refresh()
	assert.Len(t, p.Tasks(), 2)
}

func TestTasksForMember(t *testing.T) {
	p, cfg := testProvider(t)
	writeWorkspaceFile(t, filepath.Join(cfg.StatusLogDir(), "2026-03-01-work.md"),
		"# Work\n\n**Participants:** Alice\n\n## Related Issues\n\n- #7\n")
	writeWorkspaceFile(t, filepath.Join(cfg.StatusLogDir(), "2026-03-02-other.md"),
		"# Other\n\n**Participants:** Bob\n\n## Related Issues\n\n- #8\n")

	tasks := p.TasksForMember("alice")
	require.Len(t, tasks, 1)
	assert.Equal(t, "7", tasks[0].ID)
}

func TestWorkDetails(t *testing.T) {
	p, cfg := testProvider(t)
	writeWorkspaceFile(t, cfg.RosterFile(), rosterContent)
	writeWorkspaceFile(t, filepath.Join(cfg.StatusLogDir(), "2026-03-01-work.md"),
		"# Work\n\n**Participants:** Alice\n\n## Related Issues\n\n- #7\n")

	details, err := p.WorkDetails(context.Background(), "7")
	require.NoError(t, err)
	require.NotNil(t, details)

	assert.Equal(t, activity.TaskInProgress, details.Task.Status)
	require.NotNil(t, details.Member)
	assert.Equal(t, "Alice", details.Member.Name)
	require.Len(t, details.LogEntries, 1)
}

func TestWorkDetails_UnknownID(t *testing.T) {
	p, _ := testProvider(t)

	details, err := p.WorkDetails(context.Background(), "999")
	require.NoError(t, err)
	assert.Nil(t, details)
}

func TestDecisions(t *testing.T) {
	p, cfg := testProvider(t)
	writeWorkspaceFile(t, cfg.LedgerFile(),
		"# Decisions\n\n## 2026-02-14: Fix bug\n\n**Author:** Rusty\n\nShip it.\n")

	list := p.Decisions()
	require.Len(t, list, 1)
	assert.Equal(t, "Fix bug", list[0].Title)
	assert.Equal(t, "Rusty", list[0].Author)
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Rusty Nail", titleCase("rusty-nail"))
	assert.Equal(t, "Alice Smith", titleCase("alice_smith"))
	assert.Equal(t, "Émile Dubois", titleCase("émile-dubois"))
}
