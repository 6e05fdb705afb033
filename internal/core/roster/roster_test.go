package roster

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRoster = `# Team

**Repository:** acme/widgets
**Issue matching:** assignee
**Alias:** octocat = Rusty

## Members

| Name  | Role        | Status         |
|-------|-------------|----------------|
| Rusty | Parser      | 🔨 Working     |
| Piper | Docs        | ✅ Active      |
| Danny | Coordinator | ✅ Active      |
| Moss  | Infra       |                |

## Alumni

Nobody yet.
`

func TestParse_MembersTable(t *testing.T) {
	r, err := Parse(sampleRoster)
	require.NoError(t, err)

	assert.Equal(t, []Member{
		{Name: "Rusty", Role: "Parser", Status: StatusWorking},
		{Name: "Piper", Role: "Docs", Status: StatusIdle},
		{Name: "Moss", Role: "Infra", Status: StatusIdle},
	}, r.Members)
}

func TestParse_CoordinatorOnlyYieldsNoMembers(t *testing.T) {
	content := "## Members\n\n| Name | Role | Status |\n|---|---|---|\n| Danny | Coordinator | ✅ Active |\n"
	r, err := Parse(content)

	require.NoError(t, err)
	assert.Empty(t, r.Members)
}

func TestParse_HeaderRowMapsColumns(t *testing.T) {
	content := "## Members\n\n| Role | Agent | State |\n|---|---|---|\n| Infra | Moss | working |\n"
	r, err := Parse(content)

	require.NoError(t, err)
	require.Len(t, r.Members, 1)
	assert.Equal(t, Member{Name: "Moss", Role: "Infra", Status: StatusWorking}, r.Members[0])
}

func TestParse_StatusBadges(t *testing.T) {
	tests := []struct {
		badge string
		want  Status
	}{
		{"🔨 Working", StatusWorking},
		{"working", StatusWorking},
		{"🔨", StatusWorking},
		{"✅ Active", StatusIdle},
		{"📋 Silent", StatusIdle},
		{"🔄 Monitor", StatusIdle},
		{"🤖 Coding Agent", StatusIdle},
		{"", StatusIdle},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFromBadge(tt.badge), "badge %q", tt.badge)
	}
}

func TestParse_NoTableIsEmptyNotError(t *testing.T) {
	r, err := Parse("# Team\n\nJust prose, no table yet.\n")

	require.NoError(t, err)
	assert.Empty(t, r.Members)
}

func TestParse_CorruptTableReturnsErrNoRows(t *testing.T) {
	content := "## Members\n\n| Name | Role |\n|---|---|\n| | |\n| | broken |\n"
	_, err := Parse(content)

	assert.ErrorIs(t, err, ErrNoRows)
}

func TestParse_IssueSource(t *testing.T) {
	r, err := Parse(sampleRoster)
	require.NoError(t, err)

	require.NotNil(t, r.IssueSource)
	assert.Equal(t, "acme", r.IssueSource.Owner)
	assert.Equal(t, "widgets", r.IssueSource.Repo)
	assert.Equal(t, MatchAssignee, r.IssueSource.Strategy)
	assert.Equal(t, map[string]string{"octocat": "Rusty"}, r.IssueSource.Aliases)
}

func TestParse_IssueSourceDefaultsToSquadLabel(t *testing.T) {
	r, err := Parse("**Repository:** acme/widgets\n")
	require.NoError(t, err)

	require.NotNil(t, r.IssueSource)
	assert.Equal(t, MatchSquadLabel, r.IssueSource.Strategy)
}

func TestParse_NoIssueSource(t *testing.T) {
	r, err := Parse("# Team\n")
	require.NoError(t, err)

	assert.Nil(t, r.IssueSource)
}

func TestParse_CapabilityProfile(t *testing.T) {
	t.Run("inline lists", func(t *testing.T) {
		content := "# Team\n\n<!-- capability-routing: on -->\n\n🟢 Go, parsers, CLI tooling\n🟡 frontend\n🔴 mobile\n"
		r, err := Parse(content)
		require.NoError(t, err)

		require.NotNil(t, r.Capabilities)
		assert.True(t, r.Capabilities.Enabled)
		assert.Equal(t, []string{"Go", "parsers", "CLI tooling"}, r.Capabilities.Strong)
		assert.Equal(t, []string{"frontend"}, r.Capabilities.Moderate)
		assert.Equal(t, []string{"mobile"}, r.Capabilities.Avoid)
	})

	t.Run("block lists", func(t *testing.T) {
		content := "🟢 Strong\n- Go\n- parsers\n\n🔴 Avoid\n- mobile\n"
		r, err := Parse(content)
		require.NoError(t, err)

		require.NotNil(t, r.Capabilities)
		assert.False(t, r.Capabilities.Enabled)
		assert.Equal(t, []string{"Go", "parsers"}, r.Capabilities.Strong)
		assert.Equal(t, []string{"mobile"}, r.Capabilities.Avoid)
	})

	t.Run("absent", func(t *testing.T) {
		r, err := Parse("# Team\n")
		require.NoError(t, err)
		assert.Nil(t, r.Capabilities)
	})
}

func TestParseFile_MissingIsEmpty(t *testing.T) {
	r, err := ParseFile(filepath.Join(t.TempDir(), "team.md"))

	require.NoError(t, err)
	assert.Empty(t, r.Members)
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "team.md")
	require.NoError(t, os.WriteFile(path, []byte(sampleRoster), 0o644))

	r, err := ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, r.Members, 3)
}
