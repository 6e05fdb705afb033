package issues

import (
	"strings"

	"github.com/colonyops/squadview/internal/core/roster"
	"github.com/colonyops/squadview/pkg/slug"
)

// MatchMember returns the issues attributable to the named member under
// the roster's configured matching strategy.
//
// The squad-label strategy matches issues carrying a "squad:{member-slug}"
// label. The assignee strategy matches on the issue assignee's login,
// either a configured alias for the member or a slug of the member name.
func MatchMember(issues []Issue, name string, src roster.IssueSourceConfig) []Issue {
	var matched []Issue
	for _, issue := range issues {
		if memberMatches(issue, name, src) {
			matched = append(matched, issue)
		}
	}
	return matched
}

// GroupByMember buckets issues per member name. Issues matching no member
// are returned under the empty key.
func GroupByMember(issues []Issue, members []roster.Member, src roster.IssueSourceConfig) map[string][]Issue {
	grouped := make(map[string][]Issue)
	for _, issue := range issues {
		assigned := false
		for _, m := range members {
			if memberMatches(issue, m.Name, src) {
				grouped[m.Name] = append(grouped[m.Name], issue)
				assigned = true
			}
		}
		if !assigned {
			grouped[""] = append(grouped[""], issue)
		}
	}
	return grouped
}

func memberMatches(issue Issue, name string, src roster.IssueSourceConfig) bool {
	switch src.Strategy {
	case roster.MatchAssignee:
		return assigneeMatches(issue.Assignee, name, src.Aliases)
	default:
		return hasSquadLabel(issue.Labels, name)
	}
}

func hasSquadLabel(labels []string, name string) bool {
	want := "squad:" + slug.Make(name)
	for _, label := range labels {
		if strings.EqualFold(label, want) {
			return true
		}
	}
	return false
}

func assigneeMatches(login, name string, aliases map[string]string) bool {
	if login == "" {
		return false
	}
	if aliased, ok := aliases[login]; ok {
		return strings.EqualFold(aliased, name)
	}
	return strings.EqualFold(login, slug.Make(name))
}
