package roster

import (
	"strings"

	"github.com/colonyops/squadview/internal/core/mdscan"
)

// Matching strategies for joining tracker issues to members.
const (
	MatchSquadLabel = "squad-label" // label "squad:{member-slug}"
	MatchAssignee   = "assignee"    // assignee login, via the alias map
)

// IssueSourceConfig is the roster file's repository declaration: where
// issues come from and how they attach to members. The aggregation core
// consumes this shape; it never fetches issues itself.
type IssueSourceConfig struct {
	Owner    string `json:"owner"`
	Repo     string `json:"repo"`
	Strategy string `json:"strategy"`
	// Aliases maps tracker logins to roster member names.
	Aliases map[string]string `json:"aliases,omitempty"`
}

// parseIssueSource reads the declaration lines:
//
//	**Repository:** acme/widgets
//	**Issue matching:** squad-label
//	**Alias:** octocat = Rusty
//
// Returns nil when no repository is declared.
func parseIssueSource(lines []string) *IssueSourceConfig {
	var cfg IssueSourceConfig

	for _, line := range lines {
		key, value, ok := mdscan.MetaLine(line)
		if !ok {
			continue
		}

		switch strings.ToLower(key) {
		case "repository", "repo":
			owner, repo, found := strings.Cut(value, "/")
			if found {
				cfg.Owner = strings.TrimSpace(owner)
				cfg.Repo = strings.TrimSpace(repo)
			}
		case "issue matching", "matching":
			cfg.Strategy = strings.ToLower(strings.TrimSpace(value))
		case "alias":
			login, name, found := strings.Cut(value, "=")
			if !found {
				continue
			}
			if cfg.Aliases == nil {
				cfg.Aliases = make(map[string]string)
			}
			cfg.Aliases[strings.TrimSpace(login)] = strings.TrimSpace(name)
		}
	}

	if cfg.Owner == "" || cfg.Repo == "" {
		return nil
	}
	if cfg.Strategy == "" {
		cfg.Strategy = MatchSquadLabel
	}
	return &cfg
}
