package issues

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
)

// Client fetches issues by shelling out to the gh CLI. It inherits the
// user's existing gh authentication rather than managing tokens itself.
type Client struct {
	Owner string
	Repo  string
}

// Available reports whether the gh CLI is on PATH.
func Available() bool {
	_, err := exec.LookPath("gh")
	return err == nil
}

// ghIssue mirrors the gh CLI's --json output shape. Labels and assignees
// arrive as objects, not bare strings.
type ghIssue struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	State  string `json:"state"`
	Labels []struct {
		Name string `json:"name"`
	} `json:"labels"`
	Assignees []struct {
		Login string `json:"login"`
	} `json:"assignees"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ListOpen returns the repository's open issues.
func (c *Client) ListOpen(ctx context.Context) ([]Issue, error) {
	cmd := exec.CommandContext(ctx, "gh", "issue", "list",
		"--repo", c.Owner+"/"+c.Repo,
		"--state", "open",
		"--limit", "200",
		"--json", "number,title,state,labels,assignees,createdAt,updatedAt",
	)

	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok && len(exitErr.Stderr) > 0 {
			return nil, fmt.Errorf("gh issue list: %s", exitErr.Stderr)
		}
		return nil, fmt.Errorf("gh issue list: %w", err)
	}

	var raw []ghIssue
	if err := json.Unmarshal(output, &raw); err != nil {
		return nil, fmt.Errorf("decode gh output: %w", err)
	}

	issues := make([]Issue, 0, len(raw))
	for _, gi := range raw {
		issues = append(issues, gi.toIssue())
	}
	return issues, nil
}

func (gi ghIssue) toIssue() Issue {
	issue := Issue{
		Number: gi.Number,
		Title:  gi.Title,
		State:  gi.State,
	}
	for _, l := range gi.Labels {
		issue.Labels = append(issue.Labels, l.Name)
	}
	if len(gi.Assignees) > 0 {
		issue.Assignee = gi.Assignees[0].Login
	}
	issue.CreatedAt = parseTimestamp(gi.CreatedAt)
	issue.UpdatedAt = parseTimestamp(gi.UpdatedAt)
	return issue
}
