package commands

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/squadview/internal/core/issues"
	"github.com/colonyops/squadview/internal/core/roster"
	"github.com/colonyops/squadview/pkg/iojson"
)

type IssuesCmd struct {
	flags *Flags

	// flags
	member     string
	jsonOutput bool
}

// NewIssuesCmd creates a new issues command
func NewIssuesCmd(flags *Flags) *IssuesCmd {
	return &IssuesCmd{flags: flags}
}

// Register adds the issues command to the application
func (cmd *IssuesCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "issues",
		Usage:     "List open tracker issues grouped by squad member",
		UsageText: "squadview issues [--member NAME] [--json]",
		Description: `Fetches open issues through the gh CLI from the repository declared in
the roster file and matches them to members by squad label or assignee.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "member",
				Aliases:     []string{"m"},
				Usage:       "only issues for this member",
				Destination: &cmd.member,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *IssuesCmd) run(ctx context.Context, c *cli.Command) error {
	r, err := roster.ParseFile(cmd.flags.Config.RosterFile())
	if err != nil {
		return fmt.Errorf("parse roster: %w", err)
	}
	if r.IssueSource == nil {
		return fmt.Errorf("roster declares no repository; add a **Repository:** line to %s", cmd.flags.Config.RosterFile())
	}
	if !issues.Available() {
		return fmt.Errorf("gh CLI not found on PATH")
	}

	client := &issues.Client{Owner: r.IssueSource.Owner, Repo: r.IssueSource.Repo}
	open, err := client.ListOpen(ctx)
	if err != nil {
		return fmt.Errorf("fetch issues: %w", err)
	}

	if cmd.member != "" {
		open = issues.MatchMember(open, cmd.member, *r.IssueSource)
	}

	if len(open) == 0 {
		if !cmd.jsonOutput {
			fmt.Fprintf(os.Stderr, "No open issues\n")
		}
		return nil
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		for _, issue := range open {
			if err := iojson.WriteLine(out, issue); err != nil {
				return fmt.Errorf("encode issue: %w", err)
			}
		}
		return nil
	}

	grouped := issues.GroupByMember(open, r.Members, *r.IssueSource)

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NUMBER\tTITLE\tMEMBER\tLABELS")
	for _, m := range r.Members {
		for _, issue := range grouped[m.Name] {
			fmt.Fprintf(w, "#%d\t%s\t%s\t%s\n", issue.Number, issue.Title, m.Name, strings.Join(issue.Labels, ","))
		}
	}
	for _, issue := range grouped[""] {
		fmt.Fprintf(w, "#%d\t%s\t-\t%s\n", issue.Number, issue.Title, strings.Join(issue.Labels, ","))
	}
	return w.Flush()
}
