package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/squadview/internal/core/activity"
	"github.com/colonyops/squadview/internal/core/styles"
	"github.com/colonyops/squadview/pkg/iojson"
)

type TasksCmd struct {
	flags *Flags

	// flags
	member     string
	jsonOutput bool
}

// NewTasksCmd creates a new tasks command
func NewTasksCmd(flags *Flags) *TasksCmd {
	return &TasksCmd{flags: flags}
}

// Register adds the tasks command to the application
func (cmd *TasksCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "tasks",
		Usage:     "List tasks derived from session logs",
		UsageText: "squadview tasks [--member NAME] [--json]",
		Description: `Shows the deduplicated task list derived from session logs, newest first.

Tasks come from issue references when a log declares them, otherwise from
per-agent work items or the session summary.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "member",
				Aliases:     []string{"m"},
				Usage:       "only tasks assigned to this member",
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

func (cmd *TasksCmd) run(_ context.Context, c *cli.Command) error {
	var tasks []activity.Task
	if cmd.member != "" {
		tasks = cmd.flags.Provider.TasksForMember(cmd.member)
	} else {
		tasks = cmd.flags.Provider.Tasks()
	}

	if len(tasks) == 0 {
		if !cmd.jsonOutput {
			fmt.Fprintf(os.Stderr, "No tasks found\n")
		}
		return nil
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		for _, t := range tasks {
			if err := iojson.WriteLine(out, t); err != nil {
				return fmt.Errorf("encode task: %w", err)
			}
		}
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tASSIGNEE")
	for _, t := range tasks {
		assignee := t.Assignee
		if assignee == "" {
			assignee = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", t.ID, t.Title, styles.TaskBadge(t.Status), assignee)
	}
	return w.Flush()
}
