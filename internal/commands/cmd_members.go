package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/squadview/internal/core/styles"
	"github.com/colonyops/squadview/pkg/iojson"
)

type MembersCmd struct {
	flags *Flags

	// flags
	jsonOutput bool
}

// NewMembersCmd creates a new members command
func NewMembersCmd(flags *Flags) *MembersCmd {
	return &MembersCmd{flags: flags}
}

// Register adds the members command to the application
func (cmd *MembersCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "members",
		Usage:     "List squad members with their current status",
		UsageText: "squadview members [--json]",
		Description: `Displays the resolved squad member list with role, status, and current task.

Members come from the team roster when it has rows, then from agent charter
folders, then from session log participants.`,
		Flags: []cli.Flag{
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

func (cmd *MembersCmd) run(ctx context.Context, c *cli.Command) error {
	members, err := cmd.flags.Provider.Members(ctx)
	if err != nil {
		return fmt.Errorf("resolve members: %w", err)
	}

	if len(members) == 0 {
		if !cmd.jsonOutput {
			fmt.Fprintf(os.Stderr, "No squad members found\n")
		}
		return nil
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		for _, m := range members {
			if err := iojson.WriteLine(out, m); err != nil {
				return fmt.Errorf("encode member: %w", err)
			}
		}
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tROLE\tSTATUS\tCURRENT TASK")
	for _, m := range members {
		task := m.CurrentTask
		if task == "" {
			task = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", m.Name, m.Role, styles.StatusBadge(m.Status), task)
	}
	return w.Flush()
}
