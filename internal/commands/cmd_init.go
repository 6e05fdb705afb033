package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/squadview/internal/core/config"
)

type InitCmd struct {
	flags *Flags

	// flags
	yes   bool
	force bool
}

// NewInitCmd creates a new init command
func NewInitCmd(flags *Flags) *InitCmd {
	return &InitCmd{flags: flags}
}

// Register adds the init command to the application
func (cmd *InitCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "init",
		Usage:     "Create the squad directory layout and config file",
		UsageText: "squadview init [--yes] [--force]",
		Description: `Sets up a workspace for squadview with an interactive wizard.

The wizard will:
  - Create the squad directory with status-log, narrative-log, and decisions subdirectories
  - Seed a team roster file with a members table
  - Write squadview.yml at the workspace root

Use --yes to accept all defaults without prompts.
Use --force to overwrite an existing config file.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "yes",
				Aliases:     []string{"y"},
				Usage:       "accept defaults without prompting",
				Destination: &cmd.yes,
			},
			&cli.BoolFlag{
				Name:        "force",
				Aliases:     []string{"f"},
				Usage:       "overwrite existing configuration",
				Destination: &cmd.force,
			},
		},
		Action: cmd.run,
	})

	return app
}

const rosterTemplate = `# Team

## Members

| Name | Role | Status |
|------|------|--------|

## Capabilities

<!-- capability-routing: off -->
`

func (cmd *InitCmd) run(_ context.Context, c *cli.Command) error {
	out := c.Root().Writer
	configPath := cmd.flags.ConfigPath
	squadDir := config.DefaultConfig().SquadDir

	if _, err := os.Stat(configPath); err == nil && !cmd.force {
		if cmd.yes {
			return fmt.Errorf("config exists at %s; use --force to overwrite", configPath)
		}

		var overwrite bool
		err := huh.NewConfirm().
			Title("Config file already exists").
			Description(configPath + "\nOverwrite?").
			Value(&overwrite).
			Run()
		if err != nil {
			return err
		}
		if !overwrite {
			fmt.Fprintln(out, "Init cancelled")
			return nil
		}
	}

	if !cmd.yes {
		err := huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title("Squad directory").
				Description("Directory holding logs, roster, and decisions").
				Value(&squadDir),
		)).Run()
		if err != nil {
			return err
		}
	}

	ws := cmd.flags.Workspace
	subdirs := []string{
		filepath.Join(ws, squadDir, "status-log"),
		filepath.Join(ws, squadDir, "narrative-log"),
		filepath.Join(ws, squadDir, "decisions"),
		filepath.Join(ws, squadDir, "agents"),
	}
	for _, dir := range subdirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	rosterPath := filepath.Join(ws, squadDir, "team.md")
	if _, err := os.Stat(rosterPath); os.IsNotExist(err) {
		if err := os.WriteFile(rosterPath, []byte(rosterTemplate), 0o644); err != nil {
			return fmt.Errorf("write roster: %w", err)
		}
	}

	configContent := fmt.Sprintf("squad_dir: %s\n", squadDir)
	if err := os.WriteFile(configPath, []byte(configContent), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	fmt.Fprintf(out, "Created %s/ and %s\n", squadDir, filepath.Base(configPath))
	fmt.Fprintln(out, "Add members to the roster table, then run 'squadview members'")
	return nil
}
