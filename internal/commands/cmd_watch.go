package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/squadview/internal/watch"
)

type WatchCmd struct {
	flags *Flags
}

// NewWatchCmd creates a new watch command
func NewWatchCmd(flags *Flags) *WatchCmd {
	return &WatchCmd{flags: flags}
}

// Register adds the watch command to the application
func (cmd *WatchCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "watch",
		Usage:     "Watch squad files and refresh caches on change",
		UsageText: "squadview watch",
		Description: `Watches the squad directories for markdown changes and prints a notice
each time the aggregation caches are refreshed. Stop with Ctrl-C.`,
		Action: cmd.run,
	})

	return app
}

func (cmd *WatchCmd) run(ctx context.Context, c *cli.Command) error {
	cfg := cmd.flags.Config

	dirs := append(cfg.LogDirs(), cfg.DecisionsDir())
	dirs = append(dirs, filepath.Join(cfg.Workspace, cfg.SquadDir))

	w, err := watch.New(dirs, cmd.flags.Provider)
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer w.Close() //nolint:errcheck

	out := c.Root().Writer
	w.OnRefresh(func() {
		fmt.Fprintf(out, "[%s] caches refreshed\n", time.Now().Format("15:04:05"))
	})

	fmt.Fprintf(out, "Watching %s for changes...\n", cfg.SquadDir)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-sig:
		return nil
	}
}
