package commands

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/glamour"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/squadview/internal/core/decisions"
	"github.com/colonyops/squadview/pkg/iojson"
)

type DecisionsCmd struct {
	flags *Flags

	// flags
	jsonOutput bool
	limit      int
	raw        bool
	showJSON   bool
}

// NewDecisionsCmd creates a new decisions command
func NewDecisionsCmd(flags *Flags) *DecisionsCmd {
	return &DecisionsCmd{flags: flags}
}

// Register adds the decisions command to the application
func (cmd *DecisionsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "decisions",
		Usage:     "List decision records, newest first",
		UsageText: "squadview decisions [--json] [--limit N]",
		Description: `Lists decisions from the ledger file and the decisions directory combined.

Use 'squadview decisions show <title>' to render a single decision's content.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
			&cli.IntFlag{
				Name:        "limit",
				Aliases:     []string{"n"},
				Usage:       "show at most N decisions (0 = all)",
				Destination: &cmd.limit,
			},
		},
		Action: cmd.runList,
		Commands: []*cli.Command{
			{
				Name:      "show",
				Usage:     "Render one decision's full content",
				UsageText: "squadview decisions show [--raw|--json] <title substring>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:        "raw",
						Usage:       "print raw markdown without rendering",
						Destination: &cmd.raw,
					},
					&cli.BoolFlag{
						Name:        "json",
						Usage:       "output the decision as indented JSON",
						Destination: &cmd.showJSON,
					},
				},
				Action: cmd.runShow,
			},
		},
	})

	return app
}

func (cmd *DecisionsCmd) runList(_ context.Context, c *cli.Command) error {
	list := cmd.flags.Provider.Decisions()
	if cmd.limit > 0 && len(list) > cmd.limit {
		list = list[:cmd.limit]
	}

	if len(list) == 0 {
		if !cmd.jsonOutput {
			fmt.Fprintf(os.Stderr, "No decisions found\n")
		}
		return nil
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		for _, d := range list {
			if err := iojson.WriteLine(out, d); err != nil {
				return fmt.Errorf("encode decision: %w", err)
			}
		}
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tTITLE\tAUTHOR")
	for _, d := range list {
		date := d.Date
		if date == "" {
			date = "-"
		}
		author := d.Author
		if author == "" {
			author = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", date, d.Title, author)
	}
	return w.Flush()
}

func (cmd *DecisionsCmd) runShow(_ context.Context, c *cli.Command) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("usage: squadview decisions show <title substring>")
	}

	match, ok := findDecision(cmd.flags.Provider.Decisions(), query)
	if !ok {
		return fmt.Errorf("no decision matching %q", query)
	}

	out := c.Root().Writer
	if cmd.showJSON {
		return iojson.WriteWith(out, os.Stderr, match)
	}

	if cmd.raw || !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(out, match.Content)
		return nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		fmt.Fprintln(out, match.Content)
		return nil
	}

	rendered, err := renderer.Render(match.Content)
	if err != nil {
		fmt.Fprintln(out, match.Content)
		return nil
	}
	fmt.Fprint(out, rendered)
	return nil
}

// findDecision picks the first decision whose title contains the query,
// case-insensitively.
func findDecision(list []decisions.Entry, query string) (decisions.Entry, bool) {
	q := strings.ToLower(query)
	for _, d := range list {
		if strings.Contains(strings.ToLower(d.Title), q) {
			return d, true
		}
	}
	return decisions.Entry{}, false
}
