package commands

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/squadview/internal/core/decisions"
	"github.com/colonyops/squadview/pkg/iojson"
)

type SearchCmd struct {
	flags *Flags

	// flags
	from       string
	to         string
	author     string
	jsonOutput bool
}

// NewSearchCmd creates a new search command
func NewSearchCmd(flags *Flags) *SearchCmd {
	return &SearchCmd{flags: flags}
}

// Register adds the search command to the application
func (cmd *SearchCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "search",
		Usage:     "Search decisions by relevance",
		UsageText: "squadview search [options] <query terms>",
		Description: `Ranks decisions against the query: title matches score highest, then
author, then content. Date and author filters narrow the ranked results.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "from",
				Usage:       "earliest date to include (YYYY-MM-DD)",
				Destination: &cmd.from,
			},
			&cli.StringFlag{
				Name:        "to",
				Usage:       "latest date to include (YYYY-MM-DD)",
				Destination: &cmd.to,
			},
			&cli.StringFlag{
				Name:        "author",
				Aliases:     []string{"a"},
				Usage:       "only decisions by this author (substring match)",
				Destination: &cmd.author,
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

func (cmd *SearchCmd) run(_ context.Context, c *cli.Command) error {
	query := strings.Join(c.Args().Slice(), " ")

	results := decisions.Filter(cmd.flags.Provider.Decisions(), decisions.FilterOptions{
		Query:  query,
		From:   cmd.from,
		To:     cmd.to,
		Author: cmd.author,
	})

	if len(results) == 0 {
		if !cmd.jsonOutput {
			fmt.Fprintf(os.Stderr, "No matching decisions\n")
		}
		return nil
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		for _, d := range results {
			if err := iojson.WriteLine(out, d); err != nil {
				return fmt.Errorf("encode decision: %w", err)
			}
		}
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tTITLE\tAUTHOR")
	for _, d := range results {
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
