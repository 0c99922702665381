package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/pairview/pairview/internal/core/styles"
	"github.com/pairview/pairview/pkg/iojson"
)

// staleAfter is how old a stored set can be before ls flags it.
const staleAfter = 7 * 24 * time.Hour

type LsCmd struct {
	flags *Flags
	app   *App

	// flags
	jsonOutput bool
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags, app *App) *LsCmd {
	return &LsCmd{flags: flags, app: app}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Usage:     "List the saved component mappings",
		UsageText: "pairview ls [--json]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output the stored set as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
	set, err := cmd.app.Store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load mappings: %w", err)
	}
	if set == nil || len(set.Mappings) == 0 {
		if !cmd.jsonOutput {
			fmt.Fprintln(os.Stderr, "No mappings saved")
		}
		return nil
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		return iojson.WriteWith(out, os.Stderr, set)
	}

	saved := time.UnixMilli(set.Timestamp)
	age := time.Since(saved)
	header := fmt.Sprintf("%d mappings, saved %s", len(set.Mappings), saved.Format("2006-01-02 15:04"))
	fmt.Fprintln(out, styles.Header.Render(header))
	if age > staleAfter {
		fmt.Fprintln(out, styles.Warning.Render(fmt.Sprintf("saved %d days ago, may be stale", int(age.Hours()/24))))
	}

	if run, err := cmd.app.Store.LastRun(ctx); err == nil && run != nil {
		line := fmt.Sprintf("last generation: %d pairs at %s",
			run.Pairs, time.UnixMilli(run.Timestamp).Format("2006-01-02 15:04"))
		if run.HadErrors {
			line += " (with errors)"
		}
		fmt.Fprintln(out, styles.Muted.Render(line))
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\n", styles.Old.Render("OLD"), styles.New.Render("NEW"), "NOTES")
	for _, m := range set.Mappings {
		fmt.Fprintf(w, "%s\t%s\t%s\n", m.OldName, m.NewName, styles.Muted.Render(m.Notes))
	}
	return w.Flush()
}
