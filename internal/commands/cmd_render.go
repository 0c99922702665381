package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/pairview/pairview/internal/core/logging"
	"github.com/pairview/pairview/internal/core/mapping"
	"github.com/pairview/pairview/internal/core/styles"
	"github.com/pairview/pairview/internal/host"
	"github.com/pairview/pairview/internal/host/memhost"
	"github.com/pairview/pairview/internal/render"
	"github.com/pairview/pairview/internal/visuals"
	"github.com/pairview/pairview/pkg/iojson"
)

// CatalogEntry describes one component available to the render host.
type CatalogEntry struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

type RenderCmd struct {
	flags  *Flags
	app    *App
	reader iojson.FileReader[[]mapping.Mapping]

	// flags
	out       string
	catalog   string
	namespace string
}

// NewRenderCmd creates a new render command
func NewRenderCmd(flags *Flags, app *App) *RenderCmd {
	return &RenderCmd{flags: flags, app: app}
}

// Register adds the render command to the application
func (cmd *RenderCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "render",
		Usage:     "Generate a comparison for a mappings file and rasterize it",
		UsageText: "pairview render -f mappings.json --out comparison.png [--catalog catalog.json]",
		Description: `Reads a JSON array of mappings, runs the comparison generator against the
in-memory host, and writes the result as a PNG.

The optional catalog file lists the components available for import as
[{"key": "...", "name": "..."}]; keys absent from it render as inline error
markers, same as on a live canvas.`,
		Flags: []cli.Flag{
			cmd.reader.Flag(),
			&cli.StringFlag{
				Name:        "out",
				Aliases:     []string{"o"},
				Usage:       "output PNG path",
				Value:       "comparison.png",
				Destination: &cmd.out,
			},
			&cli.StringFlag{
				Name:        "catalog",
				Usage:       "path to a JSON catalog of importable components",
				Destination: &cmd.catalog,
			},
			&cli.StringFlag{
				Name:        "namespace",
				Usage:       "document namespace id for key qualification",
				Value:       "LOCAL",
				Destination: &cmd.namespace,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *RenderCmd) run(ctx context.Context, c *cli.Command) error {
	mappings, err := cmd.reader.Read()
	if err != nil {
		return fmt.Errorf("read mappings: %w", err)
	}

	h := memhost.New(cmd.namespace)
	if cmd.catalog != "" {
		if err := cmd.loadCatalog(h); err != nil {
			return err
		}
	}

	gen := visuals.New(h, h, h, h, cmd.app.Config.Canvas, logging.Component("visuals"))
	summary := gen.Generate(ctx, mappings)
	if summary.Fatal {
		return fmt.Errorf("generation failed: %s", summary.Text)
	}

	roots := h.Root()
	if len(roots) == 0 {
		return fmt.Errorf("generation produced no output")
	}

	fonts, err := render.LoadFonts(cmd.app.Config.Fonts)
	if err != nil {
		return fmt.Errorf("load fonts: %w", err)
	}
	if err := render.NewRenderer(fonts).RenderPNG(roots[0], cmd.out); err != nil {
		return fmt.Errorf("render: %w", err)
	}

	out := c.Root().Writer
	style := styles.Success
	if summary.HadErrors {
		style = styles.Warning
	}
	fmt.Fprintln(out, style.Render(summary.Text))
	fmt.Fprintln(out, styles.Muted.Render("wrote "+cmd.out))
	return nil
}

func (cmd *RenderCmd) loadCatalog(h *memhost.Host) error {
	data, err := os.ReadFile(cmd.catalog)
	if err != nil {
		return fmt.Errorf("read catalog: %w", err)
	}

	var entries []CatalogEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("parse catalog: %w", err)
	}

	for _, e := range entries {
		h.RegisterComponent(&host.Node{Kind: host.KindComponent, Name: e.Name, Key: e.Key})
	}
	return nil
}
