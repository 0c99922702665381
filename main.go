package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/pairview/pairview/internal/commands"
	"github.com/pairview/pairview/internal/core/config"
	"github.com/pairview/pairview/internal/core/eventbus"
	"github.com/pairview/pairview/internal/core/logging"
	"github.com/pairview/pairview/internal/data/db"
	"github.com/pairview/pairview/internal/data/stores"
	"github.com/pairview/pairview/internal/plugin"
	"github.com/pairview/pairview/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, init() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		logCloser func()
		database  *db.DB
		app       = &commands.App{}
	)

	flags := &commands.Flags{}

	root := &cli.Command{
		Name:      "pairview",
		Usage:     "Record component migrations and generate side-by-side comparisons",
		UsageText: "pairview [global options] command [command options]",
		Description: `Pairview records mappings between old and new UI components and builds
side-by-side visual comparisons of each pair on a canvas.

Run 'pairview serve' to expose the message channel for the form UI, or
'pairview render' to rasterize a comparison without a host attached.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("PAIRVIEW_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to stderr)",
				Sources:     cli.EnvVars("PAIRVIEW_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("PAIRVIEW_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("PAIRVIEW_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger, closer, err := logutils.New(flags.LogLevel, flags.LogFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}

			if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
				return ctx, fmt.Errorf("create data dir %q: %w", cfg.DataDir, err)
			}

			database, err = db.Open(cfg.DataDir, db.OpenOptions{
				MaxOpenConns: cfg.Database.MaxOpenConns,
				MaxIdleConns: cfg.Database.MaxIdleConns,
				BusyTimeout:  cfg.Database.BusyTimeout,
			})
			if err != nil {
				return ctx, fmt.Errorf("open database: %w", err)
			}

			kvStore := stores.NewKVStore(database)

			bus := eventbus.New()
			eventbus.RegisterDebugLogger(bus, logging.Component("eventbus"))
			bus.Start(ctx)

			*app = commands.App{
				Config: cfg,
				KV:     kvStore,
				Bus:    bus,
				Store:  plugin.NewMappingStore(kvStore),
			}

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if database != nil {
				if err := database.Close(); err != nil {
					log.Error().Err(err).Msg("failed to close database")
					return err
				}
			}

			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	root = commands.NewServeCmd(flags, app).Register(root)
	root = commands.NewRenderCmd(flags, app).Register(root)
	root = commands.NewLsCmd(flags, app).Register(root)

	exitCode := 0
	if err := root.Run(ctx, os.Args); err != nil {
		fmt.Println()
		fmt.Println(err.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
