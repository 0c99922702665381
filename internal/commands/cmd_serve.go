package commands

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/pairview/pairview/internal/core/logging"
	"github.com/pairview/pairview/internal/host/memhost"
	"github.com/pairview/pairview/internal/plugin"
	"github.com/pairview/pairview/internal/server"
	"github.com/pairview/pairview/internal/visuals"
)

type ServeCmd struct {
	flags *Flags
	app   *App

	// flags
	namespace string
}

// NewServeCmd creates a new serve command
func NewServeCmd(flags *Flags, app *App) *ServeCmd {
	return &ServeCmd{flags: flags, app: app}
}

// Register adds the serve command to the application
func (cmd *ServeCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "serve",
		Usage:     "Serve the plugin message channel for the form UI",
		UsageText: "pairview serve [--namespace ID]",
		Description: `Runs the websocket bridge at /ws against the in-memory reference host.

The form UI connects here during development; selection changes, mapping
persistence, and visual generation all flow over this channel.`,
		Flags: []cli.Flag{
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

func (cmd *ServeCmd) run(ctx context.Context, c *cli.Command) error {
	h := memhost.New(cmd.namespace)

	gen := visuals.New(h, h, h, h, cmd.app.Config.Canvas, logging.Component("visuals"))
	bridge := plugin.NewBridge(h, h, h, gen, cmd.app.Store, cmd.app.Bus, logging.Component("bridge"))
	handler := server.New(bridge, h, cmd.app.Bus, logging.Component("server"))

	srv := &http.Server{
		Addr:              cmd.app.Config.Server.Addr,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	log.Info().Str("addr", cmd.app.Config.Server.Addr).Msg("bridge listening")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
