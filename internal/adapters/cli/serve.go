package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/colonysim-go/internal/adapters/metrics"
	"github.com/andrescamacho/colonysim-go/internal/domain/shared"
	"github.com/andrescamacho/colonysim-go/internal/infrastructure/pidfile"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	var characters []int32

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Expose projected colony status as Prometheus metrics",
		Long: `Run a long-lived process that periodically projects every colony of the
given characters to the current time and publishes colony and pin status
gauges on the metrics endpoint.

Only one serve process may run per PID file (metrics.pid_file).

Examples:
  colonysim serve --character 90000001
  colonysim serve --characters 90000001,90000002`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(characters) == 0 {
				id, err := resolveCharacterID()
				if err != nil {
					return err
				}
				characters = []int32{id}
			}

			app, err := newApplication()
			if err != nil {
				return err
			}
			defer app.Close()

			lock := pidfile.New(app.cfg.Metrics.PIDFile)
			if err := lock.Acquire(); err != nil {
				var running *pidfile.AlreadyRunningError
				if errors.As(err, &running) {
					return fmt.Errorf("%w; stop it first or set metrics.pid_file", running)
				}
				return err
			}
			defer func() { _ = lock.Release() }()

			if !app.cfg.Metrics.Enabled {
				if err := app.enableMetrics(); err != nil {
					return err
				}
			}

			poller := metrics.NewColonyStatusPoller(app.colonies, app.catalog, shared.NewWallClock(),
				metrics.PollerOptions{
					CharacterIDs:         characters,
					Interval:             app.cfg.Metrics.PollInterval,
					ProjectionsPerSecond: app.cfg.Metrics.ProjectionsPerSecond,
					MaxEvents:            app.cfg.Simulation.MaxEvents,
				})
			if err := poller.Register(); err != nil {
				return fmt.Errorf("failed to register colony status metrics: %w", err)
			}

			server, err := metrics.NewServer(app.cfg.Metrics.Address(), app.cfg.Metrics.Path)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(app.context(commandContext(cmd)), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := server.Start(ctx); err != nil {
				return err
			}
			poller.Start(ctx)

			app.logger.Log("INFO", fmt.Sprintf("[Serve] Metrics available at http://%s%s", server.Addr(), app.cfg.Metrics.Path),
				map[string]interface{}{
					"characters":    characters,
					"poll_interval": app.cfg.Metrics.PollInterval.String(),
					"pid_file":      lock.Path(),
				})
			fmt.Fprintf(cmd.OutOrStdout(), "Serving metrics on http://%s%s (Ctrl+C to stop)\n",
				server.Addr(), app.cfg.Metrics.Path)

			var serveErr error
			select {
			case <-ctx.Done():
			case serveErr = <-server.Errors():
			}

			poller.Stop()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("failed to stop metrics server: %w", err)
			}
			if serveErr != nil {
				return serveErr
			}

			app.logger.Log("INFO", "[Serve] Stopped", nil)
			return nil
		},
	}

	cmd.Flags().Int32SliceVar(&characters, "characters", nil,
		"Characters whose colonies are polled (defaults to --character or the configured default)")

	return cmd
}
