package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/mytheresa/go-storefront/app/api"
	"github.com/mytheresa/go-storefront/app/config"
	"github.com/mytheresa/go-storefront/app/database"
	"github.com/mytheresa/go-storefront/app/events"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE:  runServer,
}

func init() {
	flags := serveCmd.Flags()
	flags.String("addr", "", "listen address (default :8001)")
	flags.String("amqp-url", "", "RabbitMQ url for order events; empty disables publishing")
	flags.String("amqp-queue", "", "RabbitMQ queue for order events")
	rootCmd.AddCommand(serveCmd)
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, logger, db, err := bootstrap(cmd)
	if err != nil {
		return err
	}

	publisher, err := newPublisher(cfg.AMQP, logger)
	if err != nil {
		database.Close(db)
		return err
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.NewHandler(db, publisher, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	exitCode, err := supervise(context.Background(), cfg.ShutdownTimeout,
		func() error {
			logger.Info("starting server", "addr", cfg.HTTPAddr)
			return srv.ListenAndServe()
		},
		func(ctx context.Context) error {
			logger.Info("shutting down HTTP server")
			if err := srv.Shutdown(ctx); err != nil {
				return err
			}
			// Requests are drained; the store and broker can go.
			if err := publisher.Close(); err != nil {
				logger.Warn("failed to close publisher", "error", err)
			}
			return database.Close(db)
		},
	)
	logger.Info("server exited", "code", exitCode)
	if err != nil {
		return err
	}
	if exitCode != 0 {
		os.Exit(exitCode)
	}
	return nil
}

// supervise runs serve in the background until a signal arrives, ctx ends
// or serve fails, then runs stop under the shutdown timeout. A serve failure
// is returned once stop has finished.
func supervise(ctx context.Context, timeout time.Duration, serve func() error, stop gfshutdown.Operation) (int, error) {
	triggerCtx, trigger := context.WithCancel(ctx)
	defer trigger()

	errChan := make(chan error, 1)
	go func() {
		if err := serve(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
			trigger()
		}
	}()

	wait := gfshutdown.GracefulShutdown(triggerCtx, timeout, map[string]gfshutdown.Operation{
		"http-server": stop,
	})
	exitCode := <-wait

	select {
	case err := <-errChan:
		return exitCode, fmt.Errorf("server failed: %w", err)
	default:
		return exitCode, nil
	}
}

func newPublisher(cfg config.AMQPConfig, logger *slog.Logger) (events.Publisher, error) {
	if cfg.URL == "" {
		logger.Info("order events disabled")
		return events.NopPublisher{}, nil
	}
	p, err := events.NewAMQPPublisher(cfg.URL, cfg.Queue)
	if err != nil {
		return nil, err
	}
	logger.Info("publishing order events", "queue", cfg.Queue)
	return p, nil
}
