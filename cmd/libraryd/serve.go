package main

import (
	"context"
	"errors"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/school-library-lending/shell/httpapi"
)

const (
	shutdownTimeout = 10 * time.Second

	logMsgListening    = "libraryd: http api listening"
	logMsgShuttingDown = "libraryd: shutting down"
	logAttrAddr        = "addr"
)

func newServeCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the lending HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadSettings(flags)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			rt, err := openRuntime(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer func() { _ = rt.close() }()

			var wg sync.WaitGroup

			outboxCtx, stopOutbox := context.WithCancel(context.Background())
			if rt.outbox != nil {
				wg.Add(1)
				go func() {
					defer wg.Done()
					rt.outbox.Run(outboxCtx)
				}()
			}

			server := httpapi.NewServer(
				rt.handlers,
				httpapi.WithLogger(logger),
				httpapi.WithDefaultTopN(cfg.TopN),
			)

			serveErr := make(chan error, 1)
			go func() {
				logger.Info(logMsgListening, logAttrAddr, cfg.HTTPAddr)
				serveErr <- server.Listen(cfg.HTTPAddr)
			}()

			select {
			case <-ctx.Done():
			case err = <-serveErr:
			}

			logger.Info(logMsgShuttingDown)

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			shutdownErr := server.Shutdown(shutdownCtx)

			// The outbox drains what is left once its context is done.
			stopOutbox()
			wg.Wait()

			return errors.Join(err, shutdownErr)
		},
	}
}
