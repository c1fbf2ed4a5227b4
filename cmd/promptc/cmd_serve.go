package main

import (
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"promptc/internal/config"
	"promptc/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Serves the engine over HTTP:

  POST /optimize         compile a prompt
  GET  /frameworks       list frameworks
  GET  /frameworks/{id}  describe one framework
  GET  /health           liveness and provider status

The config file is watched; limit and origin changes apply without a
restart.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.New(newSystem(), cfg, logger)

	watcher, err := config.NewWatcher(configPath, srv.ApplyConfig, logger)
	if err != nil {
		logger.Warn("config watching disabled", zap.Error(err))
	} else {
		if err := watcher.Start(ctx); err != nil {
			logger.Warn("config watching disabled", zap.Error(err))
		} else {
			defer watcher.Stop()
		}
	}

	if err := srv.ListenAndServe(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
