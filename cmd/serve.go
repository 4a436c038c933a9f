package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"setu/internal/bootstrap"
	"setu/internal/bootstrap/logging"
	"setu/internal/errs"
	"setu/internal/server"
	"setu/internal/usecase/listing"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the demo web app and JSON API",
	RunE: withApp(func(cmd *cobra.Command, app *bootstrap.App, svc *listing.Service, hub *server.Hub) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		srv, err := server.New(svc, hub)
		if err != nil {
			return errs.Wrap(err, "build http server")
		}

		httpSrv := &http.Server{
			Addr:              app.Config.Server.Addr,
			Handler:           srv.Router(),
			ReadHeaderTimeout: 5 * time.Second,
		}

		runCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		serveErr := make(chan error, 1)
		go func() {
			logging.Info(ctx, "http server listening", slog.String("addr", httpSrv.Addr))
			serveErr <- httpSrv.ListenAndServe()
		}()

		select {
		case err := <-serveErr:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return errs.Wrap(err, "serve http")
			}
			return nil
		case <-runCtx.Done():
		}

		logging.Info(ctx, "shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return errs.Wrap(err, "shutdown http server")
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
