package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	apphttp "prancheta/internal/http"
	applog "prancheta/internal/log"
)

// ServeCmd returns the serve command: the local web UI.
func ServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the local web UI",
		Long: `Start the localhost web server with the four tracker views
(entry, orders, dashboard, history). State is read from and written to
the local SQLite file; stop with Ctrl-C.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := bootstrap()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			tracker, closeStore, err := openTracker(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			srv := apphttp.NewServer(":"+cfg.Port, tracker, cfg)

			g, ctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				logger.Info("Server listening",
					applog.FieldComponent, applog.ComponentHTTP,
					"addr", srv.Addr)
				if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			})
			g.Go(func() error {
				<-ctx.Done()
				logger.Info("Shutting down", applog.FieldComponent, applog.ComponentHTTP)
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			})
			return g.Wait()
		},
	}
}
