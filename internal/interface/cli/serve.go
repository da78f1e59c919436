package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/YoshitsuguKoike/potionlab/internal/adapter/controller/api"
	"github.com/YoshitsuguKoike/potionlab/internal/app"
	"github.com/YoshitsuguKoike/potionlab/internal/buildinfo"
)

func newServeCmd(r *runtime) *cobra.Command {
	var (
		addr        string
		backupEvery time.Duration
		backupTo    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the research session over HTTP",
		Long: `Serve the research session as a JSON API under /api/v1, with /healthz
and Prometheus metrics on /metrics. Stops on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if r.container == nil {
				return errNoSession
			}
			if addr == "" {
				addr = r.cfg.ListenAddr()
			}

			logger := app.GetLogger()
			srv, err := api.NewServer(r.container.UseCase(), api.Options{
				Catalog: r.container.Catalog(),
				Palette: r.container.Palette(),
				Logger:  logger,
				Version: buildinfo.GetVersion(),
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return srv.Run(gctx, addr)
			})
			if backupEvery > 0 {
				g.Go(func() error {
					return r.periodicBackup(gctx, backupTo, backupEvery, logger)
				})
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Serving on http://%s\n", addr)
			return g.Wait()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from settings)")
	cmd.Flags().DurationVar(&backupEvery, "backup-every", 0, "Export a backup at this interval (0 disables)")
	cmd.Flags().StringVar(&backupTo, "backup-to", "", "Backup medium for periodic backups (default from settings)")
	return cmd
}

// periodicBackup exports the log every interval until ctx ends. Failed
// exports are logged and retried on the next tick.
func (r *runtime) periodicBackup(ctx context.Context, medium string, interval time.Duration, logger app.Logger) error {
	gw, err := r.container.BackupGateway(ctx, medium)
	if err != nil {
		return err
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := r.container.UseCase().ExportTo(ctx, gw); err != nil {
				logger.Warn("periodic backup failed: %v", err)
			}
		}
	}
}
