package commands

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/fiware-community/figo/metric"
	"github.com/fiware-community/figo/notify"
)

// NewNotifyCommand groups the notification relay subcommands.
func NewNotifyCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Relay NGSI notifications onto NATS",
	}
	cmd.AddCommand(newNotifyServeCommand(app))
	return cmd
}

func newNotifyServeCommand(app *App) *cobra.Command {
	var metricsAddr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the notification receiver until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.Config()
			if err != nil {
				return err
			}
			if cfg.NATS.URL == "" {
				return fmt.Errorf("nats.url must be configured for the notification relay")
			}

			logger := app.Logger()

			publisher, err := notify.NewNATSPublisher(cfg.NATS.URL)
			if err != nil {
				return err
			}
			defer publisher.Close()

			metrics := metric.NewMetrics()
			registry := prometheus.NewRegistry()
			if err := metrics.Register(registry); err != nil {
				return err
			}

			receiver := notify.NewReceiver(publisher, cfg.NATS.SubjectPrefix,
				notify.WithLogger(logger),
				notify.WithMetrics(metrics))
			server := notify.NewServer(cfg.Notify.ListenAddr, cfg.Notify.Path, receiver)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 2)
			go func() {
				errCh <- server.ListenAndServe()
			}()

			if metricsAddr != "" {
				mux := http.NewServeMux()
				mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
				metricsServer := &http.Server{Addr: metricsAddr, Handler: mux}
				go func() {
					errCh <- metricsServer.ListenAndServe()
				}()
				defer metricsServer.Close()
			}

			select {
			case <-ctx.Done():
				logger.Info("shutting down")
			case err := <-errCh:
				if err != nil {
					return err
				}
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Expose Prometheus metrics on this address (e.g. :9090)")
	return cmd
}
