package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/product-monitor/internal/certs"
	"github.com/Veraticus/product-monitor/internal/config"
	"github.com/Veraticus/product-monitor/internal/web"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard and its JSON API over HTTP",
		Long: `Load the dashboard once and serve it as an HTML page plus a JSON API
under /api/v1. Prometheus metrics are exposed at /metrics.`,
		RunE: runServe,
	}

	cmd.Flags().String("addr", "", "listen address (default :8080)")
	cmd.Flags().Bool("tls", false, "serve HTTPS with a self-signed certificate")
	cmd.Flags().String("cert-dir", "", "certificate directory (default $HOME/.config/monitor/certs)")
	cmd.Flags().StringSlice("host", nil, "extra host name or IP the certificate must cover")
	_ = viper.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("server.tls", cmd.Flags().Lookup("tls"))
	_ = viper.BindPFlag("server.cert_dir", cmd.Flags().Lookup("cert-dir"))
	_ = viper.BindPFlag("server.hosts", cmd.Flags().Lookup("host"))

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadStoreConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()

	state, loader := loadState(ctx, cmd.ErrOrStderr(), store)

	srv, err := web.New(state, loader, cfg.Timeout)
	if err != nil {
		return err
	}

	addr := viper.GetString("server.addr")
	start := func() error { return srv.Start(addr) }
	if viper.GetBool("server.tls") {
		manager := certs.NewManager(config.ExpandPath(viper.GetString("server.cert_dir")), viper.GetStringSlice("server.hosts")...)
		if _, err := manager.Ensure(); err != nil {
			return fmt.Errorf("failed to prepare TLS certificate: %w", err)
		}
		slog.Info("Using self-signed certificate", "cert", manager.CertFile())
		start = func() error { return srv.StartTLS(addr, manager.CertFile(), manager.KeyFile()) }
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return <-errCh
}
