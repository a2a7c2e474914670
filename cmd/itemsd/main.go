package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alfagnish/itemsd/internal/config"
	"github.com/alfagnish/itemsd/internal/events"
	"github.com/alfagnish/itemsd/internal/items"
	"github.com/alfagnish/itemsd/internal/rpc"
	"github.com/alfagnish/itemsd/internal/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "itemsd",
		Short: "Serve the in-memory items API",
		Long: `itemsd serves a small JSON CRUD API over an in-memory item store.

Configuration is read from the environment (and a .env file when present);
flags override the environment.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if err := applyFlags(cfg, cmd.Flags()); err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	cmd.Flags().IntP("port", "p", 5000, "HTTP port (overrides PORT)")
	cmd.Flags().Int("seed", 20, "Placeholder items created at startup (overrides SEED_COUNT)")
	cmd.Flags().String("grpc-addr", "", "gRPC listen address, empty disables (overrides GRPC_ADDR)")

	return cmd
}

// applyFlags overrides cfg with every flag set explicitly on the command
// line. Flags left at their defaults keep the environment's values.
func applyFlags(cfg *config.Config, flags *pflag.FlagSet) error {
	var err error
	if flags.Changed("port") {
		if cfg.Port, err = flags.GetInt("port"); err != nil {
			return err
		}
	}
	if flags.Changed("seed") {
		if cfg.SeedCount, err = flags.GetInt("seed"); err != nil {
			return err
		}
	}
	if flags.Changed("grpc-addr") {
		if cfg.GRPCAddr, err = flags.GetString("grpc-addr"); err != nil {
			return err
		}
	}
	return nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", cfg.LogLevel, err)
	}

	zc := zap.NewProductionConfig()
	if cfg.LogFormat == "console" {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

func run(ctx context.Context, cfg *config.Config) error {
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	logger.Info("config",
		zap.String("listen", cfg.ListenAddr()),
		zap.String("grpc", cfg.GRPCAddr),
		zap.Int("seed", cfg.SeedCount),
	)

	// 1. Create the store and seed it with placeholder items.
	hub := events.NewHub(events.DefaultBuffer)
	store := items.NewStore(hub)
	store.Seed(cfg.SeedCount)

	// 2. Set up the chi router with all handlers.
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	handler, err := server.New(cfg, server.Deps{
		Store:    store,
		Hub:      hub,
		Logger:   logger,
		Registry: reg,
	})
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	srv := &http.Server{
		Addr:         cfg.ListenAddr(),
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0, // no write timeout to support the websocket stream
		IdleTimeout:  120 * time.Second,
	}

	errs := make(chan error, 2)

	// 3. Start the HTTP server.
	go func() {
		logger.Info("http listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- fmt.Errorf("http server: %w", err)
		}
	}()

	// 4. Optionally start the gRPC server.
	var closeGRPC func()
	if cfg.GRPCAddr != "" {
		lis, err := net.Listen("tcp", cfg.GRPCAddr)
		if err != nil {
			return fmt.Errorf("grpc listen %s: %w", cfg.GRPCAddr, err)
		}
		gs := rpc.NewServer(store, logger)
		closeGRPC = gs.GracefulStop

		go func() {
			logger.Info("grpc listening", zap.String("addr", lis.Addr().String()))
			if err := gs.Serve(lis); err != nil {
				errs <- fmt.Errorf("grpc server: %w", err)
			}
		}()
	}

	// Graceful shutdown on SIGINT / SIGTERM.
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case <-ctx.Done():
	case err := <-errs:
		logger.Error("server error", zap.Error(err))
		return err
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if closeGRPC != nil {
		closeGRPC()
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("graceful shutdown error", zap.Error(err))
	}

	logger.Info("stopped")
	return nil
}
