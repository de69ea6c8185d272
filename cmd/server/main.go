package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hongminglow/quantum-trade/internal/config"
	"github.com/hongminglow/quantum-trade/internal/logging"
	"github.com/hongminglow/quantum-trade/internal/market"
	"github.com/hongminglow/quantum-trade/internal/metrics"
	"github.com/hongminglow/quantum-trade/internal/models"
	"github.com/hongminglow/quantum-trade/internal/profile"
	"github.com/hongminglow/quantum-trade/internal/server"
	"github.com/hongminglow/quantum-trade/internal/userdb"
)

var (
	cfg    config.Config
	logger *zap.Logger

	profileID string
)

var rootCmd = &cobra.Command{
	Use:   "quantum-server",
	Short: "Quantum Trade account and market demo backend",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loadLocalEnv()

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		logger, err = logging.New(cfg.LogLevel)
		if err != nil {
			return err
		}
		zap.ReplaceGlobals(logger)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server (default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Inspect stored users",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the users registered in a profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		backend, closeBackend, err := openBackend(ctx, cfg)
		if err != nil {
			return fmt.Errorf("init storage: %w", err)
		}
		defer closeBackend()

		p, err := profile.NewRegistry(backend, 1, cfg.NotificationTTL, logger).Get(ctx, profileID)
		if err != nil {
			return err
		}
		users, err := p.Users.Users(ctx)
		if err != nil {
			return err
		}
		out := make([]models.PublicUser, 0, len(users))
		for _, u := range users {
			out = append(out, u.Public())
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}

func init() {
	usersListCmd.Flags().StringVar(&profileID, "profile", "", "profile id (the subject of the quantum_profile cookie)")
	_ = usersListCmd.MarkFlagRequired("profile")
	usersCmd.AddCommand(usersListCmd)
	rootCmd.AddCommand(serveCmd, usersCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serve() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backend, closeBackend, err := openBackend(ctx, cfg)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}
	defer closeBackend()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(reg)

	profiles := profile.NewRegistry(backend, cfg.ProfileCache, cfg.NotificationTTL, logger,
		userdb.WithInitialBalance(cfg.InitialBalance),
		userdb.WithRecorder(collector),
	)
	defer profiles.Close()

	sim := market.NewSimulator(market.DefaultInstruments, market.WithTick(cfg.MarketTick))
	go sim.Run(ctx)

	srv := server.New(cfg, server.Deps{
		Profiles: profiles,
		Quotes:   sim,
		Metrics:  collector,
		Gatherer: reg,
		Logger:   logger,
	})

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Quantum Trade backend listening",
			zap.String("addr", cfg.HTTPAddress()),
			zap.String("storage", cfg.StorageDriver),
		)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
	}

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Warn("graceful shutdown error", zap.Error(err))
	}
	return nil
}

func loadLocalEnv() {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "no .env file found; relying on existing environment")
	}
}
