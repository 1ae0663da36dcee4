package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"heart-matching-backend/internal/config"
	"heart-matching-backend/internal/database"
	"heart-matching-backend/internal/handler"
	"heart-matching-backend/internal/logger"
	"heart-matching-backend/internal/seed"
	"heart-matching-backend/internal/service"
	"heart-matching-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const serviceName = "heart-matching-backend"

func main() {
	rootCmd := &cobra.Command{
		Use:   "heart-matching",
		Short: "Heart-failure patient and care facility matching API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func seedCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the sample dataset into the configured store",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			ctx := cmd.Context()
			app, err := newApp(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer app.Close()

			if !app.registry.IsEmpty() && !force {
				log.Info("store already has data, skipping seed (use --force to overwrite)")
				return nil
			}
			if err := seed.Load(ctx, app.registry); err != nil {
				return err
			}
			log.Info("sample data loaded", zap.String("driver", cfg.Storage.Driver))
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "replace existing data")
	return cmd
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the MySQL tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			if cfg.Storage.Driver != config.StorageMySQL {
				return fmt.Errorf("migrate requires STORAGE_DRIVER=mysql, got %q", cfg.Storage.Driver)
			}
			db, err := database.Connect(cfg, log)
			if err != nil {
				return err
			}
			if err := database.Migrate(db); err != nil {
				return fmt.Errorf("failed to migrate database: %w", err)
			}
			log.Info("database migrated")
			return nil
		},
	}
}

func setup() (*config.Config, *zap.Logger, error) {
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, serviceName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return cfg, log, nil
}

func runServe() error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	utils.InitJWT(cfg.JWT.AccessSecret, cfg.JWT.AccessTokenExpiry)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app, err := newApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer app.Close()

	if cfg.Storage.SeedSampleData && app.registry.IsEmpty() {
		if err := seed.Load(ctx, app.registry); err != nil {
			log.Warn("failed to seed sample data", zap.Error(err))
		} else {
			log.Info("seeded sample data into empty store")
		}
	}

	// Background retry of failed writes
	worker := service.NewPersistenceWorker(app.registry, cfg.Storage.RetryInterval, log)
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		worker.Start(ctx)
	}()

	gin.SetMode(cfg.Server.GinMode)
	router := handler.NewRouter(app.services(), cfg.CORS.AllowedOrigins, log)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("server starting", zap.String("port", cfg.Server.Port), zap.String("storage", cfg.Storage.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serverErr:
		log.Error("server failed", zap.Error(err))
	}
	log.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", zap.Error(err))
	}

	// Cancel background worker context; it flushes once more before returning
	cancel()
	<-workerDone
	log.Info("server exited")
	return nil
}
