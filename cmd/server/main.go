package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"shelfcloud/internal/api"
	"shelfcloud/internal/config"
	"shelfcloud/internal/database"
	"shelfcloud/internal/logging"
	"shelfcloud/internal/secrets"
	"shelfcloud/internal/tasks"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "shelfcloud",
	Short: "ShelfCloud storage control plane",
	Long:  "ShelfCloud API server managing organizations, buckets, projects and API keys.",
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrate()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setup() (*config.Config, *logging.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	if err := logging.InitLogger(logging.NewConfig(cfg.LogLevel, cfg.LogFile)); err != nil {
		return nil, nil, err
	}

	return cfg, logging.GetGlobalLogger(), nil
}

func runMigrate() error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Close()

	ctx := context.Background()
	db, err := database.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to connect to database: %v", err)
		return err
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		logger.Error("Migration failed: %v", err)
		return err
	}

	logger.Info("Migrations applied")
	return nil
}

func runServe() error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Close()

	logger.Info("Starting server in %s mode", cfg.Environment)

	ctx := context.Background()
	db, err := database.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to connect to database: %v", err)
		return err
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		logger.Error("Migration failed: %v", err)
		return err
	}

	box, err := secrets.NewBox(cfg.SecretsKey)
	if err != nil {
		logger.Error("Invalid SECRETS_KEY: %v", err)
		return err
	}

	srv := api.NewServer(db, cfg, box)

	monitor := tasks.NewBucketMonitor(srv.BucketRepository(), srv.CredentialService(), cfg.MonitorInterval, cfg.RecheckAfter)
	monitor.Start()
	defer monitor.Stop()
	logger.Info("Started bucket monitor task")

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		logger.Error("Server stopped: %v", err)
		return err
	case sig := <-quit:
		logger.Info("Received %s, shutting down", sig)
		return nil
	}
}
