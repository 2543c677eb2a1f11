package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/semester-planner/cmd/cli/commands"
	"github.com/jakechorley/semester-planner/internal/config"
	"github.com/jakechorley/semester-planner/pkg/db"
	"github.com/jakechorley/semester-planner/pkg/metrics"
	"github.com/jakechorley/semester-planner/pkg/postgres"
	"github.com/jakechorley/semester-planner/pkg/sqlite"
	"github.com/jakechorley/semester-planner/pkg/utils/logging"
)

var (
	env string
	app = &commands.AppContext{}
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "planner",
		Short: "Semester planner - allocate teaching blocks to half-day slots",
		Long: `A CLI tool for allocating a semester's teaching blocks to lecturers, rooms and
student groups, honouring lecturer availability, priority, spread and mixing rules.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			closeApp()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(commands.GenerateCmd(app))
	rootCmd.AddCommand(commands.ValidateInputCmd(app))
	rootCmd.AddCommand(commands.AvailabilityCmd(app))
	rootCmd.AddCommand(commands.ListRunsCmd(app))
	rootCmd.AddCommand(commands.ShowRunCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd())

	if err := rootCmd.Execute(); err != nil {
		closeApp()
		os.Exit(1)
	}
}

// initApp sets up config, logger, run store and metrics
func initApp() error {
	var err error
	app.Ctx = context.Background()

	app.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	var logPath string
	app.Logger, logPath, err = logging.InitLogger(env, app.Cfg.LogLevel, logging.DefaultDir)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("environment", env))
	app.Logger.Debug("Configuration loaded",
		zap.String("input_path", app.Cfg.InputPath),
		zap.String("store_driver", app.Cfg.Store.Driver),
		zap.String("log_file", logPath))

	app.Database, err = openStore(app.Ctx, app.Cfg.Store)
	if err != nil {
		return err
	}

	app.Metrics = metrics.NewRecorder()

	return nil
}

func openStore(ctx context.Context, cfg config.StoreConfig) (db.Database, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		app.Logger.Info("Opening sqlite run store")
		store, err := sqlite.NewDB(ctx, cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		return store, nil
	case config.DriverPostgres:
		app.Logger.Info("Connecting to postgres run store")
		store, err := postgres.NewDB(ctx, cfg.DSN, app.Logger)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		if err := store.RunMigrations(ctx); err != nil {
			store.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return store, nil
	default:
		app.Logger.Debug("No run store configured")
		return nil, nil
	}
}

func closeApp() {
	if app.Database != nil {
		if err := app.Database.Close(); err != nil && app.Logger != nil {
			app.Logger.Warn("Failed to close run store", zap.Error(err))
		}
		app.Database = nil
	}
	if app.Logger != nil {
		app.Logger.Sync()
	}
}
