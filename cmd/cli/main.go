package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/moyeo-app/moyeo/cmd/cli/commands"
	"github.com/moyeo-app/moyeo/internal/config"
	"github.com/moyeo-app/moyeo/pkg/postgres"
	"github.com/moyeo-app/moyeo/pkg/utils/logging"
)

var (
	env string
	app *commands.AppContext
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "moyeo",
		Short: "Moyeo CLI - Group scheduling polls",
		Long:  `A CLI tool for creating scheduling polls, collecting availability votes, and aggregating them into recommended meeting times.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil && app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	// Add persistent environment flag
	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	// Add all commands
	rootCmd.AddCommand(commands.CreateAppointmentCmd(appContext()))
	rootCmd.AddCommand(commands.SubmitVoteCmd(appContext()))
	rootCmd.AddCommand(commands.ViewResultsCmd(appContext()))
	rootCmd.AddCommand(commands.CheckCompletionCmd(appContext()))
	rootCmd.AddCommand(commands.ListAppointmentsCmd(appContext()))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// appContext returns the shared AppContext, allocating it so commands can
// capture the pointer before initApp fills it in.
func appContext() *commands.AppContext {
	if app == nil {
		app = &commands.AppContext{}
	}
	return app
}

// initApp sets up logger, config, and database
func initApp() error {
	ctx := context.Background()
	appContext()

	logger, err := logging.InitLogger(env)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load config", zap.Error(err))
		return err
	}

	database, err := postgres.NewDB(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to connect to database", zap.Error(err))
		return err
	}

	if err := database.RunMigrations(ctx); err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		return err
	}

	app.Cfg = cfg
	app.Database = database
	app.Logger = logger
	app.Ctx = ctx

	logger.Debug("Application initialised", zap.String("env", env))
	return nil
}
