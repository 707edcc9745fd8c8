package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lucasmdrs/escala/cmd/cli/commands"
	"github.com/lucasmdrs/escala/internal/config"
	"github.com/lucasmdrs/escala/pkg/clients/gmailclient"
	"github.com/lucasmdrs/escala/pkg/clients/sheetsclient"
	"github.com/lucasmdrs/escala/pkg/notify"
	"github.com/lucasmdrs/escala/pkg/postgres"
	"github.com/lucasmdrs/escala/pkg/utils/logging"
)

var (
	env string
	app *commands.AppContext
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "escala",
		Short: "Escala - Manage ministry duty rosters",
		Long:  `A CLI tool for managing ministry duty rosters: rotation-based assignment, presence confirmation, substitutions, and reminders.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil && app.Logger != nil {
				app.Logger.Sync()
			}
			if app != nil && app.Database != nil {
				app.Database.Close()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(commands.CreateMinistryCmd(appRef()))
	rootCmd.AddCommand(commands.ListMinistriesCmd(appRef()))
	rootCmd.AddCommand(commands.SetPoolCmd(appRef()))
	rootCmd.AddCommand(commands.GenerateRosterCmd(appRef()))
	rootCmd.AddCommand(commands.ViewRosterCmd(appRef()))
	rootCmd.AddCommand(commands.ListRostersCmd(appRef()))
	rootCmd.AddCommand(commands.ConfirmPresenceCmd(appRef()))
	rootCmd.AddCommand(commands.MarkAbsentCmd(appRef()))
	rootCmd.AddCommand(commands.RequestSubstitutionCmd(appRef()))
	rootCmd.AddCommand(commands.CancelRosterCmd(appRef()))
	rootCmd.AddCommand(commands.CompleteRosterCmd(appRef()))
	rootCmd.AddCommand(commands.DeleteRosterCmd(appRef()))
	rootCmd.AddCommand(commands.ScheduleRemindersCmd(appRef()))
	rootCmd.AddCommand(commands.DispatchRemindersCmd(appRef()))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// appRef returns the shared AppContext, which is populated by initApp
// before any command runs
func appRef() *commands.AppContext {
	if app == nil {
		app = &commands.AppContext{}
	}
	return app
}

// initApp sets up logger, config, clients, and database
func initApp() error {
	appRef()
	app.Ctx = context.Background()

	var err error
	app.Logger, err = logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("environment", env))

	app.Logger.Info("Loading configuration")
	app.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	app.Logger.Info("Loading OAuth client configuration")
	oauthCfg, err := config.LoadOAuthClientWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load OAuth client config: %w", err)
	}

	app.Logger.Info("Initializing sheets client")
	sheetsClient, err := sheetsclient.NewClient(app.Ctx, oauthCfg)
	if err != nil {
		return fmt.Errorf("failed to create sheets client: %w", err)
	}
	app.Directory = sheetsclient.NewDirectory(sheetsClient, app.Cfg)

	var channel notify.Channel
	if app.Cfg.MailEnabled {
		app.Logger.Info("Initializing gmail client")
		gmailClient, err := gmailclient.NewClient(app.Ctx, oauthCfg, sheetsClient.Token(), app.Cfg.MailSender)
		if err != nil {
			return fmt.Errorf("failed to create gmail client: %w", err)
		}
		channel = gmailClient
	} else {
		app.Logger.Info("Mail delivery disabled, notifications are store-only")
	}

	app.Logger.Info("Connecting to database")
	app.Database, err = postgres.NewDB(app.Ctx, app.Cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := app.Database.RunMigrations(app.Ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	app.Notifier = notify.NewDispatcher(app.Database, app.Directory, channel, app.Logger)
	app.Logger.Info("Application initialized")

	return nil
}
