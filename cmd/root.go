package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/TWRT/project-config-migrator/internal/client/backlog"
	"github.com/TWRT/project-config-migrator/internal/config"
	"github.com/TWRT/project-config-migrator/internal/output"
	"github.com/TWRT/project-config-migrator/internal/repository"
	"github.com/TWRT/project-config-migrator/internal/service"
)

// Package-level shared dependencies, initialized in cobra.OnInitialize.
var (
	ui *output.UI

	verbose bool

	buildVersion = "dev"
	buildCommit  = "none"
	buildDate    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "project-config-migrator",
	Short: "Copy issue types and custom fields between Backlog projects",
	Long: `project-config-migrator copies the issue types and custom fields of a
source Backlog project into a destination project, remapping the issue
type ids each custom field is restricted to.

Running it without a subcommand is the same as "migrate".`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	DisableAutoGenTag: true,
}

// Execute is the main entry point called from main.go.
func Execute(version, commit, date string) {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig, initDeps)

	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return migrateRun(cmd)
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().String("config", "", "Config file (YAML)")
	rootCmd.PersistentFlags().String("journal", "", "SQLite journal path (default in-memory)")
	rootCmd.PersistentFlags().String("source", "", "Source project key")
	rootCmd.PersistentFlags().String("destination", "", "Destination project key")

	_ = viper.BindPFlag(config.KeyJournalPath, rootCmd.PersistentFlags().Lookup("journal"))
	_ = viper.BindPFlag(config.KeySourceProjectKey, rootCmd.PersistentFlags().Lookup("source"))
	_ = viper.BindPFlag(config.KeyDestinationProjectKey, rootCmd.PersistentFlags().Lookup("destination"))
}

func initConfig() {
	// The environment may come from the shell instead.
	_ = godotenv.Load()

	if cfgFile, _ := rootCmd.PersistentFlags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: read config %s: %v\n", cfgFile, err)
			os.Exit(1)
		}
	}

	if err := config.BindEnv(viper.GetViper()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func initDeps() {
	ui = output.New()
	ui.Verbose = verbose

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// loadConfig resolves and validates the configuration for commands that
// talk to Backlog.
func loadConfig() (config.Config, error) {
	return config.Load(viper.GetViper())
}

func openJournal(path string) (*sql.DB, error) {
	db, err := repository.InitDB(path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	if path != "" {
		ui.VerboseLog("Journal: %s", path)
	}
	return db, nil
}

func newServices(cfg config.Config, db *sql.DB) (*service.MigrationService, *service.ProjectService) {
	backlogClient := backlog.NewBacklogClient(cfg.SpaceURL, cfg.APIKey, cfg.RequestTimeout)

	migrationService := service.NewMigrationService(
		backlogClient,
		repository.NewMigrationRepository(db),
		repository.NewIssueTypeMappingRepository(db),
		repository.NewCustomFieldMappingRepository(db),
		repository.NewCustomFieldItemMappingRepository(db),
	)
	return migrationService, service.NewProjectService(backlogClient)
}

// commandContext returns the command's context, or a background context
// when the command was invoked directly rather than through Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
