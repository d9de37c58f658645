package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy issue types and custom fields to the destination project",
	Long: `Copy every issue type of the source project into the destination project,
then copy every custom field, restricting each one to the newly created
issue types that correspond to the ones it was restricted to.

The run stops at the first error. Items created before the error are not
removed from the destination project.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return migrateRun(cmd)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func migrateRun(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := openJournal(cfg.JournalPath)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	migrationService, _ := newServices(cfg, db)
	result, err := migrationService.Run(ctx, cfg.SourceProjectKey, cfg.DestinationProjectKey, ui)
	if err != nil {
		return err
	}

	ui.VerboseLog("Run %s: %d issue types, %d custom fields",
		result.Migration.RunID, len(result.IssueTypes), len(result.CustomFields))
	return nil
}
