package cmd

import (
	"errors"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/TWRT/project-config-migrator/internal/config"
	"github.com/TWRT/project-config-migrator/internal/output"
	"github.com/TWRT/project-config-migrator/internal/repository"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List journaled migration runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		return historyRun(cmd)
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
}

func historyRun(cmd *cobra.Command) error {
	path := viper.GetString(config.KeyJournalPath)
	if path == "" {
		return errors.New("history needs a persistent journal: set --journal or MIGRATOR_JOURNAL_PATH")
	}

	db, err := openJournal(path)
	if err != nil {
		return err
	}
	defer db.Close()

	migrations, err := repository.NewMigrationRepository(db).GetMigrations(commandContext(cmd))
	if err != nil {
		return err
	}
	if len(migrations) == 0 {
		ui.Info("No migrations recorded in %s", path)
		return nil
	}

	table := ui.Table([]string{"ID", "Source", "Destination", "Status", "Issue Types", "Custom Fields", "Started", "Error"})
	for _, m := range migrations {
		_ = table.Append([]string{
			strconv.FormatInt(m.ID, 10),
			output.Cyan(m.SourceProjectKey),
			output.Cyan(m.DestinationProjectKey),
			output.StatusColor(string(m.Status)),
			progress(m.CopiedIssueTypes, m.TotalIssueTypes),
			progress(m.CopiedCustomFields, m.TotalCustomFields),
			humanize.Time(m.StartedAt),
			m.ErrorMessage,
		})
	}
	_ = table.Render()
	return nil
}

func progress(copied, total int) string {
	return strconv.Itoa(copied) + "/" + strconv.Itoa(total)
}
