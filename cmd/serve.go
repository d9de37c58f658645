package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/TWRT/project-config-migrator/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long:  "Start an HTTP server that triggers migrations and serves the journal.\nBy default it listens on :8080. Use --addr to change it.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveRun(cmd)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", ":8080", "address to listen on")
	viper.SetDefault("addr", ":8080")
	_ = viper.BindPFlag("addr", serveCmd.Flags().Lookup("addr"))
}

func serveRun(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := openJournal(cfg.JournalPath)
	if err != nil {
		return err
	}
	defer db.Close()

	migrationService, projectService := newServices(cfg, db)
	router := api.SetupRouter(migrationService, projectService, api.Defaults{
		SourceProjectKey:      cfg.SourceProjectKey,
		DestinationProjectKey: cfg.DestinationProjectKey,
	})

	srv := &http.Server{
		Addr:              viper.GetString("addr"),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		ui.Info("Serving API at http://localhost%s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	ui.Info("Shutting down")
	return srv.Shutdown(shutdownCtx)
}
