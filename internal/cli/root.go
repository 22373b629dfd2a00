package cli

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tasktimer/internal/config"
	"tasktimer/internal/repository"
	"tasktimer/internal/service"
	"tasktimer/internal/shell"
	"tasktimer/internal/tracker"
)

type App struct {
	DBPath string
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "tasktimer",
		Short:        "Track time spent on named tasks",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive session
  tasktimer

  # Scriptable commands
  tasktimer add "Writing"
  tasktimer list
  tasktimer remove 1.2
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSession(cmd, app)
		},
	}

	cmd.PersistentFlags().StringVar(&app.DBPath, "db", "", "database file (default $TASKTIMER_DB or tasktimer.db)")

	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newRemoveCmd(app))
	return cmd
}

// open loads configuration and the tracker. The returned func closes the
// database.
func (a *App) open(ctx context.Context) (config.Config, *tracker.Tracker, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, nil, nil, fmt.Errorf("config: %w", err)
	}
	if a.DBPath != "" {
		cfg.DatabaseURL = a.DBPath
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		return cfg, nil, nil, fmt.Errorf("db: %w", err)
	}
	closeDB := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}

	tr, err := tracker.New(ctx, repository.NewStore(db))
	if err != nil {
		closeDB()
		return cfg, nil, nil, fmt.Errorf("load tasks: %w", err)
	}
	return cfg, tr, closeDB, nil
}

func runSession(cmd *cobra.Command, app *App) error {
	ctx := cmd.Context()
	cfg, tr, closeDB, err := app.open(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	session := shell.New(tr, service.NewSummaryService(), cmd.InOrStdin(), cmd.OutOrStdout())

	scheduler := service.NewSchedulerService(time.Local)
	if cfg.AutoStopAt != "" {
		if _, err := scheduler.ScheduleDaily(cfg.AutoStopAt, func() {
			session.Post(session.AutoStop)
		}); err != nil {
			return fmt.Errorf("schedule auto-stop: %w", err)
		}
	}
	if cfg.StatusInterval > 0 {
		if _, err := scheduler.ScheduleInterval(cfg.StatusInterval, func() {
			session.Post(session.PrintStatus)
		}); err != nil {
			return fmt.Errorf("schedule status: %w", err)
		}
	}
	if scheduler.Entries() > 0 {
		scheduler.Start()
		defer scheduler.Stop()
	}

	log.Printf("[info] session started db=%s tasks=%d", cfg.DatabaseURL, tr.RowCount(tracker.Root))
	return session.Run(ctx)
}
