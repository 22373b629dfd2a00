package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tasktimer/internal/service"
	"tasktimer/internal/shell"
	"tasktimer/internal/tracker"
)

func newListCmd(app *App) *cobra.Command {
	var short bool
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks and their jobs",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, tr, closeDB, err := app.open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeDB()

			_, err = fmt.Fprintln(cmd.OutOrStdout(), service.NewSummaryService().Render(tr, !short))
			return err
		},
	}
	cmd.Flags().BoolVarP(&short, "short", "s", false, "tasks only")
	return cmd
}

func newAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, tr, closeDB, err := app.open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeDB()

			task, err := tr.CreateTask(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Added task %d: %s\n", tr.RowCount(tracker.Root), task.Name)
			return err
		},
	}
}

func newRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove N | N.M",
		Aliases: []string{"rm"},
		Short:   "Delete task N or job M of task N",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := shell.ParseAddress(args[0])
			if err != nil {
				return err
			}

			_, tr, closeDB, err := app.open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeDB()

			if err := tr.Remove(cmd.Context(), addr); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s.\n", args[0])
			return err
		},
	}
}
