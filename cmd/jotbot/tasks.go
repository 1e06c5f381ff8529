package main

import (
	"fmt"
	"time"

	"github.com/Veraticus/jotbot/internal/cli"
	"github.com/Veraticus/jotbot/internal/storage"
	"github.com/spf13/cobra"
)

func tasksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tasks",
		Aliases: []string{"task", "t"},
		Short:   "List and delete recorded tasks",
	}

	cmd.AddCommand(listTasksCmd())
	cmd.AddCommand(deleteTaskCmd())

	return cmd
}

func listTasksCmd() *cobra.Command {
	var (
		dueBefore string
		limit     int
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List recorded tasks, soonest deadline first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			filter := storage.TaskFilter{Limit: limit}
			if dueBefore != "" {
				t, err := parseDateFlag(dueBefore)
				if err != nil {
					return err
				}
				filter.DueBefore = &t
			}

			settings, err := loadSettings()
			if err != nil {
				return err
			}

			store, err := initStorage(ctx, settings)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			records, err := store.GetTasks(ctx, filter)
			if err != nil {
				return fmt.Errorf("failed to list tasks: %w", err)
			}

			return cli.RenderTasks(cmd.OutOrStdout(), records, time.Now())
		},
	}

	cmd.Flags().StringVar(&dueBefore, "due-before", "", "only tasks due before this date (YYYY-MM-DD)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of tasks")

	return cmd
}

func deleteTaskCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm", "done"},
		Short:   "Delete a recorded task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			settings, err := loadSettings()
			if err != nil {
				return err
			}

			store, err := initStorage(ctx, settings)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.DeleteTask(ctx, id); err != nil {
				return fmt.Errorf("failed to delete task %d: %w", id, err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Deleted task #%d", id)))
			return nil
		},
	}
}
