package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/Veraticus/jotbot/internal/cli"
	"github.com/Veraticus/jotbot/internal/common"
	"github.com/Veraticus/jotbot/internal/storage"
	"github.com/spf13/cobra"
)

func purchasesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "purchases",
		Aliases: []string{"purchase", "p"},
		Short:   "List and delete recorded purchases",
	}

	cmd.AddCommand(listPurchasesCmd())
	cmd.AddCommand(deletePurchaseCmd())

	return cmd
}

func listPurchasesCmd() *cobra.Command {
	var (
		purpose string
		since   string
		limit   int
		totals  bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List recorded purchases",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			filter := storage.PurchaseFilter{Purpose: purpose, Limit: limit}
			if since != "" {
				t, err := parseDateFlag(since)
				if err != nil {
					return err
				}
				filter.Since = &t
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

			records, err := store.GetPurchases(ctx, filter)
			if err != nil {
				return fmt.Errorf("failed to list purchases: %w", err)
			}

			out := cmd.OutOrStdout()
			if err := cli.RenderPurchases(out, records, time.Now()); err != nil {
				return err
			}

			if !totals {
				return nil
			}
			spending, err := store.GetSpendingByPurpose(ctx)
			if err != nil {
				return fmt.Errorf("failed to total purchases: %w", err)
			}
			fmt.Fprintln(out)
			return cli.RenderSpending(out, spending)
		},
	}

	cmd.Flags().StringVar(&purpose, "purpose", "", "only purchases with this purpose")
	cmd.Flags().StringVar(&since, "since", "", "only purchases recorded on or after this date (YYYY-MM-DD)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of purchases")
	cmd.Flags().BoolVar(&totals, "totals", false, "also show spending per purpose")

	return cmd
}

func deletePurchaseCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a recorded purchase",
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

			if err := store.DeletePurchase(ctx, id); err != nil {
				return fmt.Errorf("failed to delete purchase %d: %w", id, err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Deleted purchase #%d", id)))
			return nil
		},
	}
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, common.NewUserError(fmt.Sprintf("invalid id %q", arg), storage.ErrInvalidID)
	}
	return id, nil
}

// parseDateFlag reads a YYYY-MM-DD flag value as local midnight.
func parseDateFlag(value string) (time.Time, error) {
	t, err := time.ParseInLocation(time.DateOnly, value, time.Local)
	if err != nil {
		return time.Time{}, common.NewUserError(fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", value), err)
	}
	return t, nil
}
