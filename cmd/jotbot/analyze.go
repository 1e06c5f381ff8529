package main

import (
	"fmt"
	"strings"

	"github.com/Veraticus/jotbot/internal/cli"
	"github.com/spf13/cobra"
)

func analyzeCmd() *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "analyze <message>",
		Short: "Analyze a single message",
		Example: `  jotbot analyze "bought a book for 500"
  jotbot analyze --save "need to prepare the report by 10.03"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			message := strings.Join(args, " ")

			settings, err := loadSettings()
			if err != nil {
				return err
			}

			store, err := initStorage(ctx, settings)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			a, _, err := initAnalyzer(ctx, settings, store)
			if err != nil {
				return err
			}

			item, err := a.Analyze(ctx, message)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, cli.RenderItem(item))

			if !save || item == nil {
				return nil
			}

			id, err := saveItem(ctx, store, item, message)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Saved %s #%d", item.Kind(), id)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "store the result")

	return cmd
}
