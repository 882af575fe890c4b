package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent resolutions",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.historyStore()
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No history")
				return nil
			}
			if asJSON {
				return writeJSON(cmd, entries)
			}

			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, []string{
					entry.ResolvedAt.Local().Format("2006-01-02 15:04"),
					entry.Kind,
					entry.VideoID,
					entry.Title,
					entry.Path,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Resolved", "Kind", "ID", "Title", "Path"},
				rows,
				nil,
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum entries to show")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of a table")
	return cmd
}
