package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the backend and rank candidates against the query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if limit == 0 {
				limit = cfg.Lookup.SearchResultLimit
			}

			query := strings.Join(args, " ")
			matcher := ctx.matcher(cfg)
			ranked, err := matcher.Candidates(cmd.Context(), strings.ToLower(query), limit)
			if err != nil {
				return err
			}
			if len(ranked) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No results")
				return nil
			}
			if asJSON {
				return writeJSON(cmd, ranked)
			}

			out := cmd.OutOrStdout()
			if !isTerminal(out) {
				for _, candidate := range ranked {
					fmt.Fprintf(out, "%s\t%.2f\t%s\t%s\n", candidate.ID, candidate.Score, candidate.Title, candidate.Uploader)
				}
				return nil
			}

			rows := make([][]string, 0, len(ranked))
			for _, candidate := range ranked {
				rows = append(rows, []string{
					candidate.ID,
					fmt.Sprintf("%.2f", candidate.Score),
					candidate.Title,
					candidate.Uploader,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"ID", "Score", "Title", "Uploader"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum candidates to request (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of a table")
	return cmd
}
