package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"ytmeta/internal/config"
	"ytmeta/internal/history"
	"ytmeta/internal/logging"
	"ytmeta/internal/mapper"
)

func newResolveCommand(ctx *commandContext) *cobra.Command {
	var kind string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "resolve <file>",
		Short: "Resolve metadata for a local video file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver, err := ctx.resolver()
			if err != nil {
				return err
			}

			path := args[0]
			switch strings.ToLower(strings.TrimSpace(kind)) {
			case "movie", "":
				result, err := resolver.ResolveMovie(cmd.Context(), path)
				if err != nil {
					return err
				}
				if !result.HasMetadata {
					return reportNoMetadata(cmd, path)
				}
				ctx.recordHistory(cmd, "movie", path, result.ProviderIDs, result.Item.Title)
				if asJSON {
					return writeJSON(cmd, result)
				}
				rows := [][]string{
					{"Title", result.Item.Title},
					{"Overview", truncate(result.Item.Overview, 120)},
					{"Year", fmt.Sprintf("%d", result.Item.ProductionYear)},
					{"Premiere", formatDate(result.Item.PremiereDate)},
					{"Provider ID", result.ProviderIDs[config.ProviderName]},
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Field", "Value"}, rows, nil))
				return nil
			case "episode":
				result, err := resolver.ResolveEpisode(cmd.Context(), path)
				if err != nil {
					return err
				}
				if !result.HasMetadata {
					return reportNoMetadata(cmd, path)
				}
				ctx.recordHistory(cmd, "episode", path, result.ProviderIDs, result.Item.Title)
				if asJSON {
					return writeJSON(cmd, result)
				}
				rows := [][]string{
					{"Title", result.Item.Title},
					{"Overview", truncate(result.Item.Overview, 120)},
					{"Season", fmt.Sprintf("%d", result.Item.SeasonNumber)},
					{"Episode", fmt.Sprintf("%d", result.Item.EpisodeNumber)},
					{"Sort Title", result.Item.SortTitle},
					{"Premiere", formatDate(result.Item.PremiereDate)},
					{"Provider ID", result.ProviderIDs[config.ProviderName]},
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Field", "Value"}, rows, nil))
				return nil
			case "series":
				result, err := resolver.ResolveSeries(cmd.Context(), path)
				if err != nil {
					return err
				}
				if !result.HasMetadata {
					return reportNoMetadata(cmd, path)
				}
				ctx.recordHistory(cmd, "series", path, result.ProviderIDs, result.Item.Name)
				if asJSON {
					return writeJSON(cmd, result)
				}
				rows := [][]string{
					{"Name", result.Item.Name},
					{"Overview", truncate(result.Item.Overview, 120)},
					{"Provider ID", result.ProviderIDs[config.ProviderName]},
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Field", "Value"}, rows, nil))
				return nil
			case "musicvideo":
				result, err := resolver.ResolveMusicVideo(cmd.Context(), path)
				if err != nil {
					return err
				}
				if !result.HasMetadata {
					return reportNoMetadata(cmd, path)
				}
				ctx.recordHistory(cmd, "musicvideo", path, result.ProviderIDs, result.Item.Title)
				if asJSON {
					return writeJSON(cmd, result)
				}
				rows := [][]string{
					{"Title", result.Item.Title},
					{"Artists", strings.Join(result.Item.Artists, ", ")},
					{"Album", result.Item.Album},
					{"Premiere", formatDate(result.Item.PremiereDate)},
					{"Provider ID", result.ProviderIDs[config.ProviderName]},
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Field", "Value"}, rows, nil))
				return nil
			default:
				return fmt.Errorf("unknown kind %q (expected movie, episode, series, or musicvideo)", kind)
			}
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", "movie", "Entity kind: movie, episode, series, or musicvideo")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of a table")
	return cmd
}

func reportNoMetadata(cmd *cobra.Command, path string) error {
	fmt.Fprintf(cmd.OutOrStdout(), "No metadata found for %s\n", path)
	return nil
}

// recordHistory is best-effort; a broken history database never fails a
// resolve.
func (c *commandContext) recordHistory(cmd *cobra.Command, kind, path string, providerIDs map[string]string, title string) {
	cfg, err := c.ensureConfig()
	if err != nil || !cfg.History.Enabled {
		return
	}
	store, err := c.historyStore()
	if err != nil {
		c.ensureLogger().Warn("history unavailable", logging.Error(err))
		return
	}
	defer store.Close()

	entry := history.Entry{
		Path:       path,
		VideoID:    providerIDs[config.ProviderName],
		Kind:       kind,
		Title:      title,
		ResolvedAt: time.Now().UTC(),
	}
	if err := store.Record(cmd.Context(), entry); err != nil {
		c.ensureLogger().Warn("history write failed", logging.Error(err))
	}
}

func formatDate(when time.Time) string {
	if when.Equal(mapper.SentinelDate) {
		return "unknown"
	}
	return when.Format("2006-01-02")
}

func truncate(value string, limit int) string {
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return string(runes[:limit]) + "…"
}
