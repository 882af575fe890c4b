package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"ytmeta/internal/metacache"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage the on-disk record cache",
	}

	cacheCmd.AddCommand(newCachePathCommand(ctx))
	cacheCmd.AddCommand(newCacheClearCommand(ctx))

	return cacheCmd
}

func newCachePathCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "path <id>",
		Short: "Print the cache location for a video identifier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cache := metacache.NewCache(cfg.Paths.CacheRoot, nil)
			path := cache.VideoInfoPath(args[0])
			fmt.Fprintln(cmd.OutOrStdout(), path)
			if _, err := os.Stat(path); err == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "cached: yes")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "cached: no")
			}
			return nil
		},
	}
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "clear [id]",
		Short: "Remove cached records for one identifier, or everything with --all",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cache := metacache.NewCache(cfg.Paths.CacheRoot, nil)

			if all {
				root := filepath.Dir(filepath.Dir(cache.VideoInfoPath("placeholder")))
				if err := os.RemoveAll(root); err != nil {
					return fmt.Errorf("clear cache: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Cache cleared")
				return nil
			}

			if len(args) == 0 {
				return fmt.Errorf("provide an identifier or pass --all")
			}
			dir := filepath.Dir(cache.VideoInfoPath(args[0]))
			if err := os.RemoveAll(dir); err != nil {
				return fmt.Errorf("clear cache entry: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", dir)
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Remove the entire cache tree")
	return cmd
}
