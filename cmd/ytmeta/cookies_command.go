package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newCookiesCommand(ctx *commandContext) *cobra.Command {
	cookiesCmd := &cobra.Command{
		Use:   "cookies",
		Short: "Inspect the optional backend credential file",
	}

	cookiesCmd.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Validate cookies.txt against the backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			cookiePath := cfg.CookieFile()
			fmt.Fprintf(out, "Cookie file: %s\n", cookiePath)
			if _, err := os.Stat(cookiePath); err != nil {
				fmt.Fprintln(out, "Cookie file not present; backend calls run unauthenticated")
				return nil
			}

			client := ctx.backendClient(cfg)
			ok, err := client.CheckCookies(cmd.Context())
			if err != nil {
				return err
			}
			if ok {
				fmt.Fprintln(out, "Cookies valid")
			} else {
				fmt.Fprintln(out, "Cookies rejected by the backend; refresh cookies.txt")
			}
			return nil
		},
	})

	return cookiesCmd
}
