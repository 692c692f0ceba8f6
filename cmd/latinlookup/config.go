package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration commands",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Configuration is valid.")
			fmt.Fprintf(out, "  latin-words: %s (store: %s)\n", cfg.Dictionaries.LatinWords.BaseURL, cfg.Dictionaries.LatinWords.Store)
			fmt.Fprintf(out, "  server port: %d\n", cfg.Server.Port)
			return nil
		},
	})
	return cmd
}
