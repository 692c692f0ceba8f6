package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/latinlookup/internal/collector"
	"github.com/at-ishikawa/latinlookup/internal/dictionary"
)

func newCollectCommand() *cobra.Command {
	var outputFile string

	cmd := &cobra.Command{
		Use:   "collect <words.txt|page.html>",
		Short: "Fetch raw responses for a word list into a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if outputFile == "" {
				outputFile = cfg.Collector.OutputFile
			}

			words, err := collector.LoadWords(args[0])
			if err != nil {
				return fmt.Errorf("collector.LoadWords() > %w", err)
			}

			client := dictionary.NewClient(cfg.Dictionaries.LatinWords.ClientConfig())
			defer func() {
				_ = client.Close()
			}()

			stats, err := collector.NewCollector(client, cfg.Collector.Delay).Collect(cmd.Context(), words, outputFile)
			if err != nil {
				return fmt.Errorf("collector.Collect() > %w", err)
			}

			out := cmd.OutOrStdout()
			if stats.Interrupted {
				fmt.Fprintln(out, "Interrupted. Progress has been saved.")
			}
			fmt.Fprintln(out, "\nCollection Summary:")
			fmt.Fprintf(out, "  Words:    %d\n", stats.Total)
			fmt.Fprintf(out, "  Existing: %d\n", stats.Existing)
			fmt.Fprintf(out, "  Fetched:  %d\n", stats.Fetched)
			fmt.Fprintf(out, "  Failed:   %d\n", stats.Failed)
			fmt.Fprintf(out, "  Output:   %s\n", outputFile)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output JSON file (default is collector.output_file)")
	return cmd
}
